// Package validate provides struct-tag validation for form input.
//
// The client only validates what the screens need before a request goes out;
// the server stays the source of truth for everything richer.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	numeric             value must parse as a number
//	integer             value must parse as a whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N  gte=N         number > N / >= N
//	lt=N  lte=N         number < N / <= N
//	in=a,b,c            value must be one of the listed items
//	hex_color           #RGB or #RRGGBB
//
// Example:
//
//	type CategoryForm struct {
//	    Name  string `json:"name"  validate:"required,max=100"`
//	    Color string `json:"color" validate:"nullable,hex_color"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var hexColorRE = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ─── Public API ───────────────────────────────────────────────────────────────

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v any) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := splitRules(tag)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if rule == "" || rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// ─── Rules ────────────────────────────────────────────────────────────────────

func applyRule(rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s must be a number.", field)
		}

	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s must be an integer.", field)
		}

	case "hex_color":
		if !hexColorRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a hex color like #4CAF50.", field)
		}

	case "in":
		for _, opt := range strings.Split(param, ",") {
			if raw == opt {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)

	case "min", "max", "gt", "gte", "lt", "lte":
		return applyBound(key, param, field, v, raw)
	}

	return ""
}

func applyBound(key, param, field string, v reflect.Value, raw string) string {
	limit, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return ""
	}

	// min/max bound a string's length; every other case, including gt/gte/
	// lt/lte on numeric strings, bounds the parsed value.
	var n float64
	isString := v.Kind() == reflect.String
	if isString && (key == "min" || key == "max") {
		n = float64(len([]rune(v.String())))
	} else if parsed, perr := strconv.ParseFloat(raw, 64); perr == nil {
		n = parsed
	} else {
		return fmt.Sprintf("The %s must be a number.", field)
	}

	switch key {
	case "min":
		if n < limit {
			if isString {
				return fmt.Sprintf("The %s must be at least %s characters.", field, param)
			}
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
	case "max":
		if n > limit {
			if isString {
				return fmt.Sprintf("The %s may not be greater than %s characters.", field, param)
			}
			return fmt.Sprintf("The %s may not be greater than %s.", field, param)
		}
	case "gt":
		if n <= limit {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
	case "gte":
		if n < limit {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
	case "lt":
		if n >= limit {
			return fmt.Sprintf("The %s must be less than %s.", field, param)
		}
	case "lte":
		if n > limit {
			return fmt.Sprintf("The %s may not be greater than %s.", field, param)
		}
	}

	return ""
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// splitRules splits a tag on commas while keeping the comma-separated option
// list of an in= rule attached to it.
func splitRules(tag string) []string {
	parts := strings.Split(tag, ",")
	var rules []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// An option list continues the previous in= rule until the next token
		// that looks like a rule of its own.
		if len(rules) > 0 && strings.HasPrefix(rules[len(rules)-1], "in=") && !isKnownRule(p) {
			rules[len(rules)-1] += "," + p
			continue
		}
		rules = append(rules, p)
	}
	return rules
}

func isKnownRule(token string) bool {
	name, _, _ := strings.Cut(token, "=")
	switch name {
	case "required", "nullable", "numeric", "integer", "hex_color", "in",
		"min", "max", "gt", "gte", "lt", "lte":
		return true
	}
	return false
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == name {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false // a bool is never "missing"
	default:
		return v.IsZero()
	}
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}
