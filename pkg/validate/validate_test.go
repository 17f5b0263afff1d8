package validate_test

import (
	"testing"

	"github.com/marespinozac/comanda/pkg/validate"
)

type categoryInput struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Color string `json:"color" validate:"nullable,hex_color"`
	Icon  string `json:"icon"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(categoryInput{
		Name:  "Drinks",
		Color: "#2196F3",
		Icon:  "🍹",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(categoryInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
}

func TestRequiredRejectsWhitespace(t *testing.T) {
	errs := validate.Struct(categoryInput{Name: "   "})
	if _, ok := errs["name"]; !ok {
		t.Error("expected whitespace-only name to fail required")
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	errs := validate.Struct(categoryInput{Name: "Drinks", Color: ""})
	if _, ok := errs["color"]; ok {
		t.Error("empty nullable color should not be validated")
	}
}

func TestHexColor(t *testing.T) {
	for _, good := range []string{"#4CAF50", "#fff", "#ABC123"} {
		errs := validate.Struct(categoryInput{Name: "x", Color: good})
		if _, ok := errs["color"]; ok {
			t.Errorf("expected %q to pass, got: %v", good, errs)
		}
	}
	for _, bad := range []string{"4CAF50", "#12345", "#GGGGGG", "red"} {
		errs := validate.Struct(categoryInput{Name: "x", Color: bad})
		if _, ok := errs["color"]; !ok {
			t.Errorf("expected %q to fail", bad)
		}
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Price string `json:"price" validate:"required,numeric,gte=0"`
	}
	if errs := validate.Struct(in{Price: "abc"}); !validate.HasErrors(errs) {
		t.Error("expected non-numeric price to fail")
	}
	if errs := validate.Struct(in{Price: "-1"}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail gte=0")
	}
	if errs := validate.Struct(in{Price: "12.50"}); validate.HasErrors(errs) {
		t.Errorf("expected 12.50 to pass, got: %v", errs)
	}
}

func TestBoundsCompareValueNotLength(t *testing.T) {
	type in struct {
		Price string `json:"price" validate:"required,numeric,gte=2"`
	}
	// "-5" is two characters; only a value comparison catches it
	if errs := validate.Struct(in{Price: "-5"}); !validate.HasErrors(errs) {
		t.Error("expected -5 to fail gte=2")
	}
	if errs := validate.Struct(in{Price: "250"}); validate.HasErrors(errs) {
		t.Errorf("expected 250 to pass gte=2, got: %v", errs)
	}
	type cap struct {
		Price string `json:"price" validate:"required,numeric,lte=100"`
	}
	if errs := validate.Struct(cap{Price: "7"}); validate.HasErrors(errs) {
		t.Errorf("expected 7 to pass lte=100, got: %v", errs)
	}
	if errs := validate.Struct(cap{Price: "150.5"}); !validate.HasErrors(errs) {
		t.Error("expected 150.5 to fail lte=100")
	}
}

func TestMaxBoundsStringLength(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,max=5"`
	}
	if errs := validate.Struct(in{Name: "toolong"}); !validate.HasErrors(errs) {
		t.Error("expected 7-char name to fail max=5")
	}
	if errs := validate.Struct(in{Name: "ok"}); validate.HasErrors(errs) {
		t.Errorf("expected short name to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=PENDING,PREPARING,READY"`
	}
	if errs := validate.Struct(in{Status: "PREPARING"}); validate.HasErrors(errs) {
		t.Errorf("expected PREPARING to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Status: "BURNT"}); !validate.HasErrors(errs) {
		t.Error("expected BURNT to fail the in rule")
	}
}

func TestInFollowedByAnotherRule(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"in=ADMIN,WAITER,max=20"`
	}
	if errs := validate.Struct(in{Role: "WAITER"}); validate.HasErrors(errs) {
		t.Errorf("expected WAITER to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Role: "max=20"}); !validate.HasErrors(errs) {
		t.Error("a trailing rule token must not become an in option")
	}
}

func TestIntegerRule(t *testing.T) {
	type in struct {
		Table string `json:"table" validate:"required,integer,gte=1"`
	}
	if errs := validate.Struct(in{Table: "12"}); validate.HasErrors(errs) {
		t.Errorf("expected 12 to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Table: "3.5"}); !validate.HasErrors(errs) {
		t.Error("expected 3.5 to fail integer")
	}
}

func TestBoolNeverMissing(t *testing.T) {
	type in struct {
		Active bool `json:"isActive" validate:"required"`
	}
	if errs := validate.Struct(in{Active: false}); validate.HasErrors(errs) {
		t.Errorf("false bool must satisfy required, got: %v", errs)
	}
}
