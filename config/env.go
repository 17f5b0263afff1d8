package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultAPIBaseURL   = "http://localhost:8080/api"
	defaultAppEnv       = "local"
	defaultPollSeconds  = "30"
	defaultSandboxPort  = "8080"
	defaultSandboxDSN   = "comanda_sandbox.db"
	defaultJWTSecret    = "change-me-in-production"
	defaultTableCount   = "20"
	defaultHTTPTimeout  = "15"
	sessionFileBasename = "session.json"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env once. Missing files are not an error;
// defaults apply for anything not found.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"API_BASE_URL":     defaultAPIBaseURL,
		"APP_ENV":          defaultAppEnv,
		"POLL_SECONDS":     defaultPollSeconds,
		"SESSION_FILE":     "",
		"SANDBOX_PORT":     defaultSandboxPort,
		"SANDBOX_DSN":      defaultSandboxDSN,
		"JWT_SECRET":       defaultJWTSecret,
		"TABLE_COUNT":      defaultTableCount,
		"HTTP_TIMEOUT_SEC": defaultHTTPTimeout,
	}
}

// APIBaseURL is the root of the POS backend, without a trailing slash.
func APIBaseURL() string {
	_ = Load()
	return strings.TrimRight(get("API_BASE_URL", defaultAPIBaseURL), "/")
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// PollInterval is how often order views refresh themselves.
func PollInterval() time.Duration {
	_ = Load()
	return seconds("POLL_SECONDS", defaultPollSeconds)
}

// HTTPTimeout bounds every single outbound request.
func HTTPTimeout() time.Duration {
	_ = Load()
	return seconds("HTTP_TIMEOUT_SEC", defaultHTTPTimeout)
}

// SessionFile is where the authenticated session is persisted between runs.
// Defaults to <user-config-dir>/comanda/session.json.
func SessionFile() string {
	_ = Load()
	if v := get("SESSION_FILE", ""); v != "" {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "comanda", sessionFileBasename)
}

// TableCount is the number of tables shown on the waiter grid.
func TableCount() int {
	_ = Load()
	n, err := strconv.Atoi(get("TABLE_COUNT", defaultTableCount))
	if err != nil || n <= 0 {
		n, _ = strconv.Atoi(defaultTableCount)
	}
	return n
}

// ── Sandbox server ───────────────────────────────────────────────────────────

func SandboxPort() string {
	_ = Load()
	return get("SANDBOX_PORT", defaultSandboxPort)
}

func SandboxDSN() string {
	_ = Load()
	return get("SANDBOX_DSN", defaultSandboxDSN)
}

// JWTSecret signs sandbox tokens only. The real backend owns its own secret.
func JWTSecret() string {
	_ = Load()
	return get("JWT_SECRET", defaultJWTSecret)
}

// ── File loading ─────────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func seconds(key, fallback string) time.Duration {
	n, err := strconv.Atoi(get(key, fallback))
	if err != nil || n <= 0 {
		n, _ = strconv.Atoi(fallback)
	}
	return time.Duration(n) * time.Second
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
