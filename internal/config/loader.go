package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Lookup resolves one configuration key, like os.LookupEnv.
type Lookup func(key string) (string, bool)

// Layered returns a Lookup that asks each layer in turn; the first layer
// holding a non-empty value wins.
func Layered(layers ...Lookup) Lookup {
	return func(key string) (string, bool) {
		for _, layer := range layers {
			if v, ok := layer(key); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}
}

// MapLookup serves keys from a fixed map, such as the result of godotenv.Read.
func MapLookup(values map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom fills a Config from lookup, applies defaults for unset keys and
// validates the result. Every unparsable value is reported, not just the first.
func LoadFrom(lookup Lookup) (*Config, error) {
	cfg := &Config{}

	l := loader{lookup: lookup}
	l.fill(reflect.ValueOf(cfg).Elem())
	if len(l.errs) > 0 {
		return nil, fmt.Errorf("config load: %s", strings.Join(l.errs, "; "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// loader walks a struct and sets every field tagged with env.
//
// Tags: env is the key, envAlt a second key tried when env is unset,
// default the fallback value and required:"true" makes an unset key an error.
type loader struct {
	lookup Lookup
	errs   []string
}

func (l *loader) fill(v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}
		if field.Type.Kind() == reflect.Struct {
			l.fill(fv)
			continue
		}

		key := field.Tag.Get("env")
		if key == "" {
			continue
		}

		value, ok := l.get(key)
		if !ok {
			value, ok = l.get(field.Tag.Get("envAlt"))
		}
		if !ok {
			if field.Tag.Get("required") == "true" {
				l.errs = append(l.errs, fmt.Sprintf("required variable %s is not set", key))
				continue
			}
			value = field.Tag.Get("default")
		}
		if value == "" {
			continue
		}

		if err := setField(fv, value); err != nil {
			l.errs = append(l.errs, fmt.Sprintf("invalid value for %s=%q: %v", key, value, err))
		}
	}
}

// get treats a key that is set but blank as unset.
func (l *loader) get(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	v, ok := l.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

var durationType = reflect.TypeOf(time.Duration(0))

// setField parses value into the field's type.
func setField(field reflect.Value, value string) error {
	switch {
	case field.Type() == durationType:
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))

	case field.Kind() == reflect.String:
		field.SetString(value)

	case field.Kind() == reflect.Int || field.Kind() == reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)

	case field.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.String:
		var items []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		field.Set(reflect.ValueOf(items))

	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.WriteTimeout < 0 {
		errs = append(errs, "SERVER_WRITE_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}

	// Source validation
	if strings.TrimSpace(c.Source.DefaultOrigin) == "" {
		errs = append(errs, "SOURCE_DEFAULT_ORIGIN must not be empty")
	}
	if c.Source.FetchTimeout <= 0 {
		errs = append(errs, "SOURCE_FETCH_TIMEOUT must be positive")
	}
	if c.Source.FetchRetries < 0 {
		errs = append(errs, "SOURCE_FETCH_RETRIES must be non-negative")
	}
	if c.Source.MaxFileSize <= 0 {
		errs = append(errs, "SOURCE_MAX_FILE_SIZE must be positive")
	}
	if c.Source.Watch && c.Source.WatchDebounce <= 0 {
		errs = append(errs, "SOURCE_WATCH_DEBOUNCE must be positive when SOURCE_WATCH is enabled")
	}
	if c.Source.Watch && isRemote(c.Source.DefaultOrigin) {
		errs = append(errs, "SOURCE_WATCH requires a local SOURCE_DEFAULT_ORIGIN")
	}
	if c.Source.RefreshInterval < 0 {
		errs = append(errs, "SOURCE_REFRESH_INTERVAL must be non-negative")
	}
	if c.Source.MaxConcurrentLoads <= 0 {
		errs = append(errs, "SOURCE_MAX_CONCURRENT_LOADS must be positive")
	}
	if c.Source.LoadWait <= 0 {
		errs = append(errs, "SOURCE_LOAD_WAIT must be positive")
	}

	// Rate limit validation
	if c.Rate.Enabled && c.Rate.RequestsPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}

	// Security validation
	for _, entry := range c.Security.TrustedProxies {
		if _, _, err := net.ParseCIDR(entry); err != nil && net.ParseIP(entry) == nil {
			errs = append(errs, fmt.Sprintf("TRUSTED_PROXIES entry %q is not a valid CIDR or IP", entry))
		}
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func isRemote(origin string) bool {
	lower := strings.ToLower(origin)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// String returns a safe string representation of the config for logging.
// Credentials embedded in a source URL are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("Source: {DefaultOrigin: %q, DataDir: %q, MaxFileSize: %d, Watch: %v, RefreshInterval: %v, MaxConcurrentLoads: %d}, ",
		maskOrigin(c.Source.DefaultOrigin), c.Source.DataDir, c.Source.MaxFileSize, c.Source.Watch, c.Source.RefreshInterval, c.Source.MaxConcurrentLoads))
	b.WriteString(fmt.Sprintf("Rate: {Enabled: %v, RequestsPerMinute: %d}, ",
		c.Rate.Enabled, c.Rate.RequestsPerMinute))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}

// maskOrigin hides the userinfo and query of a URL origin.
func maskOrigin(origin string) string {
	if !isRemote(origin) {
		return origin
	}
	u, err := url.Parse(origin)
	if err != nil {
		return "[MASKED]"
	}
	if u.User != nil {
		u.User = url.User("MASKED")
	}
	if u.RawQuery != "" {
		u.RawQuery = "MASKED"
	}
	return u.String()
}
