package config

import (
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// LoadWithFlags reads the environment like Load, then applies command-line
// overrides from args before validating.
func LoadWithFlags(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	cfg.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// BindFlags registers command-line flags whose defaults are the values
// already loaded into cfg.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.OAI.BaseURL, "base-url", c.OAI.BaseURL, "OAI-PMH endpoint URL")
	fs.StringVar(&c.OAI.SetSpec, "set-spec", c.OAI.SetSpec, "OAI setSpec to harvest (e.g. diffusable, ddc:600, CNAM); empty for all")
	fs.StringVar(&c.OAI.MetadataPrefix, "metadata-prefix", c.OAI.MetadataPrefix, "metadata format to request")
	fs.StringVar(&c.Output.CSVPath, "out-csv", c.Output.CSVPath, "output CSV path (.gz to compress)")
	fs.Float64Var(&c.Harvest.SleepSeconds, "sleep", c.Harvest.SleepSeconds, "seconds to wait between page requests")
	fs.IntVar(&c.Harvest.MaxPages, "max-pages", c.Harvest.MaxPages, "number of pages to harvest, 0 for all")
	fs.IntVar(&c.Harvest.MaxContributors, "max-contributors", c.Harvest.MaxContributors, "number of dc:contributor columns")
	fs.DurationVar(&c.HTTP.Timeout, "timeout", c.HTTP.Timeout, "HTTP request timeout")
	fs.IntVar(&c.HTTP.Retries, "retries", c.HTTP.Retries, "extra attempts on a failed request")
	fs.StringVar(&c.Logging.Level, "log-level", c.Logging.Level, "log level: debug, info, warn, error")
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		envAlt := field.Tag.Get("envAlt")
		defaultVal := field.Tag.Get("default")
		required := field.Tag.Get("required") == "true"

		if envName == "" {
			continue
		}

		value, set := os.LookupEnv(envName)
		if !set && envAlt != "" {
			value, set = os.LookupEnv(envAlt)
		}

		// An explicitly empty variable is kept for strings so that
		// OAI_SET_SPEC= can disable the set filter.
		if !set || (value == "" && field.Type.Kind() != reflect.String) {
			if required {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = defaultVal
		}

		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.Set(reflect.ValueOf(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer: %w", err)
			}
			field.SetInt(i)
		}

	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number: %w", err)
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.OAI.BaseURL) == "" {
		errs = append(errs, "OAI_BASE_URL is required")
	}
	if strings.TrimSpace(c.OAI.MetadataPrefix) == "" {
		errs = append(errs, "OAI_METADATA_PREFIX is required")
	}
	if strings.TrimSpace(c.Output.CSVPath) == "" {
		errs = append(errs, "OUTPUT_CSV is required")
	}

	if c.Harvest.SleepSeconds < 0 {
		errs = append(errs, "HARVEST_SLEEP_SECONDS must be non-negative")
	}
	if c.Harvest.MaxPages < 0 {
		errs = append(errs, "HARVEST_MAX_PAGES must be non-negative")
	}
	if c.Harvest.MaxContributors < 0 {
		errs = append(errs, "HARVEST_MAX_CONTRIBUTORS must be non-negative")
	}

	if c.HTTP.Timeout <= 0 {
		errs = append(errs, "HTTP_TIMEOUT must be positive")
	}
	if c.HTTP.Retries < 0 {
		errs = append(errs, "HTTP_RETRIES must be non-negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if c.PostgresEnabled() && strings.TrimSpace(c.Postgres.Table) == "" {
		errs = append(errs, "POSTGRES_TABLE is required when POSTGRES_URL is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Connection strings and passwords are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("OAI: {BaseURL: %q, SetSpec: %q, MetadataPrefix: %q}, ",
		c.OAI.BaseURL, c.OAI.SetSpec, c.OAI.MetadataPrefix))
	b.WriteString(fmt.Sprintf("Harvest: {Sleep: %gs, MaxPages: %d, MaxContributors: %d}, ",
		c.Harvest.SleepSeconds, c.Harvest.MaxPages, c.Harvest.MaxContributors))
	b.WriteString(fmt.Sprintf("Output: %q, ", c.Output.CSVPath))
	b.WriteString(fmt.Sprintf("Mongo: %v, Postgres: %v, Redis: %v",
		c.MongoEnabled(), c.PostgresEnabled(), c.RedisEnabled()))
	b.WriteString("}")
	return b.String()
}
