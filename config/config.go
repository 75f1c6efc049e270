// Package config holds the harvester configuration. Values come from
// environment variables (optionally seeded from a .env file), with defaults
// from struct tags, and can be overridden on the command line.
package config

import "time"

// Config holds all harvester configuration.
type Config struct {
	OAI      OAIConfig
	Harvest  HarvestConfig
	Output   OutputConfig
	HTTP     HTTPConfig
	Logging  LoggingConfig
	Mongo    MongoConfig
	Postgres PostgresConfig
	Redis    RedisConfig
}

// OAIConfig describes the remote endpoint and the ListRecords selection.
type OAIConfig struct {
	// BaseURL is the OAI-PMH handler URL
	BaseURL string `env:"OAI_BASE_URL" default:"https://staroai.theses.fr/OAIHandler"`

	// SetSpec restricts the harvest to one set; empty harvests everything
	SetSpec string `env:"OAI_SET_SPEC" default:"diffusable"`

	// MetadataPrefix is the metadata format requested (default: oai_dc)
	MetadataPrefix string `env:"OAI_METADATA_PREFIX" default:"oai_dc"`
}

// HarvestConfig controls the paging loop and row shape.
type HarvestConfig struct {
	// SleepSeconds is the pause between two page requests (default: 0.2)
	SleepSeconds float64 `env:"HARVEST_SLEEP_SECONDS" default:"0.2"`

	// MaxPages stops after that many pages; 0 means no limit
	MaxPages int `env:"HARVEST_MAX_PAGES" default:"0"`

	// MaxContributors is the number of contributor_N columns (default: 3)
	MaxContributors int `env:"HARVEST_MAX_CONTRIBUTORS" default:"3"`
}

// OutputConfig holds the CSV destination.
type OutputConfig struct {
	// CSVPath is the output file; a .gz suffix enables gzip compression
	CSVPath string `env:"OUTPUT_CSV" default:"theses_diffusable_openaccess_flat.csv"`
}

// HTTPConfig holds transport settings.
type HTTPConfig struct {
	Timeout time.Duration `env:"HTTP_TIMEOUT" default:"90s"`

	// Retries is the number of extra attempts on a failed request (default: 0)
	Retries int `env:"HTTP_RETRIES" default:"0"`

	UserAgent string `env:"HTTP_USER_AGENT" default:"star-harvest/1.0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// MongoConfig enables mirroring kept rows into MongoDB when URI is set.
type MongoConfig struct {
	URI        string `env:"MONGO_URI"`
	Database   string `env:"MONGO_DATABASE" default:"theses"`
	Collection string `env:"MONGO_COLLECTION" default:"records"`
}

// PostgresConfig enables mirroring kept rows into PostgreSQL when URL is set.
type PostgresConfig struct {
	URL   string `env:"POSTGRES_URL" envAlt:"DATABASE_URL"`
	Table string `env:"POSTGRES_TABLE" default:"star_theses"`
}

// RedisConfig enables archiving raw pages into Redis when Addr is set.
type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" default:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" default:"star"`
}

// Delay returns the inter-page pause as a duration.
func (c *HarvestConfig) Delay() time.Duration {
	return time.Duration(c.SleepSeconds * float64(time.Second))
}

// MongoEnabled reports whether a MongoDB mirror is configured.
func (c *Config) MongoEnabled() bool { return c.Mongo.URI != "" }

// PostgresEnabled reports whether a PostgreSQL mirror is configured.
func (c *Config) PostgresEnabled() bool { return c.Postgres.URL != "" }

// RedisEnabled reports whether the raw page archive is configured.
func (c *Config) RedisEnabled() bool { return c.Redis.Addr != "" }
