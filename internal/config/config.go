// Package config loads the conflation engine's settings from a YAML file
// layered with environment overrides, the way the teacher's app/config does.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port string `yaml:"port" mapstructure:"port"`
}

// PostgresConfig configures the PostGIS feature store.
type PostgresConfig struct {
	DSN         string `yaml:"dsn" mapstructure:"dsn"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	SchemaTable string `yaml:"schema_table" mapstructure:"schema_table"`
}

// RedisConfig configures the L1 decision cache.
type RedisConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// MongoConfig configures the L2 decision cache.
type MongoConfig struct {
	URL      string `yaml:"url" mapstructure:"url"`
	Database string `yaml:"database" mapstructure:"database"`
	L1Size   int    `yaml:"l1_size" mapstructure:"l1_size"`
}

// MeiliConfig configures the free-text search index backing GET /v1/search.
// Host empty means the search route is omitted entirely.
type MeiliConfig struct {
	Host      string `yaml:"host" mapstructure:"host"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	IndexName string `yaml:"index_name" mapstructure:"index_name"`
}

// Config is the conflation engine's full runtime configuration.
type Config struct {
	Country      string   `yaml:"country" mapstructure:"country"`
	Region       string   `yaml:"region" mapstructure:"region"`
	Languages    []string `yaml:"languages" mapstructure:"languages"`
	BufferMeters float64  `yaml:"buffer_meters" mapstructure:"buffer_meters"`
	Strict       bool     `yaml:"strict" mapstructure:"strict"`
	Workers      int      `yaml:"workers" mapstructure:"workers"`

	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
	Redis    RedisConfig    `yaml:"redis" mapstructure:"redis"`
	Mongo    MongoConfig    `yaml:"mongo" mapstructure:"mongo"`
	Meili    MeiliConfig    `yaml:"meili" mapstructure:"meili"`
}

// C is the process-wide configuration, set once by Load at startup.
var C Config

// Load reads path (if present) into C, applying defaults first and
// environment overrides last. A missing config file is not an error: the
// defaults plus environment variables are enough to run against local
// services.
func Load(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("country", "US")
	v.SetDefault("region", "")
	v.SetDefault("languages", []string{"en"})
	v.SetDefault("buffer_meters", 25.0)
	v.SetDefault("strict", false)
	v.SetDefault("workers", 8)
	v.SetDefault("server.port", "8080")
	v.SetDefault("postgres.dsn", "postgres://localhost:5432/conflate?sslmode=disable")
	v.SetDefault("postgres.max_conns", int32(10))
	v.SetDefault("postgres.schema_table", "road_features")
	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("redis.ttl", 24*time.Hour)
	v.SetDefault("mongo.url", "mongodb://localhost:27017/conflate")
	v.SetDefault("mongo.database", "conflate")
	v.SetDefault("mongo.l1_size", 10000)
	v.SetDefault("meili.host", "")
	v.SetDefault("meili.index_name", "road_features")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&C); err != nil {
		return fmt.Errorf("unmarshaling config: %w", err)
	}
	return nil
}
