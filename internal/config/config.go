package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Transmission TransmissionConfig `mapstructure:"transmission"`
	Library      LibraryConfig      `mapstructure:"library"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	Schema          string        `mapstructure:"schema"`
	Path            string        `mapstructure:"path"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN builds the driver connection string. For postgres the schema rides on
// search_path so table names can stay unqualified across drivers.
func (d *DatabaseConfig) DSN() string {
	if d.Driver == "postgres" {
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
		if d.Schema != "" {
			dsn += fmt.Sprintf(" search_path=%s", d.Schema)
		}
		return dsn
	}
	return d.Path
}

type TransmissionConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type LibraryConfig struct {
	FileDeletionEnabled bool   `mapstructure:"file_deletion_enabled"`
	CachePath           string `mapstructure:"cache_path"`
	MoviesPath          string `mapstructure:"movies_path"`
	TVPath              string `mapstructure:"tv_path"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "atp")
	v.SetDefault("database.name", "atp")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.schema", "atp")
	v.SetDefault("database.path", "./data/rear-differential.db")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("transmission.host", "localhost")
	v.SetDefault("transmission.port", 9091)
	v.SetDefault("transmission.timeout", 15*time.Second)
	v.SetDefault("library.file_deletion_enabled", false)
	v.SetDefault("library.cache_path", "/data/cache")
	v.SetDefault("library.movies_path", "/data/library/movies")
	v.SetDefault("library.tv_path", "/data/library/tv")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.name", "DATABASE_NAME")
	v.BindEnv("database.schema", "DATABASE_SCHEMA")
	v.BindEnv("transmission.host", "TRANSMISSION_HOST")
	v.BindEnv("transmission.port", "TRANSMISSION_PORT")
	v.BindEnv("transmission.username", "TRANSMISSION_USERNAME")
	v.BindEnv("transmission.password", "TRANSMISSION_PASSWORD")
	v.BindEnv("library.file_deletion_enabled", "FILE_DELETION_ENABLED")
	v.BindEnv("library.cache_path", "LIBRARY_CACHE_PATH")
	v.BindEnv("library.movies_path", "LIBRARY_MOVIES_PATH")
	v.BindEnv("library.tv_path", "LIBRARY_TV_PATH")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
