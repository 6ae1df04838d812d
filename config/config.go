package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"airmetr/constants"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver    string `yaml:"driver"`     // postgres | sqlite
	SQLDriver string `yaml:"sql_driver"` // pgx | postgres (lib/pq)
	DSN       string `yaml:"dsn"`
	Host      string `yaml:"host"`
	Port      string `yaml:"port"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Name      string `yaml:"name"`
	SSLMode   string `yaml:"sslmode"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type Config struct {
	Env                  string         `yaml:"env"`
	Port                 string         `yaml:"port"`
	Database             DatabaseConfig `yaml:"database"`
	Redis                RedisConfig    `yaml:"redis"`
	AvailabilityCacheTTL time.Duration  `yaml:"availability_cache_ttl"`
	BookingLockTTL       time.Duration  `yaml:"booking_lock_ttl"`
	DefaultCustomerID    string         `yaml:"default_customer_id"`
	JWTSecret            string         `yaml:"jwt_secret"`
	ImageStorage         string         `yaml:"image_storage"`
	UploadDir            string         `yaml:"upload_dir"`
	CloudinaryURL        string         `yaml:"cloudinary_url"`
	AMQPURL              string         `yaml:"amqp_url"`
	AMQPExchange         string         `yaml:"amqp_exchange"`
	AuditCron            string         `yaml:"audit_cron"`
	RateLimitRPS         float64        `yaml:"rate_limit_rps"`
	RateLimitBurst       int            `yaml:"rate_limit_burst"`
	MaxStayDays          int            `yaml:"max_stay_days"`
	SeedDB               bool           `yaml:"seed_db"`
	LogLevel             string         `yaml:"log_level"`
	LogFile              string         `yaml:"log_file"`
}

func defaults() *Config {
	return &Config{
		Env:  "dev",
		Port: "8083",
		Database: DatabaseConfig{
			Driver:    "postgres",
			SQLDriver: "pgx",
			Port:      "5432",
			SSLMode:   "disable",
		},
		AvailabilityCacheTTL: 10 * time.Minute,
		BookingLockTTL:       10 * time.Second,
		DefaultCustomerID:    "2",
		ImageStorage:         "local",
		UploadDir:            "uploads",
		AMQPExchange:         "airmetr.availability",
		AuditCron:            "0 3 * * *",
		RateLimitRPS:         5,
		RateLimitBurst:       10,
		MaxStayDays:          constants.DefaultMaxStayDays,
		LogLevel:             "info",
	}
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE, then environment variables (including .env).
func Load() (*Config, error) {
	LoadEnv()
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Env, "ENV")
	setString(&cfg.Port, "PORT")
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.SQLDriver, "DB_SQL_DRIVER")
	setString(&cfg.Database.DSN, "DB_DSN")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.User, "REDIS_USER")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.DefaultCustomerID, "DEFAULT_CUSTOMER_ID")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.ImageStorage, "IMAGE_STORAGE")
	setString(&cfg.UploadDir, "UPLOAD_DIR")
	setString(&cfg.CloudinaryURL, "CLOUDINARY_URL")
	setString(&cfg.AMQPURL, "AMQP_URL")
	setString(&cfg.AMQPExchange, "AMQP_EXCHANGE")
	setString(&cfg.AuditCron, "AUDIT_CRON")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFile, "LOG_FILE")

	if err := setDuration(&cfg.AvailabilityCacheTTL, "AVAILABILITY_CACHE_TTL"); err != nil {
		return err
	}
	if err := setDuration(&cfg.BookingLockTTL, "BOOKING_LOCK_TTL"); err != nil {
		return err
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", v, err)
		}
		cfg.RateLimitRPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", v, err)
		}
		cfg.RateLimitBurst = n
	}
	if v := os.Getenv("MAX_STAY_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid MAX_STAY_DAYS %q", v)
		}
		cfg.MaxStayDays = n
	}
	if v := os.Getenv("SEED_DB"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SEED_DB %q: %w", v, err)
		}
		cfg.SeedDB = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

func GetEnv(key string) string {
	return os.Getenv(key)
}
