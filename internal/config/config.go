package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Bank   BankConfig
	Server ServerConfig
	Redis  RedisConfig
	Logger LoggerConfig
	Exam   ExamConfig
	PDF    PDFConfig
}

type BankConfig struct {
	Path     string        `yaml:"path"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisConfig configures the bank cache. An empty Address disables caching
// entirely; the repository then reads the bank file directly.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
	File  string `yaml:"file"`
}

// ExamConfig carries the generation defaults and limits exposed to callers.
type ExamConfig struct {
	MaxExercises       int     `yaml:"max_exercises"`
	DefaultCount       int     `yaml:"default_count"`
	DefaultTotalPoints float64 `yaml:"default_total_points"`
	SeedMax            int64   `yaml:"seed_max"`
}

type PDFConfig struct {
	DefaultTitle string `yaml:"default_title"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("bank.path", "bank.yml")
	viper.SetDefault("bank.cache_ttl", 300)
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("exam.max_exercises", 50)
	viper.SetDefault("exam.default_count", 5)
	viper.SetDefault("exam.default_total_points", 10)
	viper.SetDefault("exam.seed_max", 999999)
	viper.SetDefault("pdf.default_title", "Exam")

	if err := viper.ReadInConfig(); err != nil {
		// Defaults plus environment overrides are enough to run, so a
		// missing config file is not fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Bank: BankConfig{
			Path:     viper.GetString("bank.path"),
			CacheTTL: viper.GetDuration("bank.cache_ttl") * time.Second,
		},
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
			File:  viper.GetString("logger.file"),
		},
		Exam: ExamConfig{
			MaxExercises:       viper.GetInt("exam.max_exercises"),
			DefaultCount:       viper.GetInt("exam.default_count"),
			DefaultTotalPoints: viper.GetFloat64("exam.default_total_points"),
			SeedMax:            viper.GetInt64("exam.seed_max"),
		},
		PDF: PDFConfig{
			DefaultTitle: viper.GetString("pdf.default_title"),
		},
	}

	// Override with environment variables if set
	if bankPath := os.Getenv("BANK_PATH"); bankPath != "" {
		config.Bank.Path = bankPath
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.Logger.Level = logLevel
	}

	return config, nil
}
