package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	Env        string `mapstructure:"ENV"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	RabbitURL string `mapstructure:"RABBITMQ_URL"`
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Booking rules.
	BookingHorizonDays int    `mapstructure:"BOOKING_HORIZON_DAYS"`
	SlotOpen           string `mapstructure:"SLOT_OPEN"`
	SlotClose          string `mapstructure:"SLOT_CLOSE"`
	SlotWidthMinutes   int    `mapstructure:"SLOT_WIDTH_MINUTES"`
}

func Load() *Config {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "booking_db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("JWT_SECRET", "dev-secret")
	v.SetDefault("BOOKING_HORIZON_DAYS", 14)
	v.SetDefault("SLOT_OPEN", "09:00")
	v.SetDefault("SLOT_CLOSE", "17:00")
	v.SetDefault("SLOT_WIDTH_MINUTES", 30)

	// AutomaticEnv alone does not surface env vars through Unmarshal; binding
	// each key explicitly does.
	for _, key := range []string{
		"SERVER_PORT", "ENV", "LOG_LEVEL",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"RABBITMQ_URL", "JWT_SECRET",
		"BOOKING_HORIZON_DAYS", "SLOT_OPEN", "SLOT_CLOSE", "SLOT_WIDTH_MINUTES",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return &cfg
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
