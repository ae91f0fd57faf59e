package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisPromptQueue int    `mapstructure:"REDIS_PROMPT_QUEUE_DB"`

	// Firebase (FCM pushes + ID token verification).
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Proximity monitoring.
	ProximityRadiusMeters float64 `mapstructure:"PROXIMITY_RADIUS_METERS"`
	DwellThresholdSeconds int     `mapstructure:"DWELL_THRESHOLD_SECONDS"`
	ProximityNearest      bool    `mapstructure:"PROXIMITY_NEAREST"`

	// Dynamic sample aggregation.
	RollingWindowSize int `mapstructure:"ROLLING_WINDOW_SIZE"`

	// Sample log retention. Zero disables compaction and keeps the
	// log append-only, which matches the historical behavior.
	MaxDynamicSamples int `mapstructure:"MAX_DYNAMIC_SAMPLES"`

	// Seed the studyLocations collection with the bundled sample
	// venues on startup (development only).
	SeedSampleData bool `mapstructure:"SEED_SAMPLE_DATA"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_PROMPT_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "studyon")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")
	viper.SetDefault("PROXIMITY_RADIUS_METERS", 50.0)
	// 5s and 1800s have both shipped at some point; 30s is what the
	// released build used.
	viper.SetDefault("DWELL_THRESHOLD_SECONDS", 30)
	viper.SetDefault("PROXIMITY_NEAREST", false)
	viper.SetDefault("ROLLING_WINDOW_SIZE", 5)
	viper.SetDefault("MAX_DYNAMIC_SAMPLES", 0)
	viper.SetDefault("SEED_SAMPLE_DATA", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
