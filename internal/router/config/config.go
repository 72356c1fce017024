package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from the env file.
type Config struct {
	ServerAddress string        `mapstructure:"SERVER_ADDRESS"`
	PostgresConn  string        `mapstructure:"POSTGRES_CONN"`
	PostgresUser  string        `mapstructure:"POSTGRES_USERNAME"`
	PostgresPass  string        `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost  string        `mapstructure:"POSTGRES_HOST"`
	PostgresPort  string        `mapstructure:"POSTGRES_PORT"`
	PostgresDB    string        `mapstructure:"POSTGRES_DATABASE"`
	MigrationURL  string        `mapstructure:"MIGRATION_URL"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	TokenTTL      time.Duration `mapstructure:"TOKEN_TTL"`
	LogLevel      string        `mapstructure:"LOG_LEVEL"`
	Environment   string        `mapstructure:"ENVIRONMENT"`
}

// LoadConfig reads the configuration from app.env in the given path.
func LoadConfig(path string) (cfg Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	err = viper.ReadInConfig()
	if err != nil {
		return
	}
	err = viper.Unmarshal(&cfg)
	return
}
