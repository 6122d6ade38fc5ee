package config

import (
	"fmt"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Viper keys. Flags bound by the CLI use the same keys as the env variables.
const (
	KeyPort             = "rest.port"
	KeyLogLevel         = "logger.log_level"
	KeyDatabaseHost     = "database.host"
	KeyDatabasePort     = "database.port"
	KeyDatabaseUser     = "database.user"
	KeyDatabasePassword = "database.password"
	KeyDatabaseName     = "database.name"
	KeyRabbitmqHost     = "rabbitmq.host"
	KeyRabbitmqPort     = "rabbitmq.port"
	KeyRabbitmqUser     = "rabbitmq.user"
	KeyRabbitmqPassword = "rabbitmq.password"
)

var envBindings = map[string]string{
	KeyPort:             "PORT",
	KeyLogLevel:         "LOG_LEVEL",
	KeyDatabaseHost:     "DB_SERVER",
	KeyDatabasePort:     "DB_PORT",
	KeyDatabaseUser:     "DB_USER",
	KeyDatabasePassword: "DB_PASSWORD",
	KeyDatabaseName:     "DB_NAME",
	KeyRabbitmqHost:     "RABBITMQ_HOST",
	KeyRabbitmqPort:     "RABBITMQ_PORT",
	KeyRabbitmqUser:     "RABBITMQ_USER",
	KeyRabbitmqPassword: "RABBITMQ_PASSWORD",
}

// BindEnvironment maps the documented environment variables onto viper keys.
func BindEnvironment(v *viper.Viper) error {
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}
	return nil
}

// ApplyOverrides copies every key that viper has a value for onto cfg.
// Environment and flags win over the config file.
func ApplyOverrides(v *viper.Viper, cfg *ServiceConfig) error {
	var err error

	if v.IsSet(KeyPort) {
		if cfg.RestConf.Port, err = cast.ToUint16E(v.Get(KeyPort)); err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
	}
	if v.IsSet(KeyLogLevel) {
		cfg.LoggerConf.LogLevel = logger.ParseLevel(v.GetString(KeyLogLevel))
	}

	setString(v, KeyDatabaseHost, &cfg.DatabaseConf.Host)
	setString(v, KeyDatabaseUser, &cfg.DatabaseConf.User)
	setString(v, KeyDatabasePassword, &cfg.DatabaseConf.Password)
	setString(v, KeyDatabaseName, &cfg.DatabaseConf.Name)
	if v.IsSet(KeyDatabasePort) {
		if cfg.DatabaseConf.Port, err = cast.ToUint16E(v.Get(KeyDatabasePort)); err != nil {
			return fmt.Errorf("invalid DB_PORT: %w", err)
		}
	}

	setString(v, KeyRabbitmqHost, &cfg.RabbitmqConf.Host)
	setString(v, KeyRabbitmqUser, &cfg.RabbitmqConf.User)
	setString(v, KeyRabbitmqPassword, &cfg.RabbitmqConf.Password)
	if v.IsSet(KeyRabbitmqPort) {
		if cfg.RabbitmqConf.Port, err = cast.ToUint16E(v.Get(KeyRabbitmqPort)); err != nil {
			return fmt.Errorf("invalid RABBITMQ_PORT: %w", err)
		}
	}

	return nil
}

func setString(v *viper.Viper, key string, target *string) {
	if v.IsSet(key) {
		*target = v.GetString(key)
	}
}
