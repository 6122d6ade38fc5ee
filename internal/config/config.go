// Package config holds the settings shared by the compute, items and users services.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/bootstrap"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/rabbitmq"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/utilities"
)

const (
	DefaultCrudPort    uint16 = 5000
	DefaultComputePort uint16 = 3000

	UserEventsPublisher rabbitmq.PublisherAlias = "UserEventsPublisher"
)

type ServiceConfigJson struct {
	LoggerConf   logger.LoggerConfigJson    `json:"logger"`
	RestConf     RestConfigJson             `json:"rest"`
	DatabaseConf DatabaseConfigJson         `json:"database"`
	RabbitmqConf rabbitmq.RabbimqConfigJson `json:"rabbitmq"`
	ComputeConf  ComputeConfigJson          `json:"compute"`
	OutboxConf   OutboxConfigJson           `json:"outbox"`
}

func (scj ServiceConfigJson) ConvertToDomain() ServiceConfig {
	return ServiceConfig{
		LoggerConf:   scj.LoggerConf.ConvertToDomain(),
		RestConf:     scj.RestConf.ConvertToDomain(),
		DatabaseConf: scj.DatabaseConf.ConvertToDomain(),
		RabbitmqConf: scj.RabbitmqConf.ConvertToDomain(),
		ComputeConf:  scj.ComputeConf.ConvertToDomain(),
		OutboxConf:   scj.OutboxConf.ConvertToDomain(),
	}
}

type ServiceConfig struct {
	LoggerConf   logger.LoggerConfig
	RestConf     RestConfig
	DatabaseConf DatabaseConfig
	RabbitmqConf rabbitmq.RabbitmqConfig
	ComputeConf  ComputeConfig
	OutboxConf   OutboxConfig
}

func (sc ServiceConfig) GetLoggerConfig() logger.LoggerConfig {
	return sc.LoggerConf
}

func (sc ServiceConfig) GetRestApiPort() uint16 {
	return sc.RestConf.Port
}

func (sc ServiceConfig) GetDatabaseConfig() DatabaseConfig {
	return sc.DatabaseConf
}

func (sc ServiceConfig) GetRabbitmqConfig() rabbitmq.RabbitmqConfig {
	return sc.RabbitmqConf
}

func (sc ServiceConfig) GetComputeConfig() ComputeConfig {
	return sc.ComputeConf
}

func (sc ServiceConfig) GetOutboxConfig() OutboxConfig {
	return sc.OutboxConf
}

// WithDefaultPort fills the REST port when neither the file nor the environment set one.
func (sc *ServiceConfig) WithDefaultPort(port uint16) {
	sc.RestConf.Port = utilities.FirstNonZero(sc.RestConf.Port, port)
}

type RestConfigJson struct {
	Port       uint16 `json:"port"`
	CorsOrigin string `json:"cors_origin"`
}

type RestConfig struct {
	Port       uint16
	CorsOrigin string
}

func (rcj RestConfigJson) ConvertToDomain() RestConfig {
	return RestConfig{
		Port:       rcj.Port,
		CorsOrigin: utilities.FirstNonZero(rcj.CorsOrigin, "*"),
	}
}

type DatabaseConfigJson struct {
	Host              string `json:"host"`
	Port              uint16 `json:"port"`
	User              string `json:"user"`
	Password          string `json:"password"`
	Name              string `json:"name"`
	SSLMode           string `json:"ssl_mode"`
	MaxRetries        int    `json:"max_retries"`
	RetryDelaySeconds int    `json:"retry_delay_seconds"`
	Migrate           *bool  `json:"migrate"`
}

type DatabaseConfig struct {
	Host       string
	Port       uint16
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
	RetryDelay time.Duration
	Migrate    bool
}

func (dcj DatabaseConfigJson) ConvertToDomain() DatabaseConfig {
	return DatabaseConfig{
		Host:       utilities.FirstNonZero(dcj.Host, "localhost"),
		Port:       utilities.FirstNonZero(dcj.Port, 5432),
		User:       dcj.User,
		Password:   dcj.Password,
		Name:       dcj.Name,
		SSLMode:    utilities.FirstNonZero(dcj.SSLMode, "disable"),
		MaxRetries: utilities.FirstNonZero(dcj.MaxRetries, bootstrap.DefaultMaxRetries),
		RetryDelay: utilities.Ternary(
			dcj.RetryDelaySeconds > 0,
			time.Duration(dcj.RetryDelaySeconds)*time.Second,
			bootstrap.DefaultRetryDelay,
		),
		Migrate: dcj.Migrate == nil || *dcj.Migrate,
	}
}

// ConnectionString renders the settings as a postgres URL understood by pgx.
func (dc DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dc.User, dc.Password),
		Host:     fmt.Sprintf("%s:%d", dc.Host, dc.Port),
		Path:     "/" + dc.Name,
		RawQuery: url.Values{"sslmode": []string{dc.SSLMode}}.Encode(),
	}
	return u.String()
}

type ComputeConfigJson struct {
	Workers   int `json:"workers"`
	QueueSize int `json:"queue_size"`
}

type ComputeConfig struct {
	Workers   int
	QueueSize int
}

func (ccj ComputeConfigJson) ConvertToDomain() ComputeConfig {
	return ComputeConfig{
		Workers:   utilities.FirstNonZero(ccj.Workers, 4),
		QueueSize: utilities.FirstNonZero(ccj.QueueSize, 64),
	}
}

type OutboxConfigJson struct {
	Schedule       string `json:"schedule"`
	BatchSize      int    `json:"batch_size"`
	MaxRetries     int    `json:"max_retries"`
	PublisherAlias string `json:"publisher_alias"`
}

type OutboxConfig struct {
	Schedule       string
	BatchSize      int
	MaxRetries     int
	PublisherAlias rabbitmq.PublisherAlias
}

func (ocj OutboxConfigJson) ConvertToDomain() OutboxConfig {
	return OutboxConfig{
		Schedule:       utilities.FirstNonZero(ocj.Schedule, "@every 30s"),
		BatchSize:      utilities.FirstNonZero(ocj.BatchSize, 100),
		MaxRetries:     utilities.FirstNonZero(ocj.MaxRetries, 5),
		PublisherAlias: rabbitmq.PublisherAlias(utilities.FirstNonZero(ocj.PublisherAlias, string(UserEventsPublisher))),
	}
}
