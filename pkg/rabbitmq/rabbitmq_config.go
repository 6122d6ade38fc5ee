package rabbitmq

import (
	"time"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/bootstrap"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/utilities"
)

type RabbimqConfigJson struct {
	Enabled           bool                           `json:"enabled"`
	Host              string                         `json:"host"`
	Port              uint16                         `json:"port"`
	User              string                         `json:"user"`
	Password          string                         `json:"password"`
	VHost             string                         `json:"vhost"`
	MaxRetries        int                            `json:"max_retries"`
	RetryDelaySeconds int                            `json:"retry_delay_seconds"`
	PublishersConfig  []RabbitmqPublishersConfigJson `json:"publishers"`
}

type RabbitmqConfig struct {
	Enabled          bool
	Host             string
	Port             uint16
	User             string
	Password         string
	VHost            string
	MaxRetries       int
	RetryDelay       time.Duration
	PublishersConfig []RabbitmqPublishersConfig
}

func (rcj RabbimqConfigJson) ConvertToDomain() RabbitmqConfig {
	return RabbitmqConfig{
		Enabled:    rcj.Enabled,
		Host:       utilities.FirstNonZero(rcj.Host, "localhost"),
		Port:       utilities.FirstNonZero(rcj.Port, 5672),
		User:       utilities.FirstNonZero(rcj.User, "guest"),
		Password:   utilities.FirstNonZero(rcj.Password, "guest"),
		VHost:      utilities.FirstNonZero(rcj.VHost, "/"),
		MaxRetries: utilities.FirstNonZero(rcj.MaxRetries, bootstrap.DefaultMaxRetries),
		RetryDelay: utilities.Ternary(
			rcj.RetryDelaySeconds > 0,
			time.Duration(rcj.RetryDelaySeconds)*time.Second,
			bootstrap.DefaultRetryDelay,
		),
		PublishersConfig: utilities.ConvertJsonArrayToDomain[
			RabbitmqPublishersConfigJson,
			RabbitmqPublishersConfig,
		](rcj.PublishersConfig),
	}
}

type RabbitmqPublishersConfigJson struct {
	PublisherAlias string `json:"publisher_alias"`
	Exchange       string `json:"exchange"`
	ExchangeKind   string `json:"exchange_kind"`
	RoutingKey     string `json:"routing_key"`
}

type RabbitmqPublishersConfig struct {
	PublisherAlias PublisherAlias
	Exchange       string
	ExchangeKind   string
	RoutingKey     string
}

func (rpcj RabbitmqPublishersConfigJson) ConvertToDomain() RabbitmqPublishersConfig {
	return RabbitmqPublishersConfig{
		PublisherAlias: PublisherAlias(rpcj.PublisherAlias),
		Exchange:       rpcj.Exchange,
		ExchangeKind:   utilities.FirstNonZero(rpcj.ExchangeKind, "topic"),
		RoutingKey:     rpcj.RoutingKey,
	}
}
