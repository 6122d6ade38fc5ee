package rabbitmq

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/bootstrap"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConnectionURL builds the amqp URL, escaping credentials.
func ConnectionURL(cfg RabbitmqConfig) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/" + strings.TrimPrefix(cfg.VHost, "/"),
	}
	return u.String()
}

// ConnectToRabbitmq dials the broker with the same bounded retry used for the database.
func ConnectToRabbitmq(ctx context.Context, cfg RabbitmqConfig, log *logger.Logger) (*amqp.Connection, error) {
	connectionString := ConnectionURL(cfg)

	b := bootstrap.New("rabbitmq", func(ctx context.Context) (*amqp.Connection, error) {
		return amqp.Dial(connectionString)
	}, log)
	b.MaxRetries = cfg.MaxRetries
	b.RetryDelay = cfg.RetryDelay

	return b.Run(ctx)
}
