package cmd

import (
	"context"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/config"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/database"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/outbox"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/users"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Serve the PostgreSQL backed users CRUD API",
	Long: `Serve the users CRUD API.

The database connection is retried (3 attempts, 5s apart by default); if it
cannot be established the process exits with status 1 without serving.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		b := withCommonSurface(newBuilder("users", config.DefaultCrudPort)).
			WithOption(func(a *builder) error {
				db, err := database.ConnectToDatabase(ctx, a.Config.GetDatabaseConfig(), a.Logger)
				if err != nil {
					return err
				}
				a.AddCloser(func() error { return database.Close(db) })

				if a.Config.GetDatabaseConfig().Migrate {
					if err := database.RunMigrations(db, a.Logger, &users.User{}, &outbox.OutboxEvent{}); err != nil {
						return err
					}
				}

				recorder, err := initUserEvents(ctx, a, db)
				if err != nil {
					return err
				}

				handler := users.NewHandler(users.NewService(users.NewRepository(db), recorder))
				a.AddGinRoutes(handler.Routes()...)
				return nil
			})

		return run(ctx, b)
	},
}

// initUserEvents connects to RabbitMQ and starts the outbox worker when
// change events are enabled. It returns a nil recorder otherwise.
func initUserEvents(ctx context.Context, a *builder, db *gorm.DB) (users.EventRecorder, error) {
	rabbitConf := a.Config.GetRabbitmqConfig()
	if !rabbitConf.Enabled {
		a.Logger.Info("RabbitMQ disabled, user change events are not recorded")
		return nil, nil
	}

	conn, err := rabbitmq.ConnectToRabbitmq(ctx, rabbitConf, a.Logger)
	if err != nil {
		return nil, err
	}

	registry, err := rabbitmq.NewPublisherRegistry(conn, rabbitConf.PublishersConfig)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	a.AddCloser(func() error {
		registry.Close()
		return conn.Close()
	})

	outboxConf := a.Config.GetOutboxConfig()
	publisher, err := registry.Get(outboxConf.PublisherAlias)
	if err != nil {
		return nil, err
	}

	repo := outbox.NewRepo(db)
	a.AddWorkerServices(outbox.NewOutboxWorker(repo, publisher, outboxConf, a.Logger))
	return outbox.NewRecorder(repo, "user", a.Logger), nil
}
