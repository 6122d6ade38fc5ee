// Package cmd wires the miniservices CLI.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/config"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/docs"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/middleware"
	appbuilder "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/app_builder"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"
	reasoncodes "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/reason_codes"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/rest"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type builder = appbuilder.AppBuilder[config.ServiceConfigJson, config.ServiceConfig]

var (
	configFile string
	v          = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "miniservices",
	Short: "Compute, items and users HTTP services",
	Long: `miniservices hosts three small HTTP services:

  compute  CPU bound summation served from a worker pool
  items    in-memory items CRUD API
  users    PostgreSQL backed users CRUD API`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupCommand,
}

// Execute runs the CLI and exits with status 1 on any error, including an
// aborted connection bootstrap.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if reasoncodes.CodeOf(err) == reasoncodes.ErrConnectionAborted {
			fmt.Fprintln(os.Stderr, "A required connection could not be established, not serving requests.")
		}
		cancel()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "config.json", "JSON config file; missing file means defaults")
	flags.Uint16("port", 0, "port to listen on (env PORT)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")

	if err := v.BindPFlag(config.KeyPort, flags.Lookup("port")); err != nil {
		panic(fmt.Sprintf("Failed to bind port flag: %v", err))
	}
	if err := v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level")); err != nil {
		panic(fmt.Sprintf("Failed to bind log-level flag: %v", err))
	}

	rootCmd.AddCommand(computeCmd, itemsCmd, usersCmd, clientCmd)
}

// setupCommand loads .env files before viper reads the environment.
func setupCommand(_ *cobra.Command, _ []string) error {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
	return config.BindEnvironment(v)
}

// newBuilder runs the steps every service shares: logger, config file,
// environment and flag overrides.
func newBuilder(service string, defaultPort uint16) *builder {
	return appbuilder.New[config.ServiceConfigJson, config.ServiceConfig]().
		InitLogger(logger.GlobalLoggerConfig{
			Args: []logger.LoggerArg{{Key: "service", Value: service}},
		}).
		LoadConfig(configFile).
		ResolveEnvironment(func(cfg *config.ServiceConfig) error {
			if err := config.ApplyOverrides(v, cfg); err != nil {
				return err
			}
			cfg.WithDefaultPort(defaultPort)
			return nil
		})
}

// withCommonSurface adds the middleware, landing route and docs shared by the CRUD services.
func withCommonSurface(b *builder) *builder {
	return b.
		WithOption(func(a *builder) error {
			a.AddGinMiddleware(
				rest.NewMiddleware(rest.AllGroups, middleware.RequestLogger(a.Logger)),
				rest.NewMiddleware(rest.AllGroups, middleware.CORSMiddleware(a.Config.RestConf.CorsOrigin)),
			)
			docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", a.Config.GetRestApiPort())
			return nil
		}).
		AddGinRoutes(rest.NewRoute(rest.GET, "", "/", hello)).
		WithNoRoute(rest.NotFoundHandler).
		AddSwagger()
}

func hello(c *gin.Context) {
	c.String(http.StatusOK, "Hello, World!")
}

func run(ctx context.Context, b *builder) error {
	app, err := b.InitGinRouter().Build()
	if err != nil {
		return err
	}
	return app.Start(ctx)
}
