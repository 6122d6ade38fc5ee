package appbuilder

import (
	"errors"
	"fmt"
	"os"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/rest"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/utilities"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type AppConfig interface {
	GetLoggerConfig() logger.LoggerConfig
	GetRestApiPort() uint16
}

// AppBuilder assembles an Application step by step. The first failing step
// records its error; every later step becomes a no-op and Build returns it.
type AppBuilder[T utilities.JsonConfigObj[U], U AppConfig] struct {
	Logger *logger.Logger
	Config U

	err            error
	workerServices []WorkerService
	middlewares    []rest.Middleware
	routes         []rest.Route
	noRoute        gin.HandlerFunc
	closers        []func() error
	engine         *gin.Engine
}

func New[T utilities.JsonConfigObj[U], U AppConfig]() *AppBuilder[T, U] {
	return &AppBuilder[T, U]{}
}

func (a *AppBuilder[T, U]) Err() error {
	return a.err
}

func (a *AppBuilder[T, U]) InitLogger(loggerArgs logger.GlobalLoggerConfig) *AppBuilder[T, U] {
	logger.InitDefaultLogger(loggerArgs)
	a.Logger = logger.Default()
	a.Logger.Info("Logger initialized")

	return a
}

// UseLogger replaces the process default logger, mostly for tests.
func (a *AppBuilder[T, U]) UseLogger(l *logger.Logger) *AppBuilder[T, U] {
	a.Logger = l
	return a
}

// LoadConfig reads the JSON config file. A missing file is not an error: the
// defaults baked into ConvertToDomain are used instead.
func (a *AppBuilder[T, U]) LoadConfig(filePath string) *AppBuilder[T, U] {
	if a.err != nil {
		return a
	}

	a.ensureLogger()
	var (
		config U
		err    error
	)
	if filePath == "" {
		a.Logger.Info("No config file given, using defaults")
		config, err = utilities.DecodeConfig[T, U]([]byte("{}"))
	} else {
		a.Logger.Infof("Preparing to load config from %s ...", filePath)
		config, err = utilities.ReadConfig[T, U](filePath)
		if errors.Is(err, os.ErrNotExist) {
			a.Logger.Warnf("Config file %s not found, using defaults", filePath)
			config, err = utilities.DecodeConfig[T, U]([]byte("{}"))
		}
	}
	if err != nil {
		a.Logger.Error(err, "Failed to load config")
		a.err = fmt.Errorf("load config %q: %w", filePath, err)
		return a
	}

	a.Config = config
	a.Logger.WithLevel(config.GetLoggerConfig().LogLevel)
	a.Logger.Info("Config successfully loaded.")
	return a
}

// ResolveEnvironment lets the caller overlay environment values onto the loaded config.
func (a *AppBuilder[T, U]) ResolveEnvironment(resolve func(config *U) error) *AppBuilder[T, U] {
	if a.err != nil {
		return a
	}

	a.ensureLogger()
	if err := resolve(&a.Config); err != nil {
		a.err = fmt.Errorf("resolve environment: %w", err)
		return a
	}
	a.Logger.WithLevel(a.Config.GetLoggerConfig().LogLevel)
	return a
}

func (a *AppBuilder[T, U]) WithOption(option func(a *AppBuilder[T, U]) error) *AppBuilder[T, U] {
	if a.err != nil {
		return a
	}

	a.err = option(a)
	return a
}

func (a *AppBuilder[T, U]) AddWorkerServices(workerServices ...WorkerService) *AppBuilder[T, U] {
	if a.err != nil {
		return a
	}

	a.ensureLogger()
	a.Logger.Info("Adding Worker Services to Application...")
	a.workerServices = append(a.workerServices, workerServices...)
	return a
}

// AddCloser registers a resource to release once the HTTP server has stopped.
func (a *AppBuilder[T, U]) AddCloser(closer func() error) *AppBuilder[T, U] {
	a.closers = append(a.closers, closer)
	return a
}

func (a *AppBuilder[T, U]) AddGinMiddleware(middlewares ...rest.Middleware) *AppBuilder[T, U] {
	if a.err != nil {
		return a
	}

	a.middlewares = append(a.middlewares, middlewares...)
	return a
}

func (a *AppBuilder[T, U]) AddGinRoutes(routes ...rest.Route) *AppBuilder[T, U] {
	if a.err != nil {
		return a
	}

	a.ensureLogger()
	a.Logger.Info("Adding Gin REST API routes to Application...")
	a.routes = append(a.routes, routes...)
	return a
}

func (a *AppBuilder[T, U]) WithNoRoute(handler gin.HandlerFunc) *AppBuilder[T, U] {
	a.noRoute = handler
	return a
}

func (a *AppBuilder[T, U]) AddSwagger() *AppBuilder[T, U] {
	if a.err != nil {
		return a
	}

	a.ensureLogger()
	a.Logger.Info("Adding SwaggerUI...")
	a.routes = append(a.routes, rest.NewRoute(
		rest.GET,
		"swagger",
		"/*any",
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	))

	return a
}

func (a *AppBuilder[T, U]) InitGinRouter() *AppBuilder[T, U] {
	if a.err != nil {
		return a
	}

	a.ensureLogger()
	a.Logger.Info("Initializing Gin Router...")
	rest.UseJSONFieldNames()

	router := gin.New()
	router.Use(gin.CustomRecoveryWithWriter(nil, rest.RecoveryHandler))

	groupMiddlewares := map[string][]gin.HandlerFunc{}
	for _, m := range a.middlewares {
		if m.Group == rest.AllGroups {
			router.Use(m.Handler)
			continue
		}
		groupMiddlewares[m.Group] = append(groupMiddlewares[m.Group], m.Handler)
	}

	groups := map[string]*gin.RouterGroup{}
	a.Logger.Info("Registering REST API routes...")
	for _, r := range a.routes {
		if _, exists := groups[r.Group]; !exists {
			groups[r.Group] = router.Group("/"+r.Group, groupMiddlewares[r.Group]...)
		}

		if !r.Register(groups[r.Group]) {
			a.Logger.Warnf("Unrecognized HTTP method: %s", r.Method)
			continue
		}
		a.Logger.Debugf("Registered %s /%s%s", r.Method, r.Group, r.Path)
	}

	if a.noRoute != nil {
		router.NoRoute(a.noRoute)
	}

	a.engine = router
	a.Logger.Info("Successfully registered REST API routes.")
	return a
}

func (a *AppBuilder[T, U]) Build() (*Application, error) {
	if a.err != nil {
		a.closeAll()
		return nil, a.err
	}
	if a.engine == nil {
		return nil, errors.New("gin router not initialized: call InitGinRouter() before Build()")
	}

	return &Application{
		Logger:          a.Logger,
		Addr:            fmt.Sprintf("0.0.0.0:%d", a.Config.GetRestApiPort()),
		WorkerServices:  a.workerServices,
		Engine:          a.engine,
		ShutdownTimeout: defaultShutdownTimeout,
		closers:         a.closers,
	}, nil
}

func (a *AppBuilder[T, U]) ensureLogger() {
	if a.Logger == nil {
		a.Logger = logger.Nop()
	}
}

func (a *AppBuilder[T, U]) closeAll() {
	for _, closer := range a.closers {
		if err := closer(); err != nil && a.Logger != nil {
			a.Logger.Error(err, "Failed to release resource")
		}
	}
}
