package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	appmw "github.com/josesepulvedapino/astra-consulting-sub000/internal/middleware"
	httprouters "github.com/josesepulvedapino/astra-consulting-sub000/internal/transport/http"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	m             *http.ServeMux
	log           *slog.Logger
	e             *echo.Echo
	routers       *httprouters.Routers
	host          string
	port          string
	jwtSecret     string
	webhookSecret string
}

func New(log *slog.Logger, jwtSecret, webhookSecret, host, port string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(middleware.CORS())
	// Recover doubles as the last-line guard: any panic in a handler
	// becomes a 500 instead of killing the worker.
	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddleware("astra"))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", slog.Any("error:", err.Error()))
	}

	return &Server{
		m:             mux,
		log:           log,
		e:             e,
		routers:       routers,
		host:          host,
		port:          port,
		jwtSecret:     jwtSecret,
		webhookSecret: webhookSecret,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/metrics", echoprometheus.NewHandler())

	api := s.e.Group("/api/v1")
	{
		api.POST("/webhook", s.routers.HandleWebhook)
		api.GET("/webhook", s.routers.WebhookHealth)

		api.GET("/posts", s.routers.ListPosts)
		api.GET("/posts/:slug", s.routers.GetPost)

		api.POST("/contact", s.routers.SubmitContact)
		api.POST("/newsletter/subscribe", s.routers.Subscribe)

		cacheGroup := api.Group("/cache", appmw.SecretGuard(s.webhookSecret))
		{
			cacheGroup.POST("/revalidate", s.routers.RevalidateCache)
		}

		api.POST("/admin/login", s.routers.AdminLogin)

		adminGroup := api.Group("/admin")
		adminGroup.Use(echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(s.jwtSecret),
		}))
		{
			adminGroup.GET("/leads", s.routers.ListLeads)
			adminGroup.GET("/subscribers", s.routers.ListSubscribers)
		}

		debug := s.e.Group("/debug")
		{
			debug.GET("/statsviz/", echo.WrapHandler(s.m))
			debug.GET("/statsviz/*", echo.WrapHandler(s.m))
		}

		swagger := s.e.Group("/swag")
		{
			swagger.GET("/swagger/*", echoSwagger.WrapHandler)
		}
	}
}
