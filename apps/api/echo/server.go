package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/comment"
	"github.com/vecindario/barrios/core/neighborhood"
	"github.com/vecindario/barrios/core/place"
	"github.com/vecindario/barrios/core/recommend"
	"github.com/vecindario/barrios/core/user"
)

type ServerDeps struct {
	Conf            *core.Config
	Logger          core.Logger
	UserSvc         user.Service
	NeighborhoodSvc neighborhood.Service
	CommentSvc      comment.Service
	LeisureSvc      place.Service
	JobSvc          place.Service
	SchoolSvc       place.Service
	RecommendSvc    recommend.Service
	Validate        *validator.Validate
	Translator      ut.Translator
}

type Server struct {
	ServerDeps
	app      *echo.Echo
	errors   chan error
	shutdown chan os.Signal
}

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		ServerDeps: deps,
		app:        echo.New(),
		errors:     make(chan error, 1),
		shutdown:   make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.Debug = s.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: newRequestID}))
	if !s.Conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.Conf.Debug || s.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.Logger, s.Translator, s.SignalShutdown)

	s.app.GET("/", home)
	s.app.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.app.Group("/v1")
	jwt := jwtMiddleware(s.Conf, s.UserSvc)

	registerUserAPI(v1, jwt, s.Conf, s.UserSvc, s.Validate)
	registerNeighborhoodAPI(v1, jwt, s.NeighborhoodSvc, s.Validate)
	registerCommentAPI(v1, jwt, s.CommentSvc, s.UserSvc, s.Validate)
	registerPlaceAPI(v1, jwt, s.LeisureSvc, s.UserSvc, s.Validate, placeGuards{list: authed, update: authed})
	registerPlaceAPI(v1, jwt, s.JobSvc, s.UserSvc, s.Validate, placeGuards{list: adminOnly, update: authed})
	registerPlaceAPI(v1, jwt, s.SchoolSvc, s.UserSvc, s.Validate, placeGuards{list: adminOnly, update: adminOnly})
	registerRecommendationAPI(v1, jwt, s.RecommendSvc)
}

// Start listens on the configured address. Failures are sent on Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks main to gracefully stop the server.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signaled
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Barrios API!")
}
