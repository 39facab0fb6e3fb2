package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"tourbook/config"
	_ "tourbook/docs" // swagger spec
	"tourbook/infras/kafka"
	"tourbook/infras/otel"
	"tourbook/infras/postgres"
	"tourbook/shared/constant"
	"tourbook/shared/worker"
	"tourbook/transport/http/middleware"
	"tourbook/transport/http/response"
	"tourbook/transport/http/router"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	readHeaderTimeout = 10 * time.Second
	healthPingTimeout = 2 * time.Second
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

// Resources are the long lived handles released once the server has stopped.
type Resources struct {
	DB    *postgres.Connection
	Redis *goRedis.Client
	Pool  *worker.Pool
	Kafka kafka.Client
	Otel  otel.Otel
}

type HTTP struct {
	Config    *config.Config
	Router    router.Router
	App       middleware.AppMiddleware
	AuthRole  middleware.AuthRole
	Resources Resources
	state     atomic.Int32
	once      sync.Once
	mux       *chi.Mux
	server    *http.Server
	stopped   chan struct{}
}

func New(cfg *config.Config, r router.Router, app middleware.AppMiddleware, authRole middleware.AuthRole, resources Resources) *HTTP {
	return &HTTP{
		Config:    cfg,
		Router:    r,
		App:       app,
		AuthRole:  authRole,
		Resources: resources,
		stopped:   make(chan struct{}),
	}
}

// Serve listens until SIGTERM and returns once shutdown has finished.
func (h *HTTP) Serve() {
	h.setup()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	h.setupGracefulShutdown()

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}

	<-h.stopped
}

// ServeHTTP lets the whole application run behind another server, such as a
// serverless function entrypoint.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.setup()
	h.mux.ServeHTTP(w, r)
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) setState(state ServerState) {
	h.state.Store(int32(state))
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		h.setupRoutes()
		h.setState(ServerStateReady)
	})
}

func (h *HTTP) setupRoutes() {
	h.mux = chi.NewRouter()

	h.mux.Use(chiMiddleware.RequestID)
	h.mux.Use(chiMiddleware.Recoverer)
	h.mux.Use(h.App.Tracing)
	h.mux.Use(h.App.CORS())
	h.mux.Use(h.App.RateLimit())

	h.mux.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)

		r.Group(func(r chi.Router) {
			r.Use(h.AuthRole.APIKey, h.AuthRole.Auth, h.AuthRole.RBAC)

			h.Router.SetupRoutes(r)
		})
	})

	h.mux.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

// health reports readiness. It answers 503 once shutdown has begun or when
// the database stops answering.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /health [get]
func (h *HTTP) health(w http.ResponseWriter, r *http.Request) {
	if h.State() != ServerStateReady {
		response.WithPreparingShutdown(w)

		return
	}

	if h.Resources.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		if err := h.Resources.DB.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("health check failed")
			response.WithUnhealthy(w)

			return
		}
	}

	response.WithMessage(w, http.StatusOK, constant.ResponseServerRunning)
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	defer close(h.stopped)

	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		shutdownConfig.GracePeriodSeconds = 0
	} else {
		log.Info().Msg("Received SIGTERM.")
	}

	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.setState(ServerStateInGracePeriod)

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.setState(ServerStateInCleanupPeriod)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to stop HTTP server gracefully")
	}

	h.release(ctx)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

// release drains background work before closing the handles it depends on.
func (h *HTTP) release(ctx context.Context) {
	if h.Resources.Pool != nil {
		if err := h.Resources.Pool.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("failed to drain worker pool")
		}
	}

	if h.Resources.Kafka != nil {
		if err := h.Resources.Kafka.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close kafka client")
		}
	}

	if h.Resources.Redis != nil {
		if err := h.Resources.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}

	h.Resources.DB.Close()

	if h.Resources.Otel != nil {
		if err := h.Resources.Otel.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("failed to flush traces")
		}
	}
}
