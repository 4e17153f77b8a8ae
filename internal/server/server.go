package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/liveticket/config"
	"github.com/farellandr/liveticket/internal/auth"
	"github.com/farellandr/liveticket/internal/events"
	"github.com/farellandr/liveticket/internal/handlers"
	"github.com/farellandr/liveticket/internal/helpers"
	"github.com/farellandr/liveticket/internal/ledger"
	"github.com/farellandr/liveticket/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET not configured")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	st, err := config.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	sinks := events.Multi{events.NewLogSink(logger)}
	if cfg.AMQPURL != "" {
		amqpSink, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			logger.Warn("amqp_unavailable", "error", err)
		} else {
			defer amqpSink.Close()
			sinks = append(sinks, amqpSink)
		}
	}

	l := ledger.New(st, auth.ContextVerifier{}, ledger.WithEventSink(sinks))

	r := gin.Default()
	setupRoutes(r, l, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http_listen", "addr", srv.Addr, "store", cfg.StoreDriver)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown_signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the HTTP surface over l without gin's default logger.
func NewRouter(l *ledger.Ledger, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	setupRoutes(r, l, cfg)
	return r
}

func setupRoutes(r *gin.Engine, l *ledger.Ledger, cfg *config.Config) {
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LedgerMiddleware(l, helpers.NewTicketSigner(cfg.QRSecret)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/v1")
	{
		public.GET("/event", handlers.GetEvent)
		public.GET("/price", handlers.GetCurrentPrice)

		ticketPublic := public.Group("/tickets")
		{
			ticketPublic.GET("/remaining", handlers.GetTicketsRemaining)
			ticketPublic.GET("/:id", handlers.GetTicket)
			ticketPublic.GET("/:id/owner", handlers.GetTicketOwner)
			ticketPublic.POST("/verify", handlers.VerifyTicket)
		}
	}

	admin := r.Group("/v1")
	admin.Use(middleware.AdminKeyMiddleware(cfg.AdminKeyHash))
	{
		admin.POST("/event", handlers.InitializeEvent)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		ticketProtected := protected.Group("/tickets")
		{
			ticketProtected.POST("", handlers.PurchaseTicket)
			ticketProtected.GET("/:id/qr", handlers.GenerateTicketQR)
		}
	}
}
