package app

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-catalog/internal/config"
	"github.com/justsurfingit/job-catalog/internal/database"
	"github.com/justsurfingit/job-catalog/internal/events"
	"github.com/justsurfingit/job-catalog/internal/handlers"
	"github.com/justsurfingit/job-catalog/internal/logger"
	"github.com/justsurfingit/job-catalog/internal/services"
	"github.com/justsurfingit/job-catalog/internal/telemetry"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "job-catalog"

// Module wires the catalog API from the environment configuration.
var Module = fx.Options(
	fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: l}
	}),
	fx.Provide(
		config.LoadConfig,
		logger.New,
		newDatabase,
		fx.Annotate(
			database.NewPostingRepository,
			fx.As(new(services.PostingStore)),
		),
		newPublisher,
		services.NewPostingService,
		newExtractor,
		handlers.NewPostingHandler,
		handlers.NewRouter,
		newHTTPServer,
	),
	fx.Invoke(
		registerTracing,
		func(*http.Server) {},
	),
)

func registerTracing(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) {
	var shutdown func(context.Context) error
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			shutdown, err = telemetry.InitTracer(ctx, serviceName, cfg.OTLPEndpoint)
			if err != nil {
				return err
			}
			if cfg.OTLPEndpoint != "" {
				logger.Info("tracing enabled", zap.String("endpoint", cfg.OTLPEndpoint))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	})
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return database.Close(db)
		},
	})
	return db, nil
}

func newPublisher(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) (events.Publisher, error) {
	pub, err := events.NewPublisher(logger, cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pub.Close()
			return nil
		},
	})
	return pub, nil
}

// newExtractor returns a nil extractor when no API key is configured; the
// extraction route then answers 503.
func newExtractor(cfg *config.Config, logger *zap.Logger) (handlers.DraftExtractor, error) {
	if cfg.GeminiAPIKey == "" {
		logger.Info("GEMINI_API_KEY not set, posting extraction disabled")
		return nil, nil
	}
	gen, err := services.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}
	return services.NewExtractionService(gen, logger), nil
}

func newHTTPServer(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger, router *gin.Engine) *http.Server {
	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("server shutting down")
			return srv.Shutdown(ctx)
		},
	})
	return srv
}
