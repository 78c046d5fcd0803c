// README: Entry point; loads config, wires the AI routing pipeline and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"greenroute/internal/ai"
	"greenroute/internal/config"
	"greenroute/internal/geocode"
	httptransport "greenroute/internal/http"
	"greenroute/internal/infra"
	"greenroute/internal/modules/intent"
	"greenroute/internal/modules/poi"
	"greenroute/internal/routing"
	"greenroute/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("postgres init", zap.Error(err))
	}
	defer dbPool.Close()

	poiStore := poi.NewStore(dbPool, infra.NewRedisOptional(cfg.Redis.Addr))
	if cfg.Redis.Addr != "" {
		if n, err := poiStore.WarmGeoIndex(ctx); err != nil {
			logger.Warn("geo index warmup failed, nearest lookups use postgis", zap.Error(err))
		} else {
			logger.Info("geo index warmed", zap.Int("records", n))
		}
	}
	poiSvc := poi.NewService(poiStore, logger)

	completer, err := newCompleter(ctx, cfg)
	if err != nil {
		logger.Fatal("ai provider init", zap.Error(err))
	}
	extractor := intent.NewExtractor(completer, logger)

	geocoder, err := newGeocoder(cfg)
	if err != nil {
		logger.Fatal("geocoder init", zap.Error(err))
	}

	engine := routing.NewOSRMClient(cfg.Routing.OSRMBase)
	planner := service.NewRoutePlanner(extractor, poiSvc, geocoder, engine, logger)

	router := httptransport.NewRouter(httptransport.ServerDeps{
		Planner: planner,
		POIs:    poiSvc,
		Log:     logger,
	})
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.String("env", cfg.AppEnv))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newCompleter(ctx context.Context, cfg config.Config) (ai.TextCompleter, error) {
	switch cfg.AI.Provider {
	case "gemini":
		return ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiModel)
	case "", "groq":
		return ai.NewGroqProvider(cfg.AI.GroqKey, cfg.AI.GroqBase, cfg.AI.GroqModel), nil
	default:
		return nil, fmt.Errorf("unknown AI_PROVIDER %q", cfg.AI.Provider)
	}
}

func newGeocoder(cfg config.Config) (geocode.Geocoder, error) {
	switch cfg.Geocode.Provider {
	case "google":
		return geocode.NewGoogleClient(cfg.Geocode.GoogleKey)
	case "", "nominatim":
		return geocode.NewNominatimClient(cfg.Geocode.NominatimBase, cfg.Geocode.UserAgent), nil
	default:
		return nil, fmt.Errorf("unknown GEOCODER_PROVIDER %q", cfg.Geocode.Provider)
	}
}
