package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"nia-nlu/internal/common/config"
	"nia-nlu/internal/common/database"
	"nia-nlu/internal/common/logger"
	"nia-nlu/internal/common/observability"
	"nia-nlu/internal/nlu"
	"nia-nlu/internal/nlu/classify"
	"nia-nlu/internal/nlu/intent"
	"nia-nlu/internal/server"
	"nia-nlu/pkg/corpus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"env":     cfg.App.Environment,
	})

	engine, err := nlu.NewEngine(nlu.Options{
		Logger:            log,
		FallbackThreshold: cfg.NLU.FallbackThreshold,
	})
	if err != nil {
		log.WithError(err).Error("engine construction failed", nil)
		os.Exit(1)
	}

	if cfg.NLU.CorpusPath != "" {
		if err := trainFromFile(engine, cfg.NLU.CorpusPath); err != nil {
			log.WithError(err).Error("corpus file rejected", map[string]interface{}{"path": cfg.NLU.CorpusPath})
			os.Exit(1)
		}
		log.Info("corpus file loaded", map[string]interface{}{"path": cfg.NLU.CorpusPath})
	}

	var cache *server.ResultCache
	if cfg.Cache.Enabled {
		redisClient, err := database.NewRedis(cfg.Database.Redis)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(5000))
			err = redisClient.Ping(pingCtx)
			cancel()
		}
		if err != nil {
			log.WithError(err).Warn("result cache disabled, redis unreachable", map[string]interface{}{
				"address": cfg.Database.Redis.Address,
			})
		} else {
			defer redisClient.Close()
			cache = server.NewResultCache(redisClient, config.GetDuration(cfg.Cache.TTL*1000), log)
			log.Info("result cache enabled", map[string]interface{}{"ttlSeconds": cfg.Cache.TTL})
		}
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	srv := server.New(engine, cache, log, obs)
	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv.Router(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		log.Info("http server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("http server failed", nil)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received", nil)

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed", nil)
	}
	log.Info("server stopped", nil)
}

// trainFromFile replaces the seed model with the documents from a corpus
// file.
func trainFromFile(engine *nlu.Engine, path string) error {
	parsed, err := corpus.Load(path)
	if err != nil {
		return err
	}
	docs := make([]classify.Document, 0, len(parsed.Documents))
	for _, d := range parsed.Documents {
		docs = append(docs, classify.Document{Text: d.Text, Label: intent.Intent(d.Label)})
	}
	return engine.Retrain(docs)
}
