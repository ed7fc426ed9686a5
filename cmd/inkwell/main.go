package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/inkwell-nlp/inkwell/internal/config"
	"github.com/inkwell-nlp/inkwell/internal/logging"
	"github.com/inkwell-nlp/inkwell/internal/modules"
	"github.com/inkwell-nlp/inkwell/internal/monitoring"
	"github.com/inkwell-nlp/inkwell/internal/pipeline"
	"github.com/inkwell-nlp/inkwell/internal/server"
	"github.com/inkwell-nlp/inkwell/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration")
	text := flag.String("text", "", "Process this text and exit")
	file := flag.String("file", "", "Process the contents of this file and exit")
	language := flag.String("language", pipeline.DefaultLanguage, "Language code for processing")
	port := flag.String("port", "", "Override the configured HTTP port")
	flag.Parse()

	// Credentials files are optional; real deployments use the environment.
	config.LoadEnvFiles(".env", "credentials.env")

	cfg, found, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if !found {
		log.Warn("config file not found, using defaults", zap.String("path", *configPath))
	}

	metrics := monitoring.NewMetrics()
	pipe := pipeline.New(log)
	pipe.SetObserver(metrics)

	for _, name := range cfg.EnabledModules {
		m, err := modules.New(name, log)
		if err != nil {
			log.Warn("skipping unknown module", zap.String("module", name))
			continue
		}
		pipe.Register(m)
	}

	moduleCfg := make(map[string]pipeline.Config, len(cfg.Modules))
	for name, mc := range cfg.Modules {
		moduleCfg[name] = pipeline.Config(mc)
	}

	ctx := context.Background()
	if err := pipe.InitializeAll(ctx, moduleCfg); err != nil {
		log.Fatal("pipeline initialization failed", zap.Error(err))
	}
	metrics.PipelineReady.Set(1)

	if *text != "" || *file != "" {
		input := *text
		if *file != "" {
			data, err := os.ReadFile(*file)
			if err != nil {
				log.Fatal("reading input file failed", zap.Error(err))
			}
			input = string(data)
		}
		if err := runOnce(ctx, pipe, input, *language); err != nil {
			log.Fatal("processing failed", zap.Error(err))
		}
		return
	}

	docs := store.New(cfg.Server.UploadsDir, log)
	srv := server.New(server.Config{
		Host:              cfg.Server.Host,
		Port:              cfg.Server.Port,
		RateLimitEnabled:  cfg.RateLimit.Enabled,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	}, pipe, docs, metrics, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()
	log.Info("server listening",
		zap.String("addr", net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)),
		zap.Strings("modules", pipe.Names()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}
}

// runOnce fans the input out across every registered module and prints
// one section per result to stdout.
func runOnce(ctx context.Context, pipe *pipeline.Pipeline, input, language string) error {
	results, err := pipe.RunAll(ctx, input, pipeline.Options{"language": language})
	if err != nil {
		return err
	}

	for _, name := range pipe.Names() {
		result, ok := results[name]
		if !ok {
			continue
		}
		fmt.Printf("=== %s ===\n", name)
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}
	return nil
}
