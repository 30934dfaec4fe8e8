package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/api"
	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/config"
	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/domain"
	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/events"
	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/observability"
	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/outbox"
	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/registry"
	httptransport "github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/transport/http"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg, err := buildRegistry(cfg)
	if err != nil {
		log.Fatalf("failed to build activity registry: %v", err)
	}

	var recorder events.Recorder = events.NopRecorder{}
	var producer *outbox.KafkaProducer
	var dispatcher *outbox.Dispatcher
	if len(cfg.KafkaBrokers) > 0 {
		buffer := outbox.NewBuffer(cfg.OutboxBufferSize)
		producer = outbox.NewKafkaProducer(cfg.KafkaBrokers, cfg.RosterEventsTopic)
		dispatcher = outbox.NewDispatcher(buffer, producer, cfg.OutboxPollInterval, cfg.OutboxBatchSize)
		recorder = buffer

		go dispatcher.Start(ctx)
		log.Printf("roster events enabled (topic=%s brokers=%s)", cfg.RosterEventsTopic, strings.Join(cfg.KafkaBrokers, ","))
	}

	service := domain.NewService(reg, recorder)

	handler := api.NewHandler(service)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	mux.Handle("/metrics", promhttp.Handler())

	// Simple CORS middleware for local dev
	cors := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	// Basic request logger
	logger := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("%s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}

	// Request metrics by route template
	metrics := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			observability.RecordHTTPRequest(routeLabel(r.URL.Path), strconv.Itoa(rec.status), time.Since(start))
		})
	}

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}, logger(cors(metrics(mux))))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("activities service listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	if dispatcher != nil {
		dispatcher.Wait()
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("producer close: %v", err)
		}
	}
}

func buildRegistry(cfg config.Config) (*registry.MemoryRegistry, error) {
	if cfg.SeedFile == "" {
		return registry.NewMemoryRegistry(), nil
	}

	catalog, err := registry.LoadCatalogFile(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %d activities from %s", len(catalog), cfg.SeedFile)
	return registry.NewMemoryRegistryWithCatalog(catalog)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routeLabel(path string) string {
	switch {
	case path == "/activities":
		return "/activities"
	case strings.HasPrefix(path, "/activities/") && strings.HasSuffix(path, "/signup"):
		return "/activities/{name}/signup"
	case strings.HasPrefix(path, "/activities/") && strings.HasSuffix(path, "/unregister"):
		return "/activities/{name}/unregister"
	case path == "/" || strings.HasPrefix(path, "/static/"):
		return "static"
	case path == "/healthz" || path == "/metrics":
		return path
	default:
		return "other"
	}
}
