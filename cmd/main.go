package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"

	"larder/internal/ai"
	"larder/internal/api"
	"larder/internal/database"
	"larder/internal/monitoring"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 9090, "Metrics server port")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

// Config represents the application configuration
type Config struct {
	GeminiKey   string `yaml:"gemini_key"`
	GeminiModel string `yaml:"gemini_model"`
	JWTSecret   string `yaml:"jwt_secret"`
	Database    struct {
		Dialect string `yaml:"dialect"`
		DSN     string `yaml:"dsn"`
	} `yaml:"database"`
	MetricsConfig struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

func main() {
	flag.Parse()

	// Load configuration
	config, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	if err := database.InitDB(config.Database.Dialect, config.Database.DSN); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	store := database.NewStore(database.GetDB())

	// Initialize the generative model with retry
	provider, err := ai.NewGeminiProvider(config.GeminiKey, config.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to initialize model provider: %v", err)
	}
	generator := ai.WithRetry(provider)

	// Initialize metrics collector
	var metrics *monitoring.MetricsCollector
	if config.MetricsConfig.Enabled {
		metrics = monitoring.NewMetricsCollector()
		go startMetricsServer(*metricsPort, config.MetricsConfig.Path, metrics)
	}

	// Initialize API server
	srv := api.NewServer(store, generator, metrics, config.JWTSecret)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: srv.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", *port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment overrides for secrets
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.GeminiKey = key
	}
	if secret := os.Getenv("LARDER_JWT_SECRET"); secret != "" {
		config.JWTSecret = secret
	}
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret must be configured")
	}
	if config.Database.Dialect == "" {
		config.Database.Dialect = "sqlite3"
	}
	if config.Database.DSN == "" {
		config.Database.DSN = "larder.db"
	}
	if config.MetricsConfig.Path == "" {
		config.MetricsConfig.Path = "/metrics"
	}

	return &config, nil
}

func startMetricsServer(port int, path string, metrics *monitoring.MetricsCollector) {
	metricsRouter := gin.Default()
	metricsRouter.GET(path, gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
