package main

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dbytex91/nasavideos/internal/addon"
	"github.com/dbytex91/nasavideos/internal/metrics"
	"github.com/dbytex91/nasavideos/internal/nasa"
)

type config struct {
	Port        string        `env:"PORT" envDefault:"3000"`
	NasaAPIURL  string        `env:"NASA_API_URL" envDefault:"https://images-api.nasa.gov"`
	NasaAPIKey  string        `env:"NASA_API_KEY"`
	CacheSizeMB int           `env:"CACHE_SIZE_MB" envDefault:"64"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
}

var version = "0.0.1"

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if level, ok := logLevels[strings.ToLower(cfg.LogLevel)]; ok {
		log.SetLevel(level)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	add := addon.New(
		addon.WithID("nasa"),
		addon.WithName("Nasa Videos"),
		addon.WithVersion(version),
		addon.WithNasaClient(nasa.New(cfg.NasaAPIURL, cfg.NasaAPIKey, nasa.WithMetrics(m))),
		addon.WithRequestCache(addon.NewRequestCache(cfg.CacheSizeMB*1024*1024, cfg.CacheTTL, m)),
	)

	app := fiber.New(fiber.Config{
		AppName: "Nasa Videos",
	})
	app.Use(cors.New())
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(logger.New(logger.Config{
		Format:        "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat:    "15:04:05",
		TimeZone:      "Local",
		TimeInterval:  500 * time.Millisecond,
		Output:        os.Stdout,
		DisableColors: false,
	}))

	app.Post("/mediahubmx-addon.json", add.HandleAddon)
	app.Post("/mediahubmx-catalog.json", add.HandleCatalog)
	app.Post("/mediahubmx-item.json", add.HandleItem)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	log.Infof("Starting HTTP server on :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
