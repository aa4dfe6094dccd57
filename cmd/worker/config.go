package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"catalog-backend/pkg/container"
)

// Config holds all configuration for the worker
type Config struct {
	Redis          asynq.RedisClientOpt
	Concurrency    int
	IllustrateCron string
	HealthPort     string
}

// loadConfig derives worker settings from the application config
func loadConfig(c *container.Container) *Config {
	cfg := &Config{
		Redis:          c.RedisOpt(),
		Concurrency:    c.Config.Worker.Concurrency,
		IllustrateCron: c.Config.Worker.IllustrateCron,
		HealthPort:     c.Config.Worker.HealthPort,
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	log.Info().
		Str("redis", cfg.Redis.Addr).
		Int("concurrency", cfg.Concurrency).
		Str("illustrate_cron", cfg.IllustrateCron).
		Msg("[Config] Worker")

	return cfg
}
