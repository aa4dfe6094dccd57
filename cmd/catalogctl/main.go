package main

import (
	"os"

	"github.com/joho/godotenv"

	"catalog-backend/internal/shared/utils"
	"catalog-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(utils.GetEnvVariable("APP_ENV", "development"), utils.GetEnvVariable("LOG_LEVEL", "warn"))

	if err := RootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
