package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"invctl/internal/app"
	"invctl/internal/infrastructure"
)

func main() {
	// Optional .env for local development; missing file is fine.
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env")
	}

	application, err := app.NewApplication()
	if err != nil {
		// The configured logger may or may not exist at this point;
		// GetLogger falls back to the slog default.
		infrastructure.GetLogger().Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		application.Logger.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
