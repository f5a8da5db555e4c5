package main

import (
	"os"

	"github.com/charmbracelet/log"

	"medialib/internal/config"
	"medialib/internal/database"
	"medialib/internal/legacy"
)

func main() {
	cfg := config.NewConfig()
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "medialib",
	})

	store := database.New(cfg,
		database.WithLogger(logger.WithPrefix("database")),
		database.WithMigrator(legacy.NewDirStore(cfg.Metadata.Path, logger.WithPrefix("legacy"))),
	)
	if err := store.Initialize(false); err != nil {
		logger.Fatal("failed to initialize store", "err", err)
	}
	defer store.Close()

	if !store.HasRootUser() {
		logger.Warn("no root user configured, create one before serving requests")
	}
	logger.Info("store ready",
		"libraries", len(store.Libraries()),
		"items", len(store.LibraryItems()),
		"users", len(store.Users()))
}
