package app

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"paypalsync/internal/config"
	"paypalsync/internal/paypal"
	"paypalsync/internal/service"
	"paypalsync/internal/store"
)

type App struct {
	Service *service.Service
	Store   store.Repository
	Client  *paypal.Client
	Logger  *log.Logger
}

// NewApp initializes database, API client and core logic, then returns the
// App entity. The returned cleanup closes both the store and the client.
func NewApp(cfg *config.Config, migrationFS fs.FS, verbose bool) (*App, func(), error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		appDir, _ := getAppDataDir()
		dbPath = filepath.Join(appDir, "paypalsync.db")
	}

	dbStore, err := store.NewStore(dbPath, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var logOut io.Writer = os.Stderr
	if !verbose {
		logOut = io.Discard
	}
	logger := log.New(logOut, "", log.LstdFlags)

	client, err := paypal.NewClient(
		paypal.Environment(cfg.API.Environment),
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
		logger,
	)
	if err != nil {
		dbStore.Close()
		return nil, nil, fmt.Errorf("failed to initialize api client: %w", err)
	}

	svc := service.NewService(dbStore, cfg)

	cleanup := func() {
		client.Close()
		if err := dbStore.Close(); err != nil {
			fmt.Printf("Error closing DB: %v\n", err)
		}
	}

	return &App{
		Service: svc,
		Store:   dbStore,
		Client:  client,
		Logger:  logger,
	}, cleanup, nil
}

func getAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".paypalsync"), nil
	}

	return filepath.Join(configDir, "paypalsync"), nil
}
