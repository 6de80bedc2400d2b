// cmd/server/main.go
package main

import (
	"fmt"

	"github.com/wordcross/wordcross-backend/api"
	"github.com/wordcross/wordcross-backend/config"
	"github.com/wordcross/wordcross-backend/internal/logger"
	"github.com/wordcross/wordcross-backend/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

func main() {
	customLog.Println("Starting Wordcross backend server...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		customLog.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize Store
	var store storage.Store
	switch cfg.StoreBackend {
	case "memory":
		customLog.Println("Using in-memory store; data is lost on restart")
		store = storage.NewMemStore()
	default:
		db, err := storage.ConnectDB(cfg)
		if err != nil {
			customLog.Fatalf("Failed to initialize database: %v", err)
		}
		defer func() {
			customLog.Println("Closing database connection...")
			if err := db.Close(); err != nil {
				customLog.Printf("Error closing database: %v", err)
			}
		}()
		store = storage.NewSQLiteStore(db)
	}

	// 3. Setup Router (passing dependencies)
	router := api.SetupRouter(store, cfg)

	// 4. Start Server
	customLog.Printf("Server listening on port %s", cfg.ServerPort)
	if err := router.Run(fmt.Sprintf(":%s", cfg.ServerPort)); err != nil {
		customLog.Fatalf("Failed to start server: %v", err)
	}
}
