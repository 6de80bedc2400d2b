// cmd/create-admin/main.go
//
// Seeds an admin account so the first operator can sign in. Run once per
// deployment:
//
//	create-admin -email admin@example.com -name "Admin" -password secret123
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/wordcross/wordcross-backend/config"
	"github.com/wordcross/wordcross-backend/internal/auth"
	"github.com/wordcross/wordcross-backend/internal/logger"
	"github.com/wordcross/wordcross-backend/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

func main() {
	email := flag.String("email", "", "email address for the new admin (required)")
	name := flag.String("name", "", "display name for the new admin (required)")
	password := flag.String("password", "", "password, at least 6 characters (required)")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}
	if len(*password) < 6 {
		customLog.Fatalf("Password must be at least 6 characters")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		customLog.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := storage.ConnectDB(cfg)
	if err != nil {
		customLog.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	store := storage.NewSQLiteStore(db)

	hash, err := auth.HashPassword(*password)
	if err != nil {
		customLog.Fatalf("Failed to hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := store.CreateAdminUser(ctx, storage.CreateAdminUserInput{
		Email:        *email,
		Name:         *name,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			customLog.Fatalf("An admin with email %s already exists", *email)
		}
		customLog.Fatalf("Failed to create admin user: %v", err)
	}

	customLog.Printf("Created admin user %d (%s)", user.ID, user.Email)
}
