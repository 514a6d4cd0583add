// Command devtoken prints an admin access token signed with SESSION_SECRET,
// for exercising the admin API locally without the external auth service.
//
//	go run ./cmd/devtoken -user 00000000-0000-0000-0000-000000000001 -email admin@localhost
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/munifrias/turismo/internal/config"
	"github.com/munifrias/turismo/internal/session"
)

func main() {
	user := flag.String("user", "", "subject (user id) of the token")
	email := flag.String("email", "", "email claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("could not read .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	token, err := session.NewJWTProvider(cfg.Session.Secret, cfg.Session.Cookie).Issue(*user, *email, *ttl)
	if err != nil {
		slog.Error("could not issue token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
