// Command userctl creates a user account directly against the database,
// bypassing the HTTP endpoint. It is meant for seeding a fresh deployment:
// the first account it creates becomes the admin.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/dmitrijs2005/userboard/internal/server/config"
	"github.com/dmitrijs2005/userboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userboard/internal/server/services"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context) error {

	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Enter user name")

	username, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	username = strings.TrimSpace(username)

	fmt.Println("Enter password")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	fmt.Println()

	svc := services.NewUserService(db, rm, cfg)
	user, err := svc.Register(ctx, username, string(password))
	if err != nil {
		return err
	}

	if user.IsAdmin {
		fmt.Printf("Created admin user %s (%s)\n", user.Username, user.ID)
	} else {
		fmt.Printf("Created user %s (%s)\n", user.Username, user.ID)
	}

	return nil
}
