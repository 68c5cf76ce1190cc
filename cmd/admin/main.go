package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/odyssey/internal/admin"
	"github.com/dmitrijs2005/odyssey/internal/logging"
	"github.com/dmitrijs2005/odyssey/internal/server/config"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/odyssey/internal/server/services"
)

// commandArgs returns the positional words before the first flag.
func commandArgs(args []string) []string {
	for i, a := range args {
		if strings.HasPrefix(a, "-") {
			return args[:i]
		}
	}
	return args
}

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stderr, slog.LevelWarn)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	app := admin.NewApp(
		os.Stdin,
		os.Stdout,
		services.NewAuthService(db, rm, cfg, logger),
		services.NewConfigService(db, rm),
	)

	if err := app.Run(ctx, commandArgs(os.Args[1:])); err != nil {
		log.Printf("%v", err)
		db.Close()
		os.Exit(1)
	}
}
