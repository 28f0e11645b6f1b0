package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/contractportal/backend/internal/infrastructure/config"
	"github.com/contractportal/backend/internal/infrastructure/logger"
	"github.com/contractportal/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const usage = `usage: migrate <command> [args]

commands:
  up              apply all pending migrations
  down            roll back the most recent migration
  steps <n>       apply n migrations (negative rolls back)
  version         print the current migration version
  force <v>       set the version without running migrations
`

func main() {
	var sourcePath string
	flag.StringVar(&sourcePath, "path", "migrations", "path to migration files")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	migrator, err := migration.NewMigrator(sourcePath, cfg.Database.DSN(), log)
	if err != nil {
		log.Fatal("failed to create migrator", zap.Error(err))
	}
	defer migrator.Close()

	switch args[0] {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		if len(args) < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		var n int
		n, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("steps argument must be an integer", zap.Error(err))
		}
		err = migrator.Steps(n)
	case "version":
		version, dirty, verr := migrator.Version()
		if verr != nil {
			log.Fatal("failed to read version", zap.Error(verr))
		}
		fmt.Printf("version: %d dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		var v int
		v, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("force argument must be an integer", zap.Error(err))
		}
		err = migrator.Force(v)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("migration command failed", zap.Error(err))
	}
}
