package main

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/contacts-web/internal/config"
	"gitlab.com/dirk.krummacker/contacts-web/internal/logger"
	"gitlab.com/dirk.krummacker/contacts-web/internal/store/mongostore"
	"gitlab.com/dirk.krummacker/contacts-web/internal/store/mysqlstore"
)

// Usage example on the command line:
// > CONTACTS_STORE_BACKEND=mysql CONTACTS_DATABASE_HOST=localhost:3306 CONTACTS_DATABASE_USER=dirk CONTACTS_DATABASE_PASSWORD=bullo92 go run main.go -file=../../scripts/database.sql
// > CONTACTS_STORE_BACKEND=mongo go run main.go
func main() {
	filePtr := flag.String("file", "", "the sql file to execute, the built-in schema if empty (mysql only)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("could not load configuration")
	}
	log := logger.New(cfg.Log)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch cfg.Store.Backend {
	case "mysql":
		migrateMysql(ctx, cfg, *filePtr, log)
	case "mongo":
		migrateMongo(ctx, cfg, log)
	default:
		log.Info().Str("backend", cfg.Store.Backend).Msg("nothing to migrate")
	}
}

func migrateMysql(ctx context.Context, cfg *config.Config, file string, log zerolog.Logger) {
	sqlDB, err := mysqlstore.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open database")
	}
	defer sqlDB.Close()

	var script io.Reader = strings.NewReader(mysqlstore.Schema)
	if file != "" {
		readFile, err := os.Open(file) // nosemgrep
		if err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("could not open sql file")
		}
		defer readFile.Close()
		script = readFile
	}
	executed, err := mysqlstore.Migrate(ctx, sqlDB, script)
	if err != nil {
		log.Fatal().Err(err).Int("executed", executed).Msg("migration failed")
	}
	log.Info().Int("executed", executed).Msg("migration finished")
}

func migrateMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) {
	s, err := mongostore.Open(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to mongo")
	}
	defer s.Close(ctx)

	created, err := s.EnsureCollection(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Bool("created", created).Str("collection", cfg.Mongo.Collection).Msg("migration finished")
}
