package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/lox/cropdss/internal/logging"
	"github.com/lox/cropdss/internal/metrics"
	"github.com/lox/cropdss/internal/store"
)

type Globals struct {
	EnvFile     kongdotenv.ENVFileConfig `kong:"optional,name=env-file,help='Load environment variables from a .env file.'"`
	DB          string                   `help:"Path to SQLite database." default:"data/cropdss.db" env:"CROPDSS_DB"`
	LogLevel    string                   `help:"Log level." default:"info" enum:"debug,info,warn,error" env:"CROPDSS_LOG_LEVEL"`
	LogFormat   string                   `help:"Log format." default:"console" enum:"console,json" env:"CROPDSS_LOG_FORMAT"`
	MetricsFile string                   `help:"Write Prometheus metrics to this file on exit (textfile collector format)." env:"CROPDSS_METRICS_FILE"`
}

type CLI struct {
	Globals

	Import    ImportCmd    `cmd:"" help:"Load the crop dataset from a CSV file or ftp:// URL."`
	Recommend RecommendCmd `cmd:"" help:"Recommend crops for the given climate and risk preference."`
	History   HistoryCmd   `cmd:"" help:"List recent recommendation requests."`
}

// App holds the dependencies shared by all commands.
type App struct {
	Store  *store.Store
	Logger *zap.Logger
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("cropdss"),
		kong.Description("Smart agriculture decision support: crop recommendations from climate, profit and risk."),
		kong.UsageOnError(),
	)

	logger, err := logging.New(cli.LogLevel, cli.LogFormat)
	kctx.FatalIfErrorf(err)
	defer logger.Sync()

	db, err := openDB(cli.DB)
	kctx.FatalIfErrorf(err)
	defer db.Close()

	st := store.New(db, logger)
	if err := st.Migrate(); err != nil {
		kctx.FatalIfErrorf(fmt.Errorf("migrate: %w", err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	kctx.BindTo(ctx, (*context.Context)(nil))

	runErr := kctx.Run(&cli.Globals, &App{Store: st, Logger: logger})

	if cli.MetricsFile != "" {
		if err := metrics.WriteTextfile(cli.MetricsFile); err != nil {
			logger.Error("write metrics", zap.String("path", cli.MetricsFile), zap.Error(err))
		}
	}
	kctx.FatalIfErrorf(runErr)
}

func openDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	return db, nil
}
