package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/argab/lottery/internal/auth"
	"github.com/argab/lottery/internal/config"
	"github.com/argab/lottery/internal/http_api"
	"github.com/argab/lottery/internal/lottery"
	"github.com/argab/lottery/internal/notificator"
	"github.com/argab/lottery/internal/repository"
	"github.com/argab/lottery/pkg/confirmation"
	"github.com/argab/lottery/pkg/logger"
)

// drainTimeout bounds how long shutdown waits for pending notifications.
const drainTimeout = 15 * time.Second

func main() {
	serveFlags := []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to a YAML config file"},
		&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "HTTP port"},
		&cli.StringFlag{Name: "db-driver", Usage: "Database driver (postgres or sqlite)"},
		&cli.StringFlag{Name: "sqlite-path", Usage: "SQLite database path"},
		&cli.StringFlag{Name: "postgres-user", Aliases: []string{"u"}, Usage: "Postgres user"},
		&cli.StringFlag{Name: "postgres-password", Usage: "Postgres password"},
		&cli.StringFlag{Name: "postgres-host", Aliases: []string{"t"}, Usage: "Postgres host"},
		&cli.IntFlag{Name: "postgres-port", Aliases: []string{"P"}, Usage: "Postgres port"},
		&cli.StringFlag{Name: "postgres-db", Aliases: []string{"d"}, Usage: "Postgres database name"},
		&cli.BoolFlag{Name: "development", Aliases: []string{"D"}, Usage: "Development mode"},
	}

	app := &cli.App{
		Name:  "lottery",
		Usage: "Lottery ticket allocation and payment verification service",
		Flags: serveFlags,
		Action: func(c *cli.Context) error {
			return run(c)
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP service (default)",
				Flags:  serveFlags,
				Action: run,
			},
			{
				Name:      "hash-password",
				Usage:     "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
				ArgsUsage: "[password]",
				Action:    hashPassword,
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

// hashPassword hashes the argument, or a line read from stdin when none is given.
func hashPassword(c *cli.Context) error {
	password := c.Args().First()
	if password == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %v", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	// Load configuration from file and environment variables
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %v", err)
	}

	// Override with flags if set
	if c.IsSet("port") {
		cfg.APIPort = c.Int("port")
	}
	if c.IsSet("db-driver") {
		cfg.DBDriver = c.String("db-driver")
	}
	if c.IsSet("sqlite-path") {
		cfg.SQLitePath = c.String("sqlite-path")
	}
	if c.IsSet("postgres-user") {
		cfg.PostgresUser = c.String("postgres-user")
	}
	if c.IsSet("postgres-password") {
		cfg.PostgresPassword = c.String("postgres-password")
	}
	if c.IsSet("postgres-host") {
		cfg.PostgresHost = c.String("postgres-host")
	}
	if c.IsSet("postgres-port") {
		cfg.PostgresPort = c.Int("postgres-port")
	}
	if c.IsSet("postgres-db") {
		cfg.PostgresDB = c.String("postgres-db")
	}
	if c.IsSet("development") {
		cfg.Development = c.Bool("development")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %v", err)
	}
	return cfg, nil
}

func openRepository(cfg *config.Config, log *logger.Logger) (*repository.GormDB, error) {
	pool := repository.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Hour,
	}
	codes := confirmation.NewGenerator()

	if cfg.DBDriver == config.DriverSQLite {
		return repository.NewSQLiteDB(cfg.SQLitePath, pool, codes, log)
	}
	return repository.NewPostgresDB(cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresHost, cfg.PostgresPort, pool, codes, log)
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := openRepository(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize notificator
	smsNotificator := notificator.NewSMSNotificator(log.Named("sms"), cfg.SMSAPIURL, cfg.SMSAPIKey, cfg.SMSSender)
	var telegramNotificator *notificator.TelegramNotificator
	if cfg.TelegramBotToken != "" {
		telegramNotificator, err = notificator.NewTelegramNotificator(log.Named("telegram"), cfg.TelegramBotToken, cfg.TelegramAdminChatID)
		if err != nil {
			// Admin mirror is optional; applicants are still notified by SMS.
			log.Errorw("Telegram notifications disabled", "error", err)
			telegramNotificator = nil
		} else {
			telegramNotificator.Start(ctx)
		}
	}
	notif := notificator.NewNotificator(log.Named("notificator"), smsNotificator, telegramNotificator)

	// Create Lottery instance
	lotteryApp := lottery.NewLottery(db, notif, log.Named("lottery"))

	gate := auth.NewGate(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.SessionSecret, cfg.SessionTTL)

	// Initialize API server
	apiServer, err := http_api.NewHTTPServer(lotteryApp, gate, http_api.Options{
		Port:           cfg.APIPort,
		Development:    cfg.Development,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		SessionTTL:     cfg.SessionTTL,
		Organization:   cfg.OrganizationName,
		TelebirrOwner:  cfg.TelebirrOwner,
	}, log.Named("http"))
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %v", err)
	}

	go apiServer.Start()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	if err := apiServer.Shutdown(); err != nil {
		log.Errorw("HTTP server shutdown failed", "error", err)
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := lotteryApp.Wait(drainCtx); err != nil {
		log.Warnw("Pending notifications abandoned", "error", err)
	}
	return nil
}
