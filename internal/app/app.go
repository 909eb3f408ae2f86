package app

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/hayasakashogo/worklog/internal/attendance"
	"github.com/hayasakashogo/worklog/internal/calendar"
	"github.com/hayasakashogo/worklog/internal/config"
	"github.com/hayasakashogo/worklog/internal/crypto"
	"github.com/hayasakashogo/worklog/internal/db"
	"github.com/hayasakashogo/worklog/internal/events"
	"github.com/hayasakashogo/worklog/internal/logging"
	"github.com/hayasakashogo/worklog/internal/repository"
	"github.com/hayasakashogo/worklog/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB
	Logger *zap.Logger
	Broker events.Broker

	// Calendar
	Holidays   *calendar.Resolver
	Aggregator *attendance.Aggregator

	// Repositories
	ClientRepo repository.ClientRepository
	RecordRepo repository.RecordRepository

	// Services
	ClientService service.ClientService
	PunchService  service.PunchService
	RecordService service.RecordService
	ReportService service.ReportService
}

// New loads the default config and builds the App
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger := logging.New(cfg.Log.File, cfg.Log.Level)

	password, err := databaseKey(crypto.NewKeyring())
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a, err := wire(ctx, cfg, database, logger)
	if err != nil {
		database.Close()
		return nil, err
	}

	logger.Info("worklog started",
		zap.String("db", database.Path()),
		zap.Bool("redis_sync", cfg.Sync.RedisAddr != ""),
	)
	return a, nil
}

// wire builds the calendar, broker, repositories and services over an open database
func wire(ctx context.Context, cfg *config.Config, database *db.DB, logger *zap.Logger) (*App, error) {
	var overrides *calendar.FileHolidays
	if cfg.Holidays.OverridesFile != "" {
		overrides = calendar.NewFileHolidays(cfg.Holidays.OverridesFile, logger)
	}
	lookup := calendar.NewCompositeLookup(overrides, calendar.NewJapanHolidays(), logger)
	if err := lookup.LoadOverrides(); err != nil {
		return nil, err
	}
	holidays := calendar.NewResolver(lookup)
	aggregator := attendance.NewAggregator(attendance.NewPolicy(holidays))

	broker := newBroker(ctx, cfg.Sync, logger)

	clientRepo := repository.NewClientRepo(database)
	recordRepo := repository.NewRecordRepo(database)

	deps := service.Deps{
		ClientRepo: clientRepo,
		RecordRepo: recordRepo,
		Aggregator: aggregator,
		Broker:     broker,
		Logger:     logger,
	}

	return &App{
		Config:        cfg,
		DB:            database,
		Logger:        logger,
		Broker:        broker,
		Holidays:      holidays,
		Aggregator:    aggregator,
		ClientRepo:    clientRepo,
		RecordRepo:    recordRepo,
		ClientService: service.NewClientService(deps),
		PunchService:  service.NewPunchService(deps),
		RecordService: service.NewRecordService(deps),
		ReportService: service.NewReportService(deps, cfg.User.FullName, cfg.Report.FontPath),
	}, nil
}

// newBroker connects to Redis when configured. An unreachable server degrades
// to in-process notifications so the CLI keeps working offline.
func newBroker(ctx context.Context, cfg config.SyncConfig, logger *zap.Logger) events.Broker {
	if cfg.RedisAddr == "" {
		return events.NewLocalBroker()
	}

	broker, err := events.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
	if err != nil {
		logger.Warn("redis unavailable, using local change notifications",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err),
		)
		return events.NewLocalBroker()
	}
	return broker
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	var errs []error
	if a.Broker != nil {
		errs = append(errs, a.Broker.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return errors.Join(errs...)
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}

// databaseKey returns the stored key, prompting for a new one on first run
func databaseKey(keyring crypto.Keyring) (string, error) {
	password, err := keyring.GetKey()
	if err == nil {
		return password, nil
	}
	if !errors.Is(err, crypto.ErrKeyNotFound) {
		return "", err
	}

	fmt.Println("Setting up database encryption for the first time...")
	password, err = promptForPassword()
	if err != nil {
		return "", fmt.Errorf("failed to set password: %w", err)
	}

	if err := keyring.SetKey(password); err != nil {
		return "", fmt.Errorf("failed to store encryption key: %w", err)
	}
	return password, nil
}

// promptForPassword prompts user for a new database password (first run)
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your attendance records will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}
