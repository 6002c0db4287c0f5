package app

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/akash06959/agronova/config"
	"github.com/akash06959/agronova/internal/backend"
	"github.com/akash06959/agronova/internal/storage"
	"github.com/akash06959/agronova/internal/store"
)

// Application owns every long-lived component: the local state file, the
// event bus, the backend client, the four stores and the scheduler. It is
// constructed once in main and threaded to the HTTP layer.
type Application struct {
	appConfig *config.AppConfig
	storage   *storage.Store
	bus       EventBus.Bus
	client    *backend.Client
	node      *snowflake.Node

	catalog *store.CatalogStore
	cart    *store.CartStore
	users   *store.SessionStore
	admin   *store.SessionStore
	notify  *store.NotifyStore

	sched *cron.Cron
}

// Ensure Application implements all provider interfaces.
var (
	_ ConfigProvider  = (*Application)(nil)
	_ StoreProvider   = (*Application)(nil)
	_ BackendProvider = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig { return a.appConfig }

func (a *Application) Catalog() *store.CatalogStore { return a.catalog }

func (a *Application) Cart() *store.CartStore { return a.cart }

func (a *Application) UserSessions() *store.SessionStore { return a.users }

func (a *Application) AdminSessions() *store.SessionStore { return a.admin }

func (a *Application) Notify() *store.NotifyStore { return a.notify }

func (a *Application) Backend() *backend.Client { return a.client }

func (a *Application) Bus() EventBus.Bus { return a.bus }

// Init brings the application up: logger, timezone, state file, backend
// client, stores and background jobs.
func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)

	a.storage, err = storage.Open(cfg.StoragePath())
	if err != nil {
		return err
	}
	zap.S().Infof("state file ready at %s", cfg.StoragePath())

	a.node, err = snowflake.NewNode(1)
	if err != nil {
		return err
	}

	a.bus = EventBus.New()
	a.client = backend.New(cfg.Backend.BaseURL)

	a.catalog = store.NewCatalogStore(a.client, a.storage, a.bus, a.node)
	a.cart = store.NewCartStore(a.storage, a.bus)
	a.notify = store.NewNotifyStore(a.bus, store.DefaultNotifyTTL)

	a.users = store.NewSessionStore(store.SessionConfig{
		Strategy: &store.BackendStrategy{Client: a.client, Node: a.node},
		Storage:  a.storage,
		Key:      storage.KeyUser,
		TokenKey: storage.KeyUserToken,
		DataKey:  storage.KeyUserData,
		Bus:      a.bus,
	})
	a.admin = store.NewSessionStore(store.SessionConfig{
		Strategy: &store.CredentialStrategy{
			Username:     cfg.Admin.Username,
			PasswordHash: a.adminPasswordHash(cfg),
		},
		Idle: &store.IdlePolicy{
			Timeout: time.Duration(cfg.Admin.IdleTimeout) * time.Minute,
			Warning: time.Duration(cfg.Admin.IdleWarning) * time.Minute,
		},
		Storage: a.storage,
		Key:     storage.KeyAdmin,
		Bus:     a.bus,
	})

	// Initial catalog load; failure leaves the empty-list error state the
	// storefront knows how to render.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = a.catalog.Load(ctx)
	}()

	a.initJob()
	return nil
}

// adminPasswordHash resolves the configured bcrypt hash, falling back to a
// hash of the stock "admin" password.
func (a *Application) adminPasswordHash(cfg *config.AppConfig) []byte {
	if cfg.Admin.PasswordHash != "" {
		return []byte(cfg.Admin.PasswordHash)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		zap.S().Errorf("admin password hash error: %v", err)
		return nil
	}
	return hash
}

func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	if cfg.System.Debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)
}

// Scheduler returns the cron scheduler.
func (a *Application) Scheduler() *cron.Cron { return a.sched }

// Release stops background work and closes resources.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.notify != nil {
		a.notify.Close()
	}
	if a.storage != nil {
		_ = a.storage.Close()
	}
	_ = zap.L().Sync()
}
