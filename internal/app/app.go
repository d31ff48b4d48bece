package app

import (
	"context"
	"os"
	"path"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"github.com/tiendafacil/inventario/config"
	"github.com/tiendafacil/inventario/internal/domain"
	"github.com/tiendafacil/inventario/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Application is the composition root: it owns the store gateway, the event
// bus and the job scheduler, and hands them to collaborators by reference.
type Application struct {
	appConfig *config.AppConfig
	gateway   *store.Gateway
	bus       EventBus.Bus
	sched     *cron.Cron
}

var (
	_ GatewayProvider = (*Application)(nil)
	_ ConfigProvider  = (*Application)(nil)
	_ BusProvider     = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Gateway() *store.Gateway {
	return a.gateway
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// Scheduler returns the cron scheduler.
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Init wires logging, the event bus, the store and background jobs. A store
// open failure is fatal and returned to the caller.
func (a *Application) Init() error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger()

	a.bus = EventBus.New()
	if err := a.bus.Subscribe(domain.EventProductAdded, func(p *domain.Product) {
		zap.L().Debug("event", zap.String("topic", domain.EventProductAdded), zap.String("id", p.ID))
	}); err != nil {
		zap.S().Warnf("subscribe %s: %v", domain.EventProductAdded, err)
	}
	if err := a.bus.Subscribe(domain.EventSaleRegistered, func(s *domain.Sale) {
		zap.L().Debug("event", zap.String("topic", domain.EventSaleRegistered), zap.String("id", s.ID))
	}); err != nil {
		zap.S().Warnf("subscribe %s: %v", domain.EventSaleRegistered, err)
	}

	a.gateway = store.NewGateway(cfg.StorePath(), a.bus)
	if err := a.gateway.Open(context.Background()); err != nil {
		return err
	}

	a.initJob()
	return nil
}

func (a *Application) initLogger() {
	cfg := a.appConfig

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
			Filename:   path.Join(cfg.System.Workdir, cfg.Logger.Filename),
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
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// Release releases application resources.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.gateway != nil {
		if err := a.gateway.Close(); err != nil {
			zap.S().Errorf("close store: %v", err)
		}
	}
	_ = zap.L().Sync()
}
