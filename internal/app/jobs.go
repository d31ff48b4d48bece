package app

import (
	"context"
	"path"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc := time.Local
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@hourly", func() {
		a.SchedStockScanTask()
	})
	if err != nil {
		zap.S().Errorf("init stock scan job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedBackupTask()
	})
	if err != nil {
		zap.S().Errorf("init backup job error %s", err.Error())
	}
}

// StartBackgroundJobs starts the scheduler and stops it when ctx ends.
func (a *Application) StartBackgroundJobs(ctx context.Context) {
	a.sched.Start()
	go func() {
		<-ctx.Done()
		a.sched.Stop()
	}()
}

// SchedStockScanTask logs the current low and out-of-stock counts so the
// rotation of the log file carries a stock trail.
func (a *Application) SchedStockScanTask() {
	ctx := context.Background()
	low, err := a.gateway.GetLowStockProducts(ctx)
	if err != nil {
		zap.L().Error("stock scan failed", zap.Error(err))
		return
	}
	out, err := a.gateway.GetOutOfStockProducts(ctx)
	if err != nil {
		zap.L().Error("stock scan failed", zap.Error(err))
		return
	}
	zap.L().Info("stock scan",
		zap.Int("low_stock", len(low)),
		zap.Int("out_of_stock", len(out)))
	for _, p := range out {
		zap.L().Warn("product out of stock", zap.String("id", p.ID), zap.String("name", p.Name))
	}
}

// SchedBackupTask snapshots the store into the backup directory, one file
// per day.
func (a *Application) SchedBackupTask() {
	name := "inventory-" + time.Now().Format("20060102") + ".db"
	target := path.Join(a.appConfig.BackupDir(), name)
	if err := a.gateway.Backup(context.Background(), target); err != nil {
		zap.L().Error("store backup failed", zap.Error(err))
		return
	}
	zap.L().Info("store backup written", zap.String("path", target))
}
