package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// initJob registers the background jobs and starts the scheduler.
func (a *Application) initJob() {
	a.sched = cron.New()

	// Idle sweep for the admin session. The storefront session has no idle
	// policy and is untouched by this.
	_, err := a.sched.AddFunc("@every 5m", func() {
		a.admin.CheckIdle()
	})
	if err != nil {
		zap.S().Errorf("idle sweep job error: %v", err)
	}

	if mins := a.appConfig.Backend.RefreshInterval; mins > 0 {
		every := fmt.Sprintf("@every %dm", mins)
		_, err = a.sched.AddFunc(every, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := a.catalog.Load(ctx); err != nil {
				zap.S().Warnf("catalog refresh error: %v", err)
			}
		})
		if err != nil {
			zap.S().Errorf("catalog refresh job error: %v", err)
		}
	}

	a.sched.Start()
}
