package scheduler

import (
	"weddingWager/scheduler/scheduler_jobs"
	"weddingWager/services/common"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func SetupCron(db *gorm.DB, logger *logrus.Logger) *cron.Cron {
	cronService := cron.New()

	_, err := cronService.AddFunc("@every 1m", func() {
		err := scheduler_jobs.CheckBetLocks(db)
		if err != nil {
			common.LogError(db, logger, "check-bet-locks", err)
		}
	})
	if err != nil {
		common.LogError(db, logger, "cron-setup", err)
	}

	cronService.Start()
	return cronService
}
