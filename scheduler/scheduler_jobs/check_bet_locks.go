package scheduler_jobs

import (
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"weddingWager/models"

	"gorm.io/gorm"
)

// CheckBetLocks closes betting on any open bet whose lock time has passed.
// Closed bets reject new wagers but can still be settled.
func CheckBetLocks(db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in CheckBetLocks", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in CheckBetLocks: %v", r)
		}
	}()

	return db.Model(&models.Bet{}).
		Where("status = ? AND locks_at IS NOT NULL AND locks_at <= ?", models.BetStatusOpen, time.Now()).
		Update("status", models.BetStatusClosed).Error
}
