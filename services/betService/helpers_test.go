package betService

import (
	"fmt"
	"sync/atomic"
	"testing"

	"weddingWager/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh named in-memory SQLite database so each test gets
// isolated state while gorm's connection pool still sees one database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:betservice%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Bet{},
		&models.BetOption{},
		&models.Wager{},
		&models.Parlay{},
		&models.ParlayLeg{},
		&models.ErrorLog{},
	))
	return db
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func createUser(t *testing.T, db *gorm.DB, externalID string, balance int64) models.User {
	t.Helper()
	user := models.User{ExternalID: externalID, Nickname: externalID, Balance: balance}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createOptionsBet(t *testing.T, db *gorm.DB, question string, options ...string) models.Bet {
	t.Helper()
	bet, err := CreateBet(db, BetInput{
		Question:    question,
		OutcomeType: models.OutcomeTypeOptions,
		Options:     options,
		Icon:        "Users",
	})
	require.NoError(t, err)
	return bet
}

func createRangeBet(t *testing.T, db *gorm.DB, question string, min, max int64) models.Bet {
	t.Helper()
	bet, err := CreateBet(db, BetInput{
		Question:    question,
		OutcomeType: models.OutcomeTypeRange,
		RangeMin:    &min,
		RangeMax:    &max,
		Icon:        "Clock",
	})
	require.NoError(t, err)
	return bet
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return user
}

func reloadBet(t *testing.T, db *gorm.DB, id uint) models.Bet {
	t.Helper()
	var bet models.Bet
	require.NoError(t, db.First(&bet, id).Error)
	return bet
}

func reloadParlay(t *testing.T, db *gorm.DB, id uint) models.Parlay {
	t.Helper()
	var parlay models.Parlay
	require.NoError(t, db.Preload("Legs").First(&parlay, id).Error)
	return parlay
}
