package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"weddingWager/models"
	"weddingWager/scheduler"
	"weddingWager/server"
	"weddingWager/services/betService"
	"weddingWager/services/common"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB
var logger = logrus.New()

func init() {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using process environment")
	}

	rawURL := os.Getenv("DATABASE_URL")
	if rawURL == "" {
		logger.Fatal("DATABASE_URL not set in environment variables")
	}
	u, err := dburl.Parse(rawURL)
	if err != nil {
		logger.Fatalf("Invalid DATABASE_URL: %v", err)
	}

	var dialector gorm.Dialector
	switch u.Driver {
	case "mysql":
		dsn := u.DSN
		if !strings.Contains(dsn, "?") {
			dsn += "?charset=utf8mb4&parseTime=True&loc=Local"
		}
		dialector = mysql.Open(dsn)
	case "sqlite3":
		dialector = sqlite.Open(u.DSN)
	default:
		logger.Fatalf("Unsupported database driver: %s", u.Driver)
	}

	db, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Bet{},
		&models.BetOption{},
		&models.Wager{},
		&models.Parlay{},
		&models.ParlayLeg{},
		&models.ErrorLog{},
	)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	if v := os.Getenv("STARTING_BALANCE"); v != "" {
		balance, err := strconv.ParseInt(v, 10, 64)
		if err != nil || balance < 0 {
			logger.Fatalf("Invalid STARTING_BALANCE: %s", v)
		}
		common.StartingBalance = balance
	}
}

func main() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-c
		logger.Infof("Signal: %s", sig)
		cancel()
	}()

	if os.Getenv("SEED_BETS") == "true" {
		if err := betService.SeedInitialBets(db); err != nil {
			logger.Fatalf("Error seeding bets: %v", err)
		}
	}

	cronService := scheduler.SetupCron(db, logger)
	defer cronService.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server.Start(ctx, db, logger, ":"+port)
}
