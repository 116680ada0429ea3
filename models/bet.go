package models

import (
	"gorm.io/gorm"
	"time"
)

const (
	BetStatusOpen     = "open"
	BetStatusClosed   = "closed"
	BetStatusResolved = "resolved"
)

const (
	OutcomeTypeOptions = "options"
	OutcomeTypeRange   = "range"
)

type Bet struct {
	gorm.Model
	ID             uint `gorm:"primaryKey"`
	Question       string
	OutcomeType    string `gorm:"size:16"`
	Options        []BetOption
	RangeMin       *int64
	RangeMax       *int64
	Pool           int64
	Status         string `gorm:"size:16; default:open; index"`
	WinningOutcome *string
	Icon           string
	LocksAt        *time.Time
	ResolvedAt     *time.Time
}

type BetOption struct {
	ID    uint `gorm:"primaryKey"`
	BetID uint `gorm:"index"`
	Value string
}
