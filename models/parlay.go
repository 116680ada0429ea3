package models

import "gorm.io/gorm"

const (
	ParlayStatusOpen = "open"
	ParlayStatusWon  = "won"
	ParlayStatusLost = "lost"
)

type Parlay struct {
	gorm.Model
	ID              uint `gorm:"primaryKey"`
	UserID          uint
	User            User `gorm:"foreignKey:UserID"`
	Amount          int64
	Multiplier      float64
	PotentialPayout int64  // Amount x Multiplier, floored at placement
	Status          string `gorm:"size:16; default:open; index"`
	Payout          *int64
	Legs            []ParlayLeg
}

type ParlayLeg struct {
	gorm.Model
	ID            uint   `gorm:"primaryKey"`
	ParlayID      uint   `gorm:"index"`
	Parlay        Parlay `gorm:"foreignKey:ParlayID"`
	BetID         uint   `gorm:"index"`
	Bet           Bet    `gorm:"foreignKey:BetID"`
	ChosenOutcome string
	Resolved      bool  `gorm:"default:false"` // Whether the underlying bet has settled
	Won           *bool // true if won, false if lost, nil if not resolved yet
}
