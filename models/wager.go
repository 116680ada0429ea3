package models

import "time"

// Wager is one user's single stake on one bet. The (user, bet) pair is
// unique: re-staking edits the existing row instead of creating a second one.
// Payout stays nil until the bet settles; it is set exactly once.
type Wager struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex:wager_user_bet_idx"`
	User      User `gorm:"foreignKey:UserID"`
	BetID     uint `gorm:"uniqueIndex:wager_user_bet_idx"`
	Bet       Bet  `gorm:"foreignKey:BetID"`
	Amount    int64
	Outcome   string
	Payout    *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
