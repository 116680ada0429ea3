package betService

import (
	"strings"
	"time"

	"weddingWager/models"
	"weddingWager/services/common"

	"gorm.io/gorm"
)

type BetInput struct {
	Question    string
	OutcomeType string
	Options     []string
	RangeMin    *int64
	RangeMax    *int64
	Icon        string
	LocksAt     *time.Time
}

// CreateBet records a new open bet. Options bets need at least two distinct
// options; range bets need a min/max pair bounding the guesses.
func CreateBet(db *gorm.DB, input BetInput) (models.Bet, error) {
	var bet models.Bet

	if strings.TrimSpace(input.Question) == "" {
		return bet, &common.ValidationError{Err: common.ErrInvalidBet}
	}

	switch input.OutcomeType {
	case models.OutcomeTypeOptions:
		seen := make(map[string]bool)
		var options []models.BetOption
		for _, opt := range input.Options {
			normalized := common.NormalizeOutcome(opt)
			if normalized == "" || seen[normalized] {
				continue
			}
			seen[normalized] = true
			options = append(options, models.BetOption{Value: strings.TrimSpace(opt)})
		}
		if len(options) < 2 {
			return bet, &common.ValidationError{Err: common.ErrInvalidBet}
		}
		bet.Options = options
	case models.OutcomeTypeRange:
		if input.RangeMin == nil || input.RangeMax == nil || *input.RangeMin >= *input.RangeMax {
			return bet, &common.ValidationError{Err: common.ErrInvalidBet}
		}
		bet.RangeMin = input.RangeMin
		bet.RangeMax = input.RangeMax
	default:
		return bet, &common.ValidationError{Err: common.ErrInvalidBet}
	}

	bet.Question = input.Question
	bet.OutcomeType = input.OutcomeType
	bet.Icon = input.Icon
	bet.LocksAt = input.LocksAt
	bet.Status = models.BetStatusOpen

	if err := db.Create(&bet).Error; err != nil {
		return bet, err
	}
	return bet, nil
}

// SeedInitialBets creates the opening slate of wedding bets. It is a no-op
// when any bet already exists, so it is safe to call on every boot.
func SeedInitialBets(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Bet{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds := []BetInput{
		{
			Question:    "Will Michelle wear a veil?",
			OutcomeType: models.OutcomeTypeOptions,
			Options:     []string{"Yes", "No"},
			Icon:        "Users",
		},
		{
			Question:    "Will the ceremony be longer than 30 minutes (including the processional and recessional)",
			OutcomeType: models.OutcomeTypeOptions,
			Options:     []string{"Yes", "No"},
			Icon:        "Clock",
		},
		{
			Question:    "Will Adam cry during the ceremony?",
			OutcomeType: models.OutcomeTypeOptions,
			Options:     []string{"Yes", "No"},
			Icon:        "Mic",
		},
	}

	for _, seed := range seeds {
		if _, err := CreateBet(db, seed); err != nil {
			return err
		}
	}
	return nil
}
