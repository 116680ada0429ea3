package betService

import (
	"errors"
	"fmt"

	"weddingWager/models"
	"weddingWager/services/common"

	"gorm.io/gorm"
)

// ParlayLegInput is one leg of a parlay request: a bet plus the outcome the
// user is backing.
type ParlayLegInput struct {
	BetID   uint `json:"betId"`
	Outcome any  `json:"outcome"`
}

// PlaceParlay records a multi-leg side bet. Parlay stakes do not join the
// underlying bets' pools; the payout is the fixed multiplier for the leg
// count, precomputed and floored at placement.
func PlaceParlay(db *gorm.DB, userID uint, legs []ParlayLegInput, amount int64) (models.Parlay, error) {
	var parlay models.Parlay
	if amount <= 0 {
		return parlay, &common.ValidationError{Err: common.ErrInvalidAmount}
	}
	if len(legs) < 2 {
		return parlay, &common.ValidationError{Err: common.ErrTooFewLegs}
	}
	seen := make(map[uint]bool, len(legs))
	for _, leg := range legs {
		if seen[leg.BetID] {
			return parlay, &common.ValidationError{Err: common.ErrDuplicateLeg}
		}
		seen[leg.BetID] = true
	}

	multiplier := common.ParlayMultiplier(len(legs))

	err := common.InTx(db, func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		if amount > user.Balance {
			return &common.PreconditionError{Err: common.ErrInsufficientBalance}
		}

		parlayLegs := make([]models.ParlayLeg, 0, len(legs))
		for _, leg := range legs {
			bet, err := lockBet(tx, leg.BetID)
			if err != nil {
				return err
			}
			if bet.Status != models.BetStatusOpen {
				return &common.PreconditionError{Err: common.ErrBetNotOpen}
			}
			normalized := common.NormalizeOutcome(leg.Outcome)
			if err := validateOutcome(tx, bet, normalized); err != nil {
				return err
			}
			parlayLegs = append(parlayLegs, models.ParlayLeg{BetID: bet.ID, ChosenOutcome: normalized})
		}

		if err := tx.Model(user).UpdateColumn("balance", gorm.Expr("balance - ?", amount)).Error; err != nil {
			return err
		}

		parlay = models.Parlay{
			UserID:          userID,
			Amount:          amount,
			Multiplier:      multiplier,
			PotentialPayout: common.ParlayPayout(amount, multiplier),
			Status:          models.ParlayStatusOpen,
			Legs:            parlayLegs,
		}
		return tx.Create(&parlay).Error
	})
	return parlay, err
}

// UpdateParlaysOnBetResolution propagates a settled bet into every open
// parlay holding it as a leg. Each parlay is resolved in its own fresh
// transaction; one parlay failing never rolls back its siblings. Failures
// are collected and returned joined.
func UpdateParlaysOnBetResolution(db *gorm.DB, betID uint, winningOutcome string) error {
	var parlayIDs []uint
	result := db.Model(&models.ParlayLeg{}).
		Distinct("parlay_legs.parlay_id").
		Joins("JOIN parlays ON parlays.id = parlay_legs.parlay_id").
		Where("parlay_legs.bet_id = ? AND parlays.status = ?", betID, models.ParlayStatusOpen).
		Pluck("parlay_legs.parlay_id", &parlayIDs)
	if result.Error != nil {
		return result.Error
	}

	var failures []error
	for _, parlayID := range parlayIDs {
		if resolveErr := resolveParlayLeg(db, parlayID, betID, winningOutcome); resolveErr != nil {
			failures = append(failures, fmt.Errorf("parlay %d: %w", parlayID, resolveErr))
		}
	}
	return errors.Join(failures...)
}

// resolveParlayLeg merges one settled bet into one parlay. The parlay row is
// re-read under lock so two legs settling at nearly the same time serialize;
// a leg already marked resolved makes the whole call a no-op, which is what
// keeps repeated settlement callbacks idempotent.
func resolveParlayLeg(db *gorm.DB, parlayID, betID uint, winningOutcome string) error {
	return common.InTx(db, func(tx *gorm.DB) error {
		var parlay models.Parlay
		if err := common.Lock(tx).First(&parlay, parlayID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if parlay.Status != models.ParlayStatusOpen {
			return nil
		}

		var legs []models.ParlayLeg
		if err := tx.Where("parlay_id = ?", parlayID).Order("id").Find(&legs).Error; err != nil {
			return err
		}

		var current *models.ParlayLeg
		for i := range legs {
			if legs[i].BetID == betID {
				current = &legs[i]
				break
			}
		}
		if current == nil || current.Resolved {
			return nil
		}

		won := current.ChosenOutcome == winningOutcome
		current.Resolved = true
		current.Won = &won
		if err := tx.Save(current).Error; err != nil {
			return err
		}

		if !won {
			// First losing leg sinks the parlay regardless of the rest.
			return tx.Model(&parlay).Updates(map[string]any{
				"status": models.ParlayStatusLost,
				"payout": int64(0),
			}).Error
		}

		allResolved := true
		allWon := true
		for i := range legs {
			if !legs[i].Resolved {
				allResolved = false
				break
			}
			if legs[i].Won == nil || !*legs[i].Won {
				allWon = false
			}
		}
		if !allResolved {
			return nil
		}
		if !allWon {
			// Fast-fail above should have caught this; defensive fallback.
			return tx.Model(&parlay).Updates(map[string]any{
				"status": models.ParlayStatusLost,
				"payout": int64(0),
			}).Error
		}

		payout := parlay.PotentialPayout
		if err := tx.Model(&models.User{}).Where("id = ?", parlay.UserID).
			UpdateColumn("balance", gorm.Expr("balance + ?", payout)).Error; err != nil {
			return err
		}
		return tx.Model(&parlay).Updates(map[string]any{
			"status": models.ParlayStatusWon,
			"payout": payout,
		}).Error
	})
}
