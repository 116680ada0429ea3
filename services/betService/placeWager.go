package betService

import (
	"errors"

	"weddingWager/models"
	"weddingWager/services/common"

	"gorm.io/gorm"
)

// PlaceWager stakes amount on a bet outcome. If the user already has a wager
// on the bet it is edited in place: the balance and pool move by the delta,
// re-validated against the current balance. Debit, pool increment and wager
// row are one atomic transaction.
func PlaceWager(db *gorm.DB, userID, betID uint, outcome any, amount int64) (models.Wager, error) {
	var wager models.Wager
	if amount <= 0 {
		return wager, &common.ValidationError{Err: common.ErrInvalidAmount}
	}
	normalized := common.NormalizeOutcome(outcome)

	err := common.InTx(db, func(tx *gorm.DB) error {
		bet, err := lockBet(tx, betID)
		if err != nil {
			return err
		}
		if bet.Status != models.BetStatusOpen {
			return &common.PreconditionError{Err: common.ErrBetNotOpen}
		}
		if err := validateOutcome(tx, bet, normalized); err != nil {
			return err
		}

		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}

		var existing models.Wager
		found := tx.Where("user_id = ? AND bet_id = ?", userID, betID).Limit(1).Find(&existing)
		if found.Error != nil {
			return found.Error
		}

		delta := amount
		if found.RowsAffected > 0 {
			delta = amount - existing.Amount
		}
		if delta > user.Balance {
			return &common.PreconditionError{Err: common.ErrInsufficientBalance}
		}

		if err := tx.Model(user).UpdateColumn("balance", gorm.Expr("balance - ?", delta)).Error; err != nil {
			return err
		}
		if err := tx.Model(bet).UpdateColumn("pool", gorm.Expr("pool + ?", delta)).Error; err != nil {
			return err
		}

		if found.RowsAffected > 0 {
			existing.Amount = amount
			existing.Outcome = normalized
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			wager = existing
			return nil
		}

		wager = models.Wager{UserID: userID, BetID: betID, Amount: amount, Outcome: normalized}
		return tx.Create(&wager).Error
	})
	return wager, err
}

// CancelWager withdraws the user's wager while the bet is still open,
// refunding the stake and shrinking the pool.
func CancelWager(db *gorm.DB, userID, betID uint) error {
	return common.InTx(db, func(tx *gorm.DB) error {
		bet, err := lockBet(tx, betID)
		if err != nil {
			return err
		}
		if bet.Status != models.BetStatusOpen {
			return &common.PreconditionError{Err: common.ErrBetNotOpen}
		}

		var wager models.Wager
		found := tx.Where("user_id = ? AND bet_id = ?", userID, betID).Limit(1).Find(&wager)
		if found.Error != nil {
			return found.Error
		}
		if found.RowsAffected == 0 {
			return &common.PreconditionError{Err: common.ErrWagerNotFound}
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("balance", gorm.Expr("balance + ?", wager.Amount)).Error; err != nil {
			return err
		}
		if err := tx.Model(bet).UpdateColumn("pool", gorm.Expr("pool - ?", wager.Amount)).Error; err != nil {
			return err
		}
		return tx.Delete(&wager).Error
	})
}

func lockBet(tx *gorm.DB, betID uint) (*models.Bet, error) {
	var bet models.Bet
	err := common.Lock(tx).First(&bet, betID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &common.PreconditionError{Err: common.ErrBetNotFound}
		}
		return nil, err
	}
	return &bet, nil
}

func lockUser(tx *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	err := common.Lock(tx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &common.PreconditionError{Err: common.ErrUserNotFound}
		}
		return nil, err
	}
	return &user, nil
}

// validateOutcome checks a normalized outcome against the bet's outcome
// space: membership for options bets, any whole number for range bets (the
// stored min/max only bound the UI slider).
func validateOutcome(tx *gorm.DB, bet *models.Bet, normalized string) error {
	switch bet.OutcomeType {
	case models.OutcomeTypeRange:
		if !common.IsIntegerOutcome(normalized) {
			return &common.ValidationError{Err: common.ErrInvalidOutcome}
		}
		return nil
	case models.OutcomeTypeOptions:
		var options []models.BetOption
		if err := tx.Where("bet_id = ?", bet.ID).Find(&options).Error; err != nil {
			return err
		}
		for _, opt := range options {
			if common.NormalizeOutcome(opt.Value) == normalized {
				return nil
			}
		}
		return &common.ValidationError{Err: common.ErrInvalidOutcome}
	default:
		return &common.ValidationError{Err: common.ErrInvalidBet}
	}
}
