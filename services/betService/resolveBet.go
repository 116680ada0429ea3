package betService

import (
	"time"

	"weddingWager/models"
	"weddingWager/services/common"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SettlementResult summarizes what a settlement paid out.
type SettlementResult struct {
	BetID          uint   `json:"betId"`
	WinningOutcome string `json:"winningOutcome"`
	Winners        int    `json:"winners"`
	TotalPaid      int64  `json:"totalPaid"`
	Refunded       bool   `json:"refunded"`
}

// ResolveBet settles a bet: it declares the winning outcome, splits the pool
// pari-mutuel across the winning wagers, and marks the bet resolved. A bet
// with no winning stake refunds every wager in full instead of forfeiting the
// pool. The settlement itself is a single transaction; afterwards the parlay
// cascade runs in its own per-parlay transactions, and a cascade failure does
// not undo the settlement.
func ResolveBet(db *gorm.DB, log *logrus.Logger, betID uint, winningOutcome any) (SettlementResult, error) {
	normalized := common.NormalizeOutcome(winningOutcome)
	var summary SettlementResult

	err := common.InTx(db, func(tx *gorm.DB) error {
		summary = SettlementResult{BetID: betID, WinningOutcome: normalized}

		bet, err := lockBet(tx, betID)
		if err != nil {
			return err
		}
		if bet.Status == models.BetStatusResolved {
			return &common.PreconditionError{Err: common.ErrBetAlreadyResolved}
		}
		if err := validateOutcome(tx, bet, normalized); err != nil {
			return err
		}

		var wagers []models.Wager
		if err := tx.Where("bet_id = ?", bet.ID).Find(&wagers).Error; err != nil {
			return err
		}

		var totalWinningStake int64
		for _, w := range wagers {
			if w.Outcome == normalized {
				totalWinningStake += w.Amount
			}
		}
		refund := totalWinningStake == 0

		for i := range wagers {
			w := &wagers[i]
			var payout int64
			switch {
			case refund:
				payout = w.Amount
			case w.Outcome == normalized:
				payout = common.PariMutuelPayout(w.Amount, bet.Pool, totalWinningStake)
			}

			if payout > 0 {
				if err := tx.Model(&models.User{}).Where("id = ?", w.UserID).
					UpdateColumn("balance", gorm.Expr("balance + ?", payout)).Error; err != nil {
					return err
				}
				if !refund {
					summary.Winners++
				}
			}
			if err := tx.Model(w).UpdateColumn("payout", payout).Error; err != nil {
				return err
			}
			summary.TotalPaid += payout
		}
		summary.Refunded = refund

		now := time.Now()
		return tx.Model(bet).Updates(map[string]any{
			"status":          models.BetStatusResolved,
			"winning_outcome": normalized,
			"resolved_at":     &now,
		}).Error
	})
	if err != nil {
		return summary, err
	}

	if cascadeErr := UpdateParlaysOnBetResolution(db, betID, normalized); cascadeErr != nil {
		common.LogError(db, log, "parlay-cascade", cascadeErr)
	}
	return summary, nil
}
