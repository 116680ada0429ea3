package betService

import (
	"testing"

	"weddingWager/models"
	"weddingWager/services/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBetPariMutuelSplit(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice", 1000)
	bob := createUser(t, db, "bob", 1000)
	carol := createUser(t, db, "carol", 1000)
	bet := createOptionsBet(t, db, "Veil?", "Yes", "No")

	// Pool 300: Yes 100 (alice), Yes 100 (bob), No 100 (carol).
	_, err := PlaceWager(db, alice.ID, bet.ID, "Yes", 100)
	require.NoError(t, err)
	_, err = PlaceWager(db, bob.ID, bet.ID, "Yes", 100)
	require.NoError(t, err)
	_, err = PlaceWager(db, carol.ID, bet.ID, "No", 100)
	require.NoError(t, err)

	summary, err := ResolveBet(db, newTestLogger(), bet.ID, "Yes")
	require.NoError(t, err)

	// Ratio 300/200 = 1.5: each winner gets 150, the loser nothing.
	assert.Equal(t, 2, summary.Winners)
	assert.Equal(t, int64(300), summary.TotalPaid)
	assert.False(t, summary.Refunded)

	assert.Equal(t, int64(1050), reloadUser(t, db, alice.ID).Balance)
	assert.Equal(t, int64(1050), reloadUser(t, db, bob.ID).Balance)
	assert.Equal(t, int64(900), reloadUser(t, db, carol.ID).Balance)

	resolved := reloadBet(t, db, bet.ID)
	assert.Equal(t, models.BetStatusResolved, resolved.Status)
	require.NotNil(t, resolved.WinningOutcome)
	assert.Equal(t, "yes", *resolved.WinningOutcome)
	assert.NotNil(t, resolved.ResolvedAt)

	var wagers []models.Wager
	require.NoError(t, db.Where("bet_id = ?", bet.ID).Order("id").Find(&wagers).Error)
	require.Len(t, wagers, 3)
	for _, w := range wagers {
		require.NotNil(t, w.Payout)
	}
	assert.Equal(t, int64(150), *wagers[0].Payout)
	assert.Equal(t, int64(150), *wagers[1].Payout)
	assert.Equal(t, int64(0), *wagers[2].Payout)
}

func TestResolveBetNoWinnersRefundsEveryStake(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice", 1000)
	bet := createOptionsBet(t, db, "Veil?", "Yes", "No")

	_, err := PlaceWager(db, alice.ID, bet.ID, "Yes", 100)
	require.NoError(t, err)

	summary, err := ResolveBet(db, newTestLogger(), bet.ID, "No")
	require.NoError(t, err)

	// Nobody picked "No": the stake comes back, it is not forfeited.
	assert.True(t, summary.Refunded)
	assert.Equal(t, 0, summary.Winners)
	assert.Equal(t, int64(100), summary.TotalPaid)
	assert.Equal(t, int64(1000), reloadUser(t, db, alice.ID).Balance)

	var wager models.Wager
	require.NoError(t, db.Where("bet_id = ?", bet.ID).First(&wager).Error)
	require.NotNil(t, wager.Payout)
	assert.Equal(t, int64(100), *wager.Payout)
}

func TestResolveBetRejectsSecondSettlement(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice", 1000)
	bet := createOptionsBet(t, db, "Veil?", "Yes", "No")

	_, err := PlaceWager(db, alice.ID, bet.ID, "Yes", 100)
	require.NoError(t, err)

	_, err = ResolveBet(db, newTestLogger(), bet.ID, "Yes")
	require.NoError(t, err)
	balanceAfterFirst := reloadUser(t, db, alice.ID).Balance

	_, err = ResolveBet(db, newTestLogger(), bet.ID, "Yes")
	require.ErrorIs(t, err, common.ErrBetAlreadyResolved)

	assert.Equal(t, balanceAfterFirst, reloadUser(t, db, alice.ID).Balance, "no double payout")
}

func TestResolveBetRoundingLossStaysInPool(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice", 10)
	bob := createUser(t, db, "bob", 10)
	carol := createUser(t, db, "carol", 10)
	bet := createOptionsBet(t, db, "Veil?", "Yes", "No")

	// Pool 3, winning stake 2: ratio 1.5 floors each winner to 1 point.
	_, err := PlaceWager(db, alice.ID, bet.ID, "Yes", 1)
	require.NoError(t, err)
	_, err = PlaceWager(db, bob.ID, bet.ID, "Yes", 1)
	require.NoError(t, err)
	_, err = PlaceWager(db, carol.ID, bet.ID, "No", 1)
	require.NoError(t, err)

	summary, err := ResolveBet(db, newTestLogger(), bet.ID, "Yes")
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.TotalPaid, "1 point of rounding loss is not redistributed")
	assert.Equal(t, int64(10), reloadUser(t, db, alice.ID).Balance)
	assert.Equal(t, int64(10), reloadUser(t, db, bob.ID).Balance)
}

func TestResolveBetSettlesClosedBet(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice", 1000)
	bet := createOptionsBet(t, db, "Veil?", "Yes", "No")

	_, err := PlaceWager(db, alice.ID, bet.ID, "Yes", 100)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Bet{}).Where("id = ?", bet.ID).
		Update("status", models.BetStatusClosed).Error)

	_, err = ResolveBet(db, newTestLogger(), bet.ID, "Yes")
	require.NoError(t, err)
	assert.Equal(t, models.BetStatusResolved, reloadBet(t, db, bet.ID).Status)
}

func TestResolveBetComparesNumericOutcomesByValue(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice", 1000)
	bet := createRangeBet(t, db, "How many speeches?", 0, 20)

	// Wager stored via the string form, settlement declared as a number.
	_, err := PlaceWager(db, alice.ID, bet.ID, "7.0", 100)
	require.NoError(t, err)

	summary, err := ResolveBet(db, newTestLogger(), bet.ID, float64(7))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Winners)
	assert.Equal(t, int64(1000), reloadUser(t, db, alice.ID).Balance, "sole winner gets the pool back")
}

func TestResolveBetRejectsOutcomeOutsideOptionSet(t *testing.T) {
	db := newTestDB(t)
	bet := createOptionsBet(t, db, "Veil?", "Yes", "No")

	_, err := ResolveBet(db, newTestLogger(), bet.ID, "Maybe")
	require.ErrorIs(t, err, common.ErrInvalidOutcome)
	assert.Equal(t, models.BetStatusOpen, reloadBet(t, db, bet.ID).Status)
}

func TestResolveBetUnknownBet(t *testing.T) {
	db := newTestDB(t)
	_, err := ResolveBet(db, newTestLogger(), 9999, "Yes")
	require.ErrorIs(t, err, common.ErrBetNotFound)
}
