package entities

import (
	"errors"
	"time"
)

// BalanceHistory represents a historical balance change
type BalanceHistory struct {
	ID              int64           `db:"id"`
	UserID          string          `db:"user_id"`
	BalanceBefore   int64           `db:"balance_before"`
	BalanceAfter    int64           `db:"balance_after"`
	ChangeAmount    int64           `db:"change_amount"`
	TransactionType TransactionType `db:"transaction_type"`
	RelatedID       *string         `db:"related_id"`
	CreatedAt       time.Time       `db:"created_at"`
}

// ValidateTransaction checks the entry's arithmetic and that its direction
// matches the transaction type before it is written to the ledger
func (bh *BalanceHistory) ValidateTransaction() error {
	if bh.ChangeAmount == 0 {
		return errors.New("change amount cannot be zero")
	}
	if bh.BalanceAfter != bh.BalanceBefore+bh.ChangeAmount {
		return errors.New("balance calculation is inconsistent")
	}
	if bh.TransactionType.IsCredit() != (bh.ChangeAmount > 0) {
		return errors.New("change direction does not match transaction type")
	}
	return nil
}
