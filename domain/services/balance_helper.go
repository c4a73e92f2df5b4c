package services

import (
	"context"
	"fmt"

	"betbook/domain/entities"
	"betbook/domain/interfaces"
)

// applyBalanceChange adjusts a user's balance and records the change in the
// audit trail. Both writes run against the caller's repositories, so inside a
// unit of work they commit or roll back together.
func applyBalanceChange(
	ctx context.Context,
	userRepo interfaces.UserRepository,
	historyRepo interfaces.BalanceHistoryRepository,
	userID string,
	change int64,
	transactionType entities.TransactionType,
	relatedID *string,
) (int64, error) {
	newBalance, err := userRepo.AdjustBalance(ctx, userID, change)
	if err != nil {
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}

	history := &entities.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   newBalance - change,
		BalanceAfter:    newBalance,
		ChangeAmount:    change,
		TransactionType: transactionType,
		RelatedID:       relatedID,
	}
	if err := history.ValidateTransaction(); err != nil {
		return 0, fmt.Errorf("failed to record balance change: %w", err)
	}
	if err := historyRepo.Record(ctx, history); err != nil {
		return 0, fmt.Errorf("failed to record balance change: %w", err)
	}

	return newBalance, nil
}
