package entities

// TransactionType represents the type of balance change
type TransactionType string

// All transaction types supported by the system
const (
	TransactionTypeInitial   TransactionType = "initial"
	TransactionTypeBetPlaced TransactionType = "bet_placed"
	TransactionTypeBetWin    TransactionType = "bet_win"
	TransactionTypeBetRefund TransactionType = "bet_refund"
)

// IsCredit returns true if the transaction type adds to the balance
func (tt TransactionType) IsCredit() bool {
	return tt == TransactionTypeInitial ||
		tt == TransactionTypeBetWin ||
		tt == TransactionTypeBetRefund
}
