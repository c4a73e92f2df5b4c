package api

import (
	"time"

	"betbook/domain/entities"
	"betbook/domain/interfaces"

	"github.com/shopspring/decimal"
)

// Request bodies

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type optionInput struct {
	Name string          `json:"name" validate:"required,max=255"`
	Odds decimal.Decimal `json:"odds" validate:"required"`
}

type createEventRequest struct {
	Name        string        `json:"name" validate:"required,max=255"`
	Description *string       `json:"description"`
	Options     []optionInput `json:"options" validate:"required,min=2,dive"`
}

// updateOptionInput carries the new display name of an option at its
// position; an empty name leaves that option untouched.
type updateOptionInput struct {
	Name string `json:"name" validate:"max=255"`
}

// updateEventRequest renames the event and/or its options. When options are
// submitted the full set must be present, since names are matched by
// position. Status is accepted for wire compatibility but ignored; lifecycle
// changes go through the close endpoint.
type updateEventRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Options     []updateOptionInput `json:"options" validate:"omitempty,min=2,dive"`
	Status      *string             `json:"status"`
}

type closeEventRequest struct {
	FinalResult string `json:"finalResult" validate:"required"`
}

type placeBetRequest struct {
	EventID        string `json:"eventId" validate:"required,uuid"`
	SelectedOption string `json:"selectedOption" validate:"required"`
	Amount         int64  `json:"amount" validate:"required,gt=0"`
}

// Response bodies

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type optionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Odds string `json:"odds"`
}

type eventResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Status      string           `json:"status"`
	FinalResult *string          `json:"finalResult,omitempty"`
	Options     []optionResponse `json:"options"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type betResponse struct {
	ID             string    `json:"id"`
	EventID        string    `json:"eventId"`
	SelectedOption string    `json:"selectedOption"`
	Odds           string    `json:"odds"`
	Amount         int64     `json:"amount"`
	Status         string    `json:"status"`
	Profit         *int64    `json:"profit,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type settlementResponse struct {
	Event        eventResponse  `json:"event"`
	FinalResult  optionResponse `json:"finalResult"`
	Winners      int            `json:"winners"`
	Losers       int            `json:"losers"`
	TotalPaidOut int64          `json:"totalPaidOut"`
}

type balanceHistoryResponse struct {
	ID              int64     `json:"id"`
	BalanceBefore   int64     `json:"balanceBefore"`
	BalanceAfter    int64     `json:"balanceAfter"`
	ChangeAmount    int64     `json:"changeAmount"`
	TransactionType string    `json:"transactionType"`
	RelatedID       *string   `json:"relatedId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Converters

func (r updateEventRequest) optionNames() []string {
	names := make([]string, 0, len(r.Options))
	for _, option := range r.Options {
		names = append(names, option.Name)
	}
	return names
}

func (r createEventRequest) toServiceOptions() []interfaces.OptionInput {
	options := make([]interfaces.OptionInput, 0, len(r.Options))
	for _, option := range r.Options {
		options = append(options, interfaces.OptionInput{
			Name: option.Name,
			Odds: option.Odds,
		})
	}
	return options
}

func toUserResponse(user *entities.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		Balance:   user.Balance,
		CreatedAt: user.CreatedAt,
	}
}

func toUserResponses(users []*entities.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	return out
}

func toOptionResponse(option *entities.EventOption) optionResponse {
	return optionResponse{
		ID:   option.ID,
		Name: option.Name,
		Odds: option.Odds.StringFixed(2),
	}
}

func toEventResponse(detail *entities.EventDetail) eventResponse {
	options := make([]optionResponse, 0, len(detail.Options))
	for _, option := range detail.Options {
		options = append(options, toOptionResponse(option))
	}
	return eventResponse{
		ID:          detail.Event.ID,
		Name:        detail.Event.Name,
		Description: detail.Event.Description,
		Status:      string(detail.Event.Status),
		FinalResult: detail.Event.FinalResult,
		Options:     options,
		CreatedAt:   detail.Event.CreatedAt,
		UpdatedAt:   detail.Event.UpdatedAt,
	}
}

func toEventResponses(details []*entities.EventDetail) []eventResponse {
	out := make([]eventResponse, 0, len(details))
	for _, detail := range details {
		out = append(out, toEventResponse(detail))
	}
	return out
}

func toBetResponse(bet *entities.Bet) betResponse {
	return betResponse{
		ID:             bet.ID,
		EventID:        bet.EventID,
		SelectedOption: bet.SelectedOption,
		Odds:           bet.Odds.StringFixed(2),
		Amount:         bet.Amount,
		Status:         string(bet.Status),
		Profit:         bet.Profit,
		CreatedAt:      bet.CreatedAt,
	}
}

func toBetResponses(bets []*entities.Bet) []betResponse {
	out := make([]betResponse, 0, len(bets))
	for _, bet := range bets {
		out = append(out, toBetResponse(bet))
	}
	return out
}

func toSettlementResponse(result *entities.SettlementResult) settlementResponse {
	return settlementResponse{
		Event: toEventResponse(&entities.EventDetail{
			Event:   result.Event,
			Options: []*entities.EventOption{result.WinningOption},
		}),
		FinalResult:  toOptionResponse(result.WinningOption),
		Winners:      len(result.Winners),
		Losers:       len(result.Losers),
		TotalPaidOut: result.TotalPaidOut,
	}
}

func toBalanceHistoryResponses(entries []*entities.BalanceHistory) []balanceHistoryResponse {
	out := make([]balanceHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, balanceHistoryResponse{
			ID:              entry.ID,
			BalanceBefore:   entry.BalanceBefore,
			BalanceAfter:    entry.BalanceAfter,
			ChangeAmount:    entry.ChangeAmount,
			TransactionType: string(entry.TransactionType),
			RelatedID:       entry.RelatedID,
			CreatedAt:       entry.CreatedAt,
		})
	}
	return out
}
