package testutil

import (
	"betbook/domain/entities"

	"github.com/shopspring/decimal"
)

// CreateTestUser returns a user entity with sane defaults for tests
func CreateTestUser(username string) *entities.User {
	return &entities.User{
		Username:     username,
		PasswordHash: "$2a$04$testhashtesthashtesthashtesthashtesthashtesthashtesth",
		Role:         entities.RoleUser,
		Balance:      1000,
	}
}

// CreateTestEvent returns an open event entity for tests
func CreateTestEvent(name string) *entities.Event {
	description := "test event"
	return &entities.Event{
		Name:        name,
		Description: &description,
		Status:      entities.EventStatusOpen,
	}
}

// CreateTestOptions returns a pair of options with distinct odds
func CreateTestOptions(names ...string) []*entities.EventOption {
	if len(names) == 0 {
		names = []string{"Red", "Blue"}
	}
	odds := []string{"1.80", "2.20", "3.50", "5.00"}
	options := make([]*entities.EventOption, 0, len(names))
	for i, name := range names {
		options = append(options, &entities.EventOption{
			Name: name,
			Odds: decimal.RequireFromString(odds[i%len(odds)]),
		})
	}
	return options
}
