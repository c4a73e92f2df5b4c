package services

import (
	"context"
	"fmt"
	"strings"

	"betbook/config"
	"betbook/domain"
	"betbook/domain/entities"
	"betbook/domain/interfaces"

	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	config             *config.Config
	userRepo           interfaces.UserRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo interfaces.UserRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
) interfaces.UserService {
	return &userService{
		config:             config.Get(),
		userRepo:           userRepo,
		balanceHistoryRepo: balanceHistoryRepo,
	}
}

// Register creates a user with the configured starting balance
func (s *userService) Register(ctx context.Context, username, password string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return nil, fmt.Errorf("username must be at least 3 characters")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         entities.RoleUser,
		Balance:      s.config.StartingBalance,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if user.Balance > 0 {
		history := &entities.BalanceHistory{
			UserID:          user.ID,
			BalanceBefore:   0,
			BalanceAfter:    user.Balance,
			ChangeAmount:    user.Balance,
			TransactionType: entities.TransactionTypeInitial,
		}
		if err := s.balanceHistoryRepo.Record(ctx, history); err != nil {
			return nil, fmt.Errorf("failed to record initial balance: %w", err)
		}
	}

	return user, nil
}

// Authenticate verifies credentials and returns the user
func (s *userService) Authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user", id)
	}
	return user, nil
}

// ListUsers retrieves all users
func (s *userService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetBalanceHistory retrieves the most recent balance changes for a user
func (s *userService) GetBalanceHistory(ctx context.Context, userID string, limit int) ([]*entities.BalanceHistory, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	entries, err := s.balanceHistoryRepo.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history: %w", err)
	}
	return entries, nil
}
