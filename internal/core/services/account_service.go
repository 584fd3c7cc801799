package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shulebooks/sba_backend/internal/apperrors"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/dto"
	"github.com/shulebooks/sba_backend/internal/middleware"
)

// ErrAccountReferenced is returned when deleting or re-coding an account that
// journal lines already reference.
var ErrAccountReferenced = fmt.Errorf("%w: account is referenced by journal lines", apperrors.ErrConflict)

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a chart-of-accounts entry. The code must be unique.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves one account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountsByIDs retrieves accounts keyed by ID; missing IDs are absent from
// the map.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves accounts, optionally filtered by classification.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	if params.AccountType != "" && !domain.AccountType(params.AccountType).IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, params.AccountType)
	}
	return s.accountRepo.ListAccounts(ctx, params.AccountType)
}

// UpdateAccount updates an account. The code is immutable once journal lines
// reference the account.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != account.Code {
		referenced, err := s.accountRepo.HasJournalLines(ctx, accountID)
		if err != nil {
			logger.Error("Failed to check journal line references", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to check account references: %w", err)
		}
		if referenced {
			return nil, ErrAccountReferenced
		}
		account.Code = *req.Code
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
		}
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// DeleteAccount removes an account unless journal lines reference it.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	referenced, err := s.accountRepo.HasJournalLines(ctx, accountID)
	if err != nil {
		logger.Error("Failed to check journal line references", slog.String("error", err.Error()))
		return fmt.Errorf("failed to check account references: %w", err)
	}
	if referenced {
		return ErrAccountReferenced
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}
	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}
