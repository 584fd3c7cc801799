package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	"github.com/shulebooks/sba_backend/internal/dto"
	"github.com/shulebooks/sba_backend/internal/middleware"
	"github.com/shulebooks/sba_backend/internal/utils/accounting"
)

// ledgerService computes the per-account ledger projection from journal data.
// It never writes; repeated calls over unchanged data return identical output.
type ledgerService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetLedger returns journal lines ordered newest-first with a running balance
// per account. The balance applies lines oldest-first under the account's
// normal-balance convention.
func (s *ledgerService) GetLedger(ctx context.Context, params dto.ListLedgerParams) ([]domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.journalRepo.ListLedgerLines(ctx, params.AccountID)
	if err != nil {
		logger.Error("Failed to list ledger lines", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve ledger lines: %w", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	// Rows stay in query order (newest first); balances are computed per
	// account over that account's subsequence.
	indexesByAccount := make(map[string][]int)
	for i, e := range entries {
		indexesByAccount[e.AccountID] = append(indexesByAccount[e.AccountID], i)
	}

	accountIDs := make([]string, 0, len(indexesByAccount))
	for id := range indexesByAccount {
		accountIDs = append(accountIDs, id)
	}
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for ledger projection", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for accountID, indexes := range indexesByAccount {
		acc, found := accountsMap[accountID]
		if !found {
			return nil, fmt.Errorf("account %s referenced by ledger lines was not found", accountID)
		}

		sub := make([]domain.LedgerEntry, len(indexes))
		for j, idx := range indexes {
			sub[j] = entries[idx]
		}
		balances, err := accounting.RunningBalances(sub, acc.AccountType, decimal.Zero)
		if err != nil {
			return nil, fmt.Errorf("failed to compute running balances for account %s: %w", accountID, err)
		}
		for j, idx := range indexes {
			entries[idx].Balance = balances[j]
			entries[idx].AccountCode = acc.Code
		}
	}

	return entries, nil
}
