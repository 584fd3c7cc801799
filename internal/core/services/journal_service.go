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
	"github.com/shulebooks/sba_backend/internal/utils/accounting"
)

var (
	// ErrJournalUnbalanced is returned when the supplied lines' debit total does
	// not equal their credit total.
	ErrJournalUnbalanced = fmt.Errorf("%w: journal lines do not balance", apperrors.ErrValidation)
	// ErrLineDebitAndCredit is returned when a single line carries both a debit
	// and a credit amount.
	ErrLineDebitAndCredit = fmt.Errorf("%w: journal line carries both debit and credit", apperrors.ErrValidation)
	// ErrLineEmpty is returned when a line carries neither side.
	ErrLineEmpty = fmt.Errorf("%w: journal line carries neither debit nor credit", apperrors.ErrValidation)
	// ErrLineNegative is returned when a line carries a negative amount.
	ErrLineNegative = fmt.Errorf("%w: journal line amounts must not be negative", apperrors.ErrValidation)
	// ErrNotPosted is returned when mutating a journal that is not in POSTED state.
	ErrNotPosted = fmt.Errorf("%w: journal must be posted", apperrors.ErrConflict)
)

// journalService composes journal entries and their lines.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateLineShapes enforces the composer's per-line rules.
func validateLineShapes(lines []domain.JournalLine) error {
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: account %s", ErrLineNegative, line.AccountID)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return fmt.Errorf("%w: account %s", ErrLineEmpty, line.AccountID)
		}
		if !line.Debit.IsZero() && !line.Credit.IsZero() {
			return fmt.Errorf("%w: account %s", ErrLineDebitAndCredit, line.AccountID)
		}
	}
	return nil
}

// validateJournalBalance checks that the line set balances.
func validateJournalBalance(lines []domain.JournalLine) error {
	debits, credits := accounting.SumDebitsAndCredits(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			ErrJournalUnbalanced, debits.String(), credits.String())
	}
	return nil
}

// CreateJournal creates a new journal entry with its lines after validation.
// Lines are optional; an entry with lines has them persisted atomically with
// the parent, so a caller never observes a partially-inserted line set.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	journalID := uuid.NewString()

	domainLines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		domainLines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			JournalID: journalID,
			AccountID: lineReq.AccountID,
			Debit:     lineReq.Debit,
			Credit:    lineReq.Credit,
			Notes:     lineReq.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	if len(domainLines) > 0 {
		if err := validateLineShapes(domainLines); err != nil {
			return nil, err
		}
		if err := validateJournalBalance(domainLines); err != nil {
			return nil, err
		}

		uniqueAccountIDs := uniqueStrings(accountIDs)
		accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, uniqueAccountIDs)
		if err != nil {
			logger.Error("Failed to fetch accounts for journal creation", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to fetch accounts: %w", err)
		}
		for _, id := range uniqueAccountIDs {
			acc, found := accountsMap[id]
			if !found {
				return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
			}
			if !acc.IsActive {
				return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
			}
		}
	}

	domainJournal := domain.Journal{
		JournalID:      journalID,
		JournalDate:    req.Date,
		Description:    req.Description,
		PostedBy:       req.PostedBy,
		AcademicYearID: req.AcademicYearID,
		TermID:         req.TermID,
		Status:         domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, domainJournal, domainLines); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("Journal created successfully", slog.String("journal_id", journalID), slog.Int("line_count", len(domainLines)))
	domainJournal.Lines = domainLines
	return &domainJournal, nil
}

// GetJournalByID retrieves a journal entry together with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal by ID", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch lines for journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve lines for journal %s: %w", journalID, apperrors.ErrInternal)
	}
	journal.Lines = lines

	return journal, nil
}

// ListJournals retrieves journals filtered by academic year and term.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) ([]domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journals, err := s.journalRepo.ListJournals(ctx, params)
	if err != nil {
		logger.Error("Failed to list journals from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}
	return journals, nil
}

// UpdateJournal updates entry-level fields of a journal. Lines are a separate
// resource and their mutation does not pass through here.
func (s *journalService) UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	if journal.Status != domain.Posted {
		return nil, ErrNotPosted
	}

	updated := false
	if req.Date != nil {
		journal.JournalDate = *req.Date
		updated = true
	}
	if req.Description != nil {
		journal.Description = *req.Description
		updated = true
	}
	if req.PostedBy != nil {
		journal.PostedBy = *req.PostedBy
		updated = true
	}
	if req.AcademicYearID != nil {
		journal.AcademicYearID = *req.AcademicYearID
		updated = true
	}
	if req.TermID != nil {
		journal.TermID = *req.TermID
		updated = true
	}
	if !updated {
		return journal, nil
	}

	journal.LastUpdatedAt = time.Now().UTC()
	journal.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateJournal(ctx, *journal); err != nil {
		logger.Error("Failed to save journal update", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to save journal update: %w", err)
	}
	return journal, nil
}

// DeleteJournal removes a journal and its lines.
func (s *journalService) DeleteJournal(ctx context.Context, journalID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.journalRepo.DeleteJournal(ctx, journalID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return err
	}
	logger.Info("Journal deleted", slog.String("journal_id", journalID))
	return nil
}

// UpdateJournalLine mutates a single line. The parent's balance is not
// re-validated here; line edits are an administrative correction path.
func (s *journalService) UpdateJournalLine(ctx context.Context, lineID string, req dto.UpdateJournalLineRequest, userID string) (*domain.JournalLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	line, err := s.journalRepo.FindLineByID(ctx, lineID)
	if err != nil {
		return nil, err
	}

	if req.AccountID != nil {
		line.AccountID = *req.AccountID
	}
	if req.Debit != nil {
		line.Debit = *req.Debit
	}
	if req.Credit != nil {
		line.Credit = *req.Credit
	}
	if req.Notes != nil {
		line.Notes = *req.Notes
	}

	if err := validateLineShapes([]domain.JournalLine{*line}); err != nil {
		return nil, err
	}

	line.LastUpdatedAt = time.Now().UTC()
	line.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateJournalLine(ctx, *line); err != nil {
		logger.Error("Failed to update journal line", slog.String("error", err.Error()), slog.String("line_id", lineID))
		return nil, fmt.Errorf("failed to update journal line: %w", err)
	}
	return line, nil
}

// ReverseJournal creates a new journal whose lines mirror a posted journal's
// debits and credits, then marks the original REVERSED.
func (s *journalService) ReverseJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: journal status is %s, expected POSTED", apperrors.ErrConflict, original.Status)
	}
	if original.OriginalJournalID != nil {
		return nil, fmt.Errorf("%w: cannot reverse a journal that is already a reversal", apperrors.ErrConflict)
	}

	originalLines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch original lines for reversal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve original lines: %w", err)
	}

	now := time.Now().UTC()
	newJournalID := uuid.NewString()

	reversing := domain.Journal{
		JournalID:         newJournalID,
		JournalDate:       original.JournalDate,
		Description:       fmt.Sprintf("Reversal of: %s", original.Description),
		PostedBy:          userID,
		AcademicYearID:    original.AcademicYearID,
		TermID:            original.TermID,
		Status:            domain.Posted,
		OriginalJournalID: &original.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	reversingLines := make([]domain.JournalLine, len(originalLines))
	for i, origLine := range originalLines {
		// Swap the sides.
		reversingLines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			JournalID: newJournalID,
			AccountID: origLine.AccountID,
			Debit:     origLine.Credit,
			Credit:    origLine.Debit,
			Notes:     origLine.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.journalRepo.SaveJournal(ctx, reversing, reversingLines); err != nil {
		logger.Error("Failed to save reversing journal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save reversing journal: %w", err)
	}

	if err := s.journalRepo.UpdateJournalStatusAndLinks(ctx, original.JournalID, domain.Reversed, &newJournalID, userID, now); err != nil {
		logger.Error("Failed to update original journal status after reversal",
			slog.String("original_journal_id", original.JournalID), slog.String("reversing_journal_id", newJournalID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update original journal status: %w", err)
	}

	logger.Info("Journal reversed successfully", slog.String("reversing_journal_id", newJournalID))
	reversing.Lines = reversingLines
	return &reversing, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
