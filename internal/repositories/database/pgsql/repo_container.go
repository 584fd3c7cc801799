package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AcademicRepo: newPgxAcademicRepository(dbPool),
		AccountRepo:  newPgxAccountRepository(dbPool),
		JournalRepo:  newPgxJournalRepository(dbPool),
		InvoiceRepo:  newPgxInvoiceRepository(dbPool),
		FeeRepo:      newPgxFeeRepository(dbPool),
		StudentRepo:  newPgxStudentRepository(dbPool),
		RecordsRepo:  newPgxRecordsRepository(dbPool),
	}
}
