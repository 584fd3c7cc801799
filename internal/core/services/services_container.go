package services

import (
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first since journal and ledger depend on it
	container.Account = NewAccountService(repos.AccountRepo)

	container.Academic = NewAcademicService(repos.AcademicRepo)
	container.Student = NewStudentService(repos.StudentRepo)
	container.Journal = NewJournalService(repos.JournalRepo, container.Account)
	container.Ledger = NewLedgerService(repos.JournalRepo, container.Account)
	container.Fee = NewFeeService(repos.FeeRepo, repos.AcademicRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.FeeRepo, repos.StudentRepo)
	container.Records = NewRecordsService(repos.RecordsRepo, repos.StudentRepo, repos.AccountRepo)

	return container
}
