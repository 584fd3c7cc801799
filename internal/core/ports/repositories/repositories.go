// Package repositories defines the persistence ports the services depend on.
// Implementations live under internal/repositories/database/pgsql.
package repositories

// RepositoryProvider bundles all repository implementations for injection into
// the service container.
type RepositoryProvider struct {
	AcademicRepo AcademicRepositoryFacade
	AccountRepo  AccountRepositoryFacade
	JournalRepo  JournalRepositoryFacade
	InvoiceRepo  InvoiceRepositoryFacade
	FeeRepo      FeeRepositoryFacade
	StudentRepo  StudentRepositoryFacade
	RecordsRepo  RecordsRepositoryFacade
}
