// Package services defines the service facades the HTTP handlers depend on.
package services

// ServiceContainer bundles all service facades for injection into the route
// registration.
type ServiceContainer struct {
	Academic AcademicSvcFacade
	Account  AccountSvcFacade
	Journal  JournalSvcFacade
	Ledger   LedgerSvcFacade
	Invoice  InvoiceSvcFacade
	Fee      FeeSvcFacade
	Student  StudentSvcFacade
	Records  RecordsSvcFacade
}
