package domain

// Student is the billed party on invoices and payments.
type Student struct {
	StudentID       string `json:"studentID"` // Primary key (UUID)
	AdmissionNumber string `json:"admissionNumber"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ClassLevel      string `json:"classLevel"` // e.g. "FORM-1", matched by fee structures
	AcademicYearID  string `json:"academicYearID"`
	IsActive        bool   `json:"isActive"`
	AuditFields
}
