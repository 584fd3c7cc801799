package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every field a caller may change through the update services must appear in
// the corresponding UPDATE statement, or the change is echoed in the response
// and silently lost on persist.

func TestUpdateJournalQueryPersistsAllUpdatableFields(t *testing.T) {
	for _, column := range []string{
		"journal_date =",
		"description =",
		"posted_by =",
		"academic_year_id =",
		"term_id =",
		"last_updated_at =",
		"last_updated_by =",
	} {
		assert.Contains(t, updateJournalQuery, column)
	}
}

func TestJournalLinesReadInInsertionOrder(t *testing.T) {
	assert.Contains(t, findLinesByJournalIDQuery, "ORDER BY created_at, line_id")
}

func TestUpdateInvoiceQueryPersistsAllUpdatableFields(t *testing.T) {
	for _, column := range []string{
		"total_amount =",
		"status =",
		"due_date =",
		"term_id =",
		"last_updated_at =",
		"last_updated_by =",
	} {
		assert.Contains(t, updateInvoiceQuery, column)
	}
}
