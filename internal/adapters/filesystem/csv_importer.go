// Package filesystem contains file-based adapters for the import
// boundary.
package filesystem

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/example/giftdesk/internal/models"
	"github.com/example/giftdesk/internal/ports/secondary"
)

// CSVImporter reads participant lists from CSV files exported from the
// organizer's spreadsheet. Expected columns, with a header row:
// first_name, last_name, employee_id, person_id. Any column may be
// empty, but every row must carry at least one identifying field.
type CSVImporter struct{}

// NewCSVImporter creates a CSV person importer.
func NewCSVImporter() *CSVImporter {
	return &CSVImporter{}
}

var _ secondary.PersonImporter = (*CSVImporter)(nil)

// Import reads a participant list from a CSV file. The returned
// records carry no PublicIDs; the person service assigns them.
func (i *CSVImporter) Import(_ context.Context, path string) ([]*secondary.PersonRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("import file %s has no data rows", path)
	}

	records := make([]*secondary.PersonRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		rec := &secondary.PersonRecord{
			FirstName:  strings.TrimSpace(row[0]),
			LastName:   strings.TrimSpace(row[1]),
			EmployeeID: strings.TrimSpace(row[2]),
			PersonID:   strings.TrimSpace(row[3]),
		}
		format, err := detectSourceFormat(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		rec.SourceFormat = format
		records = append(records, rec)
	}
	return records, nil
}

// detectSourceFormat tags which identifying fields a row populated.
func detectSourceFormat(rec *secondary.PersonRecord) (string, error) {
	hasName := rec.FirstName != "" || rec.LastName != ""
	switch {
	case hasName && rec.EmployeeID != "" && rec.PersonID != "":
		return models.SourceFormatFull, nil
	case hasName:
		return models.SourceFormatName, nil
	case rec.EmployeeID != "":
		return models.SourceFormatEmployeeID, nil
	case rec.PersonID != "":
		return models.SourceFormatPersonID, nil
	}
	return "", fmt.Errorf("row has no identifying fields")
}
