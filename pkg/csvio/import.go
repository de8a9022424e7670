package csvio

import (
	"strings"

	"github.com/leadpilot-inc/lead-engine/pkg/apperrors"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// DefaultStatus is assigned to imported rows without a status column.
const DefaultStatus = "new"

// ImportLeads parses CSV text into lead rows for the bulk insert. The format
// deliberately matches the dashboard's importer: naive line/comma splitting
// (embedded commas and newlines inside quotes are not handled), a
// case-insensitive quote-stripped header row with a fixed alias set, and
// unrecognized headers ignored. Rows missing all of company, contact and
// email are silently dropped; only the aggregate count is reported.
func ImportLeads(text string) ([]models.NewLead, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return nil, apperrors.ErrEmptyCSV
	}

	headers := splitRow(lines[0])
	for i, h := range headers {
		headers[i] = strings.ToLower(h)
	}

	var leads []models.NewLead
	for _, row := range lines[1:] {
		values := splitRow(row)

		var lead models.NewLead
		for i, header := range headers {
			if i >= len(values) || values[i] == "" {
				continue
			}
			value := values[i]
			switch header {
			case "company", "company_name":
				lead.CompanyName = &value
			case "contact", "contact_name", "name":
				lead.ContactName = &value
			case "phone", "phone_number":
				lead.PhoneNumber = &value
			case "email", "email_address":
				lead.EmailAddress = &value
			case "industry", "industry_sector":
				lead.IndustrySector = &value
			case "source", "lead_source":
				lead.LeadSource = &value
			case "status":
				lead.Status = value
			case "notes", "initial_interest_notes":
				lead.InitialInterestNotes = &value
			case "website":
				lead.Website = &value
			}
		}

		if lead.Status == "" {
			lead.Status = DefaultStatus
		}

		if lead.CompanyName == nil && lead.ContactName == nil && lead.EmailAddress == nil {
			continue
		}
		leads = append(leads, lead)
	}

	if len(leads) == 0 {
		return nil, apperrors.ErrNoValidRows
	}
	return leads, nil
}

// splitRow comma-splits one line, trimming whitespace and stripping every
// double quote from each cell.
func splitRow(line string) []string {
	cells := strings.Split(line, ",")
	for i, cell := range cells {
		cells[i] = strings.ReplaceAll(strings.TrimSpace(cell), `"`, "")
	}
	return cells
}
