package csvio

import (
	"strings"
	"time"

	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// exportHeaders is the fixed 10-column export header row.
var exportHeaders = []string{
	"Company Name",
	"Contact Name",
	"Phone Number",
	"Email Address",
	"Industry Sector",
	"Lead Source",
	"Status",
	"Initial Interest Notes",
	"Website",
	"Created At",
}

// ExportLeads serializes leads into the dashboard's export format: every
// field double-quote-wrapped with embedded quotes doubled. encoding/csv is
// not used because it only quotes fields that need it, and the consumers of
// this file expect the always-quoted layout.
func ExportLeads(leads []*models.Lead) string {
	rows := make([]string, 0, len(leads)+1)
	rows = append(rows, strings.Join(exportHeaders, ","))

	for _, lead := range leads {
		createdAt := ""
		if lead.CreatedAt != nil {
			createdAt = lead.CreatedAt.Format(time.RFC3339)
		}
		cells := []string{
			quote(deref(lead.CompanyName)),
			quote(deref(lead.ContactName)),
			quote(deref(lead.PhoneNumber)),
			quote(deref(lead.EmailAddress)),
			quote(deref(lead.IndustrySector)),
			quote(deref(lead.LeadSource)),
			quote(deref(lead.Status)),
			quote(deref(lead.InitialInterestNotes)),
			quote(deref(lead.Website)),
			quote(createdAt),
		}
		rows = append(rows, strings.Join(cells, ","))
	}

	return strings.Join(rows, "\n")
}

// ExportFilename returns the download name for an export generated at now.
func ExportFilename(now time.Time) string {
	return "leads-export-" + now.Format("2006-01-02") + ".csv"
}

func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
