package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"wedding-rsvp/internal/model"
)

// csvRowData holds formatted data for a single CSV row (one person)
type csvRowData struct {
	inviteCode string
	name       string
	role       string
	responded  string
	ceremony   string
	reception  string
	brunch     string
	food       string
	dietary    string
	contact    string
}

// escapeCSVField escapes a string for CSV format
func escapeCSVField(field string) string {
	// Escape double quotes by doubling them
	escaped := strings.ReplaceAll(field, "\"", "\"\"")
	// Replace newlines with spaces for free-text fields
	escaped = strings.ReplaceAll(escaped, "\n", " ")
	return escaped
}

func formatTriState(b *bool) string {
	switch {
	case b == nil:
		return "-"
	case *b:
		return "Yes"
	default:
		return "No"
	}
}

// formatPersonForCSV converts one person of a household to CSV row data
func formatPersonForCSV(rec *model.HouseholdRecord, p *model.Person, role string) csvRowData {
	row := csvRowData{
		inviteCode: rec.InviteCode,
		name:       escapeCSVField(p.DisplayName()),
		role:       role,
		responded:  "No",
		ceremony:   formatTriState(p.AttendingCeremony),
		reception:  formatTriState(p.AttendingReception),
		brunch:     "-",
		food:       "-",
		dietary:    "-",
		contact:    "-",
	}

	if rec.LastModified != nil {
		row.responded = "Yes"
	}

	if p.AllowedToAttendBrunch {
		row.brunch = formatTriState(p.AttendingBrunch)
	}

	if p.FoodOption != nil {
		row.food = string(*p.FoodOption)
	}

	if p.DietaryRestrictions != nil {
		row.dietary = escapeCSVField(*p.DietaryRestrictions)
	}

	if p.ContactInfo != nil {
		row.contact = escapeCSVField(*p.ContactInfo)
	}

	return row
}

// buildCSVRow creates a CSV line from row data
func buildCSVRow(row csvRowData) string {
	return fmt.Sprintf("\"%s\",\"%s\",\"%s\",\"%s\",\"%s\",\"%s\",\"%s\",\"%s\",\"%s\",\"%s\"\n",
		row.inviteCode, row.name, row.role, row.responded,
		row.ceremony, row.reception, row.brunch,
		row.food, row.dietary, row.contact)
}

// writeCSVHeaders sets HTTP headers and writes the CSV header row
func writeCSVHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=rsvp-list.csv")

	// Write UTF-8 BOM for Excel compatibility
	_, _ = w.Write([]byte{0xEF, 0xBB, 0xBF})

	_, _ = w.Write([]byte("Code,Name,Role,Responded,Ceremony,Reception,Brunch,Dinner,Dietary,Contact\n"))
}

// HandleAdminDownloadCSV exports every household, one row per person
func HandleAdminDownloadCSV(s AdminServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.GetStore().ListAll(r.Context())
		if err != nil {
			http.Error(w, "Failed to load households", http.StatusInternalServerError)
			return
		}

		writeCSVHeaders(w)

		for _, rec := range records {
			row := formatPersonForCSV(rec, &rec.Invitee, "invitee")
			_, _ = w.Write([]byte(buildCSVRow(row)))
			for i := range rec.Guests {
				row := formatPersonForCSV(rec, &rec.Guests[i], fmt.Sprintf("guest %d", i+1))
				_, _ = w.Write([]byte(buildCSVRow(row)))
			}
		}
	}
}
