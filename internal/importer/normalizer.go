// Package importer maps arbitrary spreadsheet rows onto normalized employee
// creation requests. Matching is best-effort: header rows are auto-detected,
// column names are fuzzy-matched and dates are accepted as Excel serials,
// D/M/Y or ISO strings. Rows that still cannot be mapped come back as
// per-row errors, never as a failed batch.
package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/visaflow/backend/internal/models"
)

// Row is a spreadsheet row normalized into an employee creation request.
type Row struct {
	Line    int
	Request models.CreateEmployeeRequest
}

const headerScanLimit = 20

// HeaderRowIndex finds the row that carries the column names. Sheets from
// payroll templates often have title/logo rows above the real header, so the
// first rows are scanned for known column markers. Returns -1 when the sheet
// has nothing that looks like a header.
func HeaderRowIndex(rows [][]string) int {
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		joined := strings.ToLower(strings.Join(rows[i], " "))
		if strings.Contains(joined, "emp id") ||
			strings.Contains(joined, "employee name") ||
			strings.Contains(joined, "designation") {
			return i
		}
	}
	if len(rows) > 0 && len(rows[0]) >= 3 {
		return 0
	}
	return -1
}

// RowMaps converts the rows below the header row into header->value maps,
// dropping rows that are entirely empty.
func RowMaps(rows [][]string, headerIdx int) []map[string]string {
	if headerIdx < 0 || headerIdx >= len(rows) {
		return nil
	}
	header := rows[headerIdx]

	var out []map[string]string
	for _, row := range rows[headerIdx+1:] {
		m := make(map[string]string, len(header))
		empty := true
		for i, h := range header {
			h = strings.TrimSpace(h)
			if h == "" || i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			if v != "" {
				empty = false
			}
			m[h] = v
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

func normalizeKey(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

// findValue locates a cell by trying the given header variations: first an
// exact (case-insensitive) match, then a normalized containment match, e.g.
// "visaexpirydate" contains "visaexpiry".
func findValue(row map[string]string, variations ...string) string {
	for _, v := range variations {
		if val := row[v]; val != "" {
			return val
		}
		want := strings.ToLower(strings.TrimSpace(v))
		for k, val := range row {
			if strings.ToLower(strings.TrimSpace(k)) == want && val != "" {
				return val
			}
		}
	}
	for _, v := range variations {
		nv := normalizeKey(v)
		if nv == "" {
			continue
		}
		for k, val := range row {
			nk := normalizeKey(k)
			if val != "" && (nk == nv || strings.Contains(nk, nv)) {
				return val
			}
		}
	}
	return ""
}

var dmyPattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)

// excelEpochOffset is the number of days between the Excel serial epoch
// (1899-12-30) and the Unix epoch.
const excelEpochOffset = 25569

// ParseDate normalizes a cell value to YYYY-MM-DD, or "" when it cannot be
// read as a date. Accepted: Excel serial numbers, D/M/Y and D-M-Y (the
// common regional form in the source spreadsheets), YYYY-MM-DD and
// YYYY/MM/DD.
func ParseDate(val string) string {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return ""
	}

	if serial, err := strconv.ParseFloat(trimmed, 64); err == nil {
		// Plain numbers between these serials land in 1954..2119; anything
		// outside is more likely a stray figure than a date cell.
		if serial >= 20000 && serial <= 80000 {
			t := time.Unix(int64((serial-excelEpochOffset)*86400), 0).UTC()
			return t.Format("2006-01-02")
		}
		return ""
	}

	if m := dmyPattern.FindStringSubmatch(trimmed); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if t.Day() == day && int(t.Month()) == month {
			return t.Format("2006-01-02")
		}
		return ""
	}

	for _, layout := range []string{"2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// Normalize maps raw header->value rows to creation requests. A row missing
// most of its required fields is treated as filler and skipped silently;
// a partially filled row becomes a per-row error naming what is missing.
func Normalize(records []map[string]string) ([]Row, []models.ImportRowError) {
	var (
		rows    []Row
		rowErrs []models.ImportRowError
	)
	for i, rec := range records {
		rowNum := i + 1

		fullName := findValue(rec, "EMPLOYEE NAME", "Full Name", "Name", "Employee Name")
		empCode := findValue(rec, "EMP ID", "Employee ID", "ID", "Emp No")
		passport := findValue(rec, "Passport Number", "Passport", "Passport No", "PP No")
		visaType := findValue(rec, "DESIGNATION", "Visa Type", "Designation", "Position", "Role")

		visaIssue := ParseDate(findValue(rec, "DOJ(date)", "DOJ", "Date of Joining", "Visa Issue", "Issue Date"))
		visaExpiry := ParseDate(findValue(rec, "VISA EXPIRY DATE", "Visa Expiry", "Visa Exp", "Expiry Date"))
		healthExpiry := ParseDate(findValue(rec, "HEALTH CARD EXP DATE", "Health Card Expiry", "Health Card", "Insurance Exp"))
		labourExpiry := ParseDate(findValue(rec, "LABOUR CARD EXP DATE", "Labour Card Expiry", "Labour Card", "Labour Exp"))

		var missing []string
		if fullName == "" {
			missing = append(missing, "EMPLOYEE NAME")
		}
		if empCode == "" {
			missing = append(missing, "EMP ID")
		}
		if visaIssue == "" {
			missing = append(missing, "DOJ(date)")
		}
		if visaExpiry == "" {
			missing = append(missing, "VISA EXPIRY DATE")
		}
		if healthExpiry == "" {
			missing = append(missing, "HEALTH CARD EXP DATE")
		}
		if labourExpiry == "" {
			missing = append(missing, "LABOUR CARD EXP DATE")
		}

		if len(missing) > 0 {
			if len(missing) >= 5 {
				continue
			}
			rowErrs = append(rowErrs, models.ImportRowError{
				Row:   rowNum,
				Error: "Missing columns or invalid dates: " + strings.Join(missing, ", "),
			})
			continue
		}

		if visaType == "" {
			visaType = "Employment"
		}

		rows = append(rows, Row{
			Line: rowNum,
			Request: models.CreateEmployeeRequest{
				FullName:             fullName,
				EmployeeCode:         empCode,
				PassportNumber:       passport,
				VisaType:             visaType,
				VisaIssueDate:        visaIssue,
				VisaExpiryDate:       visaExpiry,
				HealthCardExpiryDate: healthExpiry,
				LabourCardExpiryDate: labourExpiry,
			},
		})
	}
	return rows, rowErrs
}
