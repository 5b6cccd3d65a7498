package gsuite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/aydocorp/portal-api/internal/domain"
)

// EmployeeRow is an employee record as read from (or written to) the org
// roster spreadsheet. The ID column is blank for rows that have not yet been
// imported into the database.
type EmployeeRow struct {
	ID              string
	FullName        string
	Backstory       string
	Rank            string
	Department      string
	Specializations []string
	Certifications  []string
	Contact         domain.ContactInfo
	IsActive        bool
	LastActiveAt    *time.Time
}

// EmployeeSheet reads and rewrites the roster spreadsheet.
type EmployeeSheet struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewEmployeeSheet builds a sheet client against the configured spreadsheet.
func NewEmployeeSheet(ctx context.Context, credentialsJSON, spreadsheetID, sheetName string) (*EmployeeSheet, error) {
	httpClient, err := NewServiceAccountClient(ctx, credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, err
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}
	if sheetName == "" {
		sheetName = "Employees"
	}
	return &EmployeeSheet{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// sheetHeaders is the canonical column order used when rewriting the sheet.
var sheetHeaders = []string{
	"id", "full_name", "backstory", "rank", "department",
	"specializations", "certifications", "contact_info", "is_active", "last_active",
}

// ListAll reads the header row to establish the column mapping, then converts
// every data row into an EmployeeRow. API failures propagate to the caller.
func (s *EmployeeSheet) ListAll(ctx context.Context) ([]EmployeeRow, error) {
	readRange := fmt.Sprintf("%s!A1:Z", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read employee sheet: %w", err)
	}
	if len(resp.Values) < 2 {
		return nil, nil
	}

	columns := columnIndex(resp.Values[0])

	rows := make([]EmployeeRow, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := rowFromCells(columns, raw)
		if row.FullName == "" && row.ID == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columnIndex maps normalized header names to their column positions.
func columnIndex(header []interface{}) map[string]int {
	columns := make(map[string]int, len(header))
	for idx, cell := range header {
		columns[normalizeHeader(fmt.Sprint(cell))] = idx
	}
	return columns
}

// rowFromCells converts one data row into an EmployeeRow. Cells absent from
// the row or the header read as empty strings.
func rowFromCells(columns map[string]int, raw []interface{}) EmployeeRow {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(raw) {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(raw[idx]))
	}

	row := EmployeeRow{
		ID:              cell("id"),
		FullName:        cell("full_name"),
		Backstory:       cell("backstory"),
		Rank:            cell("rank"),
		Department:      cell("department"),
		Specializations: splitList(cell("specializations")),
		Certifications:  splitList(cell("certifications")),
		IsActive:        parseSheetBool(cell("is_active")),
		LastActiveAt:    parseSheetTime(cell("last_active")),
	}
	// Malformed contact JSON degrades to an empty record.
	if contactRaw := cell("contact_info"); contactRaw != "" {
		var contact domain.ContactInfo
		if err := json.Unmarshal([]byte(contactRaw), &contact); err == nil {
			row.Contact = contact
		}
	}
	return row
}

// ReplaceAll rewrites the sheet with the given rows. This is a full replace
// of prior content, not an incremental patch.
func (s *EmployeeSheet) ReplaceAll(ctx context.Context, rows []EmployeeRow) error {
	values := make([][]interface{}, 0, len(rows)+1)
	header := make([]interface{}, len(sheetHeaders))
	for i, h := range sheetHeaders {
		header[i] = h
	}
	values = append(values, header)

	for _, row := range rows {
		contact, err := json.Marshal(row.Contact)
		if err != nil {
			return err
		}
		lastActive := ""
		if row.LastActiveAt != nil {
			lastActive = row.LastActiveAt.UTC().Format(time.RFC3339)
		}
		values = append(values, []interface{}{
			row.ID,
			row.FullName,
			row.Backstory,
			row.Rank,
			row.Department,
			strings.Join(row.Specializations, ", "),
			strings.Join(row.Certifications, ", "),
			string(contact),
			fmt.Sprint(row.IsActive),
			lastActive,
		})
	}

	clearRange := fmt.Sprintf("%s!A1:Z", s.sheetName)
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear employee sheet: %w", err)
	}

	writeRange := fmt.Sprintf("%s!A1", s.sheetName)
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("rewrite employee sheet: %w", err)
	}
	return nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	switch h {
	case "fullname", "name":
		return "full_name"
	case "contact", "contactinfo":
		return "contact_info"
	case "active", "isactive":
		return "is_active"
	case "lastactive", "last_active_at":
		return "last_active"
	}
	return h
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseSheetBool treats an empty cell as true: roster rows are active unless
// explicitly marked otherwise.
func parseSheetBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "true", "yes", "y", "1":
		return true
	default:
		return false
	}
}

var sheetTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
}

func parseSheetTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range sheetTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
