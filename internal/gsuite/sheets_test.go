package gsuite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aydocorp/portal-api/internal/domain"
)

func TestRowFromCellsNewRowDefaultsActive(t *testing.T) {
	columns := columnIndex([]interface{}{"ID", "Full Name", "Rank", "Department"})
	row := rowFromCells(columns, []interface{}{"", "Jane Doe", "Intern", "General"})

	assert.Empty(t, row.ID)
	assert.Equal(t, "Jane Doe", row.FullName)
	assert.Equal(t, "Intern", row.Rank)
	assert.Equal(t, "General", row.Department)
	assert.True(t, row.IsActive, "rows without an active cell are active")
	assert.Nil(t, row.Specializations)
	assert.Nil(t, row.LastActiveAt)
}

func TestRowFromCellsCoercions(t *testing.T) {
	columns := columnIndex([]interface{}{
		"id", "fullName", "specializations", "contactInfo", "isActive", "lastActive",
	})
	row := rowFromCells(columns, []interface{}{
		"emp-1",
		"Kaze Nakamura",
		"Mining, Salvage , Escort",
		`{"discord":"kaze#1","rsi_handle":"kaze","email":"kaze@aydocorp.space"}`,
		"false",
		"2026-01-15",
	})

	assert.Equal(t, "emp-1", row.ID)
	assert.Equal(t, "Kaze Nakamura", row.FullName)
	assert.Equal(t, []string{"Mining", "Salvage", "Escort"}, row.Specializations)
	assert.Equal(t, domain.ContactInfo{Discord: "kaze#1", RSIHandle: "kaze", Email: "kaze@aydocorp.space"}, row.Contact)
	assert.False(t, row.IsActive)
	require.NotNil(t, row.LastActiveAt)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), row.LastActiveAt.UTC())
}

func TestRowFromCellsMalformedContactDegrades(t *testing.T) {
	columns := columnIndex([]interface{}{"full_name", "contact_info"})
	row := rowFromCells(columns, []interface{}{"Jax", "{not json"})
	assert.Equal(t, domain.ContactInfo{}, row.Contact)
}

func TestRowFromCellsShortRowReadsEmpty(t *testing.T) {
	columns := columnIndex([]interface{}{"id", "full_name", "department"})
	row := rowFromCells(columns, []interface{}{"emp-2"})
	assert.Equal(t, "emp-2", row.ID)
	assert.Empty(t, row.FullName)
	assert.Empty(t, row.Department)
}

func TestNormalizeHeaderAliases(t *testing.T) {
	cases := map[string]string{
		"Full Name":      "full_name",
		"fullName":       "full_name",
		"name":           "full_name",
		"Contact":        "contact_info",
		"contactInfo":    "contact_info",
		"Active":         "is_active",
		"isActive":       "is_active",
		"lastActive":     "last_active",
		"last_active_at": "last_active",
		"department":     "department",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeHeader(in), in)
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList("  "))
	assert.Equal(t, []string{"a"}, splitList("a"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a , , b "))
}

func TestParseSheetBool(t *testing.T) {
	for _, s := range []string{"", "true", "TRUE", "yes", "y", "1"} {
		assert.True(t, parseSheetBool(s), s)
	}
	for _, s := range []string{"false", "no", "0", "nonsense"} {
		assert.False(t, parseSheetBool(s), s)
	}
}

func TestParseSheetTime(t *testing.T) {
	assert.Nil(t, parseSheetTime(""))
	assert.Nil(t, parseSheetTime("not a date"))

	for _, s := range []string{"2026-01-15T10:00:00Z", "2026-01-15 10:00:00", "2026-01-15", "1/15/2026"} {
		parsed := parseSheetTime(s)
		require.NotNil(t, parsed, s)
		assert.Equal(t, 2026, parsed.Year(), s)
	}
}
