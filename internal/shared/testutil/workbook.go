package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// VolveHeader is the column layout of the production workbook
var VolveHeader = []interface{}{
	"DATEPRD", "NPD_WELL_BORE_NAME", "BORE_OIL_VOL", "BORE_GAS_VOL", "BORE_WAT_VOL",
}

// VolveRows returns a small production history for two wells over two years
func VolveRows() [][]interface{} {
	return [][]interface{}{
		VolveHeader,
		{"2008-01-01", "15/9-F-1 C", 10, 20, 5},
		{"2008-06-01", "15/9-F-1 C", 15, 25, 5},
		{"2009-03-15", "15/9-F-1 C", 7.5, 12, 2},
		{"2008-02-01", "15/9-F-11", 100, 900, 0},
		{"2009-02-01", "15/9-F-11", 80, 700, 40},
	}
}

// WriteWorkbook writes rows to a fresh workbook in a temporary directory
// and returns its path. The first row is the header.
func WriteWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		idx, err := f.NewSheet(sheet)
		require.NoError(t, err)
		f.SetActiveSheet(idx)
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	path := filepath.Join(t.TempDir(), "production.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
