package production

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"volvedash/pkg/contracts/domain"
)

// RequiredColumns must be present in the workbook header.
var RequiredColumns = []string{
	domain.ColumnDate,
	domain.ColumnWellBore,
	domain.ColumnBoreOil,
	domain.ColumnBoreGas,
	domain.ColumnBoreWat,
}

// Loader produces the raw production table.
type Loader interface {
	Load(ctx context.Context) (*Table, error)
}

// WorkbookLoader reads the production table from an .xlsx workbook.
type WorkbookLoader struct {
	Path string
	// Sheet is read when set; otherwise the first sheet of the workbook.
	Sheet string

	logger *slog.Logger
}

// NewWorkbookLoader creates a loader for the workbook at path.
func NewWorkbookLoader(path, sheet string, logger *slog.Logger) *WorkbookLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookLoader{
		Path:   path,
		Sheet:  sheet,
		logger: logger.With(slog.String("component", "workbook_loader")),
	}
}

// Load opens the workbook and returns its production sheet as a Table. The
// optional Year column is coerced to numbers; cells that are not numeric
// become empty.
func (l *WorkbookLoader) Load(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(l.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, l.Path)
		}
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnreadable, err)
	}

	f, err := excelize.OpenFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDatasetUnreadable, l.Path, err)
	}
	defer f.Close()

	sheet := l.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrDatasetUnreadable)
		}
		sheet = sheets[0]
	}

	// Raw values keep dates as serial numbers instead of the cell's display format.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrDatasetUnreadable, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrDatasetUnreadable, sheet)
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	if err := checkSchema(header); err != nil {
		l.logger.WarnContext(ctx, "workbook schema mismatch",
			slog.String("path", l.Path),
			slog.String("sheet", sheet),
			slog.String("error", err.Error()))
		return nil, err
	}

	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		body = append(body, row)
	}

	table := NewTable(header, body)
	if idx := table.Index(domain.ColumnYear); idx >= 0 {
		for _, row := range table.Rows {
			row[idx] = coerceNumeric(row[idx])
		}
	}

	l.logger.InfoContext(ctx, "workbook loaded",
		slog.String("path", l.Path),
		slog.String("sheet", sheet),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)))

	return table, nil
}

// checkSchema verifies the required columns exist and that no column name
// would collide with another once the bore columns are renamed.
func checkSchema(header []string) error {
	seen := make(map[string]bool, len(header))
	schemaErr := &SchemaError{}

	for _, name := range header {
		if name == "" {
			continue
		}
		if seen[name] {
			schemaErr.Conflicting = append(schemaErr.Conflicting, name)
		}
		seen[name] = true
	}

	for _, name := range RequiredColumns {
		if !seen[name] {
			schemaErr.Missing = append(schemaErr.Missing, name)
		}
	}

	for _, rename := range Renames {
		if seen[rename.From] && seen[rename.To] {
			schemaErr.Conflicting = append(schemaErr.Conflicting, rename.To)
		}
	}

	if len(schemaErr.Missing) > 0 || len(schemaErr.Conflicting) > 0 {
		return schemaErr
	}
	return nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// coerceNumeric normalises a numeric cell and blanks anything else.
func coerceNumeric(cell string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
