package production

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"volvedash/pkg/contracts/domain"
)

// Rename maps a workbook column to its dashboard short code.
type Rename struct {
	From string
	To   string
}

// Renames is the fixed column mapping applied by RenameColumns.
var Renames = []Rename{
	{From: domain.ColumnBoreOil, To: domain.ColumnVolOil},
	{From: domain.ColumnBoreGas, To: domain.ColumnVolGas},
	{From: domain.ColumnBoreWat, To: domain.ColumnVolWater},
	{From: domain.ColumnWellBore, To: domain.ColumnWell},
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/06",
	"2-Jan-2006",
	"02-Jan-06",
	"2006/01/02",
}

var (
	yearOnly = regexp.MustCompile(`^\d{4}$`)
	// thousands matches numbers grouped as 1,234,567.89
	thousands = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// maxExcelSerial is 9999-12-31, the last date a workbook can hold
const maxExcelSerial = 2958465

// Dataset is the transformed production table together with its typed view.
type Dataset struct {
	Table    *Table                    `json:"-"`
	Records  []domain.ProductionRecord `json:"records"`
	Source   string                    `json:"source"`
	LoadedAt time.Time                 `json:"loaded_at"`
}

// Transform derives Year, renames the bore columns and extracts records.
func Transform(t *Table) (*Dataset, error) {
	if !t.Has(domain.ColumnDate) {
		return nil, &SchemaError{Missing: []string{domain.ColumnDate}}
	}

	out := RenameColumns(DeriveYear(t))

	var missing []string
	for _, name := range append([]string{domain.ColumnWell}, domain.VolumeColumns...) {
		if !out.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	return &Dataset{
		Table:   out,
		Records: Records(out),
	}, nil
}

// DeriveYear returns a copy of t whose Year column holds the calendar year of
// DATEPRD. Rows with an unparseable date get an empty Year.
func DeriveYear(t *Table) *Table {
	dates, ok := t.Column(domain.ColumnDate)
	if !ok {
		return t.Clone()
	}

	years := make([]string, len(dates))
	for i, cell := range dates {
		if d, ok := ParseDate(cell); ok {
			years[i] = strconv.Itoa(d.Year())
		}
	}
	return t.withColumn(domain.ColumnYear, years)
}

// RenameColumns returns a copy of t with the bore columns renamed to their
// short codes. Columns without a mapping keep their name.
func RenameColumns(t *Table) *Table {
	out := t.Clone()
	for i, name := range out.Columns {
		for _, r := range Renames {
			if name == r.From {
				out.Columns[i] = r.To
				break
			}
		}
	}
	return out
}

// Records builds the typed view of a transformed table.
func Records(t *Table) []domain.ProductionRecord {
	dateIdx := t.Index(domain.ColumnDate)
	wellIdx := t.Index(domain.ColumnWell)
	oilIdx := t.Index(domain.ColumnVolOil)
	gasIdx := t.Index(domain.ColumnVolGas)
	watIdx := t.Index(domain.ColumnVolWater)

	records := make([]domain.ProductionRecord, len(t.Rows))
	for i, row := range t.Rows {
		rec := domain.ProductionRecord{
			Well:     cell(row, wellIdx),
			VolOil:   ParseVolume(cell(row, oilIdx)),
			VolGas:   ParseVolume(cell(row, gasIdx)),
			VolWater: ParseVolume(cell(row, watIdx)),
		}
		if d, ok := ParseDate(cell(row, dateIdx)); ok {
			year := d.Year()
			rec.Date = &d
			rec.Year = &year
		}
		records[i] = rec
	}
	return records
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ParseDate reads a DATEPRD cell. Excel serial numbers, bare four digit
// years and the common textual layouts are accepted.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if yearOnly.MatchString(s) {
		year, _ := strconv.Atoi(s)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(serial) || serial <= 0 || serial > maxExcelSerial {
			return time.Time{}, false
		}
		d, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return d, true
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// ParseVolume reads a volume cell. Commas are accepted only as thousands
// separators; empty or non-numeric cells are invalid.
func ParseVolume(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if thousands.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ValidVolumeColumn reports an error for names outside domain.VolumeColumns.
func ValidVolumeColumn(column string) error {
	for _, c := range domain.VolumeColumns {
		if c == column {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
}
