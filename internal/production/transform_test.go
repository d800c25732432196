package production

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volvedash/pkg/contracts/domain"
)

func sampleTable() *Table {
	return NewTable(
		[]string{"DATEPRD", "NPD_WELL_BORE_NAME", "BORE_OIL_VOL", "BORE_GAS_VOL", "BORE_WAT_VOL"},
		[][]string{
			{"2008-01-01", "A", "10", "20", "5"},
			{"2008-06-01", "A", "15", "25", "5"},
		},
	)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in       string
		wantOK   bool
		wantYear int
	}{
		{"2008-01-01", true, 2008},
		{"2014-04-07 00:00:00", true, 2014},
		{"2016-09-17T00:00:00Z", true, 2016},
		{"4/7/2014", true, 2014},
		{"7-Apr-2014", true, 2014},
		{"39448", true, 2008},
		{"42000.5", true, 2014},
		{"2011", true, 2011},
		{"", false, 0},
		{"yesterday", false, 0},
		{"-3", false, 0},
		{"2958465", true, 9999},
		{"2958466", false, 0},
		{"99999999", false, 0},
		{"1e12", false, 0},
		{"NaN", false, 0},
		{"Inf", false, 0},
		{"-Inf", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, ok := ParseDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantYear, d.Year())
			}
		})
	}
}

func TestDeriveYear(t *testing.T) {
	in := NewTable(
		[]string{"DATEPRD", "Year"},
		[][]string{{"2008-01-01", "1999"}, {"garbage", "2001"}, {"2016-12-31", ""}},
	)

	out := DeriveYear(in)

	years, ok := out.Column("Year")
	require.True(t, ok)
	assert.Equal(t, []string{"2008", "", "2016"}, years)
	assert.Equal(t, []string{"DATEPRD", "Year"}, out.Columns, "existing Year column is overwritten in place")

	original, _ := in.Column("Year")
	assert.Equal(t, []string{"1999", "2001", ""}, original, "input must not change")
}

func TestDeriveYear_AppendsColumn(t *testing.T) {
	out := DeriveYear(sampleTable())

	assert.Equal(t, "Year", out.Columns[len(out.Columns)-1])
	for _, row := range out.Rows {
		assert.Equal(t, "2008", row[len(row)-1])
	}
	assert.Len(t, sampleTable().Columns, 5)
}

func TestRenameColumns(t *testing.T) {
	in := NewTable([]string{"DATEPRD", "NPD_WELL_BORE_NAME", "BORE_OIL_VOL", "BORE_GAS_VOL", "BORE_WAT_VOL", "AVG_CHOKE_SIZE_P"}, nil)

	once := RenameColumns(in)
	twice := RenameColumns(once)

	want := []string{"DATEPRD", "Well", "Vol_o", "Vol_g", "Vol_w", "AVG_CHOKE_SIZE_P"}
	if diff := cmp.Diff(want, once.Columns); diff != "" {
		t.Errorf("rename mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, once.Columns, twice.Columns, "rename must be idempotent")
	assert.Equal(t, "NPD_WELL_BORE_NAME", in.Columns[1], "input must not change")
}

func TestTransform(t *testing.T) {
	ds, err := Transform(sampleTable())
	require.NoError(t, err)

	wantColumns := []string{"DATEPRD", "Well", "Vol_o", "Vol_g", "Vol_w", "Year"}
	assert.Equal(t, wantColumns, ds.Table.Columns)
	require.Len(t, ds.Records, 2)

	first := ds.Records[0]
	require.NotNil(t, first.Year)
	require.NotNil(t, first.Date)
	assert.Equal(t, 2008, *first.Year)
	assert.Equal(t, time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC), *first.Date)
	assert.Equal(t, "A", first.Well)
	assert.Equal(t, "10", first.VolOil.Decimal.String())
	assert.True(t, first.VolWater.Valid)
}

func TestTransform_InvalidCells(t *testing.T) {
	in := NewTable(
		[]string{"DATEPRD", "NPD_WELL_BORE_NAME", "BORE_OIL_VOL", "BORE_GAS_VOL", "BORE_WAT_VOL"},
		[][]string{{"not a date", "B", "", "1,234.5", "n/a"}},
	)

	ds, err := Transform(in)
	require.NoError(t, err)

	rec := ds.Records[0]
	assert.Nil(t, rec.Year)
	assert.Nil(t, rec.Date)
	assert.False(t, rec.VolOil.Valid)
	assert.Equal(t, "1234.5", rec.VolGas.Decimal.String())
	assert.False(t, rec.VolWater.Valid)
	assert.Equal(t, "", ds.Table.Rows[0][5], "row is kept with an empty year")
}

func TestTransform_MissingColumns(t *testing.T) {
	_, err := Transform(NewTable([]string{"NPD_WELL_BORE_NAME"}, nil))
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = Transform(NewTable([]string{"DATEPRD", "NPD_WELL_BORE_NAME", "BORE_OIL_VOL"}, nil))
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{domain.ColumnVolGas, domain.ColumnVolWater}, schemaErr.Missing)
}

func TestParseVolume(t *testing.T) {
	assert.False(t, ParseVolume("").Valid)
	assert.False(t, ParseVolume("abc").Valid)
	assert.Equal(t, "1500", ParseVolume(" 1,500 ").Decimal.String())
	assert.Equal(t, "1234567.25", ParseVolume("1,234,567.25").Decimal.String())
	assert.Equal(t, "-2500", ParseVolume("-2,500").Decimal.String())
	assert.False(t, ParseVolume("1,5").Valid)
	assert.False(t, ParseVolume("12,34").Valid)
	assert.Equal(t, "0.1", ParseVolume("0.1").Decimal.String())
}

func TestTable(t *testing.T) {
	table := NewTable([]string{"a", "b"}, [][]string{{"1"}, {"2", "3", "4"}})

	assert.Equal(t, [][]string{{"1", ""}, {"2", "3"}}, table.Rows)
	assert.Equal(t, 1, table.Index("b"))
	assert.Equal(t, -1, table.Index("c"))

	page := table.Slice(1, 10)
	assert.Equal(t, [][]string{{"2", "3"}}, page.Rows)
	assert.Equal(t, 0, table.Slice(5, 10).Len())

	clone := table.Clone()
	clone.Rows[0][0] = "x"
	assert.Equal(t, "1", table.Rows[0][0])
}
