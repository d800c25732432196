package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source column names as they appear in the Volve production workbook.
const (
	ColumnDate     = "DATEPRD"
	ColumnWellBore = "NPD_WELL_BORE_NAME"
	ColumnBoreOil  = "BORE_OIL_VOL"
	ColumnBoreGas  = "BORE_GAS_VOL"
	ColumnBoreWat  = "BORE_WAT_VOL"
	ColumnYear     = "Year"
)

// Short codes the dashboard uses once the table has been transformed.
const (
	ColumnWell     = "Well"
	ColumnVolOil   = "Vol_o"
	ColumnVolGas   = "Vol_g"
	ColumnVolWater = "Vol_w"
)

// VolumeColumns lists the short-coded volume columns in display order.
var VolumeColumns = []string{ColumnVolOil, ColumnVolGas, ColumnVolWater}

// ProductionRecord is one well's reported production on one date.
//
// Date and Year are nil when the report date could not be parsed. Volumes are
// invalid (Valid=false) when the cell was empty or not a number.
type ProductionRecord struct {
	Date     *time.Time          `json:"date"`
	Year     *int                `json:"year"`
	Well     string              `json:"well"`
	VolOil   decimal.NullDecimal `json:"vol_o"`
	VolGas   decimal.NullDecimal `json:"vol_g"`
	VolWater decimal.NullDecimal `json:"vol_w"`
}

// Volume returns the value of the named short-code volume column.
func (r ProductionRecord) Volume(column string) decimal.NullDecimal {
	switch column {
	case ColumnVolOil:
		return r.VolOil
	case ColumnVolGas:
		return r.VolGas
	case ColumnVolWater:
		return r.VolWater
	}
	return decimal.NullDecimal{}
}

// WellTotals holds the summed volumes of a single well.
type WellTotals struct {
	Well     string          `json:"well"`
	VolOil   decimal.Decimal `json:"vol_o"`
	VolGas   decimal.Decimal `json:"vol_g"`
	VolWater decimal.Decimal `json:"vol_w"`
}

// Add accumulates a record's valid volumes into the totals.
func (t *WellTotals) Add(r ProductionRecord) {
	if r.VolOil.Valid {
		t.VolOil = t.VolOil.Add(r.VolOil.Decimal)
	}
	if r.VolGas.Valid {
		t.VolGas = t.VolGas.Add(r.VolGas.Decimal)
	}
	if r.VolWater.Valid {
		t.VolWater = t.VolWater.Add(r.VolWater.Decimal)
	}
}

// Volume returns the total for the named short-code volume column.
func (t WellTotals) Volume(column string) decimal.Decimal {
	switch column {
	case ColumnVolOil:
		return t.VolOil
	case ColumnVolGas:
		return t.VolGas
	case ColumnVolWater:
		return t.VolWater
	}
	return decimal.Zero
}

// SeriesPoint is a single (year, volume) sample of a well series.
type SeriesPoint struct {
	Year   int             `json:"year"`
	Volume decimal.Decimal `json:"volume"`
}

// WellSeries is the yearly evolution of one volume column for one well.
type WellSeries struct {
	Well   string        `json:"well"`
	Column string        `json:"column"`
	Points []SeriesPoint `json:"points"`
}
