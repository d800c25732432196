package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWellTotals_Add(t *testing.T) {
	totals := WellTotals{Well: "A"}

	totals.Add(ProductionRecord{
		Well:     "A",
		VolOil:   decimal.NewNullDecimal(decimal.NewFromInt(10)),
		VolGas:   decimal.NewNullDecimal(decimal.NewFromInt(20)),
		VolWater: decimal.NewNullDecimal(decimal.NewFromInt(5)),
	})
	totals.Add(ProductionRecord{
		Well:   "A",
		VolOil: decimal.NewNullDecimal(decimal.RequireFromString("15.5")),
		// gas and water missing
	})

	assert.True(t, totals.VolOil.Equal(decimal.RequireFromString("25.5")))
	assert.True(t, totals.VolGas.Equal(decimal.NewFromInt(20)))
	assert.True(t, totals.VolWater.Equal(decimal.NewFromInt(5)))
}

func TestProductionRecord_Volume(t *testing.T) {
	r := ProductionRecord{
		VolOil:   decimal.NewNullDecimal(decimal.NewFromInt(1)),
		VolGas:   decimal.NewNullDecimal(decimal.NewFromInt(2)),
		VolWater: decimal.NewNullDecimal(decimal.NewFromInt(3)),
	}

	assert.Equal(t, int64(1), r.Volume(ColumnVolOil).Decimal.IntPart())
	assert.Equal(t, int64(2), r.Volume(ColumnVolGas).Decimal.IntPart())
	assert.Equal(t, int64(3), r.Volume(ColumnVolWater).Decimal.IntPart())
	assert.False(t, r.Volume("BORE_OIL_VOL").Valid)
}

func TestWellTotals_Volume(t *testing.T) {
	totals := WellTotals{
		VolOil:   decimal.NewFromInt(7),
		VolGas:   decimal.NewFromInt(8),
		VolWater: decimal.NewFromInt(9),
	}

	for i, column := range VolumeColumns {
		assert.Equal(t, int64(7+i), totals.Volume(column).IntPart(), column)
	}
	assert.True(t, totals.Volume("unknown").IsZero())
}
