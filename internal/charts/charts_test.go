package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volvedash/internal/production"
	"volvedash/internal/shared/testutil"
	"volvedash/pkg/contracts/domain"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleRecords(t *testing.T) []domain.ProductionRecord {
	t.Helper()
	table := production.NewTable(
		[]string{"DATEPRD", "NPD_WELL_BORE_NAME", "BORE_OIL_VOL", "BORE_GAS_VOL", "BORE_WAT_VOL"},
		[][]string{
			{"2008-01-01", "15/9-F-1 C", "1200", "180000", "50"},
			{"2009-01-01", "15/9-F-1 C", "900", "150000", "400"},
			{"2010-01-01", "15/9-F-1 C", "", "100000", "800"},
			{"2008-03-01", "15/9-F-11", "3000", "400000", "0"},
			{"2013-03-01", "15/9-F-12", "5000", "700000", "2500"},
		},
	)
	ds, err := production.Transform(table)
	require.NoError(t, err)
	return ds.Records
}

func TestRenderer_Render(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	r := NewRenderer(800, 400, logger)
	records := sampleRecords(t)

	for _, def := range Definitions {
		for _, format := range []Format{FormatPNG, FormatSVG} {
			t.Run(def.ID+"."+string(format), func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, r.Render(&buf, def.ID, format, records))

				if format == FormatPNG {
					assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
				} else {
					assert.Contains(t, buf.String(), "<svg")
				}
			})
		}
	}
}

func TestRenderer_EdgeCases(t *testing.T) {
	r := NewRenderer(600, 300, nil)

	single := []domain.ProductionRecord{mustRecord(t, "2012-05-01", "A", "10")}
	flat := []domain.ProductionRecord{
		mustRecord(t, "2012-05-01", "A", "0"),
		mustRecord(t, "2013-05-01", "A", "0"),
	}

	cases := map[string][]domain.ProductionRecord{
		"empty":       nil,
		"single year": single,
		"flat zero":   flat,
		"serial beyond the last excel date": {
			mustRecord(t, "1e12", "A", "10"),
			mustRecord(t, "2010-01-01", "A", "20"),
		},
		"years centuries apart": {
			mustRecord(t, "1/1/1900", "A", "10"),
			mustRecord(t, "2958465", "A", "20"),
		},
		"negative volume": {
			mustRecord(t, "2012-05-01", "A", "-40"),
			mustRecord(t, "2013-05-01", "A", "15"),
		},
	}

	for name, records := range cases {
		t.Run(name, func(t *testing.T) {
			for _, def := range Definitions {
				for _, format := range []Format{FormatPNG, FormatSVG} {
					var buf bytes.Buffer
					assert.NoError(t, r.Render(&buf, def.ID, format, records), def.ID)
				}
			}
		})
	}
}

func mustRecord(t *testing.T, date, well, oil string) domain.ProductionRecord {
	t.Helper()
	table := production.NewTable(
		[]string{"DATEPRD", "NPD_WELL_BORE_NAME", "BORE_OIL_VOL", "BORE_GAS_VOL", "BORE_WAT_VOL"},
		[][]string{{date, well, oil, oil, oil}},
	)
	ds, err := production.Transform(table)
	require.NoError(t, err)
	return ds.Records[0]
}

func TestRenderer_Errors(t *testing.T) {
	r := NewRenderer(600, 300, nil)
	var buf bytes.Buffer

	assert.ErrorIs(t, r.Render(&buf, "pressure", FormatPNG, nil), ErrUnknownChart)
	assert.ErrorIs(t, r.Render(&buf, IDOil, Format("gif"), nil), ErrUnsupportedFormat)
	assert.Zero(t, buf.Len())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)
	assert.Equal(t, "image/svg+xml", f.ContentType())
	assert.Equal(t, "image/png", FormatPNG.ContentType())

	_, err = ParseFormat("jpeg")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLookup(t *testing.T) {
	def, err := Lookup(IDOilWater)
	require.NoError(t, err)
	assert.Equal(t, "Vol_o and Vol_w vs Year (per well)", def.Title)

	ids := make([]string, len(Definitions))
	for i, d := range Definitions {
		ids[i] = d.ID
	}
	assert.Equal(t, []string{"oil", "gas", "oil-water", "totals"}, ids)
}
