package production

import (
	"sort"

	"github.com/shopspring/decimal"

	"volvedash/pkg/contracts/domain"
)

// UnnamedWell groups records whose well name is empty.
const UnnamedWell = "(unnamed)"

// Totals sums each volume column per well. The result is sorted by well name.
// Missing volumes add nothing.
func Totals(records []domain.ProductionRecord) []domain.WellTotals {
	byWell := make(map[string]*domain.WellTotals)
	for _, r := range records {
		well := wellName(r)
		t, ok := byWell[well]
		if !ok {
			t = &domain.WellTotals{Well: well}
			byWell[well] = t
		}
		t.Add(r)
	}

	totals := make([]domain.WellTotals, 0, len(byWell))
	for _, t := range byWell {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Well < totals[j].Well
	})
	return totals
}

// GrandTotal sums per-well totals into a single row labelled "Total".
func GrandTotal(totals []domain.WellTotals) domain.WellTotals {
	grand := domain.WellTotals{Well: "Total"}
	for _, t := range totals {
		grand.VolOil = grand.VolOil.Add(t.VolOil)
		grand.VolGas = grand.VolGas.Add(t.VolGas)
		grand.VolWater = grand.VolWater.Add(t.VolWater)
	}
	return grand
}

// YearlySeries sums one volume column per well and year. Records without a
// year are left out, as are years in which a well reported no value for the
// column. Wells and points are sorted.
func YearlySeries(records []domain.ProductionRecord, column string) ([]domain.WellSeries, error) {
	if err := ValidVolumeColumn(column); err != nil {
		return nil, err
	}

	byWell := make(map[string]map[int]decimal.Decimal)
	for _, r := range records {
		if r.Year == nil {
			continue
		}
		v := r.Volume(column)
		if !v.Valid {
			continue
		}
		well := wellName(r)
		years, ok := byWell[well]
		if !ok {
			years = make(map[int]decimal.Decimal)
			byWell[well] = years
		}
		years[*r.Year] = years[*r.Year].Add(v.Decimal)
	}

	series := make([]domain.WellSeries, 0, len(byWell))
	for well, years := range byWell {
		s := domain.WellSeries{Well: well, Column: column}
		for year, volume := range years {
			s.Points = append(s.Points, domain.SeriesPoint{Year: year, Volume: volume})
		}
		sort.Slice(s.Points, func(i, j int) bool {
			return s.Points[i].Year < s.Points[j].Year
		})
		series = append(series, s)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Well < series[j].Well
	})
	return series, nil
}

// Wells returns the distinct well names in sorted order.
func Wells(records []domain.ProductionRecord) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[wellName(r)] = struct{}{}
	}
	wells := make([]string, 0, len(seen))
	for w := range seen {
		wells = append(wells, w)
	}
	sort.Strings(wells)
	return wells
}

func wellName(r domain.ProductionRecord) string {
	if r.Well == "" {
		return UnnamedWell
	}
	return r.Well
}
