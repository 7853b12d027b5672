/*
Copyright © 2024 the Tulipa OBZ case study authors.
This file is part of the Tulipa OBZ case study.

The Tulipa OBZ case study is free software: you can redistribute it and/or
modify it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

The Tulipa OBZ case study is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with the Tulipa OBZ case study.  If not, see <http://www.gnu.org/licenses/>.
*/

package obzutil

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	obz "github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy"
)

// BalanceChart writes a grouped bar chart of total energy per technology
// and country to a PNG file.
func BalanceChart(balances *obz.Table, path string) error {
	type key struct{ country, tech string }
	totals := map[key]float64{}
	countrySet, techSet := map[string]bool{}, map[string]bool{}
	for i := range balances.Rows {
		k := key{
			country: balances.Value(i, "country").Text(),
			tech:    balances.Value(i, "technology").Text(),
		}
		totals[k] += balances.Value(i, "solution").Number()
		countrySet[k.country] = true
		techSet[k.tech] = true
	}
	countries, techs := sortedKeys(countrySet), sortedKeys(techSet)

	p := plot.New()
	p.Title.Text = "Energy balance per country"
	p.Y.Label.Text = "Energy"
	p.NominalX(countries...)

	w := vg.Points(60 / float64(max(len(techs), 1)))
	for ti, tech := range techs {
		vals := make(plotter.Values, len(countries))
		for ci, country := range countries {
			vals[ci] = totals[key{country: country, tech: tech}]
		}
		bars, err := plotter.NewBarChart(vals, w)
		if err != nil {
			return fmt.Errorf("obzutil.BalanceChart: %v", err)
		}
		bars.LineStyle.Width = 0
		bars.Color = plotutil.Color(ti)
		bars.Offset = vg.Length(float64(ti)-float64(len(techs)-1)/2) * w
		p.Add(bars)
		p.Legend.Add(tech, bars)
	}
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("obzutil.BalanceChart: %v", err)
	}
	return nil
}

// PriceChart writes a line chart of the price series per country to a
// PNG file.
func PriceChart(prices *obz.Table, path string) error {
	series := map[string]plotter.XYs{}
	for i := range prices.Rows {
		c := prices.Value(i, "country").Text()
		series[c] = append(series[c], plotter.XY{
			X: float64(prices.Value(i, "time").Int()),
			Y: prices.Value(i, "price").Number(),
		})
	}

	p := plot.New()
	p.Title.Text = "Price per country"
	p.X.Label.Text = "Timestep"
	p.Y.Label.Text = "Price"

	for i, country := range sortedSeriesKeys(series) {
		xys := series[country]
		sort.Slice(xys, func(a, b int) bool { return xys[a].X < xys[b].X })
		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("obzutil.PriceChart: %v", err)
		}
		l.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(country, l)
	}
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("obzutil.PriceChart: %v", err)
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	var o []string
	for k := range m {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}

func sortedSeriesKeys(m map[string]plotter.XYs) []string {
	var o []string
	for k := range m {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}
