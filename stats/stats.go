// Copyright 2026 evpop Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/evpop-io/evpop/cleaning"
	"github.com/evpop-io/evpop/dataset"
)

// ColumnStats is the descriptive summary of one numeric column.
// Kurtosis is excess kurtosis, so a normal distribution scores 0.
type ColumnStats struct {
	Count    int
	Mean     float64
	Median   float64
	StdDev   float64
	Min      float64
	Max      float64
	Skewness float64
	Kurtosis float64
}

// Describe computes descriptive statistics for every numeric column,
// ignoring missing entries. Columns with no non-missing values get a
// zero Count and NaN statistics. No mutation.
func Describe(table *dataset.Table) map[string]ColumnStats {
	result := make(map[string]ColumnStats)
	for _, column := range table.NumericColumns() {
		values := column.NonMissing()
		if len(values) == 0 {
			result[column.Name] = ColumnStats{
				Mean: math.NaN(), Median: math.NaN(), StdDev: math.NaN(),
				Min: math.NaN(), Max: math.NaN(),
				Skewness: math.NaN(), Kurtosis: math.NaN(),
			}
			continue
		}
		result[column.Name] = ColumnStats{
			Count:    len(values),
			Mean:     stat.Mean(values, nil),
			Median:   cleaning.Median(values),
			StdDev:   stat.StdDev(values, nil),
			Min:      floats.Min(values),
			Max:      floats.Max(values),
			Skewness: stat.Skew(values, nil),
			Kurtosis: stat.ExKurtosis(values, nil),
		}
	}
	return result
}

// Correlation is a symmetric Pearson correlation matrix over the
// numeric columns, in table order.
type Correlation struct {
	Columns []string
	Values  [][]float64
}

// At returns the correlation between two named columns.
func (c *Correlation) At(a, b string) float64 {
	return c.Values[c.index(a)][c.index(b)]
}

func (c *Correlation) index(name string) int {
	for i, column := range c.Columns {
		if column == name {
			return i
		}
	}
	return -1
}

// CorrelationMatrix computes pairwise Pearson correlations over the
// numeric columns using pairwise-complete observations. The diagonal is
// exactly 1 and the matrix is symmetric. No mutation.
func CorrelationMatrix(table *dataset.Table) *Correlation {
	columns := table.NumericColumns()
	correlation := &Correlation{
		Columns: make([]string, len(columns)),
		Values:  make([][]float64, len(columns)),
	}
	for i, column := range columns {
		correlation.Columns[i] = column.Name
		correlation.Values[i] = make([]float64, len(columns))
		correlation.Values[i][i] = 1
	}
	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			r := pairwiseCorrelation(columns[i], columns[j])
			correlation.Values[i][j] = r
			correlation.Values[j][i] = r
		}
	}
	return correlation
}

// pairwiseCorrelation computes Pearson correlation over the rows where
// both columns are present.
func pairwiseCorrelation(a, b *dataset.Column) float64 {
	x := make([]float64, 0, len(a.Values))
	y := make([]float64, 0, len(b.Values))
	for i := range a.Values {
		if !a.Missing[i] && !b.Missing[i] {
			x = append(x, a.Values[i])
			y = append(y, b.Values[i])
		}
	}
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}
