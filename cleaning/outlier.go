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

package cleaning

import (
	"math"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/evpop-io/evpop/base/log"
	"github.com/evpop-io/evpop/dataset"
)

// Method selects the statistical bound for outlier detection.
type Method string

const (
	MethodIQR    Method = "iqr"
	MethodZScore Method = "zscore"
)

// OutlierConfig carries detection parameters. Zero value means IQR with
// the 1.5 fence factor; for z-score the threshold defaults to 3 and the
// standard deviation is population (ddof 0) unless DDof is set.
type OutlierConfig struct {
	Method     Method
	ZThreshold float64
	DDof       int
}

func (config *OutlierConfig) fillDefault() {
	if config.Method == "" {
		config.Method = MethodIQR
	}
	if config.ZThreshold == 0 {
		config.ZThreshold = 3
	}
}

// ColumnOutliers holds the flagged row indices of one column and the
// bounds used to flag them.
type ColumnOutliers struct {
	Rows  mapset.Set[int]
	Lower float64
	Upper float64
}

// OutlierReport maps column names to their flagged rows. Advisory
// output only, the table is never mutated.
type OutlierReport map[string]*ColumnOutliers

// Count returns the total number of flagged values across columns.
func (report OutlierReport) Count() int {
	total := 0
	for _, outliers := range report {
		total += outliers.Rows.Cardinality()
	}
	return total
}

// DetectOutliers flags numeric values outside a statistical bound.
// Columns selects the columns to scan; nil means every numeric column.
// Missing entries are never flagged.
func DetectOutliers(table *dataset.Table, columns []string, config *OutlierConfig) (OutlierReport, error) {
	if config == nil {
		config = &OutlierConfig{}
	}
	config.fillDefault()
	var selected []*dataset.Column
	if columns == nil {
		selected = table.NumericColumns()
	} else {
		for _, name := range columns {
			column := table.Column(name)
			if column == nil {
				return nil, errors.NotFoundf("column %q", name)
			}
			if column.Kind != dataset.Numeric {
				log.Logger().Warn("skip non-numeric column in outlier detection",
					zap.String("column", name))
				continue
			}
			selected = append(selected, column)
		}
	}
	report := make(OutlierReport, len(selected))
	for _, column := range selected {
		var outliers *ColumnOutliers
		switch config.Method {
		case MethodIQR:
			outliers = detectIQR(column)
		case MethodZScore:
			outliers = detectZScore(column, config.ZThreshold, config.DDof)
		default:
			return nil, errors.NotSupportedf("outlier method %q", config.Method)
		}
		report[column.Name] = outliers
		if outliers.Rows.Cardinality() > 0 {
			log.Logger().Info("outliers detected",
				zap.String("column", column.Name),
				zap.Int("n_outliers", outliers.Rows.Cardinality()),
				zap.Float64("lower", outliers.Lower),
				zap.Float64("upper", outliers.Upper))
		}
	}
	return report, nil
}

func detectIQR(column *dataset.Column) *ColumnOutliers {
	sorted := column.NonMissing()
	sort.Float64s(sorted)
	outliers := &ColumnOutliers{Rows: mapset.NewSet[int]()}
	if len(sorted) == 0 {
		return outliers
	}
	q1 := quantileLower(sorted, 0.25)
	q3 := quantileLower(sorted, 0.75)
	iqr := q3 - q1
	outliers.Lower = q1 - 1.5*iqr
	outliers.Upper = q3 + 1.5*iqr
	flagRange(column, outliers)
	return outliers
}

func detectZScore(column *dataset.Column, threshold float64, ddof int) *ColumnOutliers {
	values := column.NonMissing()
	outliers := &ColumnOutliers{Rows: mapset.NewSet[int]()}
	if len(values) == 0 {
		return outliers
	}
	mean := stat.Mean(values, nil)
	std := stdDev(values, mean, ddof)
	if std == 0 || math.IsNaN(std) {
		// constant column, nothing to flag
		outliers.Lower = mean
		outliers.Upper = mean
		return outliers
	}
	outliers.Lower = mean - threshold*std
	outliers.Upper = mean + threshold*std
	flagRange(column, outliers)
	return outliers
}

func flagRange(column *dataset.Column, outliers *ColumnOutliers) {
	for i, v := range column.Values {
		if column.Missing[i] {
			continue
		}
		if v < outliers.Lower || v > outliers.Upper {
			outliers.Rows.Add(i)
		}
	}
}

// quantileLower returns the q-quantile of sorted values using the lower
// interpolation convention: position (n-1)*q rounded down.
func quantileLower(sorted []float64, q float64) float64 {
	position := float64(len(sorted)-1) * q
	return sorted[int(position)]
}

func stdDev(values []float64, mean float64, ddof int) float64 {
	n := len(values)
	if n-ddof <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-ddof))
}
