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
	"sort"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/evpop-io/evpop/base/log"
	"github.com/evpop-io/evpop/common/util"
	"github.com/evpop-io/evpop/dataset"
)

// ErrEmptyColumn is returned when imputation is attempted on a column
// with no non-missing values to derive a fill from.
var ErrEmptyColumn = errors.New("cannot impute an entirely missing column")

// Rule is a per-column imputation rule.
type Rule string

const (
	RuleMean     Rule = "mean"
	RuleMedian   Rule = "median"
	RuleMode     Rule = "mode"
	RuleConstant Rule = "constant"
	RuleDrop     Rule = "drop"
)

// ColumnRule binds a rule to a column. Constant carries the fill value
// for RuleConstant, parsed as a float for numeric columns.
type ColumnRule struct {
	Rule     Rule
	Constant string
}

// Strategy selects how HandleMissing treats the table. Exactly one of
// the three modes is active.
type Strategy struct {
	auto    bool
	drop    bool
	columns map[string]ColumnRule
}

// AutoStrategy fills numeric columns with the median and categorical
// columns with the mode.
func AutoStrategy() Strategy {
	return Strategy{auto: true}
}

// DropStrategy removes every row containing at least one missing value.
func DropStrategy() Strategy {
	return Strategy{drop: true}
}

// ColumnStrategy applies the listed rule to each listed column and
// leaves every other column untouched. Listing a column the table does
// not have is an error, not a silent skip.
func ColumnStrategy(columns map[string]ColumnRule) Strategy {
	return Strategy{columns: columns}
}

// CheckMissing counts missing markers per column. Pure read.
func CheckMissing(table *dataset.Table) map[string]int {
	counts := make(map[string]int, table.NumCol())
	for _, column := range table.Columns {
		counts[column.Name] = column.MissingCount()
	}
	return counts
}

// HandleMissing resolves missing values in place following the
// strategy. After it returns, every column covered by the strategy has
// zero missing values. Applying the same strategy twice is a no-op the
// second time.
func HandleMissing(table *dataset.Table, strategy Strategy) error {
	switch {
	case strategy.auto:
		for _, column := range table.Columns {
			if column.MissingCount() == 0 {
				continue
			}
			var rule Rule
			if column.Kind == dataset.Numeric {
				rule = RuleMedian
			} else {
				rule = RuleMode
			}
			if err := fillColumn(column, ColumnRule{Rule: rule}); err != nil {
				return errors.Trace(err)
			}
			log.Logger().Debug("filled missing values",
				zap.String("column", column.Name),
				zap.String("rule", string(rule)))
		}
	case strategy.drop:
		dropRowsWithMissing(table, table.Columns)
	default:
		for name := range strategy.columns {
			if table.Column(name) == nil {
				return errors.NotFoundf("column %q", name)
			}
		}
		dropColumns := make([]*dataset.Column, 0)
		for _, column := range table.Columns {
			rule, listed := strategy.columns[column.Name]
			if !listed {
				continue
			}
			if rule.Rule == RuleDrop {
				dropColumns = append(dropColumns, column)
				continue
			}
			if column.MissingCount() == 0 {
				continue
			}
			if err := fillColumn(column, rule); err != nil {
				return errors.Trace(err)
			}
		}
		if len(dropColumns) > 0 {
			dropRowsWithMissing(table, dropColumns)
		}
	}
	return nil
}

func fillColumn(column *dataset.Column, rule ColumnRule) error {
	if column.Kind == dataset.Numeric {
		values := column.NonMissing()
		if len(values) == 0 && rule.Rule != RuleConstant {
			return errors.Annotatef(ErrEmptyColumn, "column %q", column.Name)
		}
		var fill float64
		switch rule.Rule {
		case RuleMean:
			fill = stat.Mean(values, nil)
		case RuleMedian:
			fill = Median(values)
		case RuleMode:
			fill = numericMode(values)
		case RuleConstant:
			var err error
			fill, err = util.ParseFloat[float64](rule.Constant)
			if err != nil {
				return errors.Errorf("column %q: constant %q is not numeric", column.Name, rule.Constant)
			}
		default:
			return errors.Errorf("column %q: unknown rule %q", column.Name, rule.Rule)
		}
		for i := range column.Missing {
			if column.Missing[i] {
				column.Values[i] = fill
				column.Missing[i] = false
			}
		}
		return nil
	}
	// categorical columns accept mode and constant fills only
	switch rule.Rule {
	case RuleMode:
		labels := column.NonMissingLabels()
		if len(labels) == 0 {
			return errors.Annotatef(ErrEmptyColumn, "column %q", column.Name)
		}
		fill := labelMode(labels)
		for i := range column.Missing {
			if column.Missing[i] {
				column.Labels[i] = fill
				column.Missing[i] = false
			}
		}
		return nil
	case RuleConstant:
		for i := range column.Missing {
			if column.Missing[i] {
				column.Labels[i] = rule.Constant
				column.Missing[i] = false
			}
		}
		return nil
	default:
		return errors.Errorf("column %q: rule %q requires a numeric column", column.Name, rule.Rule)
	}
}

func dropRowsWithMissing(table *dataset.Table, monitored []*dataset.Column) {
	keep := make([]int, 0, table.NumRow())
	for i := 0; i < table.NumRow(); i++ {
		complete := true
		for _, column := range monitored {
			if column.IsMissing(i) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}
	dropped := table.NumRow() - len(keep)
	table.KeepRows(keep)
	if dropped > 0 {
		log.Logger().Debug("dropped rows with missing values", zap.Int("n_rows", dropped))
	}
}

// Median returns the midpoint median of the values.
func Median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// labelMode returns the most frequent label, breaking ties by the
// lexicographically smallest label.
func labelMode(labels []string) string {
	counts := lo.CountValues(labels)
	best := labels[0]
	bestCount := 0
	for label, count := range counts {
		if count > bestCount || (count == bestCount && label < best) {
			best = label
			bestCount = count
		}
	}
	return best
}

func numericMode(values []float64) float64 {
	counts := lo.CountValues(values)
	best := values[0]
	bestCount := 0
	for value, count := range counts {
		if count > bestCount || (count == bestCount && value < best) {
			best = value
			bestCount = count
		}
	}
	return best
}
