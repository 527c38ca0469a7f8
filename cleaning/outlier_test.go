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
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evpop-io/evpop/dataset"
)

func numericTable(name string, values []float64) *dataset.Table {
	return &dataset.Table{Columns: []*dataset.Column{{
		Name:    name,
		Kind:    dataset.Numeric,
		Values:  values,
		Missing: make([]bool, len(values)),
	}}}
}

func TestDetectOutliers_IQR(t *testing.T) {
	table := numericTable(dataset.ColElectricRange, []float64{1, 2, 3, 4, 5, 100})
	report, err := DetectOutliers(table, nil, &OutlierConfig{Method: MethodIQR})
	require.NoError(t, err)
	outliers := report[dataset.ColElectricRange]
	require.NotNil(t, outliers)
	// Q1=2, Q3=4: fences at -1 and 7, only 100 is flagged
	assert.Equal(t, -1.0, outliers.Lower)
	assert.Equal(t, 7.0, outliers.Upper)
	assert.True(t, outliers.Rows.Equal(mapset.NewSet(5)))
	// detection never mutates the table
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 100}, table.Column(dataset.ColElectricRange).Values)
}

func TestDetectOutliers_ZeroVariance(t *testing.T) {
	table := numericTable(dataset.ColBaseMSRP, []float64{7, 7, 7, 7})
	for _, method := range []Method{MethodIQR, MethodZScore} {
		report, err := DetectOutliers(table, nil, &OutlierConfig{Method: method})
		require.NoError(t, err)
		assert.Zero(t, report[dataset.ColBaseMSRP].Rows.Cardinality(), string(method))
	}
}

func TestDetectOutliers_ZScore(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i % 10)
	}
	values[99] = 1000
	table := numericTable(dataset.ColElectricRange, values)
	report, err := DetectOutliers(table, nil, &OutlierConfig{Method: MethodZScore})
	require.NoError(t, err)
	assert.True(t, report[dataset.ColElectricRange].Rows.Equal(mapset.NewSet(99)))
}

func TestDetectOutliers_SkipsMissing(t *testing.T) {
	table := numericTable(dataset.ColElectricRange, []float64{1, 2, 3, 4, 5, 0})
	table.Columns[0].Missing[5] = true
	report, err := DetectOutliers(table, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, report[dataset.ColElectricRange].Rows.Cardinality())
}

func TestDetectOutliers_ColumnSelection(t *testing.T) {
	table := numericTable(dataset.ColElectricRange, []float64{1, 2, 3})
	_, err := DetectOutliers(table, []string{"No Such Column"}, nil)
	assert.Error(t, err)

	report, err := DetectOutliers(table, []string{dataset.ColElectricRange}, nil)
	require.NoError(t, err)
	assert.Len(t, report, 1)
	assert.Zero(t, report.Count())
}
