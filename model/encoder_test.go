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

package model

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evpop-io/evpop/dataset"
)

func newEVTable() *dataset.Table {
	return &dataset.Table{Columns: []*dataset.Column{
		{
			Name:    dataset.ColModelYear,
			Kind:    dataset.Numeric,
			Values:  []float64{2020, 2019, 2022},
			Missing: []bool{false, false, false},
		},
		{
			Name:    dataset.ColElectricRange,
			Kind:    dataset.Numeric,
			Values:  []float64{322, 0, 15},
			Missing: []bool{false, true, false},
		},
		{
			Name:    dataset.ColBaseMSRP,
			Kind:    dataset.Numeric,
			Values:  []float64{0, 0, 0},
			Missing: []bool{false, false, false},
		},
		{
			Name: dataset.ColCAFVEligibility,
			Kind: dataset.Categorical,
			Labels: []string{
				"Clean Alternative Fuel Vehicle Eligible",
				"Eligibility unknown as battery range has not been researched",
				"Not eligible due to low battery range",
			},
			Missing: []bool{false, false, false},
		},
	}}
}

func TestClassifyEligibility(t *testing.T) {
	column := &dataset.Column{
		Name: dataset.ColCAFVEligibility,
		Kind: dataset.Categorical,
		Labels: []string{
			"Clean Alternative Fuel Vehicle Eligible",
			"Not eligible due to low battery range",
			"Eligibility unknown as battery range has not been researched",
			"NOT ELIGIBLE",
			"eligible",
			"something else entirely",
		},
		Missing: make([]bool, 6),
	}
	expected := []float32{1, 0, 0, 0, 1, 0}
	for i, want := range expected {
		assert.Equal(t, want, classifyEligibility(column, i), column.Labels[i])
	}
}

func TestEncode(t *testing.T) {
	matrix, target, err := Encode(newEVTable(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultFeatureColumns, matrix.Names)
	assert.Equal(t, 3, matrix.NumRow())
	assert.Equal(t, []int{0, 1, 2}, matrix.RowIndex)
	assert.Equal(t, []float32{1, 0, 0}, target)
	// the gap in Electric Range is filled with the median of [322, 15]
	assert.Equal(t, float32(168.5), matrix.Values[1][1])
}

func TestEncode_DropRow(t *testing.T) {
	config := NewEncodingConfig()
	config.MissingRule = DropRow
	matrix, target, err := Encode(newEVTable(), config)
	require.NoError(t, err)
	assert.Equal(t, 2, matrix.NumRow())
	assert.Equal(t, []int{0, 2}, matrix.RowIndex)
	assert.Equal(t, []float32{1, 0}, target)
}

func TestEncode_MissingTargetRows(t *testing.T) {
	table := newEVTable()
	table.Column(dataset.ColCAFVEligibility).Missing[0] = true
	matrix, target, err := Encode(table, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, matrix.NumRow())
	assert.Equal(t, []int{1, 2}, matrix.RowIndex)
	assert.Equal(t, []float32{0, 0}, target)
}

func TestEncode_UnresolvedMissingFeature(t *testing.T) {
	table := newEVTable()
	// every Electric Range value missing: median imputation has nothing
	// to impute from
	column := table.Column(dataset.ColElectricRange)
	for i := range column.Missing {
		column.Missing[i] = true
	}
	_, _, err := Encode(table, nil)
	assert.True(t, errors.Is(err, ErrUnresolvedMissingFeature))
	assert.Contains(t, err.Error(), dataset.ColElectricRange)
}

func TestEncode_MissingColumns(t *testing.T) {
	table := newEVTable()
	table.Columns = table.Columns[:2]
	_, _, err := Encode(table, nil)
	assert.Error(t, err)
}
