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

package evpop

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evpop-io/evpop/config"
	"github.com/evpop-io/evpop/dataset"
)

const testCSV = `Model Year,Make,Electric Range,Base MSRP,Clean Alternative Fuel Vehicle (CAFV) Eligibility
2020,TESLA,322,0,Clean Alternative Fuel Vehicle Eligible
2019,TESLA,270,0,Clean Alternative Fuel Vehicle Eligible
2021,TESLA,,0,Clean Alternative Fuel Vehicle Eligible
2018,NISSAN,151,0,Clean Alternative Fuel Vehicle Eligible
2017,CHEVROLET,238,0,Clean Alternative Fuel Vehicle Eligible
2022,BMW,30,55000,Not eligible due to low battery range
2021,JEEP,25,47000,Not eligible due to low battery range
2020,FORD,21,50000,Not eligible due to low battery range
2019,TOYOTA,25,40000,Not eligible due to low battery range
2023,KIA,0,0,Eligibility unknown as battery range has not been researched
2022,HYUNDAI,0,0,Eligibility unknown as battery range has not been researched
2016,FIAT,84,32000,Clean Alternative Fuel Vehicle Eligible
`

func writeTestCSV(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "ev.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0644))
	return path
}

func TestRun(t *testing.T) {
	conf := config.GetDefaultConfig()
	conf.Data.Path = writeTestCSV(t)
	conf.Model.TestRatio = 0.25
	conf.Model.Seed = 42

	result, err := Run(conf)
	require.NoError(t, err)

	// profile covers every column
	assert.Len(t, result.Profile, 5)
	// the single Electric Range gap was imputed
	for name, count := range result.MissingAfter {
		assert.Zero(t, count, name)
	}
	column := result.Table.Column(dataset.ColElectricRange)
	require.NotNil(t, column)
	assert.Zero(t, column.MissingCount())

	// descriptive statistics exist for every numeric column
	assert.Contains(t, result.Stats, dataset.ColModelYear)
	assert.Contains(t, result.Stats, dataset.ColElectricRange)
	assert.Contains(t, result.Stats, dataset.ColBaseMSRP)
	assert.Equal(t, 1.0, result.Correlation.At(dataset.ColModelYear, dataset.ColModelYear))

	// split sizes add up
	assert.Equal(t, 12, result.TrainRows+result.TestRows)
	assert.Equal(t, 3, result.TestRows)

	// evaluation is well-formed
	require.NotNil(t, result.Evaluation)
	assert.GreaterOrEqual(t, result.Evaluation.Accuracy, float32(0))
	assert.LessOrEqual(t, result.Evaluation.Accuracy, float32(1))
	assert.GreaterOrEqual(t, result.Evaluation.AUC, float32(0))
	assert.LessOrEqual(t, result.Evaluation.AUC, float32(1))
	total := result.Evaluation.TP + result.Evaluation.FP +
		result.Evaluation.TN + result.Evaluation.FN
	assert.Equal(t, result.TestRows, total)
}

func TestRun_CleanedOutput(t *testing.T) {
	conf := config.GetDefaultConfig()
	conf.Data.Path = writeTestCSV(t)
	conf.Data.Output = filepath.Join(t.TempDir(), "cleaned.csv")
	conf.Model.TestRatio = 0.25
	conf.Model.Seed = 1

	_, err := Run(conf)
	require.NoError(t, err)

	data, err := os.ReadFile(conf.Data.Output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 13)
	// no gap survives in the cleaned file
	for _, line := range lines {
		assert.NotContains(t, line, ",,")
	}
}

func TestRun_DropStrategy(t *testing.T) {
	conf := config.GetDefaultConfig()
	conf.Data.Path = writeTestCSV(t)
	conf.Cleaning.Strategy = "drop"
	conf.Model.TestRatio = 0.25
	conf.Model.Seed = 7

	result, err := Run(conf)
	require.NoError(t, err)
	// the row with the missing Electric Range is gone
	assert.Equal(t, 11, result.Table.NumRow())
}

func TestRun_MissingFile(t *testing.T) {
	conf := config.GetDefaultConfig()
	conf.Data.Path = filepath.Join(t.TempDir(), "nope.csv")
	_, err := Run(conf)
	assert.Error(t, err)
}
