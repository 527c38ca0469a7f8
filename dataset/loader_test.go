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

package dataset

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `Make,Model Year,Electric Range,Clean Alternative Fuel Vehicle (CAFV) Eligibility
TESLA,2020,322,Clean Alternative Fuel Vehicle Eligible
NISSAN,2019,,Clean Alternative Fuel Vehicle Eligible
BMW,2022,15,Not eligible due to low battery range
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ev.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	table, err := LoadCSV(writeTempCSV(t, testCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, table.NumRow())
	assert.Equal(t, 4, table.NumCol())
	// dtype inference
	assert.Equal(t, Categorical, table.Column(ColMake).Kind)
	assert.Equal(t, Numeric, table.Column(ColModelYear).Kind)
	assert.Equal(t, Numeric, table.Column(ColElectricRange).Kind)
	assert.Equal(t, Categorical, table.Column(ColCAFVEligibility).Kind)
	// missing markers
	assert.Equal(t, []bool{false, true, false}, table.Column(ColElectricRange).Missing)
	assert.Equal(t, []float64{2020, 2019, 2022}, table.Column(ColModelYear).Values)
}

func TestLoadCSV_MissingMarkers(t *testing.T) {
	table, err := LoadCSV(writeTempCSV(t, "Electric Range,Make\n100,TESLA\nN/A,null\nNA,BMW\n"))
	require.NoError(t, err)
	assert.Equal(t, Numeric, table.Column(ColElectricRange).Kind)
	assert.Equal(t, 2, table.Column(ColElectricRange).MissingCount())
	assert.Equal(t, 1, table.Column(ColMake).MissingCount())
}

func TestLoadCSV_ShortRows(t *testing.T) {
	table, err := LoadCSV(writeTempCSV(t, "A,B\n1,2\n3\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, table.NumRow())
	assert.Equal(t, 1, table.Column("B").MissingCount())
}

func TestLoadCSV_Errors(t *testing.T) {
	// unreadable path
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.True(t, errors.Is(err, ErrLoad))
	// empty file
	_, err = LoadCSV(writeTempCSV(t, ""))
	assert.True(t, errors.Is(err, ErrLoad))
	// header only
	_, err = LoadCSV(writeTempCSV(t, "Make,Model Year\n"))
	assert.True(t, errors.Is(err, ErrLoad))
}

func TestLoadCSV_Zip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ev.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	writer := zip.NewWriter(f)
	entry, err := writer.Create("ev.csv")
	require.NoError(t, err)
	_, err = entry.Write([]byte(testCSV))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, f.Close())

	table, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.NumRow())
	assert.Equal(t, 4, table.NumCol())
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(testCSV))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(table, &buf))
	reloaded, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, table.NumRow(), reloaded.NumRow())
	assert.Equal(t, table.NumCol(), reloaded.NumCol())
	for j, column := range table.Columns {
		assert.Equal(t, column.Name, reloaded.Columns[j].Name)
		assert.Equal(t, column.Kind, reloaded.Columns[j].Kind)
		assert.Equal(t, column.Missing, reloaded.Columns[j].Missing)
		assert.Equal(t, column.Values, reloaded.Columns[j].Values)
	}
}

func TestProfile(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(testCSV))
	require.NoError(t, err)
	profiles := Profile(table)
	require.Len(t, profiles, 4)
	assert.Equal(t, ColMake, profiles[0].Name)
	assert.Equal(t, 3, profiles[0].UniqueCount)
	assert.Equal(t, 0, profiles[0].MissingCount)
	assert.Equal(t, ColElectricRange, profiles[2].Name)
	assert.Equal(t, 1, profiles[2].MissingCount)
	assert.Equal(t, 2, profiles[2].UniqueCount)
	assert.Equal(t, 2, Profile(table)[3].UniqueCount)
}
