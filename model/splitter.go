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
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/evpop-io/evpop/base"
)

// TrainTestSplit partitions the encoded rows into a training and a test
// set. testRatio is the fraction of rows sampled into the test set.
// Deterministic for a fixed seed.
func TrainTestSplit(x *FeatureMatrix, y []float32, testRatio float64, seed int64) (trainX, testX *FeatureMatrix, trainY, testY []float32) {
	n := x.NumRow()
	testSize := int(float64(n) * testRatio)
	rng := base.NewRandomGenerator(seed)
	testRows := rng.Sample(0, n, testSize)
	sort.Ints(testRows)
	testSet := mapset.NewSet(testRows...)

	trainX = &FeatureMatrix{Names: x.Names}
	testX = &FeatureMatrix{Names: x.Names}
	for i, row := range x.Values {
		if testSet.Contains(i) {
			testX.Values = append(testX.Values, row)
			testX.RowIndex = append(testX.RowIndex, x.RowIndex[i])
			testY = append(testY, y[i])
		} else {
			trainX.Values = append(trainX.Values, row)
			trainX.RowIndex = append(trainX.RowIndex, x.RowIndex[i])
			trainY = append(trainY, y[i])
		}
	}
	return
}
