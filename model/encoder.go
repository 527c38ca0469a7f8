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
	"strings"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/evpop-io/evpop/base/log"
	"github.com/evpop-io/evpop/cleaning"
	"github.com/evpop-io/evpop/dataset"
)

// DefaultFeatureColumns are the modeling features of the EV dataset.
var DefaultFeatureColumns = []string{
	dataset.ColModelYear,
	dataset.ColElectricRange,
	dataset.ColBaseMSRP,
}

// MissingFeatureRule decides what happens to a feature gap that
// survived cleaning.
type MissingFeatureRule string

const (
	// ImputeMedian fills the gap with the median of the feature column.
	ImputeMedian MissingFeatureRule = "median"
	// DropRow removes the row from the encoded output.
	DropRow MissingFeatureRule = "drop"
)

// EncodingConfig selects the feature columns, the eligibility text
// column and the treatment of remaining gaps.
type EncodingConfig struct {
	Features    []string
	Target      string
	MissingRule MissingFeatureRule
}

// NewEncodingConfig creates the default encoding config for the EV
// population dataset.
func NewEncodingConfig() *EncodingConfig {
	return &EncodingConfig{
		Features:    DefaultFeatureColumns,
		Target:      dataset.ColCAFVEligibility,
		MissingRule: ImputeMedian,
	}
}

// FeatureMatrix is the row-major feature block fed to the classifier.
// RowIndex aligns each encoded row with its source table row.
type FeatureMatrix struct {
	Names    []string
	Values   [][]float32
	RowIndex []int
}

// NumRow returns the number of encoded rows.
func (m *FeatureMatrix) NumRow() int {
	return len(m.Values)
}

// Encode selects the feature columns, resolves remaining gaps and
// derives the binary eligibility target. No gap ever passes through:
// a gap that cannot be resolved fails with ErrUnresolvedMissingFeature.
func Encode(table *dataset.Table, config *EncodingConfig) (*FeatureMatrix, []float32, error) {
	if config == nil {
		config = NewEncodingConfig()
	}
	// resolve columns
	features := make([]*dataset.Column, len(config.Features))
	for i, name := range config.Features {
		column := table.Column(name)
		if column == nil {
			return nil, nil, errors.NotFoundf("feature column %q", name)
		}
		if column.Kind != dataset.Numeric {
			return nil, nil, errors.NotValidf("feature column %q is not numeric", name)
		}
		features[i] = column
	}
	target := table.Column(config.Target)
	if target == nil {
		return nil, nil, errors.NotFoundf("target column %q", config.Target)
	}
	// per-feature medians for gap filling
	medians := make([]float64, len(features))
	for i, column := range features {
		values := column.NonMissing()
		if len(values) > 0 {
			medians[i] = cleaning.Median(values)
		} else if config.MissingRule == ImputeMedian && column.MissingCount() > 0 {
			return nil, nil, errors.Annotatef(ErrUnresolvedMissingFeature,
				"column %q has no values to impute from", column.Name)
		}
	}
	matrix := &FeatureMatrix{Names: append([]string(nil), config.Features...)}
	labels := make([]float32, 0, table.NumRow())
	dropped := 0
	for i := 0; i < table.NumRow(); i++ {
		if target.IsMissing(i) {
			// unlabeled rows cannot be used for training or evaluation
			dropped++
			continue
		}
		row := make([]float32, len(features))
		complete := true
		for j, column := range features {
			if column.IsMissing(i) {
				switch config.MissingRule {
				case ImputeMedian:
					row[j] = float32(medians[j])
				case DropRow:
					complete = false
				default:
					return nil, nil, errors.Annotatef(ErrUnresolvedMissingFeature,
						"column %q row %d", column.Name, i)
				}
			} else {
				row[j] = float32(column.Values[i])
			}
		}
		if !complete {
			dropped++
			continue
		}
		matrix.Values = append(matrix.Values, row)
		matrix.RowIndex = append(matrix.RowIndex, i)
		labels = append(labels, classifyEligibility(target, i))
	}
	if len(matrix.Values) == 0 {
		return nil, nil, errors.Annotatef(ErrUnresolvedMissingFeature,
			"no encodable rows remain")
	}
	if dropped > 0 {
		log.Logger().Info("dropped rows during encoding", zap.Int("n_rows", dropped))
	}
	return matrix, labels, nil
}

// classifyEligibility derives the binary target from the CAFV
// eligibility text. The dataset carries three fixed categories; the
// negative phrasings are matched first so "not eligible" is never
// misread as eligible.
func classifyEligibility(column *dataset.Column, row int) float32 {
	var text string
	if column.Kind == dataset.Categorical {
		text = column.Labels[row]
	}
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "not eligible"):
		return 0
	case strings.Contains(lower, "eligibility unknown"):
		return 0
	case strings.Contains(lower, "eligible"):
		return 1
	default:
		return 0
	}
}
