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
	"github.com/juju/errors"
)

// Errors surfaced by encoding and prediction. Fit-time non-convergence
// is advisory and reported through TrainedModel.Converged instead.
var (
	// ErrUnresolvedMissingFeature is returned when a gap in a feature
	// column would reach the classifier.
	ErrUnresolvedMissingFeature = errors.New("unresolved missing feature value")
	// ErrFeatureMismatch is returned when predict-time features don't
	// match the order captured at fit time.
	ErrFeatureMismatch = errors.New("feature order mismatch")
)

// BaseModel holds the hyper-parameters shared by models.
type BaseModel struct {
	Params Params
}

// SetParams sets hyper-parameters for the base model.
func (model *BaseModel) SetParams(params Params) {
	model.Params = params
}

// GetParams returns the hyper-parameters of the base model.
func (model *BaseModel) GetParams() Params {
	return model.Params
}

// FitConfig controls fitting verbosity. Verbose n logs the loss every
// n epochs; zero disables progress logging.
type FitConfig struct {
	Verbose int
}

// NewFitConfig creates the default fit config.
func NewFitConfig() *FitConfig {
	return &FitConfig{Verbose: 100}
}

// SetVerbose sets the verbosity.
func (config *FitConfig) SetVerbose(verbose int) *FitConfig {
	config.Verbose = verbose
	return config
}

// LoadDefaultIfNil loads the default config if config is nil.
func (config *FitConfig) LoadDefaultIfNil() *FitConfig {
	if config == nil {
		return NewFitConfig()
	}
	return config
}
