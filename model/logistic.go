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
	"github.com/chewxy/math32"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/evpop-io/evpop/base"
	"github.com/evpop-io/evpop/base/log"
)

// LogisticRegression is a binary classifier fit by full-batch gradient
// descent with L2 regularization. Features are standardized internally;
// the scaler state is captured in the model so prediction sees the same
// transform as fitting.
type LogisticRegression struct {
	BaseModel
	// Model parameters
	Weights      []float32
	Bias         float32
	FeatureNames []string
	Means        []float32
	Stds         []float32
	Converged    bool
	// Hyper parameters
	nEpochs     int
	lr          float32
	reg         float32
	tol         float32
	initStdDev  float32
	randomState int64
}

// NewLogisticRegression creates a logistic regression classifier.
func NewLogisticRegression(params Params) *LogisticRegression {
	lr := new(LogisticRegression)
	lr.SetParams(params)
	return lr
}

// SetParams sets hyper-parameters.
func (lr *LogisticRegression) SetParams(params Params) {
	lr.BaseModel.SetParams(params)
	lr.nEpochs = lr.Params.GetInt(NEpochs, 1000)
	lr.lr = lr.Params.GetFloat32(Lr, 0.1)
	lr.reg = lr.Params.GetFloat32(Reg, 0.001)
	lr.tol = lr.Params.GetFloat32(Tol, 1e-6)
	lr.initStdDev = lr.Params.GetFloat32(InitStdDev, 0.01)
	lr.randomState = lr.Params.GetInt64(RandomState, 0)
}

// Fit trains the classifier. Hitting the iteration cap before the loss
// delta falls under Tol is not fatal: the best-effort coefficients are
// kept, a warning is logged and Converged stays false.
func (lr *LogisticRegression) Fit(x *FeatureMatrix, y []float32, config *FitConfig) error {
	config = config.LoadDefaultIfNil()
	if x.NumRow() == 0 {
		return errors.NotValidf("empty training set")
	}
	if x.NumRow() != len(y) {
		return errors.NotValidf("feature matrix has %d rows but target has %d", x.NumRow(), len(y))
	}
	var positive, negative int
	for _, label := range y {
		if label > 0 {
			positive++
		} else {
			negative++
		}
	}
	log.Logger().Info("fit logistic regression",
		zap.Int("train_size", x.NumRow()),
		zap.Int("train_positive_count", positive),
		zap.Int("train_negative_count", negative),
		zap.Strings("features", x.Names),
		zap.Any("params", lr.GetParams()))

	d := len(x.Names)
	lr.FeatureNames = append([]string(nil), x.Names...)
	lr.Means, lr.Stds = fitScaler(x)
	scaled := scale(x, lr.Means, lr.Stds)

	rng := base.NewRandomGenerator(lr.randomState)
	lr.Weights = rng.NormalVector(d, 0, lr.initStdDev)
	lr.Bias = 0
	lr.Converged = false

	n := float32(x.NumRow())
	grad := make([]float32, d)
	prevLoss := math32.Inf(1)
	for epoch := 1; epoch <= lr.nEpochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		var gradBias, loss float32
		for i, row := range scaled {
			p := sigmoid(dot(lr.Weights, row) + lr.Bias)
			residual := p - y[i]
			for j := range row {
				grad[j] += residual * row[j]
			}
			gradBias += residual
			loss -= y[i]*logClamped(p) + (1-y[i])*logClamped(1-p)
		}
		loss /= n
		for j := range lr.Weights {
			loss += lr.reg * lr.Weights[j] * lr.Weights[j] / 2
			lr.Weights[j] -= lr.lr * (grad[j]/n + lr.reg*lr.Weights[j])
		}
		lr.Bias -= lr.lr * gradBias / n
		if config.Verbose > 0 && epoch%config.Verbose == 0 {
			log.Logger().Debug("fit logistic regression",
				zap.Int("epoch", epoch),
				zap.Float32("loss", loss))
		}
		if math32.Abs(prevLoss-loss) < lr.tol {
			lr.Converged = true
			log.Logger().Debug("converged",
				zap.Int("epoch", epoch),
				zap.Float32("loss", loss))
			break
		}
		prevLoss = loss
	}
	if !lr.Converged {
		log.Logger().Warn("iteration cap hit before convergence, keeping best-effort coefficients",
			zap.Int("n_epochs", lr.nEpochs),
			zap.Float32("tol", lr.tol))
	}
	return nil
}

// Predict returns binary labels and probability scores for each row.
// The threshold decides the label; 0.5 is the conventional choice.
func (lr *LogisticRegression) Predict(x *FeatureMatrix, threshold float32) ([]int, []float32, error) {
	if lr.Weights == nil {
		return nil, nil, errors.NotValidf("predict before fit")
	}
	if len(x.Names) != len(lr.FeatureNames) {
		return nil, nil, errors.Annotatef(ErrFeatureMismatch,
			"model expects %v, got %v", lr.FeatureNames, x.Names)
	}
	for i, name := range lr.FeatureNames {
		if x.Names[i] != name {
			return nil, nil, errors.Annotatef(ErrFeatureMismatch,
				"model expects %v, got %v", lr.FeatureNames, x.Names)
		}
	}
	scaled := scale(x, lr.Means, lr.Stds)
	labels := make([]int, len(scaled))
	probabilities := make([]float32, len(scaled))
	for i, row := range scaled {
		probabilities[i] = sigmoid(dot(lr.Weights, row) + lr.Bias)
		if probabilities[i] >= threshold {
			labels[i] = 1
		}
	}
	return labels, probabilities, nil
}

func fitScaler(x *FeatureMatrix) (means, stds []float32) {
	d := len(x.Names)
	means = make([]float32, d)
	stds = make([]float32, d)
	n := float32(x.NumRow())
	for _, row := range x.Values {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= n
	}
	for _, row := range x.Values {
		for j, v := range row {
			diff := v - means[j]
			stds[j] += diff * diff
		}
	}
	for j := range stds {
		stds[j] = math32.Sqrt(stds[j] / n)
		if stds[j] == 0 {
			// constant feature, leave it centered
			stds[j] = 1
		}
	}
	return
}

func scale(x *FeatureMatrix, means, stds []float32) [][]float32 {
	scaled := make([][]float32, len(x.Values))
	for i, row := range x.Values {
		scaled[i] = make([]float32, len(row))
		for j, v := range row {
			scaled[i][j] = (v - means[j]) / stds[j]
		}
	}
	return scaled
}

func sigmoid(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// logClamped guards against log(0) when a probability saturates in
// float32.
func logClamped(x float32) float32 {
	const eps = 1e-7
	if x < eps {
		x = eps
	}
	return math32.Log(x)
}
