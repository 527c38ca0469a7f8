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

// Package evpop analyzes the Washington State electric vehicle
// population dataset: it loads the registration table, repairs missing
// values, reports outliers and descriptive statistics, and trains a
// logistic regression predicting clean alternative fuel vehicle
// eligibility.
package evpop

import (
	"os"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/evpop-io/evpop/base/log"
	"github.com/evpop-io/evpop/cleaning"
	"github.com/evpop-io/evpop/config"
	"github.com/evpop-io/evpop/dataset"
	"github.com/evpop-io/evpop/model"
	"github.com/evpop-io/evpop/stats"
)

// Result collects the output of every stage of the pipeline.
type Result struct {
	Table        *dataset.Table
	Profile      []dataset.ColumnProfile
	MissingAfter map[string]int
	Outliers     cleaning.OutlierReport
	Stats        map[string]stats.ColumnStats
	Correlation  *stats.Correlation
	Model        *model.LogisticRegression
	Evaluation   *model.EvaluationReport
	TrainRows    int
	TestRows     int
}

// Run executes the full pipeline described by the configuration: load,
// clean, detect outliers, describe, encode, fit and evaluate. The first
// failing stage aborts the run.
func Run(conf *config.Config) (*Result, error) {
	result := &Result{}

	// load
	table, err := dataset.LoadCSV(conf.Data.Path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	result.Table = table
	result.Profile = dataset.Profile(table)

	// clean
	missing := cleaning.CheckMissing(table)
	total := 0
	for _, count := range missing {
		total += count
	}
	log.Logger().Info("checked missing values", zap.Int("n_missing", total))
	if err = cleaning.HandleMissing(table, missingStrategy(conf)); err != nil {
		return nil, errors.Trace(err)
	}
	result.MissingAfter = cleaning.CheckMissing(table)

	// outliers (advisory)
	outlierConfig := &cleaning.OutlierConfig{
		Method:     cleaning.Method(conf.Outlier.Method),
		ZThreshold: conf.Outlier.ZThreshold,
		DDof:       conf.Outlier.DDof,
	}
	result.Outliers, err = cleaning.DetectOutliers(table, outlierColumns(conf), outlierConfig)
	if err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Info("detected outliers",
		zap.String("method", conf.Outlier.Method),
		zap.Int("n_outliers", result.Outliers.Count()))

	// describe
	result.Stats = stats.Describe(table)
	result.Correlation = stats.CorrelationMatrix(table)

	// optional cleaned output
	if conf.Data.Output != "" {
		if err = writeCleaned(table, conf.Data.Output); err != nil {
			return nil, errors.Trace(err)
		}
		log.Logger().Info("wrote cleaned dataset", zap.String("path", conf.Data.Output))
	}

	// encode
	encodingConfig := &model.EncodingConfig{
		Features:    conf.Model.Features,
		Target:      conf.Model.Target,
		MissingRule: model.MissingFeatureRule(conf.Model.FeatureMissing),
	}
	x, y, err := model.Encode(table, encodingConfig)
	if err != nil {
		return nil, errors.Trace(err)
	}

	// fit
	trainX, testX, trainY, testY := model.TrainTestSplit(x, y, conf.Model.TestRatio, conf.Model.Seed)
	result.TrainRows = trainX.NumRow()
	result.TestRows = testX.NumRow()
	classifier := model.NewLogisticRegression(model.Params{
		model.Lr:          conf.Model.Lr,
		model.Reg:         conf.Model.Reg,
		model.NEpochs:     conf.Model.Epochs,
		model.Tol:         conf.Model.Tol,
		model.RandomState: conf.Model.Seed,
	})
	if err = classifier.Fit(trainX, trainY, model.NewFitConfig()); err != nil {
		return nil, errors.Trace(err)
	}
	result.Model = classifier

	// evaluate
	labels, probabilities, err := classifier.Predict(testX, float32(conf.Model.Threshold))
	if err != nil {
		return nil, errors.Trace(err)
	}
	result.Evaluation, err = model.Evaluate(labels, probabilities, testY)
	if err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Info("evaluated classifier",
		zap.Float32("accuracy", result.Evaluation.Accuracy),
		zap.Float32("auc", result.Evaluation.AUC))
	return result, nil
}

func missingStrategy(conf *config.Config) cleaning.Strategy {
	switch conf.Cleaning.Strategy {
	case "drop":
		return cleaning.DropStrategy()
	case "columns":
		columns := make(map[string]cleaning.ColumnRule, len(conf.Cleaning.Columns))
		for name, rule := range conf.Cleaning.Columns {
			columns[name] = cleaning.ColumnRule{
				Rule:     cleaning.Rule(rule),
				Constant: conf.Cleaning.Constants[name],
			}
		}
		return cleaning.ColumnStrategy(columns)
	default:
		return cleaning.AutoStrategy()
	}
}

func outlierColumns(conf *config.Config) []string {
	if len(conf.Outlier.Columns) == 0 {
		return nil
	}
	return conf.Outlier.Columns
}

func writeCleaned(table *dataset.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	return dataset.WriteCSV(table, file)
}
