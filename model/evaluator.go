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

	"github.com/juju/errors"
	"github.com/samber/lo"
	"modernc.org/sortutil"
)

// ROCPoint is one point of the ROC curve.
type ROCPoint struct {
	FPR float32
	TPR float32
}

// EvaluationReport summarizes classifier quality against ground truth.
type EvaluationReport struct {
	TP, FP, TN, FN int
	Accuracy       float32
	Precision      float32
	Recall         float32
	F1             float32
	ROC            []ROCPoint
	AUC            float32
}

// Evaluate computes the confusion matrix, the derived scores and the
// ROC curve with its AUC. Pure function of predictions, probabilities
// and ground truth. Precision is 0, not a failure, when nothing is
// predicted positive.
func Evaluate(labels []int, probabilities []float32, truth []float32) (*EvaluationReport, error) {
	if len(labels) != len(truth) || len(probabilities) != len(truth) {
		return nil, errors.NotValidf("predictions, probabilities and truth must be row-aligned")
	}
	if len(truth) == 0 {
		return nil, errors.NotValidf("empty evaluation set")
	}
	report := &EvaluationReport{}
	for i, label := range labels {
		positive := truth[i] > 0
		switch {
		case label == 1 && positive:
			report.TP++
		case label == 1 && !positive:
			report.FP++
		case label == 0 && !positive:
			report.TN++
		default:
			report.FN++
		}
	}
	total := float32(len(truth))
	report.Accuracy = float32(report.TP+report.TN) / total
	if report.TP+report.FP > 0 {
		report.Precision = float32(report.TP) / float32(report.TP+report.FP)
	}
	if report.TP+report.FN > 0 {
		report.Recall = float32(report.TP) / float32(report.TP+report.FN)
	}
	if report.Precision+report.Recall > 0 {
		report.F1 = 2 * report.Precision * report.Recall / (report.Precision + report.Recall)
	}
	report.ROC = rocCurve(probabilities, truth)
	report.AUC = auc(report.ROC)
	return report, nil
}

// rocCurve sweeps the decision threshold over the sorted distinct
// probabilities, from strictest to most permissive.
func rocCurve(probabilities []float32, truth []float32) []ROCPoint {
	var positives, negatives int
	for _, label := range truth {
		if label > 0 {
			positives++
		} else {
			negatives++
		}
	}
	thresholds := lo.Uniq(append([]float32(nil), probabilities...))
	sort.Sort(sortutil.Float32Slice(thresholds))
	points := []ROCPoint{{FPR: 0, TPR: 0}}
	for t := len(thresholds) - 1; t >= 0; t-- {
		threshold := thresholds[t]
		var tp, fp int
		for i, p := range probabilities {
			if p >= threshold {
				if truth[i] > 0 {
					tp++
				} else {
					fp++
				}
			}
		}
		points = append(points, ROCPoint{
			FPR: rate(fp, negatives),
			TPR: rate(tp, positives),
		})
	}
	last := points[len(points)-1]
	if last.FPR != 1 || last.TPR != 1 {
		points = append(points, ROCPoint{FPR: 1, TPR: 1})
	}
	return points
}

// auc integrates the ROC curve with the trapezoidal rule.
func auc(points []ROCPoint) float32 {
	var area float32
	for i := 1; i < len(points); i++ {
		width := points[i].FPR - points[i-1].FPR
		area += width * (points[i].TPR + points[i-1].TPR) / 2
	}
	return area
}

func rate(count, total int) float32 {
	if total == 0 {
		return 0
	}
	return float32(count) / float32(total)
}
