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

package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"

	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evpop-io/evpop"
	"github.com/evpop-io/evpop/base/log"
	"github.com/evpop-io/evpop/cmd/version"
	"github.com/evpop-io/evpop/config"
)

// Public export of the Washington State EV population dataset.
const datasetURL = "https://data.wa.gov/api/views/f6w7-q2d2/rows.csv?accessType=DOWNLOAD"

var rootCommand = &cobra.Command{
	Use:   "evpop",
	Short: "Exploratory analysis and CAFV eligibility prediction for the Washington EV population dataset.",
}

var analyzeCommand = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Run the analysis pipeline over an EV population CSV file.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(args[0])
	},
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Check the version of this build.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.BuildInfo())
	},
}

func analyze(dataPath string) {
	flags := rootCommand.PersistentFlags()

	// setup logger
	debug, _ := flags.GetBool("debug")
	log.SetLogger(flags, debug)

	// load config
	var conf *config.Config
	var err error
	configPath, _ := flags.GetString("config")
	if configPath != "" {
		log.Logger().Info("load config", zap.String("config", configPath))
		conf, err = config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
	} else {
		conf = config.GetDefaultConfig()
	}
	if dataPath != "" {
		conf.Data.Path = dataPath
	}
	if outputPath, _ := flags.GetString("output"); outputPath != "" {
		conf.Data.Output = outputPath
	}

	// fetch the dataset when asked and the file is absent
	if download, _ := flags.GetBool("download"); download {
		if err = downloadDataset(conf.Data.Path); err != nil {
			log.Logger().Fatal("failed to download dataset", zap.Error(err))
		}
	}
	if conf.Data.Path == "" {
		log.Logger().Fatal("no dataset, set data.path in the config or pass a file to analyze")
	}

	result, err := evpop.Run(conf)
	if err != nil {
		log.Logger().Fatal("pipeline failed", zap.Error(err))
	}
	renderProfile(result)
	renderStats(result)
	renderCorrelation(result)
	renderOutliers(result)
	renderEvaluation(result)
}

func init() {
	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle (analyze reads rootCommand.PersistentFlags()).
	rootCommand.Run = func(cmd *cobra.Command, args []string) {
		// Show version
		if showVersion, _ := cmd.PersistentFlags().GetBool("version"); showVersion {
			fmt.Println(version.BuildInfo())
			return
		}
		analyze("")
	}
	rootCommand.AddCommand(analyzeCommand, versionCommand)
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	rootCommand.PersistentFlags().BoolP("version", "v", false, "evpop version")
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCommand.PersistentFlags().String("output", "", "path of the cleaned CSV to write (overrides the config)")
	rootCommand.PersistentFlags().Bool("download", false, "download the dataset from data.wa.gov if the file is absent")
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}

func downloadDataset(path string) error {
	// skip download if file exists
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	resp, err := http.Get(datasetURL)
	if err != nil {
		return errors.Trace(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s", resp.Status)
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	pbReader := progressbar.NewReader(resp.Body, progressbar.DefaultBytes(
		resp.ContentLength,
		"Downloading EV population dataset",
	))
	if _, err = io.Copy(file, &pbReader); err != nil {
		return errors.Trace(err)
	}
	return nil
}

func renderProfile(result *evpop.Result) {
	fmt.Println("Columns:")
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("column", "kind", "missing", "unique")
	for _, profile := range result.Profile {
		_ = table.Append([]string{
			profile.Name,
			profile.Kind.String(),
			fmt.Sprint(profile.MissingCount),
			fmt.Sprint(profile.UniqueCount),
		})
	}
	_ = table.Render()
}

func renderStats(result *evpop.Result) {
	names := make([]string, 0, len(result.Stats))
	for name := range result.Stats {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("Descriptive statistics:")
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("column", "count", "mean", "median", "std", "min", "max", "skew", "kurtosis")
	for _, name := range names {
		s := result.Stats[name]
		_ = table.Append([]string{
			name,
			fmt.Sprint(s.Count),
			fmt.Sprintf("%.4f", s.Mean),
			fmt.Sprintf("%.4f", s.Median),
			fmt.Sprintf("%.4f", s.StdDev),
			fmt.Sprintf("%.4f", s.Min),
			fmt.Sprintf("%.4f", s.Max),
			fmt.Sprintf("%.4f", s.Skewness),
			fmt.Sprintf("%.4f", s.Kurtosis),
		})
	}
	_ = table.Render()
}

func renderCorrelation(result *evpop.Result) {
	correlation := result.Correlation
	fmt.Println("Pearson correlations:")
	table := tablewriter.NewWriter(os.Stdout)
	header := append([]string{""}, correlation.Columns...)
	table.Header(header)
	for _, a := range correlation.Columns {
		row := []string{a}
		for _, b := range correlation.Columns {
			row = append(row, fmt.Sprintf("%.4f", correlation.At(a, b)))
		}
		_ = table.Append(row)
	}
	_ = table.Render()
}

func renderOutliers(result *evpop.Result) {
	names := make([]string, 0, len(result.Outliers))
	for name := range result.Outliers {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("Outliers:")
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("column", "flagged", "lower", "upper")
	for _, name := range names {
		outliers := result.Outliers[name]
		_ = table.Append([]string{
			name,
			fmt.Sprint(outliers.Rows.Cardinality()),
			fmt.Sprintf("%.4f", outliers.Lower),
			fmt.Sprintf("%.4f", outliers.Upper),
		})
	}
	_ = table.Render()
}

func renderEvaluation(result *evpop.Result) {
	report := result.Evaluation
	fmt.Printf("Evaluation (%d train rows, %d test rows):\n", result.TrainRows, result.TestRows)
	confusion := tablewriter.NewWriter(os.Stdout)
	confusion.Header("", "predicted eligible", "predicted not eligible")
	_ = confusion.Append([]string{"actual eligible", fmt.Sprint(report.TP), fmt.Sprint(report.FN)})
	_ = confusion.Append([]string{"actual not eligible", fmt.Sprint(report.FP), fmt.Sprint(report.TN)})
	_ = confusion.Render()

	metrics := tablewriter.NewWriter(os.Stdout)
	metrics.Header("accuracy", "precision", "recall", "f1", "auc")
	_ = metrics.Append([]string{
		fmt.Sprintf("%.4f", report.Accuracy),
		fmt.Sprintf("%.4f", report.Precision),
		fmt.Sprintf("%.4f", report.Recall),
		fmt.Sprintf("%.4f", report.F1),
		fmt.Sprintf("%.4f", report.AUC),
	})
	_ = metrics.Render()
}
