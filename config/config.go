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

package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/spf13/viper"

	"github.com/evpop-io/evpop/dataset"
)

// Config is the configuration of the analysis pipeline.
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Cleaning CleaningConfig `mapstructure:"cleaning"`
	Outlier  OutlierConfig  `mapstructure:"outlier"`
	Model    ModelConfig    `mapstructure:"model"`
}

// DataConfig is the configuration of input and output files.
type DataConfig struct {
	Path   string `mapstructure:"path"`
	Output string `mapstructure:"output"`
}

// CleaningConfig is the configuration of missing value handling.
type CleaningConfig struct {
	Strategy  string            `mapstructure:"strategy" validate:"oneof=auto drop columns"`
	Columns   map[string]string `mapstructure:"columns" validate:"dive,oneof=mean median mode constant drop"`
	Constants map[string]string `mapstructure:"constants"`
}

// OutlierConfig is the configuration of outlier detection.
type OutlierConfig struct {
	Method     string   `mapstructure:"method" validate:"oneof=iqr zscore"`
	Columns    []string `mapstructure:"columns"`
	ZThreshold float64  `mapstructure:"z_threshold" validate:"gt=0"`
	DDof       int      `mapstructure:"ddof" validate:"gte=0"`
}

// ModelConfig is the configuration of feature encoding and the
// classifier.
type ModelConfig struct {
	Features       []string `mapstructure:"features" validate:"min=1"`
	Target         string   `mapstructure:"target" validate:"required"`
	FeatureMissing string   `mapstructure:"feature_missing" validate:"oneof=median drop"`
	Lr             float64  `mapstructure:"lr" validate:"gt=0"`
	Reg            float64  `mapstructure:"reg" validate:"gte=0"`
	Epochs         int      `mapstructure:"epochs" validate:"gt=0"`
	Tol            float64  `mapstructure:"tol" validate:"gt=0"`
	Threshold      float64  `mapstructure:"threshold" validate:"gt=0,lt=1"`
	TestRatio      float64  `mapstructure:"test_ratio" validate:"gt=0,lt=1"`
	Seed           int64    `mapstructure:"seed"`
}

func setDefault() {
	// [cleaning]
	viper.SetDefault("cleaning.strategy", "auto")
	// [outlier]
	viper.SetDefault("outlier.method", "iqr")
	viper.SetDefault("outlier.z_threshold", 3.0)
	viper.SetDefault("outlier.ddof", 0)
	// [model]
	viper.SetDefault("model.features", []string{
		dataset.ColModelYear,
		dataset.ColElectricRange,
		dataset.ColBaseMSRP,
	})
	viper.SetDefault("model.target", dataset.ColCAFVEligibility)
	viper.SetDefault("model.feature_missing", "median")
	viper.SetDefault("model.lr", 0.1)
	viper.SetDefault("model.reg", 0.001)
	viper.SetDefault("model.epochs", 1000)
	viper.SetDefault("model.tol", 1e-6)
	viper.SetDefault("model.threshold", 0.5)
	viper.SetDefault("model.test_ratio", 0.2)
	viper.SetDefault("model.seed", 0)
}

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() *Config {
	setDefault()
	viper.SetConfigType("toml")
	if err := viper.ReadConfig(strings.NewReader("")); err != nil {
		panic(err)
	}
	var conf Config
	if err := viper.Unmarshal(&conf); err != nil {
		panic(err)
	}
	return &conf
}

// LoadConfig loads and validates the configuration from a TOML or YAML
// file.
func LoadConfig(path string) (*Config, error) {
	setDefault()
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Annotatef(err, "read config %s", path)
	}
	var conf Config
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

// Validate checks the configuration against its constraints.
func (config *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return errors.Annotatef(err, "invalid config")
	}
	return nil
}
