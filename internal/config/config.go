// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-calculator.
type Configuration struct {
	Calculation Calculation   `yaml:"calculation"`
	Alternate   *Scenario     `yaml:"alternate,omitempty"`
	Breakdown   *Breakdown    `yaml:"breakdown,omitempty"`
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Scenario holds the loan conditions shared by the baseline and alternate.
// Mode may be omitted when exactly one of MonthlyPayment and PropertyValue
// is set.
type Scenario struct {
	Mode                        string   `yaml:"mode,omitempty"` // by_monthly_payment, by_property_value
	InterestRate                float64  `yaml:"interestRate"`
	MonthlyPayment              float64  `yaml:"monthlyPayment,omitempty"`
	PropertyValue               float64  `yaml:"propertyValue,omitempty"`
	InitialPayment              float64  `yaml:"initialPayment,omitempty"`
	MinInitialPaymentPercentage *float64 `yaml:"minInitialPaymentPercentage,omitempty"`
	ExcludeInitialPayment       bool     `yaml:"excludeInitialPayment,omitempty"`
}

// Calculation is the baseline scenario plus the term range to sweep.
type Calculation struct {
	Scenario `mapstructure:",squash" yaml:",inline"`
	MinYears int `yaml:"minYears,omitempty"`
	MaxYears int `yaml:"maxYears,omitempty"`
}

// Breakdown requests the payment split of one term. Years of 0 selects the
// term with the lowest overpayment.
type Breakdown struct {
	Years       int    `yaml:"years,omitempty"`
	Granularity string `yaml:"granularity,omitempty"` // per_month, per_year
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetConfigType("yml")
	v.SetDefault("calculation.minYears", constants.DefaultMinYears)
	v.SetDefault("calculation.maxYears", constants.DefaultMaxYears)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Scenarios fixed by monthly payment have no property value
// before solving, so only their rate is checked here.
func (c *Configuration) ValidateConfiguration() []string {
	cv := &validation.ConfigValidator{
		MinYears:  c.Calculation.MinYears,
		MaxYears:  c.Calculation.MaxYears,
		Scenarios: []validation.ScenarioConfig{c.Calculation.Scenario.validationConfig("Baseline")},
	}
	if c.Alternate != nil {
		cv.Scenarios = append(cv.Scenarios, c.Alternate.validationConfig("Alternate"))
	}
	return cv.ValidateAll()
}

func (s Scenario) validationConfig(name string) validation.ScenarioConfig {
	return validation.ScenarioConfig{
		Name:                        name,
		InterestRate:                s.InterestRate,
		InitialPayment:              s.InitialPayment,
		PropertyValue:               s.PropertyValue,
		MinInitialPaymentPercentage: s.minInitialPaymentPercentage(),
	}
}
