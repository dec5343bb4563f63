package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Example config file",
			configPath: "../../" + constants.ExampleConfigFile,
			wantError:  false,
		},
		{
			name:       "Test config file",
			configPath: "../../test/test_config.yaml",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationExample(t *testing.T) {
	config, err := LoadConfiguration("../../" + constants.ExampleConfigFile)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	calc := config.Calculation
	if calc.Mode != "by_monthly_payment" {
		t.Errorf("Expected mode by_monthly_payment, got %q", calc.Mode)
	}
	if calc.InterestRate != 16.5 || calc.MonthlyPayment != 300000 || calc.InitialPayment != 5000000 {
		t.Errorf("Unexpected baseline values: %+v", calc.Scenario)
	}
	if calc.MinYears != 5 || calc.MaxYears != 20 {
		t.Errorf("Expected range 5-20, got %d-%d", calc.MinYears, calc.MaxYears)
	}
	if calc.MinInitialPaymentPercentage == nil || *calc.MinInitialPaymentPercentage != 20 {
		t.Errorf("Expected minInitialPaymentPercentage 20, got %v", calc.MinInitialPaymentPercentage)
	}
	if config.Alternate == nil || config.Alternate.PropertyValue != 25000000 {
		t.Errorf("Expected alternate with property value 25000000, got %+v", config.Alternate)
	}
	if config.Breakdown == nil || config.Breakdown.Years != 10 || config.Breakdown.Granularity != "per_year" {
		t.Errorf("Unexpected breakdown: %+v", config.Breakdown)
	}
	if config.Logging.Format != "console" || config.Output.Format != constants.OutputFormatPretty {
		t.Errorf("Unexpected logging/output: %+v %+v", config.Logging, config.Output)
	}
}

func TestLoadConfigurationFromReaderDefaults(t *testing.T) {
	yaml := `
calculation:
  interestRate: 0
  propertyValue: 6000000
  initialPayment: 1200000
`
	config, err := LoadConfigurationFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if config.Calculation.MinYears != constants.DefaultMinYears || config.Calculation.MaxYears != constants.DefaultMaxYears {
		t.Errorf("Expected default range %d-%d, got %d-%d", constants.DefaultMinYears, constants.DefaultMaxYears,
			config.Calculation.MinYears, config.Calculation.MaxYears)
	}
	if config.Alternate != nil {
		t.Errorf("Expected no alternate, got %+v", config.Alternate)
	}
	if config.Breakdown != nil {
		t.Errorf("Expected no breakdown, got %+v", config.Breakdown)
	}

	params, err := config.Calculation.ToParams()
	if err != nil {
		t.Fatalf("ToParams() error = %v", err)
	}
	if params.MinInitialPaymentPercentage != constants.DefaultMinInitialPaymentPercentage {
		t.Errorf("Expected default minimum %v, got %v", constants.DefaultMinInitialPaymentPercentage, params.MinInitialPaymentPercentage)
	}
	if _, ok := params.Mode.(mortgage.ByPropertyValue); !ok {
		t.Errorf("Expected inferred ByPropertyValue mode, got %T", params.Mode)
	}
}

func TestLoadConfigurationFromReaderInvalidYAML(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("calculation: [unclosed")); err == nil {
		t.Errorf("LoadConfigurationFromReader() expected error for invalid YAML")
	}
}

func TestValidateConfiguration(t *testing.T) {
	low := 5.0
	config := &Configuration{
		Calculation: Calculation{
			Scenario: Scenario{InterestRate: 10, PropertyValue: 10000000, InitialPayment: 300000},
			MinYears: 1,
			MaxYears: 45,
		},
		Alternate: &Scenario{InterestRate: 0, MonthlyPayment: 100000, MinInitialPaymentPercentage: &low},
	}

	warnings := config.ValidateConfiguration()
	if len(warnings) != 3 {
		t.Fatalf("Expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    LoggingConfig
		override  string
		wantError bool
	}{
		{"Defaults", LoggingConfig{}, "", false},
		{"Console debug", LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"Override level", LoggingConfig{Level: "bogus"}, "warn", false},
		{"Invalid level", LoggingConfig{Level: "verbose"}, "", true},
		{"Invalid format", LoggingConfig{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.config, tt.override)
			if tt.wantError {
				if err == nil {
					t.Errorf("NewLogger() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			_ = logger.Sync()
		})
	}
}

func TestNewLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "calculator.log")

	logger, err := NewLogger(LoggingConfig{Level: "info", Format: "json", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file does not contain the message: %s", data)
	}
}
