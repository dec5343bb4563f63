package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/mortgage-calculator/internal/calculation"
	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	formatName := conf.Output.Format
	if *outputFormatFlag != "" {
		formatName = *outputFormatFlag
	}

	outputFormat, err := output.ParseFormat(formatName)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	req, err := conf.ToRequest()
	if err != nil {
		logger.Fatal("invalid calculation parameters",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	report, err := calculation.Run(logger, req)
	if err != nil {
		logger.Fatal("failed to compute term sweep",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if err := output.Write(os.Stdout, outputFormat, report); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.String("format", string(outputFormat)),
			zap.Error(err),
		)
	}
}
