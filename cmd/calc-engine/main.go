package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/calc-engine/internal/config"
	"github.com/iwvelando/calc-engine/internal/engine"
	"github.com/iwvelando/calc-engine/internal/logging"
	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/constants"
	"github.com/iwvelando/calc-engine/pkg/output"
	"github.com/iwvelando/calc-engine/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	showSchedule := flag.Bool("schedule", false, "include loan amortization schedules in the output")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	eng := engine.New(logger, engine.Options{
		FractionDecimalPlaces: conf.Precision.FractionDecimalPlaces,
		DecimalPlaces:         conf.Precision.DecimalPlaces,
		DefaultMealsPerDay:    conf.PetFood.DefaultMealsPerDay,
	})

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration(eng.Supports)
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	requests := make([]engine.Request, 0, len(conf.Calculations))
	for _, calc := range conf.Calculations {
		requests = append(requests, engine.Request{Name: calc.Name, Type: calc.Type, Inputs: calc.Inputs})
	}

	results, failures := eng.RunAll(requests)
	for _, failure := range failures {
		logger.Error("calculation failed",
			zap.String("op", "main"),
			zap.String("name", failure.Name),
			zap.String("type", failure.Type),
			zap.String("kind", string(calcerr.KindOf(failure.Err))),
			zap.Strings("fields", calcerr.FieldsOf(failure.Err)),
			zap.Error(failure.Err),
		)
	}

	// Handle output.
	opts := output.Options{ShowSchedule: conf.Output.ShowSchedule || *showSchedule}
	if err := output.Write(os.Stdout, outputFormat, results, opts); err != nil {
		logger.Fatal("failed to write results",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if len(failures) > 0 {
		_ = logger.Sync()
		os.Exit(1)
	}
}
