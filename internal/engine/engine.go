// Package engine runs named calculations from generic key/value inputs, as
// read from a batch configuration file or an API request body.
package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/constants"
	"go.uber.org/zap"
)

// Calculation type names.
const (
	TypeROI        = "roi"
	TypeLoan       = "loan"
	TypeBMI        = "bmi"
	TypeCalorie    = "calorie"
	TypePetFood    = "petFood"
	TypePercentage = "percentage"
	TypeFraction   = "fraction"
)

// Line is one labelled value of a human-readable result summary.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Result is the outcome of one calculation. Output holds the calculator's
// typed result record.
type Result struct {
	Name    string      `json:"name,omitempty"`
	Type    string      `json:"type"`
	Output  interface{} `json:"output"`
	Summary []Line      `json:"summary"`
}

// Info describes a registered calculation type.
type Info struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Inputs      []string `json:"inputs"`
}

// Options tune defaults applied before a calculator runs.
type Options struct {
	// FractionDecimalPlaces is the precision used for decimal to fraction conversion.
	FractionDecimalPlaces int
	// DecimalPlaces is the display precision for fraction to decimal conversion.
	DecimalPlaces int
	// DefaultMealsPerDay overrides the adult pet meal count when positive.
	DefaultMealsPerDay int
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		FractionDecimalPlaces: constants.DefaultFractionDecimalPlaces,
		DecimalPlaces:         constants.DefaultDecimalPlaces,
		DefaultMealsPerDay:    constants.DefaultMealsPerDay,
	}
}

type runFunc func(opts Options, inputs map[string]interface{}) (interface{}, []Line, error)

type calculator struct {
	info Info
	run  runFunc
}

// Engine dispatches calculations by type. It holds no per-call state and is
// safe for concurrent use.
type Engine struct {
	logger      *zap.Logger
	opts        Options
	calculators map[string]calculator
}

// New builds an Engine with every calculator registered. Zero-valued options
// fall back to the defaults.
func New(logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultOptions()
	if opts.FractionDecimalPlaces == 0 {
		opts.FractionDecimalPlaces = defaults.FractionDecimalPlaces
	}
	if opts.DecimalPlaces == 0 {
		opts.DecimalPlaces = defaults.DecimalPlaces
	}
	if opts.DefaultMealsPerDay == 0 {
		opts.DefaultMealsPerDay = defaults.DefaultMealsPerDay
	}

	e := &Engine{
		logger:      logger,
		opts:        opts,
		calculators: make(map[string]calculator),
	}
	for _, c := range registry() {
		e.calculators[strings.ToLower(c.info.Type)] = c
	}
	return e
}

// Types lists the registered calculation types in name order.
func (e *Engine) Types() []Info {
	infos := make([]Info, 0, len(e.calculators))
	for _, c := range e.calculators {
		infos = append(infos, c.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Type < infos[j].Type })
	return infos
}

// Supports reports whether calcType names a registered calculation.
func (e *Engine) Supports(calcType string) bool {
	_, ok := e.calculators[strings.ToLower(strings.TrimSpace(calcType))]
	return ok
}

// Calculate runs the calculation of the given type. Calculation failures are
// returned as *calcerr.Error values.
func (e *Engine) Calculate(name, calcType string, inputs map[string]interface{}) (Result, error) {
	c, ok := e.calculators[strings.ToLower(strings.TrimSpace(calcType))]
	if !ok {
		return Result{}, calcerr.Newf(calcerr.InvalidInput, []string{"type"}, "unknown calculation type %q", calcType)
	}
	if inputs == nil {
		inputs = map[string]interface{}{}
	}

	start := time.Now()
	output, summary, err := c.run(e.opts, inputs)
	if err != nil {
		e.logger.Warn("calculation failed",
			zap.String("op", "engine.Calculate"),
			zap.String("type", c.info.Type),
			zap.String("name", name),
			zap.Error(err),
		)
		return Result{}, err
	}

	e.logger.Debug("calculation complete",
		zap.String("op", "engine.Calculate"),
		zap.String("type", c.info.Type),
		zap.String("name", name),
		zap.Duration("duration", time.Since(start)),
	)
	return Result{Name: name, Type: c.info.Type, Output: output, Summary: summary}, nil
}

// Request is a single named calculation.
type Request struct {
	Name   string
	Type   string
	Inputs map[string]interface{}
}

// Failure records a calculation in a batch that did not produce a result.
type Failure struct {
	Name string
	Type string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("calculation %q (%s): %v", f.Name, f.Type, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// RunAll runs every request in order. A failing request does not stop the
// batch; its error is collected instead.
func (e *Engine) RunAll(requests []Request) ([]Result, []Failure) {
	results := make([]Result, 0, len(requests))
	var failures []Failure
	for _, req := range requests {
		result, err := e.Calculate(req.Name, req.Type, req.Inputs)
		if err != nil {
			failures = append(failures, Failure{Name: req.Name, Type: req.Type, Err: err})
			continue
		}
		results = append(results, result)
	}
	return results, failures
}
