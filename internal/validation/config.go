package validation

import (
	"fmt"

	"github.com/rokuro32/staticamaster/internal/compare"
)

// Config is the tolerance and scoring policy applied to every submission.
type Config struct {
	// DefaultTolerance and DefaultToleranceType apply when an answer does
	// not carry its own tolerance.
	DefaultTolerance     float64               `mapstructure:"default_numeric_tolerance" json:"defaultNumericTolerance"`
	DefaultToleranceType compare.ToleranceKind `mapstructure:"default_tolerance_type" json:"defaultToleranceType"`

	// RequireCorrectUnits makes a unit mismatch fail an otherwise correct
	// numeric answer.
	RequireCorrectUnits bool `mapstructure:"require_correct_units" json:"requireCorrectUnits"`

	// EnablePartialCredit allows sub-100 scores for close numeric answers.
	EnablePartialCredit bool `mapstructure:"enable_partial_credit" json:"enablePartialCredit"`

	// Multi-step weights. The weighted sum is divided by the number of
	// steps that ran, so a weight of 1.0 means "full marks for this step".
	DCLWeight         float64 `mapstructure:"dcl_weight" json:"dclWeight"`
	EquationWeight    float64 `mapstructure:"equation_weight" json:"equationWeight"`
	CalculationWeight float64 `mapstructure:"calculation_weight" json:"calculationWeight"`

	// DCLPositionTolerance is the distance, in canvas units, within which a
	// placed force or support is considered at the expected position.
	DCLPositionTolerance float64 `mapstructure:"dcl_position_tolerance" json:"dclPositionTolerance"`
	// DCLAngleTolerance is the angular window, in degrees, for a force
	// direction to count as correct.
	DCLAngleTolerance float64 `mapstructure:"dcl_angle_tolerance" json:"dclAngleTolerance"`

	// EquationExtraPenalty is subtracted per selected equation that was not
	// required.
	EquationExtraPenalty float64 `mapstructure:"equation_extra_penalty" json:"equationExtraPenalty"`

	// MultiStepPassThreshold is the normalized score at or above which a
	// multi-step answer is correct.
	MultiStepPassThreshold float64 `mapstructure:"multi_step_pass_threshold" json:"multiStepPassThreshold"`

	// MistakeMatchTolerance is the percent window used to recognize an
	// authored common mistake value.
	MistakeMatchTolerance float64 `mapstructure:"mistake_match_tolerance" json:"mistakeMatchTolerance"`
}

// DefaultConfig returns the standard scoring policy.
func DefaultConfig() Config {
	return Config{
		DefaultTolerance:       2,
		DefaultToleranceType:   compare.Percent,
		RequireCorrectUnits:    false,
		EnablePartialCredit:    true,
		DCLWeight:              1.0,
		EquationWeight:         1.0,
		CalculationWeight:      1.0,
		DCLPositionTolerance:   20,
		DCLAngleTolerance:      15,
		EquationExtraPenalty:   20,
		MultiStepPassThreshold: 90,
		MistakeMatchTolerance:  2,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.DefaultTolerance < 0 {
		return fmt.Errorf("default tolerance must be non-negative, got %v", c.DefaultTolerance)
	}
	if !c.DefaultToleranceType.Valid() {
		return fmt.Errorf("unknown tolerance type %q", c.DefaultToleranceType)
	}
	for name, w := range map[string]float64{
		"dcl":         c.DCLWeight,
		"equation":    c.EquationWeight,
		"calculation": c.CalculationWeight,
	} {
		if w < 0 {
			return fmt.Errorf("%s weight must be non-negative, got %v", name, w)
		}
	}
	if c.DCLPositionTolerance < 0 || c.DCLAngleTolerance < 0 {
		return fmt.Errorf("dcl tolerances must be non-negative")
	}
	if c.EquationExtraPenalty < 0 {
		return fmt.Errorf("equation penalty must be non-negative, got %v", c.EquationExtraPenalty)
	}
	if c.MultiStepPassThreshold < 0 || c.MultiStepPassThreshold > 100 {
		return fmt.Errorf("multi-step threshold must be within [0, 100], got %v", c.MultiStepPassThreshold)
	}
	return nil
}
