package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/acuity-lab/acuity/internal/prescriptions"
	"github.com/acuity-lab/acuity/internal/triage"
)

const (
	EnvToleranceSphere   = "ACUITY_TOLERANCE_SPHERE"
	EnvToleranceCylinder = "ACUITY_TOLERANCE_CYLINDER"
	EnvToleranceAxis     = "ACUITY_TOLERANCE_AXIS"
	EnvToleranceAdd      = "ACUITY_TOLERANCE_ADD"
	EnvTolerancePD       = "ACUITY_TOLERANCE_PD"
)

// ValidationConfig holds the tunable parameters of the validation engine:
// prescription tolerances and confidence penalty constants. The routing
// decision table itself is fixed.
type ValidationConfig struct {
	Tolerances prescriptions.Tolerances `toml:"tolerances"`
	Penalties  triage.Penalties         `toml:"penalties"`
}

// Finalize applies defaults, environment variable overrides, and
// validation.
func (c *ValidationConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ValidationConfig) Merge(overlay *ValidationConfig) {
	if overlay.Tolerances.Sphere != 0 {
		c.Tolerances.Sphere = overlay.Tolerances.Sphere
	}
	if overlay.Tolerances.Cylinder != 0 {
		c.Tolerances.Cylinder = overlay.Tolerances.Cylinder
	}
	if overlay.Tolerances.Axis != 0 {
		c.Tolerances.Axis = overlay.Tolerances.Axis
	}
	if overlay.Tolerances.Add != 0 {
		c.Tolerances.Add = overlay.Tolerances.Add
	}
	if overlay.Tolerances.PD != 0 {
		c.Tolerances.PD = overlay.Tolerances.PD
	}
	if overlay.Penalties.Critical != 0 {
		c.Penalties.Critical = overlay.Penalties.Critical
	}
	if overlay.Penalties.Warning != 0 {
		c.Penalties.Warning = overlay.Penalties.Warning
	}
	if overlay.Penalties.ComplexityBaseline != 0 {
		c.Penalties.ComplexityBaseline = overlay.Penalties.ComplexityBaseline
	}
	if overlay.Penalties.ComplexityDivisor != 0 {
		c.Penalties.ComplexityDivisor = overlay.Penalties.ComplexityDivisor
	}
}

func (c *ValidationConfig) loadDefaults() {
	defaults := prescriptions.DefaultTolerances()
	if c.Tolerances.Sphere == 0 {
		c.Tolerances.Sphere = defaults.Sphere
	}
	if c.Tolerances.Cylinder == 0 {
		c.Tolerances.Cylinder = defaults.Cylinder
	}
	if c.Tolerances.Axis == 0 {
		c.Tolerances.Axis = defaults.Axis
	}
	if c.Tolerances.Add == 0 {
		c.Tolerances.Add = defaults.Add
	}
	if c.Tolerances.PD == 0 {
		c.Tolerances.PD = defaults.PD
	}

	penalties := triage.DefaultPenalties()
	if c.Penalties.Critical == 0 {
		c.Penalties.Critical = penalties.Critical
	}
	if c.Penalties.Warning == 0 {
		c.Penalties.Warning = penalties.Warning
	}
	if c.Penalties.ComplexityBaseline == 0 {
		c.Penalties.ComplexityBaseline = penalties.ComplexityBaseline
	}
	if c.Penalties.ComplexityDivisor == 0 {
		c.Penalties.ComplexityDivisor = penalties.ComplexityDivisor
	}
}

func (c *ValidationConfig) loadEnv() {
	loadFloat(EnvToleranceSphere, &c.Tolerances.Sphere)
	loadFloat(EnvToleranceCylinder, &c.Tolerances.Cylinder)
	loadFloat(EnvToleranceAxis, &c.Tolerances.Axis)
	loadFloat(EnvToleranceAdd, &c.Tolerances.Add)
	loadFloat(EnvTolerancePD, &c.Tolerances.PD)
}

func (c *ValidationConfig) validate() error {
	for name, v := range map[string]float64{
		"sphere":   c.Tolerances.Sphere,
		"cylinder": c.Tolerances.Cylinder,
		"axis":     c.Tolerances.Axis,
		"add":      c.Tolerances.Add,
		"pd":       c.Tolerances.PD,
	} {
		if v <= 0 {
			return fmt.Errorf("tolerance %s must be positive", name)
		}
	}

	if c.Penalties.Critical < 0 || c.Penalties.Warning < 0 {
		return fmt.Errorf("penalties must be non-negative")
	}
	if c.Penalties.ComplexityBaseline < 0 || c.Penalties.ComplexityBaseline > 100 {
		return fmt.Errorf("complexity_baseline must be within [0,100]")
	}
	if c.Penalties.ComplexityDivisor <= 0 {
		return fmt.Errorf("complexity_divisor must be positive")
	}
	return nil
}

func loadFloat(env string, dst *float64) {
	if v := os.Getenv(env); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
