package controller

// Controller turns the distance between a measured input and its setpoint
// into a correction.
type Controller interface {
	Next(input, setpoint float64) float64
}

// PI is a proportional-integral controller with output clamping and
// back-calculation anti-windup.
type PI struct {
	PIConfig
	integral float64
}

// PIConfig holds the gains and output bounds of a PI controller. Ti and Tt
// of zero disable the integral term.
type PIConfig struct {
	Kp     float64 `json:"k_p" yaml:"k_p"`
	Ti     float64 `json:"t_i" yaml:"t_i"`
	Tt     float64 `json:"t_t" yaml:"t_t"`
	Period float64 `json:"period" yaml:"period"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// DefaultPIConfig is tuned for corrections to a heap growth factor driven
// by a normalized (measured/target) peak.
func DefaultPIConfig() *PIConfig {
	return &PIConfig{
		Kp:     0.9,
		Ti:     1.6,
		Tt:     1000,
		Period: 1,
		Min:    -2,
		Max:    2,
	}
}

// NewPI returns a controller with a zero integral term.
func NewPI(cfg *PIConfig) *PI {
	return &PI{PIConfig: *cfg}
}

func (c *PI) output(input, setpoint float64) (rawOutput, output float64) {
	prop := c.Kp * (setpoint - input)
	rawOutput = prop + c.integral
	output = rawOutput
	if output < c.Min {
		output = c.Min
	} else if output > c.Max {
		output = c.Max
	}
	return rawOutput, output
}

func (c *PI) update(input, setpoint, rawOutput, output float64) {
	if c.Ti != 0 && c.Tt != 0 {
		c.integral += (c.Kp*c.Period/c.Ti)*(setpoint-input) + (c.Period/c.Tt)*(output-rawOutput)
	}
}

// Next returns the clamped correction for input and advances the integral.
func (c *PI) Next(input, setpoint float64) float64 {
	rawOutput, output := c.output(input, setpoint)
	c.update(input, setpoint, rawOutput, output)
	return output
}

// Reset drops the accumulated integral term.
func (c *PI) Reset() {
	c.integral = 0
}
