package domain

import "time"

const (
	DefaultHubID          = "sen6x_hub"
	DefaultUpdateInterval = 10 * time.Second
	DefaultI2CAddress     = 0x6B
)

type HubConfig struct {
	ID                   string           `json:"id" yaml:"id"`
	Model                string           `json:"model,omitempty" yaml:"model,omitempty"`
	UpdateIntervalMillis int64            `json:"update_interval_ms" yaml:"update_interval_ms"`
	Address              int64            `json:"address" yaml:"address"`
	PressureSource       string           `json:"pressure_source,omitempty" yaml:"pressure_source,omitempty"`
	RhtAcceleration      *RhtAcceleration `json:"rht_acceleration,omitempty" yaml:"rht_acceleration,omitempty"`
	Path                 string           `json:"-" yaml:"-"`
}

type RhtAcceleration struct {
	K  int64 `json:"k" yaml:"k"`
	P  int64 `json:"p" yaml:"p"`
	T1 int64 `json:"t1" yaml:"t1"`
	T2 int64 `json:"t2" yaml:"t2"`
}

// TemperatureCompensation is forwarded raw; the hub scales it for the device.
// Offset is always 0 since the user offset is handled by the temperature_offset number.
type TemperatureCompensation struct {
	Offset       float64 `json:"offset" yaml:"offset"`
	Slope        float64 `json:"slope" yaml:"slope"`
	TimeConstant int64   `json:"time_constant" yaml:"time_constant"`
}

// IsDefault reports whether the compensation would leave the device untouched.
func (c TemperatureCompensation) IsDefault() bool {
	return c.Slope == 0 && c.TimeConstant == 0
}
