package domain

type EntityKind string

const (
	KIND_HUB           EntityKind = "sen6x"
	KIND_SENSOR        EntityKind = "sensor"
	KIND_BINARY_SENSOR EntityKind = "binary_sensor"
	KIND_TEXT_SENSOR   EntityKind = "text_sensor"
	KIND_NUMBER        EntityKind = "number"
	KIND_SWITCH        EntityKind = "switch"
	KIND_BUTTON        EntityKind = "button"
)

// EmissionOrder is the order in which entity kinds are bound to the hub.
var EmissionOrder = []EntityKind{
	KIND_SENSOR,
	KIND_BINARY_SENSOR,
	KIND_NUMBER,
	KIND_SWITCH,
	KIND_BUTTON,
	KIND_TEXT_SENSOR,
}

func IsEntityKind(k string) bool {
	for _, kind := range EmissionOrder {
		if string(kind) == k {
			return true
		}
	}
	return false
}

type Presentation struct {
	Name              string `json:"name,omitempty" yaml:"name,omitempty"`
	Icon              string `json:"icon,omitempty" yaml:"icon,omitempty"`
	UnitOfMeasurement string `json:"unit_of_measurement,omitempty" yaml:"unit_of_measurement,omitempty"`
	AccuracyDecimals  *int64 `json:"accuracy_decimals,omitempty" yaml:"accuracy_decimals,omitempty"`
	DeviceClass       string `json:"device_class,omitempty" yaml:"device_class,omitempty"`
	StateClass        string `json:"state_class,omitempty" yaml:"state_class,omitempty"` // measurement, total, total_increasing
	EntityCategory    string `json:"entity_category,omitempty" yaml:"entity_category,omitempty"` // diagnostic, config
	DisabledByDefault bool   `json:"disabled_by_default,omitempty" yaml:"disabled_by_default,omitempty"`
	Internal          bool   `json:"internal,omitempty" yaml:"internal,omitempty"`
}

type NumberTraits struct {
	Min          float64 `json:"min_value" yaml:"min_value"`
	Max          float64 `json:"max_value" yaml:"max_value"`
	Step         float64 `json:"step" yaml:"step"`
	Mode         string  `json:"mode" yaml:"mode"` // AUTO, BOX, SLIDER
	RestoreValue bool    `json:"restore_value" yaml:"restore_value"`
}

// EntityConfig is a validated entity ready to be bound to its hub.
type EntityConfig struct {
	Kind         EntityKind   `json:"kind" yaml:"kind"`
	Key          string       `json:"key" yaml:"key"`
	ID           string       `json:"id" yaml:"id"`
	HubID        string       `json:"hub_id" yaml:"hub_id"`
	Requires     Capability   `json:"requires,omitempty" yaml:"requires,omitempty"`
	Path         string       `json:"-" yaml:"-"`
	Presentation Presentation `json:"presentation" yaml:"presentation"`

	Tuning                  *AlgorithmTuning         `json:"algorithm_tuning,omitempty" yaml:"algorithm_tuning,omitempty"`
	Compensation            *TemperatureCompensation `json:"temperature_compensation,omitempty" yaml:"temperature_compensation,omitempty"`
	Number                  *NumberTraits            `json:"number,omitempty" yaml:"number,omitempty"`
	RestoreMode             string                   `json:"restore_mode,omitempty" yaml:"restore_mode,omitempty"`
	CleaningIntervalSeconds *int64                   `json:"interval_s,omitempty" yaml:"interval_s,omitempty"`
}
