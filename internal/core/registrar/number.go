package registrar

import (
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/internal/core/schema"
	"github.com/berfenger/sen6xgen/pkg/sen6x"
)

const NUMBER_MODE_BOX = "BOX"

func NewNumberRegistrar() Registrar {
	options := []schema.Field{
		{Key: "unit_of_measurement", Check: schema.String},
		{Key: "device_class", Check: schema.String},
		{Key: "mode", Default: NUMBER_MODE_BOX, Check: schema.Enum(true, "AUTO", "BOX", "SLIDER")},
		{Key: "restore_value", Default: true, Check: schema.Boolean},
	}
	r := newBase(domain.KIND_NUMBER, sen6x.NumberClass, options, []binding{
		numberBinding("altitude_compensation", domain.CapabilityCO2, "mdi:altimeter", UNIT_METER, 0, 3000, 1),
		numberBinding("ambient_pressure_compensation", domain.CapabilityCO2, "mdi:gauge", UNIT_HECTOPASCAL, 0, 1100, 1),
		temperatureOffsetBinding(),
		numberBinding("outdoor_co2_reference", domain.CapabilityCO2, "mdi:molecule-co2", UNIT_PPM, 350, 500, 1),
	})
	r.configure = func(v schema.Values, e *domain.EntityConfig) {
		e.Number.Mode = v.String("mode")
		e.Number.RestoreValue = v.Bool("restore_value")
	}
	return r
}

func numberBinding(key string, capability domain.Capability, icon string, unit string, min, max, step float64) binding {
	return binding{
		key:        key,
		setter:     setter(key, domain.KIND_NUMBER),
		capability: capability,
		defaults: domain.Presentation{
			Icon:              icon,
			UnitOfMeasurement: unit,
			EntityCategory:    CATEGORY_CONFIG,
		},
		number: &domain.NumberTraits{Min: min, Max: max, Step: step},
	}
}

// temperatureOffsetBinding also carries the temperature compensation slope and time constant,
// which are only forwarded when they differ from the device defaults.
func temperatureOffsetBinding() binding {
	b := numberBinding("temperature_offset", domain.CapabilityRHT, "mdi:thermometer-lines", UNIT_CELSIUS, -10, 10, 0.1)
	b.extra = []schema.Field{
		{Key: "normalized_offset_slope", Default: 0.0, Check: schema.FloatRange(-1, 1)},
		{Key: "time_constant", Default: int64(0), Check: schema.IntRange(0, 65535)},
	}
	b.decorate = func(v schema.Values, e *domain.EntityConfig) {
		e.Compensation = &domain.TemperatureCompensation{
			Offset:       0,
			Slope:        v.Float("normalized_offset_slope"),
			TimeConstant: v.Int("time_constant"),
		}
	}
	b.followUps = func(e *domain.EntityConfig) []domain.Instruction {
		if e.Compensation == nil || e.Compensation.IsDefault() {
			return nil
		}
		return []domain.Instruction{domain.Call(e.HubID, sen6x.SetTemperatureCompensation,
			domain.ValueArg("offset", e.Compensation.Offset),
			domain.ValueArg("normalized_offset_slope", e.Compensation.Slope),
			domain.ValueArg("time_constant", e.Compensation.TimeConstant))}
	}
	return b
}
