package registrar

import (
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/internal/core/schema"
	"github.com/berfenger/sen6xgen/pkg/sen6x"
)

const (
	UNIT_MICROGRAMS_PER_CUBIC_METER  = "µg/m³"
	UNIT_COUNTS_PER_CUBIC_CENTIMETER = "#/cm³"
	UNIT_PERCENT                     = "%"
	UNIT_CELSIUS                     = "°C"
	UNIT_PPM                         = "ppm"
	UNIT_PPB                         = "ppb"
	UNIT_HECTOPASCAL                 = "hPa"
	UNIT_METER                       = "m"

	STATE_CLASS_MEASUREMENT = "measurement"
	CATEGORY_DIAGNOSTIC     = "diagnostic"
	CATEGORY_CONFIG         = "config"
)

func NewSensorRegistrar() Registrar {
	options := []schema.Field{
		{Key: "unit_of_measurement", Check: schema.String},
		{Key: "accuracy_decimals", Check: schema.IntRange(-10, 10)},
		{Key: "device_class", Check: schema.String},
		{Key: "state_class", Check: schema.Enum(false, "measurement", "total", "total_increasing")},
	}
	return newBase(domain.KIND_SENSOR, sen6x.SensorClass, options, sensorBindings())
}

func measurement(unit string, icon string, accuracy int64, deviceClass string) domain.Presentation {
	return domain.Presentation{
		UnitOfMeasurement: unit,
		Icon:              icon,
		AccuracyDecimals:  decimals(accuracy),
		DeviceClass:       deviceClass,
		StateClass:        STATE_CLASS_MEASUREMENT,
	}
}

func diagnosticMeasurement(unit string, icon string, accuracy int64) domain.Presentation {
	p := measurement(unit, icon, accuracy, "")
	p.EntityCategory = CATEGORY_DIAGNOSTIC
	return p
}

func sensorBinding(key string, capability domain.Capability, p domain.Presentation) binding {
	return binding{
		key:        key,
		setter:     setter(key, domain.KIND_SENSOR),
		capability: capability,
		defaults:   p,
	}
}

func sensorBindings() []binding {
	return []binding{
		sensorBinding("pm_1_0", domain.CapabilityPM, measurement(UNIT_MICROGRAMS_PER_CUBIC_METER, "mdi:blur", 1, "pm1")),
		sensorBinding("pm_2_5", domain.CapabilityPM, measurement(UNIT_MICROGRAMS_PER_CUBIC_METER, "mdi:blur", 1, "pm25")),
		sensorBinding("pm_4_0", domain.CapabilityPM4, measurement(UNIT_MICROGRAMS_PER_CUBIC_METER, "mdi:blur", 1, "")),
		sensorBinding("pm_10_0", domain.CapabilityPM, measurement(UNIT_MICROGRAMS_PER_CUBIC_METER, "mdi:blur", 1, "pm10")),
		sensorBinding("humidity", domain.CapabilityRHT, measurement(UNIT_PERCENT, "mdi:water-percent", 1, "humidity")),
		sensorBinding("temperature", domain.CapabilityRHT, measurement(UNIT_CELSIUS, "mdi:thermometer", 1, "temperature")),
		gasIndexBinding("voc_index", domain.CapabilityVOC, domain.MEASUREMENT_VOC, sen6x.SetVocAlgorithmTuning),
		gasIndexBinding("nox_index", domain.CapabilityNOX, domain.MEASUREMENT_NOX, sen6x.SetNoxAlgorithmTuning),
		sensorBinding("co2", domain.CapabilityCO2, measurement(UNIT_PPM, "mdi:molecule-co2", 0, "carbon_dioxide")),
		sensorBinding("formaldehyde", domain.CapabilityHCHO, measurement(UNIT_PPB, "mdi:molecule", 1, "")),
		sensorBinding("tvoc_well", domain.CapabilityVOC, measurement(UNIT_MICROGRAMS_PER_CUBIC_METER, "mdi:air-filter", 0, "volatile_organic_compounds")),
		sensorBinding("tvoc_reset", domain.CapabilityVOC, measurement(UNIT_MICROGRAMS_PER_CUBIC_METER, "mdi:air-filter", 0, "volatile_organic_compounds")),
		sensorBinding("tvoc_ethanol", domain.CapabilityVOC, measurement(UNIT_PPB, "mdi:chemical-weapon", 0, "volatile_organic_compounds")),
		sensorBinding("nc_0_5", domain.CapabilityPM, diagnosticMeasurement(UNIT_COUNTS_PER_CUBIC_CENTIMETER, "mdi:blur", 1)),
		sensorBinding("nc_1_0", domain.CapabilityPM, diagnosticMeasurement(UNIT_COUNTS_PER_CUBIC_CENTIMETER, "mdi:blur", 1)),
		sensorBinding("nc_2_5", domain.CapabilityPM, diagnosticMeasurement(UNIT_COUNTS_PER_CUBIC_CENTIMETER, "mdi:blur", 1)),
		sensorBinding("nc_4_0", domain.CapabilityPM4, diagnosticMeasurement(UNIT_COUNTS_PER_CUBIC_CENTIMETER, "mdi:blur", 1)),
		sensorBinding("nc_10_0", domain.CapabilityPM, diagnosticMeasurement(UNIT_COUNTS_PER_CUBIC_CENTIMETER, "mdi:blur", 1)),
		sensorBinding("ambient_pressure", domain.CapabilityCO2, diagnosticMeasurement(UNIT_HECTOPASCAL, "mdi:gauge", 0)),
		sensorBinding("sensor_altitude", domain.CapabilityCO2, diagnosticMeasurement(UNIT_METER, "mdi:elevation-rise", 0)),
	}
}

// gasIndexBinding binds a VOC or NOx index sensor. Its optional algorithm_tuning block is
// forwarded as a whole, missing parameters taking the defaults of the measurement kind.
func gasIndexBinding(key string, capability domain.Capability, kind domain.MeasurementKind, tuningSetter string) binding {
	b := sensorBinding(key, capability, measurement("", "mdi:air-filter", 0, ""))
	b.extra = []schema.Field{
		{Key: "algorithm_tuning", Check: schema.Nested(tuningSchema(kind))},
	}
	b.decorate = func(v schema.Values, e *domain.EntityConfig) {
		if !v.Has("algorithm_tuning") {
			return
		}
		tv := v.Map("algorithm_tuning")
		tuning := domain.DefaultTuning(kind)
		for _, f := range domain.TuningFields {
			tuning = tuning.WithValue(f.Key, tv.Int(f.Key))
		}
		e.Tuning = &tuning
	}
	b.followUps = func(e *domain.EntityConfig) []domain.Instruction {
		if e.Tuning == nil {
			return nil
		}
		values := e.Tuning.Values()
		args := make([]domain.Arg, 0, len(values))
		for i, f := range domain.TuningFields {
			args = append(args, domain.ValueArg(f.Key, values[i]))
		}
		return []domain.Instruction{domain.Call(e.HubID, tuningSetter, args...)}
	}
	return b
}

func tuningSchema(kind domain.MeasurementKind) schema.Schema {
	defaults := domain.DefaultTuning(kind).Values()
	fields := make([]schema.Field, 0, len(domain.TuningFields))
	for i, f := range domain.TuningFields {
		fields = append(fields, schema.Field{
			Key:     f.Key,
			Default: defaults[i],
			Check:   schema.IntRange(f.Min, f.Max),
		})
	}
	return schema.Schema{Fields: fields}
}
