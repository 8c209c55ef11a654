package registrar

import (
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/internal/core/schema"
	"github.com/berfenger/sen6xgen/pkg/sen6x"
)

func NewBinarySensorRegistrar() Registrar {
	options := []schema.Field{
		{Key: "device_class", Check: schema.String},
	}
	return newBase(domain.KIND_BINARY_SENSOR, sen6x.BinarySensorClass, options, []binding{
		problemBinding("fan_error", domain.CapabilityPM, "mdi:fan-alert"),
		problemBinding("fan_warning", domain.CapabilityPM, "mdi:fan-alert"),
		problemBinding("gas_error", domain.CapabilityVOC, "mdi:gas-cylinder-alert"),
		problemBinding("rht_error", domain.CapabilityRHT, "mdi:thermometer-alert"),
		problemBinding("pm_error", domain.CapabilityPM, "mdi:air-filter"),
		problemBinding("laser_error", domain.CapabilityPM, "mdi:laser-pointer"),
		{
			key:        "fan_cleaning_active",
			setter:     setter("fan_cleaning_active", domain.KIND_BINARY_SENSOR),
			capability: domain.CapabilityPM,
			defaults: domain.Presentation{
				Icon:           "mdi:broom",
				EntityCategory: CATEGORY_DIAGNOSTIC,
			},
		},
	})
}

// problemBinding binds a device status flag reported as a diagnostic problem.
func problemBinding(key string, capability domain.Capability, icon string) binding {
	return binding{
		key:        key,
		setter:     setter(key, domain.KIND_BINARY_SENSOR),
		capability: capability,
		defaults: domain.Presentation{
			Icon:           icon,
			DeviceClass:    "problem",
			EntityCategory: CATEGORY_DIAGNOSTIC,
		},
	}
}
