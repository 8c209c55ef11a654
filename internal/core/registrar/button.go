package registrar

import (
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/internal/core/schema"
	"github.com/berfenger/sen6xgen/pkg/sen6x"
)

func NewButtonRegistrar() Registrar {
	options := []schema.Field{
		{Key: "device_class", Check: schema.String},
	}
	return newBase(domain.KIND_BUTTON, sen6x.ButtonClass, options, []binding{
		buttonBinding("fan_cleaning", domain.CapabilityPM, "mdi:fan-remove"),
		buttonBinding("device_reset", domain.CapabilityNone, "mdi:restart"),
		buttonBinding("reset_preferences", domain.CapabilityNone, "mdi:restore-alert"),
		buttonBinding("force_co2_calibration", domain.CapabilityCO2, "mdi:molecule-co2"),
		buttonBinding("co2_factory_reset", domain.CapabilityCO2, "mdi:refresh-circle"),
		buttonBinding("sht_heater", domain.CapabilityRHT, "mdi:radiator"),
		buttonBinding("clear_device_status", domain.CapabilityNone, "mdi:eraser"),
	})
}

func buttonBinding(key string, capability domain.Capability, icon string) binding {
	return binding{
		key:        key,
		setter:     setter(key, domain.KIND_BUTTON),
		capability: capability,
		defaults: domain.Presentation{
			Icon:           icon,
			EntityCategory: CATEGORY_CONFIG,
		},
	}
}
