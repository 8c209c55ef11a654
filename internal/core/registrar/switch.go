package registrar

import (
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/internal/core/schema"
	"github.com/berfenger/sen6xgen/pkg/sen6x"
)

const (
	RESTORE_MODE_ALWAYS_OFF = "ALWAYS_OFF"

	// the hub stores the cleaning interval in milliseconds as uint32
	maxCleaningIntervalSeconds = 4294967
)

var restoreModes = []string{
	"RESTORE_DEFAULT_OFF",
	"RESTORE_DEFAULT_ON",
	"ALWAYS_OFF",
	"ALWAYS_ON",
	"RESTORE_INVERTED_DEFAULT_OFF",
	"RESTORE_INVERTED_DEFAULT_ON",
	"DISABLED",
}

func NewSwitchRegistrar() Registrar {
	options := []schema.Field{
		{Key: "device_class", Check: schema.String},
		{Key: "restore_mode", Default: RESTORE_MODE_ALWAYS_OFF, Check: schema.Enum(true, restoreModes...)},
	}
	r := newBase(domain.KIND_SWITCH, sen6x.SwitchClass, options, []binding{
		{
			key:        "co2_automatic_self_calibration",
			setter:     sen6x.SetCo2AscSwitch,
			capability: domain.CapabilityCO2,
			defaults:   domain.Presentation{Icon: "mdi:autorenew", EntityCategory: CATEGORY_CONFIG},
		},
		autoCleaningBinding(),
	})
	r.configure = func(v schema.Values, e *domain.EntityConfig) {
		e.RestoreMode = v.String("restore_mode")
	}
	return r
}

// autoCleaningBinding binds the automatic fan cleaning switch and always forwards its interval.
func autoCleaningBinding() binding {
	return binding{
		key:        "auto_fan_cleaning",
		setter:     sen6x.SetAutoCleaningSwitch,
		capability: domain.CapabilityPM,
		defaults:   domain.Presentation{Icon: "mdi:fan-auto", EntityCategory: CATEGORY_CONFIG},
		extra: []schema.Field{
			{Key: "interval", Default: int64(sen6x.DefaultAutoCleaningIntervalMillis / 1000), Check: schema.DurationSeconds(maxCleaningIntervalSeconds)},
		},
		decorate: func(v schema.Values, e *domain.EntityConfig) {
			seconds := v.Int("interval")
			e.CleaningIntervalSeconds = &seconds
		},
		followUps: func(e *domain.EntityConfig) []domain.Instruction {
			seconds := int64(sen6x.DefaultAutoCleaningIntervalMillis / 1000)
			if e.CleaningIntervalSeconds != nil {
				seconds = *e.CleaningIntervalSeconds
			}
			return []domain.Instruction{domain.Call(e.HubID, sen6x.SetAutoCleaningInterval,
				domain.ValueArg("interval_ms", seconds*1000))}
		},
	}
}
