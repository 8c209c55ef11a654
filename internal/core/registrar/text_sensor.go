package registrar

import (
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/pkg/sen6x"
)

func NewTextSensorRegistrar() Registrar {
	return newBase(domain.KIND_TEXT_SENSOR, sen6x.TextSensorClass, nil, []binding{
		infoBinding("product_name", setter("product_name", domain.KIND_TEXT_SENSOR), "mdi:chip"),
		infoBinding("serial_number", setter("serial_number", domain.KIND_TEXT_SENSOR), "mdi:barcode"),
		infoBinding("status_hex", sen6x.SetStatusTextSensor, "mdi:list-status"),
		infoBinding("firmware_version", sen6x.SetFirmwareVersionSensor, "mdi:memory"),
	})
}

func infoBinding(key string, hubSetter string, icon string) binding {
	return binding{
		key:    key,
		setter: hubSetter,
		defaults: domain.Presentation{
			Icon:           icon,
			EntityCategory: CATEGORY_DIAGNOSTIC,
		},
	}
}
