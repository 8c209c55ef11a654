// Package sen6x describes the runtime hub object the generated wiring talks to:
// class names, setter names and the scaling the hub applies before writing to the device.
package sen6x

import "math"

const (
	HubClass    = "sen6x::Sen6xComponent"
	NumberClass = "sen6x::Sen6xNumber"
	SwitchClass = "sen6x::Sen6xSwitch"
	ButtonClass = "sen6x::Sen6xButton"

	SensorClass       = "sensor::Sensor"
	BinarySensorClass = "binary_sensor::BinarySensor"
	TextSensorClass   = "text_sensor::TextSensor"
)

// Hub construction arguments, applied through set_<arg>
const (
	ArgUpdateInterval = "update_interval"
	ArgI2CAddress     = "i2c_address"
)

// Hub level setters
const (
	SetPressureSource          = "set_pressure_source"
	SetRhtAcceleration         = "set_rht_acceleration"
	SetVocAlgorithmTuning      = "set_voc_algorithm_tuning"
	SetNoxAlgorithmTuning      = "set_nox_algorithm_tuning"
	SetTemperatureCompensation = "set_temperature_compensation"
	SetAutoCleaningInterval    = "set_auto_cleaning_interval"
)

// Setters whose names do not follow the set_<key>_<kind> pattern
const (
	SetStatusTextSensor      = "set_status_text_sensor"
	SetFirmwareVersionSensor = "set_firmware_version_sensor"
	SetCo2AscSwitch          = "set_co2_asc_switch"
	SetAutoCleaningSwitch    = "set_auto_cleaning_switch"
)

const (
	// DefaultAutoCleaningIntervalMillis is the hub default, one week.
	DefaultAutoCleaningIntervalMillis = 604800000

	TemperatureOffsetScale = 200
	TemperatureSlopeScale  = 10000
)

// ArgSetter returns the setter applying a construction argument, e.g.
// ArgSetter(ArgI2CAddress) = "set_i2c_address".
func ArgSetter(arg string) string {
	return "set_" + arg
}

// EntitySetter returns the conventional hub setter for an entity key, e.g.
// EntitySetter("pm_2_5", "sensor") = "set_pm_2_5_sensor".
func EntitySetter(key string, kind string) string {
	return ArgSetter(key + "_" + kind)
}

// ScaledTemperatureCompensation converts raw compensation values to the device register values.
func ScaledTemperatureCompensation(offset float64, slope float64, timeConstant int64) (int16, int16, uint16) {
	return int16(math.Round(offset * TemperatureOffsetScale)), int16(math.Round(slope * TemperatureSlopeScale)), uint16(timeConstant)
}
