package sen6x

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntitySetter(t *testing.T) {
	assert.Equal(t, "set_pm_2_5_sensor", EntitySetter("pm_2_5", "sensor"))
	assert.Equal(t, "set_fan_error_binary_sensor", EntitySetter("fan_error", "binary_sensor"))
}

func TestArgSetter(t *testing.T) {
	assert.Equal(t, "set_update_interval", ArgSetter(ArgUpdateInterval))
	assert.Equal(t, "set_i2c_address", ArgSetter(ArgI2CAddress))
}

func TestHubClass(t *testing.T) {
	assert.Equal(t, "sen6x::Sen6xComponent", HubClass)
}

func TestScaledTemperatureCompensation(t *testing.T) {

	assert := assert.New(t)

	offset, slope, tc := ScaledTemperatureCompensation(0.0, 0.05, 120)
	assert.Equal(int16(0), offset)
	assert.Equal(int16(500), slope)
	assert.Equal(uint16(120), tc)

	offset, slope, _ = ScaledTemperatureCompensation(-1.5, -1.0, 0)
	assert.Equal(int16(-300), offset)
	assert.Equal(int16(-10000), slope)
}
