package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestCapabilitiesForKnownModels(t *testing.T) {

	assert := assert.New(t)

	rec, known := CapabilitiesFor("SEN62")
	assert.True(known)
	assert.Equal(CapabilityRecord{PM: true, PM4: true, RHT: true}, rec)

	rec, known = CapabilitiesFor("sen63c")
	assert.True(known, "model lookup is case-insensitive")
	assert.True(rec.CO2)
	assert.False(rec.VOC)

	rec, _ = CapabilitiesFor("SEN68")
	assert.True(rec.HCHO)
	assert.False(rec.CO2)
	assert.False(rec.PM4)

	rec, _ = CapabilitiesFor("SEN66")
	assert.False(rec.HCHO)
	assert.True(rec.Supports(CapabilityNOX))
}

func TestCapabilitiesForUnknownModelFallsBack(t *testing.T) {

	assert := assert.New(t)

	rec, known := CapabilitiesFor("SEN99")
	assert.False(known)
	assert.Equal(modelCapabilities[FallbackModel], rec)
	for _, c := range []Capability{CapabilityPM, CapabilityPM4, CapabilityRHT, CapabilityVOC, CapabilityNOX, CapabilityCO2, CapabilityHCHO} {
		assert.True(rec.Supports(c), "fallback supports %s", c)
	}
}

func TestSupportsNone(t *testing.T) {
	assert.True(t, CapabilityRecord{}.Supports(CapabilityNone))
	assert.False(t, CapabilityRecord{}.Supports(CapabilityPM))
}

func TestModelsSorted(t *testing.T) {
	assert.Equal(t, []Model{MODEL_SEN62, MODEL_SEN63C, MODEL_SEN65, MODEL_SEN66, MODEL_SEN68, MODEL_SEN69C}, Models())
}

func TestDefaultTuning(t *testing.T) {

	assert := assert.New(t)

	assert.Equal([]int64{100, 12, 12, 180, 50, 230}, DefaultTuning(MEASUREMENT_VOC).Values())
	assert.Equal([]int64{1, 12, 12, 720, 50, 230}, DefaultTuning(MEASUREMENT_NOX).Values())

	tuned := DefaultTuning(MEASUREMENT_VOC).WithValue("learning_time_offset_hours", 720)
	assert.Equal([]int64{100, 720, 12, 180, 50, 230}, tuned.Values())
	assert.Len(TuningFields, len(tuned.Values()))
}

func TestTemperatureCompensationIsDefault(t *testing.T) {
	assert.True(t, TemperatureCompensation{}.IsDefault())
	assert.False(t, TemperatureCompensation{Slope: 0.05}.IsDefault())
	assert.False(t, TemperatureCompensation{TimeConstant: 1}.IsDefault())
}

func TestViolations(t *testing.T) {

	assert := assert.New(t)

	var err error
	err = multierr.Append(err, NewFieldError(ErrRange, "sen6x.address", "value %d out of range", 200))
	err = multierr.Append(err, NewFieldError(ErrEnum, "sensor[0].foo", "unknown option"))
	err = multierr.Append(err, errors.New("plain"))

	v := Violations(err)
	assert.Len(v, 3)
	assert.Equal(ErrRange, v[0].Code)
	assert.Equal("sen6x.address", v[0].Path)
	assert.Equal("sen6x.address: range_error: value 200 out of range", v[0].Error())
	assert.Equal(ErrFormat, v[2].Code)

	assert.True(errors.Is(v[1], ErrEnum))
	assert.Equal(ErrEnum, CodeOf(v[1]))
	assert.Equal(Code(""), CodeOf(errors.New("x")))
	assert.Nil(Violations(nil))
}
