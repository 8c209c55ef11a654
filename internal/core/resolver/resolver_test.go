package resolver

import (
	"testing"

	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {

	assert := assert.New(t)

	r := NewResolver()
	assert.NoError(r.Declare("sen6x_hub", domain.KIND_HUB, "sen6x"))
	assert.NoError(r.Declare("bme_pressure", domain.KIND_SENSOR, "sensor[0].pressure"))
	assert.NoError(r.Declare("bus_a", "i2c", "i2c"))
	assert.Equal(3, r.Len())

	h, err := r.Resolve("bme_pressure", domain.KIND_SENSOR, "sen6x.pressure_source")
	assert.NoError(err)
	assert.Equal(Handle{ID: "bme_pressure", Kind: domain.KIND_SENSOR, Path: "sensor[0].pressure"}, h)

	_, err = r.Resolve("missing", domain.KIND_SENSOR, "sen6x.pressure_source")
	assert.ErrorIs(err, domain.ErrUnresolvedReference)
	assert.Equal("sen6x.pressure_source", domain.Violations(err)[0].Path)

	_, err = r.Resolve("bus_a", domain.KIND_SENSOR, "sen6x.pressure_source")
	assert.ErrorIs(err, domain.ErrKindMismatch)

	_, err = r.Resolve("sen6x_hub", domain.KIND_HUB, "sensor[1].sen6x_id")
	assert.NoError(err)
}

func TestDeclareDuplicate(t *testing.T) {

	r := NewResolver()
	assert.NoError(t, r.Declare("x", domain.KIND_SENSOR, "sensor[0].pm_2_5"))
	err := r.Declare("x", domain.KIND_BUTTON, "button[0].device_reset")
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
	assert.Equal(t, 1, r.Len())
}
