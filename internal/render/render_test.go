package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/berfenger/sen6xgen/internal/config"
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testBuild() *domain.Build {
	rht := domain.Call("air", "set_rht_acceleration",
		domain.ValueArg("k", int64(1)), domain.ValueArg("p", int64(2)),
		domain.ValueArg("t1", int64(3)), domain.ValueArg("t2", int64(4)))
	rht.Aggregate = true
	return &domain.Build{
		Hub: domain.HubConfig{ID: "air", Model: "SEN66", UpdateIntervalMillis: 10000, Address: 0x6B},
		Instructions: []domain.Instruction{
			domain.Construct("air", "sen6x::Sen6xComponent",
				domain.ValueArg("update_interval", int64(10000)),
				domain.ValueArg("i2c_address", int64(0x6B))),
			domain.Register("air"),
			rht,
			domain.Construct("air_co2", "sensor::Sensor",
				domain.ValueArg("name", "CO2"),
				domain.ValueArg("accuracy_decimals", int64(0))),
			domain.Call("air", "set_co2_sensor", domain.RefArg("sensor", "air_co2")),
			domain.Call("air", "set_temperature_compensation",
				domain.ValueArg("offset", 0.0),
				domain.ValueArg("normalized_offset_slope", 0.05),
				domain.ValueArg("time_constant", int64(0))),
		},
	}
}

func TestRenderCPP(t *testing.T) {

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FORMAT_CPP, testBuild()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "// generated by sen6xgen"))
	assert.Equal(t, []string{
		"// model: SEN66",
		"auto *air = new sen6x::Sen6xComponent();",
		"air->set_update_interval(10000);",
		"air->set_i2c_address(107);",
		"App.register_component(air);",
		"air->set_rht_acceleration({1, 2, 3, 4});",
		"auto *air_co2 = new sensor::Sensor();",
		`air_co2->set_name("CO2");`,
		"air_co2->set_accuracy_decimals(0);",
		"air->set_co2_sensor(air_co2);",
		"air->set_temperature_compensation(0.0f, 0.05f, 0);  // device: offset=0 slope=500 time_constant=0",
	}, lines[1:])
}

func TestRenderJSON(t *testing.T) {

	assert := assert.New(t)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FORMAT_JSON, testBuild()))

	var doc struct {
		Generator    string `json:"generator"`
		Instructions []struct {
			Op     string `json:"op"`
			Target string `json:"target"`
			Method string `json:"method"`
			Args   []struct {
				Name  string `json:"name"`
				Value any    `json:"value"`
				Ref   bool   `json:"ref"`
			} `json:"args"`
		} `json:"instructions"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal("sen6xgen", doc.Generator)
	require.Len(t, doc.Instructions, 6)
	assert.Equal("register", doc.Instructions[1].Op)
	assert.True(doc.Instructions[4].Args[0].Ref)
	assert.Equal("air_co2", doc.Instructions[4].Args[0].Value)
}

func TestRenderYAML(t *testing.T) {

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FORMAT_YAML, testBuild()))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "air", doc.Hub.ID)
	assert.Len(t, doc.Instructions, 6)
	assert.Equal(t, "set_co2_sensor", doc.Instructions[4].Method)
}

func TestRenderUnknownFormat(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, "xml", testBuild()))
}

func TestRenderIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Render(&a, config.FORMAT_CPP, testBuild()))
	require.NoError(t, Render(&b, config.FORMAT_CPP, testBuild()))
	assert.Equal(t, a.String(), b.String())
}
