package domain

import (
	"sort"
	"strings"
)

type Model string

const (
	MODEL_SEN62  Model = "SEN62"
	MODEL_SEN63C Model = "SEN63C"
	MODEL_SEN65  Model = "SEN65"
	MODEL_SEN66  Model = "SEN66"
	MODEL_SEN68  Model = "SEN68"
	MODEL_SEN69C Model = "SEN69C"

	// FallbackModel is used when the declared model is unknown.
	FallbackModel = MODEL_SEN69C
)

// Capability is a measurement family a model may support.
type Capability string

const (
	CapabilityNone Capability = ""
	CapabilityPM   Capability = "pm"
	CapabilityPM4  Capability = "pm4"
	CapabilityRHT  Capability = "rht"
	CapabilityVOC  Capability = "voc"
	CapabilityNOX  Capability = "nox"
	CapabilityCO2  Capability = "co2"
	CapabilityHCHO Capability = "hcho"
)

type CapabilityRecord struct {
	PM   bool `json:"pm" yaml:"pm"`
	PM4  bool `json:"pm4" yaml:"pm4"`
	RHT  bool `json:"rht" yaml:"rht"`
	VOC  bool `json:"voc" yaml:"voc"`
	NOX  bool `json:"nox" yaml:"nox"`
	CO2  bool `json:"co2" yaml:"co2"`
	HCHO bool `json:"hcho" yaml:"hcho"`
}

var modelCapabilities = map[Model]CapabilityRecord{
	MODEL_SEN62:  {PM: true, PM4: true, RHT: true},
	MODEL_SEN63C: {PM: true, RHT: true, CO2: true},
	MODEL_SEN65:  {PM: true, RHT: true, VOC: true, NOX: true},
	MODEL_SEN66:  {PM: true, PM4: true, RHT: true, VOC: true, NOX: true, CO2: true},
	MODEL_SEN68:  {PM: true, RHT: true, VOC: true, NOX: true, HCHO: true},
	MODEL_SEN69C: {PM: true, PM4: true, RHT: true, VOC: true, NOX: true, CO2: true, HCHO: true},
}

// CapabilitiesFor looks up the capability record of a model, case-insensitively.
// Unknown models get the FallbackModel record and known=false.
func CapabilitiesFor(model string) (record CapabilityRecord, known bool) {
	record, known = modelCapabilities[Model(strings.ToUpper(strings.TrimSpace(model)))]
	if !known {
		return modelCapabilities[FallbackModel], false
	}
	return record, true
}

func (r CapabilityRecord) Supports(c Capability) bool {
	switch c {
	case CapabilityPM:
		return r.PM
	case CapabilityPM4:
		return r.PM4
	case CapabilityRHT:
		return r.RHT
	case CapabilityVOC:
		return r.VOC
	case CapabilityNOX:
		return r.NOX
	case CapabilityCO2:
		return r.CO2
	case CapabilityHCHO:
		return r.HCHO
	}
	return true
}

// Models returns the known model identifiers, sorted.
func Models() []Model {
	models := make([]Model, 0, len(modelCapabilities))
	for m := range modelCapabilities {
		models = append(models, m)
	}
	sort.Slice(models, func(i, j int) bool { return models[i] < models[j] })
	return models
}
