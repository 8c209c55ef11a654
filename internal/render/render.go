package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/berfenger/sen6xgen/internal/config"
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/carlmjohnson/versioninfo"
	"gopkg.in/yaml.v3"
)

const GENERATOR = "sen6xgen"

// Document is the serialized form of a build.
type Document struct {
	Generator    string                  `json:"generator" yaml:"generator"`
	Version      string                  `json:"version" yaml:"version"`
	Hub          domain.HubConfig        `json:"hub" yaml:"hub"`
	ModelKnown   bool                    `json:"model_known" yaml:"model_known"`
	Capabilities domain.CapabilityRecord `json:"capabilities" yaml:"capabilities"`
	Instructions []domain.Instruction    `json:"instructions" yaml:"instructions"`
}

func NewDocument(build *domain.Build) Document {
	return Document{
		Generator:    GENERATOR,
		Version:      versioninfo.Short(),
		Hub:          build.Hub,
		ModelKnown:   build.ModelKnown,
		Capabilities: build.Capabilities,
		Instructions: build.Instructions,
	}
}

// Render writes a build in the given output format.
func Render(w io.Writer, format string, build *domain.Build) error {
	switch format {
	case config.FORMAT_CPP:
		return CPP(w, build)
	case config.FORMAT_JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(build))
	case config.FORMAT_YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(build)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
