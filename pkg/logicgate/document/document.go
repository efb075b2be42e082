// Package document loads gating documents from YAML or JSON.
//
// A document pairs a logic expression with the typed requirement specs
// that back its terminal indices:
//
//	logic: "((0 AND 1) OR 2)"
//	requirements:
//	  - type: age
//	    params:
//	      minimum: 18
//	  - type: region
//	    params:
//	      allowed: [EU, UK]
//	  - type: override
//
// Requirement i in the list backs terminal index i. Build constructs the
// checks through a registry of requirement factories and returns a ready
// gatekeeper.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/logicgate/pkg/logicgate/gatekeeper"
	"github.com/randalmurphal/logicgate/pkg/logicgate/params"
	"github.com/randalmurphal/logicgate/pkg/logicgate/registry"
	"github.com/randalmurphal/logicgate/pkg/logicgate/resolver"
)

// RequirementSpec describes one requirement check by registered type name.
type RequirementSpec struct {
	// Type is the factory name the check is built with.
	Type string `yaml:"type" json:"type"`
	// Params holds factory-specific configuration.
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// Document is a loaded gating document.
type Document struct {
	// Logic is the gating expression over terminal indices.
	Logic string `yaml:"logic" json:"logic"`
	// Requirements back the terminal indices, in order.
	Requirements []RequirementSpec `yaml:"requirements" json:"requirements"`
}

// FromFile loads a document from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read document file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Document{}, fmt.Errorf("unsupported document file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a Document.
func FromYAML(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// FromJSON parses JSON data into a Document.
func FromJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse json: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate checks structural well-formedness. It does not parse the logic
// expression or touch the registry; Build does both.
func (d Document) Validate() error {
	if strings.TrimSpace(d.Logic) == "" {
		return errors.New("document has no logic expression")
	}
	for i, spec := range d.Requirements {
		if strings.TrimSpace(spec.Type) == "" {
			return fmt.Errorf("requirement %d has no type", i)
		}
	}
	return nil
}

// Build constructs the requirement checks through reg and binds them to the
// parsed logic expression. A nil reg uses the package default registry.
// Gatekeeper options (logger, store, resolver tuning) pass through.
func (d Document) Build(reg *registry.Registry, opts ...gatekeeper.Option) (*gatekeeper.Gatekeeper, error) {
	if reg == nil {
		reg = registry.Default()
	}

	reqs := make([]resolver.Requirement, len(d.Requirements))
	for i, spec := range d.Requirements {
		req, err := reg.Build(spec.Type, params.New(spec.Params))
		if err != nil {
			return nil, fmt.Errorf("requirement %d: %w", i, err)
		}
		reqs[i] = req
	}

	return gatekeeper.New(d.Logic, reqs, opts...)
}
