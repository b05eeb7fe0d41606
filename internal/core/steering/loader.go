package steering

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadParamsJSON reads parameters from JSON. Fields absent from the document
// keep their DefaultParams value.
func LoadParamsJSON(r io.Reader) (Params, error) {
	p := DefaultParams()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Params{}, fmt.Errorf("decode steering params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// LoadParamsYAML reads parameters from YAML. Fields absent from the document
// keep their DefaultParams value.
func LoadParamsYAML(r io.Reader) (Params, error) {
	return OverlayParamsYAML(r, DefaultParams())
}

// OverlayParamsYAML reads parameters from YAML on top of base. Fields absent
// from the document keep their base value.
func OverlayParamsYAML(r io.Reader, base Params) (Params, error) {
	p := base
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return Params{}, fmt.Errorf("decode steering params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
