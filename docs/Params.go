package docs

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// Param is declared either as a bare type expression
//
//	max_keys: int
//
// or as an object when the query key differs from the name
//
//	max_keys: {type: int, key: max-keys}
type Param struct {
	Name        string `yaml:"-"`
	Type        string `yaml:"type"`
	Key         string `yaml:"key,omitempty"`
	Description string `yaml:"description,omitempty"`
}

func (p *Param) UnmarshalYAML(data []byte) error {

	// First, try to unmarshal as a type expression
	var expr string
	if err := yaml.Unmarshal(data, &expr); err == nil {
		p.Type = expr
		return nil
	}

	type plain Param

	var out plain
	if err := yaml.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to unmarshal as string or object: %w", err)
	}

	out.Name = p.Name
	*p = Param(out)
	return nil
}

// Params keeps declaration order, it drives the order of
// constructor arguments and with-constructors.
type Params []Param

func (p *Params) UnmarshalYAML(data []byte) error {
	var rawMap yaml.MapSlice
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return err
	}

	out := make(Params, 0, len(rawMap))
	for _, item := range rawMap {
		name, ok := item.Key.(string)
		if !ok {
			return fmt.Errorf("param name must be a string, got %T", item.Key)
		}

		// Marshal the value back to YAML and unmarshal into Param
		valueBytes, err := yaml.Marshal(item.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal param %v: %w", name, err)
		}

		var param Param
		if err := yaml.Unmarshal(valueBytes, &param); err != nil {
			return fmt.Errorf("failed to unmarshal param %v: %w", name, err)
		}
		param.Name = name

		out = append(out, param)
	}

	*p = out
	return nil
}

// QueryKey is the key the value is sent under.
func (p Param) QueryKey() string {
	if p.Key != "" {
		return p.Key
	}
	return p.Name
}
