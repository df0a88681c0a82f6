package docs

type Trait struct {
	Params   Params `yaml:"params,omitempty"`
	Optional Params `yaml:"optional,omitempty"`
}

type Traits = map[string]Trait
