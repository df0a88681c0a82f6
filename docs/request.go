package docs

type Request struct {
	Description string   `yaml:"description,omitempty"`
	Method      string   `yaml:"method"`
	Path        string   `yaml:"path,omitempty"`
	Traits      []string `yaml:"traits,omitempty"`
	Params      Params   `yaml:"params,omitempty"`
	Optional    Params   `yaml:"optional,omitempty"`
}

// keyed by action name, e.g. GetBucket
type Requests = map[string]Request
