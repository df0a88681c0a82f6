package compilation

// Package is the compiled form of a document, everything the
// generator needs to emit one Go package.
type Package struct {
	Name     string    `json:"package" yaml:"package"`
	Info     Info      `json:"info" yaml:"info"`
	Enums    []Enum    `json:"enums,omitempty" yaml:"enums,omitempty"`
	Requests []Request `json:"requests" yaml:"requests"`
}
