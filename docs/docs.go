package docs

type Document struct {
	Package  string   `yaml:"package,omitempty"`
	Info     Info     `yaml:"info,omitempty"`
	Enums    Enums    `yaml:"enums,omitempty"`
	Traits   Traits   `yaml:"traits,omitempty"`
	Requests Requests `yaml:"requests"`
}

type Info struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
}

// enum name -> wire values, in declaration order
type Enums = map[string][]string
