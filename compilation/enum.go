package compilation

type Enum struct {
	Name   string      `json:"name" yaml:"name"`
	Values []EnumValue `json:"values" yaml:"values"`
}

type EnumValue struct {
	Const string `json:"const" yaml:"const"`
	Value string `json:"value" yaml:"value"`
}
