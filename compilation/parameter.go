package compilation

type ParamIn string

const (
	InPath  ParamIn = "path"
	InQuery ParamIn = "query"
)

// Parameter is a declared param after type and name resolution.
type Parameter struct {
	Name     string    `json:"name" yaml:"name"`
	Exported string    `json:"exported" yaml:"exported"`
	VarName  string    `json:"varName" yaml:"varName"`
	Key      string    `json:"key" yaml:"key"`
	In       ParamIn   `json:"in" yaml:"in"`
	Required bool      `json:"required" yaml:"required"`
	Type     ParamType `json:"type" yaml:"type"`
}

func (p Parameter) Assignment() string {
	return p.Type.Assignment(p.VarName)
}

func (p Parameter) WithConstructor() WithConstructor {
	return NewWithConstructor(p.Exported, p.Type.GoType(), p.Key, p.Assignment())
}
