package compilation

type Request struct {
	Name        string `json:"name" yaml:"name"`
	Action      string `json:"action" yaml:"action"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Verb        string `json:"verb" yaml:"verb"`
	Path        string `json:"path" yaml:"path"`

	PathParts []PathPart `json:"pathParts" yaml:"pathParts"`
	// path parameters, stored on the request struct
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
	// constructor arguments in declaration order
	Args []Arg `json:"args,omitempty" yaml:"args,omitempty"`
	// required parameters sent in the query string
	Required         []QueryParam      `json:"required,omitempty" yaml:"required,omitempty"`
	WithConstructors []WithConstructor `json:"withConstructors,omitempty" yaml:"withConstructors,omitempty"`

	Imports []string `json:"imports" yaml:"imports"`
}

// PathPart is either a literal or a reference to a path field.
type PathPart struct {
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
}

type Field struct {
	Name    string `json:"name" yaml:"name"`
	VarName string `json:"varName" yaml:"varName"`
	Type    string `json:"type" yaml:"type"`
}

type Arg struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

type QueryParam struct {
	Key        string `json:"key" yaml:"key"`
	Assignment string `json:"assignment" yaml:"assignment"`
}
