package compilation

import "fmt"

// WithConstructor describes one builder-style With method on a generated
// request. It sets an optional query parameter.
//
// Values are never mutated after NewWithConstructor, so they can be shared
// between goroutines rendering different files.
type WithConstructor struct {
	Name       string `json:"name" yaml:"name"`             // name of the optional parameter
	Type       string `json:"type" yaml:"type"`             // Go type of the parameter, empty for void
	Key        string `json:"key" yaml:"key"`               // query parameter key
	Assignment string `json:"assignment" yaml:"assignment"` // value assigned to the query parameter entry
}

func NewWithConstructor(name, typ, key, assignment string) WithConstructor {
	return WithConstructor{
		Name:       name,
		Type:       typ,
		Key:        key,
		Assignment: assignment,
	}
}

func (w WithConstructor) Equal(other WithConstructor) bool {
	return w == other
}

func (w WithConstructor) String() string {
	return fmt.Sprintf("WithConstructor{Name: %q, Type: %q, Key: %q, Assignment: %q}",
		w.Name, w.Type, w.Key, w.Assignment)
}
