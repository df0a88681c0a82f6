package compilation

import (
	"fmt"
	"regexp"
)

type TypeKind string

const (
	TypeString  TypeKind = "string"
	TypeInt     TypeKind = "int"
	TypeInt64   TypeKind = "int64"
	TypeBool    TypeKind = "bool"
	TypeFloat64 TypeKind = "float64"
	TypeUUID    TypeKind = "uuid"
	TypeVoid    TypeKind = "void"
	TypeEnum    TypeKind = "enum"
)

var typeExprRegex = regexp.MustCompile(`^\s*(?:(string|int|int64|bool|float64|uuid|void)|<([A-Za-z_]\w*)>)\s*$`)

type ParamType struct {
	Kind TypeKind `json:"kind" yaml:"kind"`
	Enum string   `json:"enum,omitempty" yaml:"enum,omitempty"`
}

func parseTypeExpr(expr string) (ParamType, error) {
	sub := typeExprRegex.FindStringSubmatch(expr)
	if sub == nil {
		return ParamType{}, fmt.Errorf("%w: %q", ErrUnknownType, expr)
	}

	baseType := sub[1] // string, int, ...
	enum := sub[2]     // reference like <Priority>

	if enum != "" {
		return ParamType{Kind: TypeEnum, Enum: enum}, nil
	}

	return ParamType{Kind: TypeKind(baseType)}, nil
}

func (t ParamType) IsVoid() bool { return t.Kind == TypeVoid }

// GoType is the argument type in generated code, empty for void.
func (t ParamType) GoType() string {
	switch t.Kind {
	case TypeUUID:
		return "string"
	case TypeVoid:
		return ""
	case TypeEnum:
		return t.Enum
	default:
		return string(t.Kind)
	}
}

// Assignment is the expression converting variable to its query string value.
func (t ParamType) Assignment(variable string) string {
	switch t.Kind {
	case TypeInt:
		return fmt.Sprintf("strconv.Itoa(%s)", variable)
	case TypeInt64:
		return fmt.Sprintf("strconv.FormatInt(%s, 10)", variable)
	case TypeBool:
		return fmt.Sprintf("strconv.FormatBool(%s)", variable)
	case TypeFloat64:
		return fmt.Sprintf("strconv.FormatFloat(%s, 'f', -1, 64)", variable)
	case TypeEnum:
		return variable + ".String()"
	case TypeVoid:
		return `""`
	default:
		return variable
	}
}

// usesStrconv reports whether Assignment needs the strconv import.
func (t ParamType) usesStrconv() bool {
	switch t.Kind {
	case TypeInt, TypeInt64, TypeBool, TypeFloat64:
		return true
	}
	return false
}
