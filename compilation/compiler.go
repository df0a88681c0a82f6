package compilation

import (
	"encoding/json"
	"fmt"
	"go/token"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/masnyjimmy/reqgen/docs"
)

var httpVerbs = []string{"GET", "PUT", "POST", "DELETE", "HEAD", "PATCH"}

type CompileContext struct {
	in  *docs.Document
	out *Package

	enums          map[string]struct{}
	compiledTraits map[string]PrecompiledTrait
}

type PrecompiledTrait struct {
	args   []string
	target docs.Trait
}

func (p PrecompiledTrait) compileParams(params docs.Params, r *strings.Replacer) docs.Params {
	out := make(docs.Params, len(params))

	for idx, param := range params {
		param.Name = r.Replace(param.Name)
		param.Key = r.Replace(param.Key)
		out[idx] = param
	}

	return out
}

// Compile substitutes #arg placeholders, the stored trait is left untouched
// so it can be evaluated again with other values.
func (p PrecompiledTrait) Compile(values []string) (docs.Trait, error) {
	if len(p.args) != len(values) {
		return docs.Trait{}, fmt.Errorf("invalid number of values: %v (expected: %v)", len(values), len(p.args))
	}

	var oldnew []string = make([]string, 0, len(p.args)*2)

	for idx, arg := range p.args {
		oldnew = append(oldnew, "#"+arg, values[idx])
	}

	replacer := strings.NewReplacer(oldnew...)

	return docs.Trait{
		Params:   p.compileParams(p.target.Params, replacer),
		Optional: p.compileParams(p.target.Optional, replacer),
	}, nil
}

func MapArray[T ~[]I, U ~[]O, I any, O any](in T, out *U, mapFn func(idx int, in I) O) {
	(*out) = make(U, len(in))

	for idx, val := range in {
		(*out)[idx] = mapFn(idx, val)
	}
}

func newCompileContext(input *docs.Document, output *Package) *CompileContext {
	return &CompileContext{
		in:  input,
		out: output,
	}
}

func (c *CompileContext) CompilePackage() error {
	name := strings.TrimSpace(c.in.Package)
	if name == "" {
		return ErrMissingPackage
	}
	if !token.IsIdentifier(name) {
		return fmt.Errorf("%w: package %q", ErrInvalidName, name)
	}
	c.out.Name = name
	return nil
}

func (c *CompileContext) CompileInfo() {
	c.out.Info.Title = c.in.Info.Title
	c.out.Info.Version = c.in.Info.Version
	c.out.Info.Description = c.in.Info.Description
}

func (c *CompileContext) ParseEnums() error {
	c.enums = make(map[string]struct{}, len(c.in.Enums))
	c.out.Enums = make([]Enum, 0, len(c.in.Enums))

	consts := make(map[string]string)

	for _, name := range slices.Sorted(maps.Keys(c.in.Enums)) {
		if !token.IsIdentifier(name) || !token.IsExported(name) {
			return fmt.Errorf("%w: enum %q", ErrInvalidName, name)
		}

		values := c.in.Enums[name]
		if len(values) == 0 {
			return fmt.Errorf("enum %v has no values", name)
		}

		enum := Enum{Name: name}
		prefix := UpperSnake(name)

		for _, value := range values {
			suffix := UpperSnake(value)
			if suffix == "" {
				return fmt.Errorf("%w: enum %v value %q", ErrInvalidName, name, value)
			}

			constName := prefix + "_" + suffix
			if !token.IsIdentifier(constName) {
				return fmt.Errorf("%w: enum %v value %q", ErrInvalidName, name, value)
			}
			if owner, has := consts[constName]; has {
				return fmt.Errorf("%w: constant %v declared by %v and %v", ErrDuplicateParam, constName, owner, name)
			}
			consts[constName] = name

			enum.Values = append(enum.Values, EnumValue{
				Const: constName,
				Value: value,
			})
		}

		c.enums[name] = struct{}{}
		c.out.Enums = append(c.out.Enums, enum)
	}

	return nil
}

var traitEvExpr = regexp.MustCompile(`^([A-Za-z_]\w*)(?:\(\s*([^()]*?)\s*\))?$`)

func splitArgs(args string) []string {
	if strings.TrimSpace(args) == "" {
		return nil
	}

	out := make([]string, 0)
	for arg := range strings.SplitSeq(args, ",") {
		out = append(out, strings.TrimSpace(arg))
	}
	return out
}

func (c *CompileContext) compileTraits() error {
	c.compiledTraits = make(map[string]PrecompiledTrait, len(c.in.Traits))

	for expr, trait := range c.in.Traits {
		exprGrp := traitEvExpr.FindStringSubmatch(strings.TrimSpace(expr))
		if exprGrp == nil {
			return fmt.Errorf("invalid trait definition expression: %v", expr)
		}
		ident := exprGrp[1]
		args := exprGrp[2]

		if _, has := c.compiledTraits[ident]; has {
			return fmt.Errorf("trait %v defined more than once", ident)
		}

		c.compiledTraits[ident] = PrecompiledTrait{
			args:   splitArgs(args),
			target: trait,
		}
	}
	return nil
}

func (c *CompileContext) evaluateTrait(expr string) (docs.Trait, error) {
	groups := traitEvExpr.FindStringSubmatch(strings.TrimSpace(expr))

	if groups == nil {
		return docs.Trait{}, fmt.Errorf("invalid trait evaluate expression: %v\n expected: ident[(arg(,args)...)]", expr)
	}

	ident := groups[1]
	params := groups[2]

	trait, has := c.compiledTraits[ident]

	if !has {
		return docs.Trait{}, fmt.Errorf("%w: %v", ErrUnknownTrait, ident)
	}

	out, err := trait.Compile(splitArgs(params))
	if err != nil {
		return docs.Trait{}, fmt.Errorf("trait %v: %w", ident, err)
	}
	return out, nil
}

func (c *CompileContext) evaluateTraits(traits []string) ([]docs.Trait, error) {
	if traits == nil {
		return nil, nil
	}

	var out []docs.Trait = make([]docs.Trait, len(traits))

	for idx, in := range traits {
		res, err := c.evaluateTrait(in)
		if err != nil {
			return nil, err
		}
		out[idx] = res
	}

	return out, nil
}

func (c *CompileContext) parseParam(p docs.Param, required bool, receiver string) (Parameter, error) {
	t, err := parseTypeExpr(p.Type)
	if err != nil {
		return Parameter{}, fmt.Errorf("param %v: %w", p.Name, err)
	}

	if t.Kind == TypeEnum {
		if _, has := c.enums[t.Enum]; !has {
			return Parameter{}, fmt.Errorf("param %v: %w: %v", p.Name, ErrUnknownEnum, t.Enum)
		}
	}

	if required && t.IsVoid() {
		return Parameter{}, fmt.Errorf("param %v: %w: void parameters must be optional", p.Name, ErrUnknownType)
	}

	exported := ExportedName(p.Name)
	if !token.IsIdentifier(exported) {
		return Parameter{}, fmt.Errorf("%w: param %q", ErrInvalidName, p.Name)
	}

	return Parameter{
		Name:     p.Name,
		Exported: exported,
		VarName:  ParamVarName(exported, receiver),
		Key:      p.QueryKey(),
		In:       InQuery,
		Required: required,
		Type:     t,
	}, nil
}

var pathParamExpr = regexp.MustCompile(`\{([^{}]+)\}`)

// methods of every request type, path fields must not shadow them
var requestMethods = []string{"Verb", "Path", "QueryParams"}

// parsePath splits path into literals and field references and marks
// the referenced parameters as path parameters.
func parsePath(p string, params []Parameter) ([]PathPart, error) {
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	parts := make([]PathPart, 0)
	last := 0

	for _, loc := range pathParamExpr.FindAllStringSubmatchIndex(p, -1) {
		if loc[0] > last {
			parts = append(parts, PathPart{Literal: p[last:loc[0]]})
		}

		name := strings.TrimSpace(p[loc[2]:loc[3]])
		idx := slices.IndexFunc(params, func(param Parameter) bool {
			return param.Required && param.Name == name
		})

		if idx == -1 {
			return nil, fmt.Errorf("%w: {%v} is not a required parameter", ErrPathParam, name)
		}

		switch params[idx].Type.Kind {
		case TypeString, TypeUUID:
		default:
			return nil, fmt.Errorf("%w: {%v} must be a string, got %v", ErrPathParam, name, params[idx].Type.Kind)
		}

		if slices.Contains(requestMethods, params[idx].Exported) {
			return nil, fmt.Errorf("%w: {%v} clashes with the %v method", ErrInvalidName, name, params[idx].Exported)
		}

		params[idx].In = InPath
		parts = append(parts, PathPart{Field: params[idx].Exported})
		last = loc[1]
	}

	if last < len(p) {
		parts = append(parts, PathPart{Literal: p[last:]})
	}

	return parts, nil
}

func (c *CompileContext) parseRequest(action string, in docs.Request) (*Request, error) {
	verb := strings.ToUpper(strings.TrimSpace(in.Method))
	if !slices.Contains(httpVerbs, verb) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVerb, in.Method)
	}

	name := action + "Request"
	receiver := VarName(name)

	traits, err := c.evaluateTraits(in.Traits)
	if err != nil {
		return nil, err
	}

	// put trait's params after the request's own
	declaredParams := slices.Clone(in.Params)
	declaredOptional := slices.Clone(in.Optional)
	for _, t := range traits {
		declaredParams = append(declaredParams, t.Params...)
		declaredOptional = append(declaredOptional, t.Optional...)
	}

	params := make([]Parameter, 0, len(declaredParams)+len(declaredOptional))
	seen := make(map[string]string)

	collect := func(declared docs.Params, required bool) error {
		for _, p := range declared {
			param, err := c.parseParam(p, required, receiver)
			if err != nil {
				return err
			}

			if other, has := seen[param.Exported]; has {
				return fmt.Errorf("%w: %v and %v both map to %v", ErrDuplicateParam, other, p.Name, param.Exported)
			}
			seen[param.Exported] = p.Name

			params = append(params, param)
		}
		return nil
	}

	if err := collect(declaredParams, true); err != nil {
		return nil, err
	}
	if err := collect(declaredOptional, false); err != nil {
		return nil, err
	}

	pathParts, err := parsePath(in.Path, params)
	if err != nil {
		return nil, err
	}

	out := Request{
		Name:        name,
		Action:      action,
		Description: strings.TrimSpace(in.Description),
		Verb:        verb,
		Path:        in.Path,
		PathParts:   pathParts,
	}

	imports := map[string]struct{}{"net/url": {}}
	required := slices.DeleteFunc(slices.Clone(params), func(p Parameter) bool { return !p.Required })

	if len(required) != 0 {
		MapArray(required, &out.Args, func(idx int, in Parameter) Arg {
			return Arg{
				Name: in.VarName,
				Type: in.Type.GoType(),
			}
		})
	}

	for _, param := range params {
		switch {
		case param.In == InPath:
			out.Fields = append(out.Fields, Field{
				Name:    param.Exported,
				VarName: param.VarName,
				Type:    param.Type.GoType(),
			})
		case param.Required:
			out.Required = append(out.Required, QueryParam{
				Key:        param.Key,
				Assignment: param.Assignment(),
			})
		default:
			out.WithConstructors = append(out.WithConstructors, param.WithConstructor())
		}

		if param.In == InQuery && param.Type.usesStrconv() {
			imports["strconv"] = struct{}{}
		}
	}

	out.Imports = slices.Sorted(maps.Keys(imports))

	return &out, nil
}

func (c *CompileContext) ParseRequests() error {
	c.out.Requests = make([]Request, 0, len(c.in.Requests))

	actions := make(map[string]string, len(c.in.Requests))

	for _, name := range slices.Sorted(maps.Keys(c.in.Requests)) {
		action := ExportedName(name)
		if !token.IsIdentifier(action) {
			return fmt.Errorf("%w: request %q", ErrInvalidName, name)
		}
		if other, has := actions[action]; has {
			return fmt.Errorf("%w: requests %v and %v both map to %v", ErrDuplicateParam, other, name, action)
		}
		actions[action] = name

		request, err := c.parseRequest(action, c.in.Requests[name])
		if err != nil {
			return fmt.Errorf("unable to parse request %v: %w", name, err)
		}

		c.out.Requests = append(c.out.Requests, *request)
	}

	return nil
}

func (c *CompileContext) Parse() error {
	if err := c.CompilePackage(); err != nil {
		return err
	}

	c.CompileInfo()

	if err := c.ParseEnums(); err != nil {
		return err
	}

	if err := c.compileTraits(); err != nil {
		return err
	}

	if err := c.ParseRequests(); err != nil {
		return err
	}

	return c.checkDeclarations()
}

var clientFields = []string{"Endpoint", "HTTPClient"}

// checkDeclarations rejects package level identifiers declared twice
// across client.go, enums.go and the request files.
func (c *CompileContext) checkDeclarations() error {
	declared := map[string]string{
		"Request":   "client",
		"Client":    "client",
		"NewClient": "client",
	}

	declare := func(ident, owner string) error {
		if other, has := declared[ident]; has {
			return fmt.Errorf("%w: %v declared by %v and %v", ErrInvalidName, ident, other, owner)
		}
		declared[ident] = owner
		return nil
	}

	for _, enum := range c.out.Enums {
		if err := declare(enum.Name, "enum "+enum.Name); err != nil {
			return err
		}
		for _, value := range enum.Values {
			if err := declare(value.Const, "enum "+enum.Name); err != nil {
				return err
			}
		}
	}

	for _, request := range c.out.Requests {
		if slices.Contains(clientFields, request.Action) {
			return fmt.Errorf("%w: request %v clashes with the Client.%v field", ErrInvalidName, request.Action, request.Action)
		}
		if err := declare(request.Name, "request "+request.Action); err != nil {
			return err
		}
		if err := declare("New"+request.Name, "request "+request.Action); err != nil {
			return err
		}
	}

	return nil
}

func Compile(out *Package, in *docs.Document) error {
	ctx := newCompileContext(in, out)

	if err := ctx.Parse(); err != nil {
		return err
	}

	return nil
}

func CompileToJSON(in *docs.Document) ([]byte, error) {
	var out Package

	if err := Compile(&out, in); err != nil {
		return nil, err
	}

	return json.MarshalIndent(out, "", "  ")
}

func CompileToYAML(in *docs.Document) ([]byte, error) {
	var out Package

	if err := Compile(&out, in); err != nil {
		return nil, err
	}

	return yaml.Marshal(out)
}
