package generator

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/masnyjimmy/reqgen/compilation"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateCache sync.Map

func templateFuncs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["varName"] = compilation.VarName
	funcs["paramVarName"] = compilation.ParamVarName
	return funcs
}

func renderTemplate(name string, data any) (string, error) {
	tmpl, err := loadTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func loadTemplate(name string) (*template.Template, error) {
	if value, ok := templateCache.Load(name); ok {
		cached, ok := value.(*template.Template)
		if !ok {
			return nil, fmt.Errorf("template cache type mismatch for %s", name)
		}
		return cached, nil
	}

	tmpl, err := template.New(name).Funcs(templateFuncs()).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, err
	}
	templateCache.Store(name, tmpl)
	return tmpl, nil
}

type requestTemplateData struct {
	Package string
	compilation.Request
}

type enumsTemplateData struct {
	Package string
	Enums   []compilation.Enum
}

func RenderRequest(pkg string, request compilation.Request) (string, error) {
	return renderTemplate("request.go.tmpl", requestTemplateData{
		Package: pkg,
		Request: request,
	})
}

func RenderEnums(pkg string, enums []compilation.Enum) (string, error) {
	return renderTemplate("enums.go.tmpl", enumsTemplateData{
		Package: pkg,
		Enums:   enums,
	})
}
