package generator

import (
	"fmt"
	"go/format"
	"os"
	"path/filepath"

	"github.com/masnyjimmy/reqgen/compilation"
)

type Options struct {
	// run generated sources through gofmt
	Format bool
}

func DefaultOptions() Options {
	return Options{
		Format: true,
	}
}

type File struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// Files are ordered: enums.go, request files by action, client.go.
type Files []File

func (f Files) Lookup(name string) (File, bool) {
	for _, file := range f {
		if file.Name == name {
			return file, true
		}
	}
	return File{}, false
}

func RequestFileName(request compilation.Request) string {
	return compilation.SnakeCase(request.Action) + "_request.go"
}

func (o Options) finish(name, source string) (File, error) {
	if !o.Format {
		return File{Name: name, Source: source}, nil
	}

	formatted, err := format.Source([]byte(source))
	if err != nil {
		return File{}, fmt.Errorf("unable to format %v: %w", name, err)
	}

	return File{Name: name, Source: string(formatted)}, nil
}

func Generate(pkg *compilation.Package, opt Options) (Files, error) {
	out := make(Files, 0, len(pkg.Requests)+2)

	if len(pkg.Enums) != 0 {
		source, err := RenderEnums(pkg.Name, pkg.Enums)
		if err != nil {
			return nil, fmt.Errorf("unable to render enums: %w", err)
		}

		file, err := opt.finish("enums.go", source)
		if err != nil {
			return nil, err
		}
		out = append(out, file)
	}

	for _, request := range pkg.Requests {
		name := RequestFileName(request)

		source, err := RenderRequest(pkg.Name, request)
		if err != nil {
			return nil, fmt.Errorf("unable to render %v: %w", name, err)
		}

		file, err := opt.finish(name, source)
		if err != nil {
			return nil, err
		}
		out = append(out, file)
	}

	source, err := RenderClient(pkg)
	if err != nil {
		return nil, fmt.Errorf("unable to render client.go: %w", err)
	}

	// jennifer output is already gofmt'd
	out = append(out, File{Name: "client.go", Source: source})

	return out, nil
}

func WriteFiles(dir string, files Files) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, file := range files {
		path := filepath.Join(dir, file.Name)
		if err := os.WriteFile(path, []byte(file.Source), 0644); err != nil {
			return fmt.Errorf("unable to write %v: %w", path, err)
		}
	}

	return nil
}
