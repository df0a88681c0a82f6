package generator

import (
	"bytes"

	"github.com/dave/jennifer/jen"
	"github.com/masnyjimmy/reqgen/compilation"
)

const generatedHeader = "Code generated by reqgen. DO NOT EDIT."

// RenderClient builds client.go: the Request interface, the Client type
// and one handler per request.
func RenderClient(pkg *compilation.Package) (string, error) {
	f := jen.NewFile(pkg.Name)
	f.HeaderComment(generatedHeader)

	if pkg.Info.Title != "" {
		f.PackageComment("Package " + pkg.Name + " is a client for " + pkg.Info.Title + ".")
	}

	f.Comment("Request is implemented by every generated request type.")
	f.Type().Id("Request").Interface(
		jen.Id("Verb").Params().String(),
		jen.Id("Path").Params().String(),
		jen.Id("QueryParams").Params().Op("*").Qual("net/url", "Values"),
	)

	f.Comment("Client sends requests to a single endpoint.")
	f.Type().Id("Client").Struct(
		jen.Id("Endpoint").String(),
		jen.Id("HTTPClient").Op("*").Qual("net/http", "Client"),
	)

	f.Func().Id("NewClient").Params(jen.Id("endpoint").String()).Op("*").Id("Client").Block(
		jen.Return(jen.Op("&").Id("Client").Values(jen.Dict{
			jen.Id("Endpoint"):   jen.Id("endpoint"),
			jen.Id("HTTPClient"): jen.Qual("net/http", "DefaultClient"),
		})),
	)

	f.Func().Params(jen.Id("c").Op("*").Id("Client")).Id("do").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("request").Id("Request"),
	).Params(jen.Op("*").Qual("net/http", "Response"), jen.Error()).Block(
		jen.List(jen.Id("endpoint"), jen.Err()).Op(":=").Qual("net/url", "Parse").Call(jen.Id("c").Dot("Endpoint")),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Nil(), jen.Err()),
		),
		jen.Id("endpoint").Dot("Path").Op("=").Qual("strings", "TrimSuffix").Call(
			jen.Id("endpoint").Dot("Path"), jen.Lit("/"),
		).Op("+").Id("request").Dot("Path").Call(),
		jen.Id("endpoint").Dot("RawQuery").Op("=").Id("request").Dot("QueryParams").Call().Dot("Encode").Call(),
		jen.Line(),
		jen.List(jen.Id("httpRequest"), jen.Err()).Op(":=").Qual("net/http", "NewRequestWithContext").Call(
			jen.Id("ctx"), jen.Id("request").Dot("Verb").Call(), jen.Id("endpoint").Dot("String").Call(), jen.Nil(),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Nil(), jen.Err()),
		),
		jen.Return(jen.Id("c").Dot("HTTPClient").Dot("Do").Call(jen.Id("httpRequest"))),
	)

	for _, request := range pkg.Requests {
		f.Line()
		if request.Description != "" {
			f.Commentf("%s: %s", request.Action, request.Description)
		} else {
			f.Commentf("%s sends a %s.", request.Action, request.Name)
		}
		f.Func().Params(jen.Id("c").Op("*").Id("Client")).Id(request.Action).Params(
			jen.Id("ctx").Qual("context", "Context"),
			jen.Id("request").Op("*").Id(request.Name),
		).Params(jen.Op("*").Qual("net/http", "Response"), jen.Error()).Block(
			jen.Return(jen.Id("c").Dot("do").Call(jen.Id("ctx"), jen.Id("request"))),
		)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
