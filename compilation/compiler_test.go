package compilation

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/masnyjimmy/reqgen/docs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `
package: ds3
info:
  title: Spectra S3
  version: "5.0"
enums:
  Priority: [CRITICAL, URGENT, NEAR_LOW]
traits:
  paging:
    optional:
      marker: string
      max_keys: int
  "versioned(kind)":
    optional:
      "#kind_version": {type: uuid, key: "#kind-version"}
requests:
  GetBucket:
    description: List the objects in a bucket.
    method: get
    path: /{bucket_name}
    params:
      bucket_name: string
    optional:
      delimiter: string
      priority: <Priority>
      replicate: void
    traits: [paging]
  GetObject:
    method: GET
    path: /{bucket_name}/{object_name}
    params:
      bucket_name: string
      object_name: string
      job: uuid
      offset: int64
    optional:
      verbose: bool
      ratio: float64
    traits: ["versioned(object)"]
  GetService:
    method: GET
`

func compileSource(t *testing.T, src string) (Package, error) {
	t.Helper()

	var document docs.Document
	require.NoError(t, yaml.Unmarshal([]byte(src), &document))

	var out Package
	err := Compile(&out, &document)
	return out, err
}

func findRequest(t *testing.T, pkg Package, action string) Request {
	t.Helper()

	for _, request := range pkg.Requests {
		if request.Action == action {
			return request
		}
	}
	require.FailNow(t, "request not found", action)
	return Request{}
}

func TestCompile_Package(t *testing.T) {
	t.Parallel()

	pkg, err := compileSource(t, testDocument)
	require.NoError(t, err)

	assert.Equal(t, "ds3", pkg.Name)
	assert.Equal(t, Info{Title: "Spectra S3", Version: "5.0"}, pkg.Info)

	actions := make([]string, 0, len(pkg.Requests))
	for _, request := range pkg.Requests {
		actions = append(actions, request.Action)
	}
	assert.Equal(t, []string{"GetBucket", "GetObject", "GetService"}, actions, "requests should be sorted")

	require.Len(t, pkg.Enums, 1)
	assert.Equal(t, Enum{
		Name: "Priority",
		Values: []EnumValue{
			{Const: "PRIORITY_CRITICAL", Value: "CRITICAL"},
			{Const: "PRIORITY_URGENT", Value: "URGENT"},
			{Const: "PRIORITY_NEAR_LOW", Value: "NEAR_LOW"},
		},
	}, pkg.Enums[0])
}

func TestCompile_WithConstructors(t *testing.T) {
	t.Parallel()

	pkg, err := compileSource(t, testDocument)
	require.NoError(t, err)

	request := findRequest(t, pkg, "GetBucket")

	assert.Equal(t, "GetBucketRequest", request.Name)
	assert.Equal(t, "GET", request.Verb)
	assert.Equal(t, "List the objects in a bucket.", request.Description)
	assert.Equal(t, []WithConstructor{
		NewWithConstructor("Delimiter", "string", "delimiter", "delimiter"),
		NewWithConstructor("Priority", "Priority", "priority", "priority.String()"),
		NewWithConstructor("Replicate", "", "replicate", `""`),
		NewWithConstructor("Marker", "string", "marker", "marker"),
		NewWithConstructor("MaxKeys", "int", "max_keys", "strconv.Itoa(maxKeys)"),
	}, request.WithConstructors)

	assert.Equal(t, []Field{{Name: "BucketName", VarName: "bucketName", Type: "string"}}, request.Fields)
	assert.Equal(t, []Arg{{Name: "bucketName", Type: "string"}}, request.Args)
	assert.Empty(t, request.Required)
	assert.Equal(t, []PathPart{{Literal: "/"}, {Field: "BucketName"}}, request.PathParts)
	assert.Equal(t, []string{"net/url", "strconv"}, request.Imports)
}

func TestCompile_RequiredQueryParams(t *testing.T) {
	t.Parallel()

	pkg, err := compileSource(t, testDocument)
	require.NoError(t, err)

	request := findRequest(t, pkg, "GetObject")

	assert.Equal(t, []Arg{
		{Name: "bucketName", Type: "string"},
		{Name: "objectName", Type: "string"},
		{Name: "job", Type: "string"},
		{Name: "offset", Type: "int64"},
	}, request.Args)
	assert.Equal(t, []QueryParam{
		{Key: "job", Assignment: "job"},
		{Key: "offset", Assignment: "strconv.FormatInt(offset, 10)"},
	}, request.Required)
	assert.Equal(t, []PathPart{
		{Literal: "/"}, {Field: "BucketName"}, {Literal: "/"}, {Field: "ObjectName"},
	}, request.PathParts)

	assert.Equal(t, []WithConstructor{
		NewWithConstructor("Verbose", "bool", "verbose", "strconv.FormatBool(verbose)"),
		NewWithConstructor("Ratio", "float64", "ratio", "strconv.FormatFloat(ratio, 'f', -1, 64)"),
		NewWithConstructor("ObjectVersion", "string", "object-version", "objectVersion"),
	}, request.WithConstructors)
}

func TestCompile_NoParams(t *testing.T) {
	t.Parallel()

	pkg, err := compileSource(t, testDocument)
	require.NoError(t, err)

	request := findRequest(t, pkg, "GetService")

	assert.Empty(t, request.Args)
	assert.Empty(t, request.WithConstructors)
	assert.Equal(t, []PathPart{{Literal: "/"}}, request.PathParts)
	assert.Equal(t, []string{"net/url"}, request.Imports)
}

func TestCompile_TraitsAreReusable(t *testing.T) {
	t.Parallel()

	src := `
package: ds3
traits:
  "versioned(kind)":
    optional:
      "#kind_version": uuid
requests:
  GetObject:
    method: GET
    traits: ["versioned(object)"]
  GetBucket:
    method: GET
    traits: ["versioned(bucket)"]
`
	pkg, err := compileSource(t, src)
	require.NoError(t, err)

	assert.Equal(t, "BucketVersion", findRequest(t, pkg, "GetBucket").WithConstructors[0].Name)
	assert.Equal(t, "ObjectVersion", findRequest(t, pkg, "GetObject").WithConstructors[0].Name)
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		expected error
	}{
		{
			name: "missing package",
			src: `
requests:
  GetService: {method: GET}
`,
			expected: ErrMissingPackage,
		},
		{
			name: "unknown type",
			src: `
package: ds3
requests:
  GetService:
    method: GET
    optional: {limit: integer}
`,
			expected: ErrUnknownType,
		},
		{
			name: "required void",
			src: `
package: ds3
requests:
  GetService:
    method: GET
    params: {flag: void}
`,
			expected: ErrUnknownType,
		},
		{
			name: "unknown enum",
			src: `
package: ds3
requests:
  GetService:
    method: GET
    optional: {priority: <Priority>}
`,
			expected: ErrUnknownEnum,
		},
		{
			name: "unknown trait",
			src: `
package: ds3
requests:
  GetService:
    method: GET
    traits: [paging]
`,
			expected: ErrUnknownTrait,
		},
		{
			name: "invalid verb",
			src: `
package: ds3
requests:
  GetService: {method: FETCH}
`,
			expected: ErrInvalidVerb,
		},
		{
			name: "path param not declared",
			src: `
package: ds3
requests:
  GetBucket:
    method: GET
    path: /{bucket_name}
`,
			expected: ErrPathParam,
		},
		{
			name: "optional path param",
			src: `
package: ds3
requests:
  GetBucket:
    method: GET
    path: /{bucket_name}
    optional: {bucket_name: string}
`,
			expected: ErrPathParam,
		},
		{
			name: "non string path param",
			src: `
package: ds3
requests:
  GetBucket:
    method: GET
    path: /{id}
    params: {id: int}
`,
			expected: ErrPathParam,
		},
		{
			name: "duplicate with-constructor",
			src: `
package: ds3
requests:
  GetBucket:
    method: GET
    optional:
      max_keys: int
      max-keys: int
`,
			expected: ErrDuplicateParam,
		},
		{
			name: "enum value without identifier",
			src: `
package: ds3
enums:
  Kind: [a/b]
requests:
  GetService: {method: GET}
`,
			expected: ErrInvalidName,
		},
		{
			name: "path field shadows method",
			src: `
package: ds3
requests:
  GetObject:
    method: GET
    path: /{path}
    params: {path: string}
`,
			expected: ErrInvalidName,
		},
		{
			name: "enum named like the client",
			src: `
package: ds3
enums:
  Client: [A]
requests:
  GetService: {method: GET}
`,
			expected: ErrInvalidName,
		},
		{
			name: "enum named like a request",
			src: `
package: ds3
enums:
  GetServiceRequest: [A]
requests:
  GetService: {method: GET}
`,
			expected: ErrInvalidName,
		},
		{
			name: "request named like a client field",
			src: `
package: ds3
requests:
  Endpoint: {method: GET}
`,
			expected: ErrInvalidName,
		},
		{
			name: "invalid param name",
			src: `
package: ds3
requests:
  GetBucket:
    method: GET
    optional: {"2fa": bool}
`,
			expected: ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := compileSource(t, tt.src)
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestCompile_ReservedVarNames(t *testing.T) {
	t.Parallel()

	src := `
package: ds3
requests:
  Get:
    method: GET
    params:
      url: string
      strconv: int
      query_params: string
    optional:
      get_request: string
`
	pkg, err := compileSource(t, src)
	require.NoError(t, err)

	request := findRequest(t, pkg, "Get")

	assert.Equal(t, []Arg{
		{Name: "url_", Type: "string"},
		{Name: "strconv_", Type: "int"},
		{Name: "queryParams_", Type: "string"},
	}, request.Args)
	assert.Equal(t, []QueryParam{
		{Key: "url", Assignment: "url_"},
		{Key: "strconv", Assignment: "strconv.Itoa(strconv_)"},
		{Key: "query_params", Assignment: "queryParams_"},
	}, request.Required)
	assert.Equal(t, []WithConstructor{
		NewWithConstructor("GetRequest", "string", "get_request", "getRequest_"),
	}, request.WithConstructors)
}

func TestCompile_TraitArity(t *testing.T) {
	t.Parallel()

	src := `
package: ds3
traits:
  "versioned(kind)":
    optional: {"#kind_version": uuid}
requests:
  GetObject:
    method: GET
    traits: [versioned]
`
	_, err := compileSource(t, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number of values")
}

func TestCompileToJSON(t *testing.T) {
	t.Parallel()

	var document docs.Document
	require.NoError(t, yaml.Unmarshal([]byte(testDocument), &document))

	bytes, err := CompileToJSON(&document)
	require.NoError(t, err)

	var decoded Package
	require.NoError(t, json.Unmarshal(bytes, &decoded))

	expected, err := compileSource(t, testDocument)
	require.NoError(t, err)
	assert.Equal(t, expected, decoded)
}
