package httpcase

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a compiled JSON schema.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// CompileSchema parses a JSON schema document. The name is only used in messages.
func CompileSchema(name string, schemaJSON string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON schema %q: %w", name, err)
	}
	return &Schema{name: name, schema: s}, nil
}

// MustCompileSchema is like CompileSchema but panics on error. It is meant for schemas that
// are built into the program.
func MustCompileSchema(name string, schemaJSON string) *Schema {
	s, err := CompileSchema(name, schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string {
	return s.name
}

// Validate returns one message per violation, each starting with the path of the offending
// value, such as "(root).jokes.0.id: Invalid type. Expected: integer, given: string".
func (s *Schema) Validate(document []byte) ([]string, error) {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}
	var ret []string
	for _, e := range result.Errors() {
		ret = append(ret, e.String())
	}
	return ret, nil
}

type schemaExpectation struct {
	schema *Schema
}

// ExpectJSONSchema requires the body to conform to a JSON schema.
func ExpectJSONSchema(schema *Schema) Expectation {
	return schemaExpectation{schema: schema}
}

func (s schemaExpectation) String() string {
	return fmt.Sprintf("body matching schema %q", s.schema.name)
}

func (s schemaExpectation) Check(resp *Response) error {
	violations, err := s.schema.Validate(resp.Body)
	if err != nil {
		return failed(s, KindSchema, "response body could not be validated: %s", err)
	}
	if len(violations) != 0 {
		return failed(s, KindSchema, "%s", strings.Join(violations, "; "))
	}
	return nil
}
