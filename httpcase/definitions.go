package httpcase

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/drone/envsubst"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
	"gopkg.in/yaml.v2"
)

// Definitions is a file of test cases written in YAML rather than Go.
type Definitions struct {
	Groups []GroupDefinition `yaml:"groups"`
}

type GroupDefinition struct {
	Name  string           `yaml:"name"`
	Cases []CaseDefinition `yaml:"cases"`
}

type CaseDefinition struct {
	Name       string                 `yaml:"name"`
	Method     string                 `yaml:"method"`
	Path       string                 `yaml:"path"`
	PathParams map[string]string      `yaml:"pathParams"`
	Query      map[string]interface{} `yaml:"query"`
	Headers    map[string]string      `yaml:"headers"`
	Body       interface{}            `yaml:"body"`
	Expect     ExpectDefinition       `yaml:"expect"`
}

type ExpectDefinition struct {
	Status          int               `yaml:"status"`
	Headers         map[string]string `yaml:"headers"`
	BodyContains    []string          `yaml:"bodyContains"`
	JSONLike        interface{}       `yaml:"jsonLike"`
	JSONSchema      string            `yaml:"jsonSchema"`
	FieldsExist     []string          `yaml:"fieldsExist"`
	MaxResponseTime string            `yaml:"maxResponseTime"`
}

// LoadDefinitions reads a YAML definitions file. References to environment variables in
// the form ${NAME} are substituted before parsing.
func LoadDefinitions(fileName string) (*Definitions, error) {
	file, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	subst, err := envsubst.EvalEnv(string(file))
	if err != nil {
		return nil, fmt.Errorf("unable to substitute variables in %s: %w", fileName, err)
	}
	defs, err := ParseDefinitions([]byte(subst))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return defs, nil
}

// ParseDefinitions parses YAML definitions and checks that every case can be built.
func ParseDefinitions(data []byte) (*Definitions, error) {
	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, err
	}
	for _, g := range defs.Groups {
		if g.Name == "" {
			return nil, fmt.Errorf("group with no name")
		}
		if _, err := g.Build(); err != nil {
			return nil, err
		}
	}
	return &defs, nil
}

// Build converts every case definition in the group.
func (g GroupDefinition) Build() ([]Case, error) {
	var ret []Case
	for i, d := range g.Cases {
		c, err := d.Build()
		if err != nil {
			name := d.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i+1)
			}
			return nil, fmt.Errorf("group %q, case %q: %w", g.Name, name, err)
		}
		ret = append(ret, c)
	}
	return ret, nil
}

// Build converts the definition into a Case.
func (d CaseDefinition) Build() (Case, error) {
	if d.Name == "" {
		return Case{}, fmt.Errorf("case has no name")
	}
	c := Case{
		Name:       d.Name,
		Method:     strings.ToUpper(d.Method),
		Path:       d.Path,
		PathParams: d.PathParams,
		Headers:    d.Headers,
	}
	if c.Method == "" {
		c.Method = MethodGet
	}
	if d.Body != nil {
		c.Body = convert(d.Body)
	}
	for name, raw := range d.Query {
		value := ldvalue.CopyArbitraryValue(convert(raw))
		if _, err := queryValueString(value); err != nil {
			return Case{}, fmt.Errorf("query parameter %q: %w", name, err)
		}
		c = c.WithQuery(name, value)
	}
	if err := c.Validate(); err != nil {
		return Case{}, err
	}

	expectations, err := d.Expect.build(d.Name)
	if err != nil {
		return Case{}, err
	}
	return c.Expecting(expectations...), nil
}

func (e ExpectDefinition) build(caseName string) ([]Expectation, error) {
	var ret []Expectation
	if e.Status != 0 {
		ret = append(ret, ExpectStatus(e.Status))
	}
	for _, name := range sortedKeys(e.Headers) {
		ret = append(ret, ExpectHeaderContains(name, e.Headers[name]))
	}
	for _, s := range e.BodyContains {
		ret = append(ret, ExpectBodyContains(s))
	}
	if e.JSONLike != nil {
		ret = append(ret, ExpectJSONLike(convert(e.JSONLike)))
	}
	if e.JSONSchema != "" {
		schema, err := CompileSchema(caseName, e.JSONSchema)
		if err != nil {
			return nil, err
		}
		ret = append(ret, ExpectJSONSchema(schema))
	}
	for _, f := range e.FieldsExist {
		ret = append(ret, ExpectJSONField(f))
	}
	if e.MaxResponseTime != "" {
		d, err := time.ParseDuration(e.MaxResponseTime)
		if err != nil {
			return nil, fmt.Errorf("invalid maxResponseTime: %w", err)
		}
		ret = append(ret, ExpectResponseTimeAtMost(d))
	}
	return ret, nil
}

// Used to take in an unstructured yaml body and convert it into a nested set of
// maps with string keys
func convert(i interface{}) interface{} {
	switch x := i.(type) {
	case map[interface{}]interface{}:
		m2 := map[string]interface{}{}
		for k, v := range x {
			m2[fmt.Sprintf("%v", k)] = convert(v)
		}
		return m2
	case []interface{}:
		for i, v := range x {
			x[i] = convert(v)
		}
	}
	return i
}
