package httpcase

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

var pathParamRegex = regexp.MustCompile(`\{([^{}]+)\}`)

// Case is one request and the expectations for its response.
type Case struct {
	Name       string
	Method     string
	Path       string
	PathParams map[string]string
	Query      map[string]ldvalue.Value
	Headers    map[string]string
	Body       interface{}
	Expect     []Expectation
}

// Get returns a GET case for a path template such as "/joke/{category}".
func Get(path string) Case {
	return Case{Method: MethodGet, Path: path}
}

// Post returns a POST case whose body will be sent as JSON.
func Post(path string, body interface{}) Case {
	return Case{Method: MethodPost, Path: path, Body: body}
}

func (c Case) Named(name string) Case {
	c.Name = name
	return c
}

func (c Case) WithPathParam(name, value string) Case {
	c.PathParams = copyStrings(c.PathParams)
	c.PathParams[name] = value
	return c
}

// WithQuery adds a query parameter. The value must be a string, boolean or number.
func (c Case) WithQuery(name string, value ldvalue.Value) Case {
	c.Query = copyQuery(c.Query)
	c.Query[name] = value
	return c
}

// WithQueryParams adds all of the given query parameters.
func (c Case) WithQueryParams(params map[string]ldvalue.Value) Case {
	c.Query = copyQuery(c.Query)
	for k, v := range params {
		c.Query[k] = v
	}
	return c
}

func (c Case) WithHeader(name, value string) Case {
	c.Headers = copyStrings(c.Headers)
	c.Headers[name] = value
	return c
}

// Expecting appends expectations to the case.
func (c Case) Expecting(expectations ...Expectation) Case {
	c.Expect = append(append([]Expectation(nil), c.Expect...), expectations...)
	return c
}

// Validate checks the case for mistakes that would make it impossible to send.
func (c Case) Validate() error {
	switch c.Method {
	case MethodGet, MethodPost:
	default:
		return fmt.Errorf("unsupported method %q", c.Method)
	}
	if _, err := c.expandPath(); err != nil {
		return err
	}
	_, err := c.encodeQuery()
	return err
}

func (c Case) String() string {
	return c.Method + " " + c.Path
}

func (c Case) expandPath() (string, error) {
	var missing []string
	path := pathParamRegex.ReplaceAllStringFunc(c.Path, func(placeholder string) string {
		name := placeholder[1 : len(placeholder)-1]
		value, ok := c.PathParams[name]
		if !ok {
			missing = append(missing, name)
			return placeholder
		}
		return url.PathEscape(value)
	})
	if len(missing) != 0 {
		return "", fmt.Errorf("no value for path parameter(s) %s in %q", strings.Join(missing, ", "), c.Path)
	}
	return path, nil
}

func (c Case) encodeQuery() (string, error) {
	if len(c.Query) == 0 {
		return "", nil
	}
	values := url.Values{}
	names := make([]string, 0, len(c.Query))
	for name := range c.Query {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s, err := queryValueString(c.Query[name])
		if err != nil {
			return "", fmt.Errorf("query parameter %q: %w", name, err)
		}
		values.Set(name, s)
	}
	return values.Encode(), nil
}

// requestURL joins the base URL, the expanded path and the encoded query.
func (c Case) requestURL(baseURL string) (string, error) {
	path, err := c.expandPath()
	if err != nil {
		return "", err
	}
	query, err := c.encodeQuery()
	if err != nil {
		return "", err
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + path)
	if err != nil {
		return "", err
	}
	u.RawQuery = query
	return u.String(), nil
}

func queryValueString(v ldvalue.Value) (string, error) {
	switch v.Type() {
	case ldvalue.StringType:
		return v.StringValue(), nil
	case ldvalue.BoolType:
		return strconv.FormatBool(v.BoolValue()), nil
	case ldvalue.NumberType:
		if v.IsInt() {
			return strconv.Itoa(v.IntValue()), nil
		}
		return strconv.FormatFloat(v.Float64Value(), 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("must be a string, boolean or number, not %s", v.Type())
	}
}

func copyStrings(m map[string]string) map[string]string {
	ret := make(map[string]string, len(m)+1)
	for k, v := range m {
		ret[k] = v
	}
	return ret
}

func copyQuery(m map[string]ldvalue.Value) map[string]ldvalue.Value {
	ret := make(map[string]ldvalue.Value, len(m)+1)
	for k, v := range m {
		ret[k] = v
	}
	return ret
}
