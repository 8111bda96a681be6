package httpcase

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Jeffail/gabs/v2"
	"github.com/google/go-cmp/cmp"
)

// matchJSON compares an expected value, as decoded by encoding/json, with part of a parsed
// response. It returns a description of every mismatch, each qualified with its path.
func matchJSON(path string, expected interface{}, actual *gabs.Container) []string {
	switch exp := expected.(type) {
	case map[string]interface{}:
		if _, ok := actual.Data().(map[string]interface{}); !ok {
			return []string{mismatch(path, "an object", actual.Data())}
		}
		children := actual.ChildrenMap()
		var ret []string
		for _, key := range sortedObjectKeys(exp) {
			child, ok := children[key]
			if !ok {
				ret = append(ret, fmt.Sprintf("at %q: property is missing", joinPath(path, key)))
				continue
			}
			ret = append(ret, matchJSON(joinPath(path, key), exp[key], child)...)
		}
		return ret

	case []interface{}:
		if _, ok := actual.Data().([]interface{}); !ok {
			return []string{mismatch(path, "an array", actual.Data())}
		}
		children := actual.Children()
		if len(children) < len(exp) {
			return []string{fmt.Sprintf("at %q: expected at least %d elements but got %d",
				displayPath(path), len(exp), len(children))}
		}
		var ret []string
		for i, j := range matchElements(exp, children) {
			if j < 0 {
				ret = append(ret, fmt.Sprintf("at %q: no element matches %s",
					displayPath(path), jsonString(exp[i])))
			}
		}
		return ret

	default:
		if !scalarsEqual(exp, actual.Data()) {
			return []string{mismatch(path, jsonString(exp), actual.Data())}
		}
		return nil
	}
}

// matchElements pairs each expected element with a distinct actual element that matches
// it, wherever it is in the array. The element at the same index is tried first. The
// result holds the actual index for each expected element, or -1 if none matched.
func matchElements(expected []interface{}, actual []*gabs.Container) []int {
	used := make([]bool, len(actual))
	ret := make([]int, len(expected))
	for i, e := range expected {
		ret[i] = -1
		if i < len(actual) && !used[i] && len(matchJSON("", e, actual[i])) == 0 {
			ret[i] = i
		} else {
			for j, a := range actual {
				if !used[j] && j != i && len(matchJSON("", e, a)) == 0 {
					ret[i] = j
					break
				}
			}
		}
		if ret[i] >= 0 {
			used[ret[i]] = true
		}
	}
	return ret
}

// projectJSON returns the part of actual that has the same shape as expected, so that a
// diff between the two shows only what the expectation is about.
func projectJSON(expected interface{}, actual *gabs.Container) interface{} {
	switch exp := expected.(type) {
	case map[string]interface{}:
		if _, ok := actual.Data().(map[string]interface{}); !ok {
			return normalizeJSON(actual.Data())
		}
		children := actual.ChildrenMap()
		ret := make(map[string]interface{}, len(exp))
		for key, value := range exp {
			if child, ok := children[key]; ok {
				ret[key] = projectJSON(value, child)
			}
		}
		return ret
	case []interface{}:
		if _, ok := actual.Data().([]interface{}); !ok {
			return normalizeJSON(actual.Data())
		}
		children := actual.Children()
		ret := []interface{}{}
		for i, j := range matchElements(exp, children) {
			if j < 0 && i < len(children) {
				j = i
			}
			if j >= 0 {
				ret = append(ret, projectJSON(exp[i], children[j]))
			}
		}
		return ret
	default:
		return normalizeJSON(actual.Data())
	}
}

// diffJSON describes how actual differs from expected, ignoring whatever expected does
// not mention. It is empty for scalar expectations, whose mismatch message says it all.
func diffJSON(expected interface{}, actual *gabs.Container) string {
	switch expected.(type) {
	case map[string]interface{}, []interface{}:
		return cmp.Diff(normalizeJSON(expected), projectJSON(expected, actual))
	default:
		return ""
	}
}

func normalizeJSON(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		ret := make(map[string]interface{}, len(t))
		for k, value := range t {
			ret[k] = normalizeJSON(value)
		}
		return ret
	case []interface{}:
		ret := make([]interface{}, len(t))
		for i, value := range t {
			ret[i] = normalizeJSON(value)
		}
		return ret
	default:
		return normalizeNumber(v)
	}
}

func scalarsEqual(expected, actual interface{}) bool {
	return cmp.Equal(normalizeNumber(expected), normalizeNumber(actual))
}

func normalizeNumber(v interface{}) interface{} {
	switch n := v.(type) {
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return v
}

func mismatch(path, expected string, actual interface{}) string {
	return fmt.Sprintf("at %q: expected %s but got %s", displayPath(path), expected, jsonString(actual))
}

func jsonString(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return truncate(data, 100)
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}

func sortedObjectKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
