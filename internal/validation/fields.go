package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fields reads keys from a decoded object. Every accessor is a no-op once
// an issue has been recorded, so only the first violation survives.
type Fields struct {
	values map[string]any
	issue  *Issue
}

// NewFields starts reading raw, which must be a JSON object or a collapsed
// query/form map.
func NewFields(raw any) *Fields {
	f := &Fields{}
	switch v := raw.(type) {
	case map[string]any:
		f.values = v
	default:
		f.issue = typeIssue("Object", raw)
	}
	return f
}

// Failed reports whether an issue has been recorded.
func (f *Fields) Failed() bool {
	return f.issue != nil
}

// Has reports whether key is present and not null.
func (f *Fields) Has(key string) bool {
	v, ok := f.values[key]
	return ok && v != nil
}

func (f *Fields) fail(field string, issue *Issue) {
	if f.issue != nil || issue == nil {
		return
	}
	issue.Field = field
	f.issue = issue
}

func (f *Fields) applyRules(field, v string, rules []Rule) string {
	for _, rule := range rules {
		var issue *Issue
		v, issue = rule(v)
		if issue != nil {
			f.fail(field, issue)
			return v
		}
	}
	return v
}

func (f *Fields) rawString(key string) (string, bool) {
	raw, ok := f.values[key]
	if !ok {
		f.fail(key, &Issue{
			Message:  "Invalid type: Expected string but received undefined",
			Received: "undefined",
			Expected: "string",
		})
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		f.fail(key, typeIssue("string", raw))
		return "", false
	}
	return s, true
}

// String reads a required string and runs rules over it in order.
func (f *Fields) String(key string, rules ...Rule) string {
	if f.issue != nil {
		return ""
	}
	s, ok := f.rawString(key)
	if !ok {
		return ""
	}
	return f.applyRules(key, s, rules)
}

// OptionalString reads a string that may be absent or null.
func (f *Fields) OptionalString(key string, rules ...Rule) *string {
	if f.issue != nil || !f.Has(key) {
		return nil
	}
	s, ok := f.rawString(key)
	if !ok {
		return nil
	}
	s = f.applyRules(key, s, rules)
	if f.issue != nil {
		return nil
	}
	return &s
}

// Int reads an integer given as a JSON number or a decimal string. An
// absent key takes def when def is non-empty and is an issue otherwise.
func (f *Fields) Int(key, def string, rules ...IntRule) int {
	if f.issue != nil {
		return 0
	}

	raw, ok := f.values[key]
	if !ok || raw == nil {
		if def == "" {
			f.fail(key, &Issue{
				Message:  "Invalid type: Expected number but received undefined",
				Received: "undefined",
				Expected: "number",
			})
			return 0
		}
		raw = def
	}

	var n int
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			f.fail(key, reject(v, "integer", "Invalid integer"))
			return 0
		}
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			f.fail(key, &Issue{
				Message:  fmt.Sprintf("Invalid type: Expected number but received %q", v),
				Received: v,
				Expected: "number",
			})
			return 0
		}
		n = parsed
	default:
		f.fail(key, typeIssue("number", raw))
		return 0
	}

	for _, rule := range rules {
		if issue := rule(n); issue != nil {
			f.fail(key, issue)
			return 0
		}
	}
	return n
}

// Strings reads a required array of strings of at most maxItems entries and
// runs rules over every element. An element's issue names it key[i].
func (f *Fields) Strings(key string, maxItems int, rules ...Rule) []string {
	if f.issue != nil {
		return nil
	}
	raw, ok := f.values[key]
	if !ok {
		f.fail(key, typeIssue("Array", nil))
		return nil
	}
	out, issue := stringArray(raw, maxItems, rules)
	if issue != nil {
		if issue.Field == "" {
			f.fail(key, issue)
		} else {
			f.fail(key+issue.Field, issue)
		}
		return nil
	}
	return out
}

// Check records message against field when ok is false. It runs after the
// per-field accessors and only when they all passed.
func (f *Fields) Check(field string, ok bool, message string) {
	if f.issue != nil || ok {
		return
	}
	f.fail(field, &Issue{Message: message})
}

// Finish returns value when no issue was recorded.
func Finish[T any](f *Fields, value T) Result[T] {
	if f.issue != nil {
		return Fail[T](*f.issue)
	}
	return Ok(value)
}

// StringArray builds a Schema for a top-level array of strings.
func StringArray(maxItems int, rules ...Rule) Schema[[]string] {
	return func(raw any) Result[[]string] {
		out, issue := stringArray(raw, maxItems, rules)
		if issue != nil {
			return Fail[[]string](*issue)
		}
		return Ok(out)
	}
}

func stringArray(raw any, maxItems int, rules []Rule) ([]string, *Issue) {
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	case string:
		items = []any{v}
	default:
		return nil, typeIssue("Array", raw)
	}

	if maxItems > 0 && len(items) > maxItems {
		return nil, reject(len(items), fmt.Sprintf("<=%d items", maxItems),
			fmt.Sprintf("At most %d items are allowed", maxItems))
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			issue := typeIssue("string", item)
			issue.Field = fmt.Sprintf("[%d]", i)
			return nil, issue
		}
		for _, rule := range rules {
			var issue *Issue
			s, issue = rule(s)
			if issue != nil {
				issue.Field = fmt.Sprintf("[%d]", i)
				return nil, issue
			}
		}
		out = append(out, s)
	}
	return out, nil
}
