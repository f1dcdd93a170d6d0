package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Rule checks or transforms a string value. A non-nil Issue rejects the
// value; Fields fills in the field name.
type Rule func(v string) (string, *Issue)

// IntRule checks an integer value.
type IntRule func(n int) *Issue

func reject(v any, expected, message string) *Issue {
	return &Issue{Message: message, Received: v, Expected: expected}
}

// Trim removes surrounding whitespace.
func Trim() Rule {
	return func(v string) (string, *Issue) {
		return strings.TrimSpace(v), nil
	}
}

// Lower lower-cases the value.
func Lower() Rule {
	return func(v string) (string, *Issue) {
		return strings.ToLower(v), nil
	}
}

// NonEmpty rejects the empty string.
func NonEmpty(message string) Rule {
	return func(v string) (string, *Issue) {
		if v == "" {
			return v, reject(v, "!0", message)
		}
		return v, nil
	}
}

// MinLen requires at least n characters.
func MinLen(n int, message string) Rule {
	return func(v string) (string, *Issue) {
		if utf8.RuneCountInString(v) < n {
			return v, reject(v, fmt.Sprintf(">=%d", n), message)
		}
		return v, nil
	}
}

// MaxLen allows at most n characters.
func MaxLen(n int, message string) Rule {
	return func(v string) (string, *Issue) {
		if utf8.RuneCountInString(v) > n {
			return v, reject(v, fmt.Sprintf("<=%d", n), message)
		}
		return v, nil
	}
}

// Redact wraps rules so their issues never carry the received value.
func Redact(rules ...Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, rule := range rules {
		out[i] = func(v string) (string, *Issue) {
			v, issue := rule(v)
			if issue != nil {
				issue.Received = nil
			}
			return v, issue
		}
	}
	return out
}

// MaxBytes allows at most n bytes of UTF-8.
func MaxBytes(n int, message string) Rule {
	return func(v string) (string, *Issue) {
		if len(v) > n {
			return v, reject(len(v), fmt.Sprintf("<=%d bytes", n), message)
		}
		return v, nil
	}
}

// Email requires a bare address such as "a@b.com".
func Email(message string) Rule {
	return func(v string) (string, *Issue) {
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v || addr.Name != "" {
			return v, reject(v, "email", message)
		}
		return v, nil
	}
}

// Matches requires re to match.
func Matches(re *regexp.Regexp, message string) Rule {
	return func(v string) (string, *Issue) {
		if !re.MatchString(v) {
			return v, reject(v, re.String(), message)
		}
		return v, nil
	}
}

// NotMatches rejects values re matches.
func NotMatches(re *regexp.Regexp, message string) Rule {
	return func(v string) (string, *Issue) {
		if re.MatchString(v) {
			return v, reject(v, "!"+re.String(), message)
		}
		return v, nil
	}
}

// Check rejects values for which ok returns false.
func Check(ok func(string) bool, expected, message string) Rule {
	return func(v string) (string, *Issue) {
		if !ok(v) {
			return v, reject(v, expected, message)
		}
		return v, nil
	}
}

// OneOf requires one of options, compared exactly.
func OneOf(message string, options ...string) Rule {
	return func(v string) (string, *Issue) {
		if !slices.Contains(options, v) {
			return v, reject(v, strings.Join(options, " | "), message)
		}
		return v, nil
	}
}

// HTTPSURL requires an absolute https URL with a host.
func HTTPSURL(message string) Rule {
	return func(v string) (string, *Issue) {
		u, err := url.Parse(v)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			return v, reject(v, "https URL", message)
		}
		return v, nil
	}
}

// Integer requires a base-10 integer.
func Integer(message string) Rule {
	return func(v string) (string, *Issue) {
		if _, err := strconv.Atoi(v); err != nil {
			return v, reject(v, "integer", message)
		}
		return v, nil
	}
}

// UUID requires a canonical UUID and normalises it to lower case.
func UUID(message string) Rule {
	return func(v string) (string, *Issue) {
		id, err := uuid.Parse(v)
		if err != nil || len(v) != 36 {
			return v, reject(v, "uuid", message)
		}
		return id.String(), nil
	}
}

// Min requires n >= lo.
func Min(lo int, message string) IntRule {
	return func(n int) *Issue {
		if n < lo {
			return reject(n, fmt.Sprintf(">=%d", lo), message)
		}
		return nil
	}
}

// Max requires n <= hi.
func Max(hi int, message string) IntRule {
	return func(n int) *Issue {
		if n > hi {
			return reject(n, fmt.Sprintf("<=%d", hi), message)
		}
		return nil
	}
}

// MultipleOf requires n to be divisible by m.
func MultipleOf(m int, message string) IntRule {
	return func(n int) *Issue {
		if n%m != 0 {
			return reject(n, fmt.Sprintf("%%%d", m), message)
		}
		return nil
	}
}
