// Package validation evaluates per-endpoint field rules against a request
// body. A Rule is one field's ordered chain of checks; the chain halts on the
// first failing check, while Evaluate still runs every rule so that the
// response carries one message per failing field, in declaration order.
package validation

import (
	"strings"

	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Input is a decoded request body. Values keep their decoded JSON types
// (string, bool, float64, map, slice) so type checks can distinguish a plain
// string from everything else.
type Input map[string]any

// Str returns the trimmed string form of a field. Non-string values yield "".
func (in Input) Str(field string) string {
	if s, ok := in[field].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// present reports whether the field exists with a truthy value: absent, nil,
// empty/blank string, false and zero all count as missing.
func (in Input) present(field string) bool {
	v, ok := in[field]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	case bool:
		return t
	case float64:
		return t != 0
	}
	return true
}

// Check is a single predicate with the message reported when it fails.
type Check struct {
	Message string
	Passes  func(in Input, field string) bool
}

// Rule is one field's ordered check chain.
type Rule struct {
	Field  string
	Checks []Check
}

// Field builds a Rule for a named field.
func Field(name string, checks ...Check) Rule {
	return Rule{Field: name, Checks: checks}
}

// Evaluate runs every rule against the input and returns the failing
// messages in rule declaration order, at most one per rule.
func Evaluate(rules []Rule, in Input) []string {
	var messages []string
	for _, rule := range rules {
		for _, check := range rule.Checks {
			if !check.Passes(in, rule.Field) {
				messages = append(messages, check.Message)
				break
			}
		}
	}
	return messages
}

// Required fails when the field is absent or falsy after trimming.
func Required(message string) Check {
	return Check{Message: message, Passes: func(in Input, field string) bool {
		return in.present(field)
	}}
}

// NotBlank fails when a string value trims to nothing. Non-string values are
// left for PlainString to reject.
func NotBlank(message string) Check {
	return Check{Message: message, Passes: func(in Input, field string) bool {
		if s, ok := in[field].(string); ok {
			return strings.TrimSpace(s) != ""
		}
		return true
	}}
}

// PlainString fails when the value is a boolean, number, object or array, or
// a string that spells a boolean ("true"/"false"). The latter mirrors
// form-encoded bodies where every value arrives as a string.
func PlainString(message string) Check {
	return Check{Message: message, Passes: func(in Input, field string) bool {
		switch v := in[field].(type) {
		case bool, float64, map[string]any, []any:
			return false
		case string:
			trimmed := strings.TrimSpace(v)
			return trimmed != "true" && trimmed != "false"
		}
		return true
	}}
}

// Email fails unless the trimmed value is a well-formed email address.
// is.EmailFormat checks shape only; is.Email would also resolve the domain
// and reject otherwise valid addresses.
func Email(message string) Check {
	return Check{Message: message, Passes: func(in Input, field string) bool {
		s := in.Str(field)
		if s == "" {
			return false
		}
		return is.EmailFormat.Validate(s) == nil
	}}
}

// Length fails when the trimmed value's length is outside [min, max].
func Length(min, max int, message string) Check {
	return Check{Message: message, Passes: func(in Input, field string) bool {
		n := len([]rune(in.Str(field)))
		return n >= min && n <= max
	}}
}

// MatchesField fails when the field is absent or its trimmed value differs
// from the other field's trimmed value.
func MatchesField(other, message string) Check {
	return Check{Message: message, Passes: func(in Input, field string) bool {
		if _, ok := in[field]; !ok {
			return false
		}
		return in.Str(field) == in.Str(other)
	}}
}

// OptionalURL passes when the field is empty, and otherwise fails unless the
// value is a well-formed URL.
func OptionalURL(message string) Check {
	return Check{Message: message, Passes: func(in Input, field string) bool {
		s := in.Str(field)
		if s == "" {
			return true
		}
		return is.URL.Validate(s) == nil
	}}
}

// TextRules is the shared chain for post and comment bodies. The chain halts
// on the first failure so an empty text reports only "Text must be included".
func TextRules() []Rule {
	return []Rule{
		Field("text",
			Required("Text must be included"),
			NotBlank("Text must not be blank."),
			PlainString("Text must be a string"),
		),
	}
}

// SignupRules validates new-account requests.
func SignupRules() []Rule {
	return []Rule{
		Field("email", Email("Must be a valid email address.")),
		Field("password", Length(6, 16, "Password must be between 6 and 16 characters.")),
		Field("confirmPassword", MatchesField("password", "Passwords must match.")),
	}
}

// LoginRules validates login requests.
func LoginRules() []Rule {
	return []Rule{
		Field("email", Required("Email is needed to log in.")),
		Field("password", Required("Password is needed to log in.")),
	}
}

// CredentialUpdateRules validates email/password change requests.
func CredentialUpdateRules() []Rule {
	return []Rule{
		Field("newEmail", Email("Your new email must be a valid email address.")),
		Field("newPassword", Length(6, 16, "Your new password must be between 6 and 16 characters.")),
		Field("newPasswordConfirm", MatchesField("newPassword", "Password confirmation must match.")),
	}
}

// ProfileRules validates profile updates.
func ProfileRules() []Rule {
	return []Rule{
		Field("name",
			Required("Name must exist."),
			NotBlank("Name must not be blank."),
		),
		Field("website", OptionalURL("Website must be a valid URL.")),
	}
}
