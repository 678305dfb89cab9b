package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextRules(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		expected []string
	}{
		{"valid text", Input{"text": "So true!"}, nil},
		{"absent", Input{}, []string{"Text must be included"}},
		{"empty string", Input{"text": ""}, []string{"Text must be included"}},
		{"whitespace only", Input{"text": "   "}, []string{"Text must be included"}},
		{"nil value", Input{"text": nil}, []string{"Text must be included"}},
		{"number", Input{"text": 5.0}, []string{"Text must be a string"}},
		{"boolean true", Input{"text": true}, []string{"Text must be a string"}},
		{"boolean false", Input{"text": false}, []string{"Text must be included"}},
		{"string true", Input{"text": "true"}, []string{"Text must be a string"}},
		{"string false", Input{"text": "false"}, []string{"Text must be a string"}},
		{"object", Input{"text": map[string]any{"a": 1.0}}, []string{"Text must be a string"}},
		{"array", Input{"text": []any{"a"}}, []string{"Text must be a string"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Evaluate(TextRules(), tt.in))
		})
	}
}

func TestTextRules_HaltsOnFirstFailure(t *testing.T) {
	// A single field chain reports exactly one message even when later
	// checks in the chain would also fail.
	msgs := Evaluate(TextRules(), Input{"text": ""})
	assert.Len(t, msgs, 1)
}

func TestSignupRules(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		expected []string
	}{
		{
			"all valid",
			Input{"email": "a@b.com", "password": "hunter22", "confirmPassword": "hunter22"},
			nil,
		},
		{
			// Format-only validation; short single-letter domains are fine.
			"short domain",
			Input{"email": "a@b.com", "password": "hunter22", "confirmPassword": "hunter22"},
			nil,
		},
		{
			"bad email",
			Input{"email": "not-an-email", "password": "hunter22", "confirmPassword": "hunter22"},
			[]string{"Must be a valid email address."},
		},
		{
			"short password",
			Input{"email": "a@b.com", "password": "abc", "confirmPassword": "abc"},
			[]string{"Password must be between 6 and 16 characters."},
		},
		{
			"long password",
			Input{"email": "a@b.com", "password": "aaaaaaaaaaaaaaaaa", "confirmPassword": "aaaaaaaaaaaaaaaaa"},
			[]string{"Password must be between 6 and 16 characters."},
		},
		{
			"mismatched confirmation",
			Input{"email": "a@b.com", "password": "hunter22", "confirmPassword": "hunter23"},
			[]string{"Passwords must match."},
		},
		{
			"missing confirmation",
			Input{"email": "a@b.com", "password": "hunter22"},
			[]string{"Passwords must match."},
		},
		{
			"everything wrong accumulates in order",
			Input{"email": "nope", "password": "abc", "confirmPassword": "xyz"},
			[]string{
				"Must be a valid email address.",
				"Password must be between 6 and 16 characters.",
				"Passwords must match.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Evaluate(SignupRules(), tt.in))
		})
	}
}

func TestLoginRules(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		expected []string
	}{
		{"valid", Input{"email": "a@b.com", "password": "pw"}, nil},
		{"missing email", Input{"password": "pw"}, []string{"Email is needed to log in."}},
		{"missing password", Input{"email": "a@b.com"}, []string{"Password is needed to log in."}},
		{
			"missing both",
			Input{},
			[]string{"Email is needed to log in.", "Password is needed to log in."},
		},
		{
			"blank strings count as missing",
			Input{"email": "  ", "password": ""},
			[]string{"Email is needed to log in.", "Password is needed to log in."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Evaluate(LoginRules(), tt.in))
		})
	}
}

func TestCredentialUpdateRules(t *testing.T) {
	valid := Input{
		"currentPassword":    "hunter22",
		"newEmail":           "new@b.com",
		"newPassword":        "hunter23",
		"newPasswordConfirm": "hunter23",
	}
	assert.Nil(t, Evaluate(CredentialUpdateRules(), valid))

	bad := Input{
		"newEmail":           "nope",
		"newPassword":        "abc",
		"newPasswordConfirm": "def",
	}
	assert.Equal(t, []string{
		"Your new email must be a valid email address.",
		"Your new password must be between 6 and 16 characters.",
		"Password confirmation must match.",
	}, Evaluate(CredentialUpdateRules(), bad))
}

func TestProfileRules(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		expected []string
	}{
		{"valid full", Input{"name": "Ada", "about": "hi", "website": "https://example.com"}, nil},
		{"website optional", Input{"name": "Ada"}, nil},
		{"empty website passes", Input{"name": "Ada", "website": ""}, nil},
		{"missing name", Input{"website": "https://example.com"}, []string{"Name must exist."}},
		{"blank name", Input{"name": "   "}, []string{"Name must exist."}},
		{"bad website", Input{"name": "Ada", "website": "not a url"}, []string{"Website must be a valid URL."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Evaluate(ProfileRules(), tt.in))
		})
	}
}
