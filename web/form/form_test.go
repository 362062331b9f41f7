package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testTr(key string, params ...string) string {
	if len(params) > 0 {
		parts := strings.SplitN(params[0], "==", 2)
		return key + ":" + parts[1]
	}
	return key
}

func TestRegisterFormValidate(t *testing.T) {
	tests := []struct {
		name      string
		form      RegisterForm
		badFields []string
	}{
		{
			name: "all fields present",
			form: RegisterForm{Login: "alice", Password: "p", ConfirmPassword: "p"},
		},
		{
			name:      "everything empty",
			form:      RegisterForm{},
			badFields: []string{"login", "password", "confirm_password"},
		},
		{
			name:      "missing confirmation",
			form:      RegisterForm{Login: "alice", Password: "p"},
			badFields: []string{"confirm_password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate(testTr)
			assert.Len(t, errs, len(tt.badFields))
			for _, field := range tt.badFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestLoginFormValidate(t *testing.T) {
	valid := LoginForm{Login: "alice", Password: "p"}
	assert.Empty(t, valid.Validate(testTr))

	// remember_me alone never makes a form valid
	invalid := LoginForm{RememberMe: true}
	errs := invalid.Validate(testTr)
	assert.Contains(t, errs, "login")
	assert.Contains(t, errs, "password")
}

func TestNewsFormValidate(t *testing.T) {
	// content and privacy are optional
	valid := NewsForm{Title: "T"}
	assert.Empty(t, valid.Validate(testTr))

	invalid := NewsForm{Content: "C", IsPrivate: true}
	errs := invalid.Validate(testTr)
	assert.Contains(t, errs, "title")
	assert.Len(t, errs, 1)
}

func TestRequiredErrorUsesFieldLabel(t *testing.T) {
	form := NewsForm{}
	errs := form.Validate(testTr)
	assert.Equal(t, "form.required:pages.news.postTitle", errs["title"])
}
