// Package form defines the submitted-input schemas and their validation.
// Each schema is an explicit struct bound from the request body; Validate
// flags required fields that came in empty. Business rules that span
// fields (password confirmation, duplicate login) live in the handlers.
package form

// TranslateFunc resolves a message key to a localized string.
type TranslateFunc func(key string, params ...string) string

// RegisterForm is the registration input schema.
type RegisterForm struct {
	Login           string `form:"login"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// LoginForm is the login input schema.
type LoginForm struct {
	Login      string `form:"login"`
	Password   string `form:"password"`
	RememberMe bool   `form:"remember_me"`
}

// NewsForm is the create/edit post input schema.
type NewsForm struct {
	Title     string `form:"title"`
	Content   string `form:"content"`
	IsPrivate bool   `form:"is_private"`
}

func requiredError(tr TranslateFunc, labelKey string) string {
	return tr("form.required", "Field=="+tr(labelKey))
}

// Validate returns a map of field name to error message for every
// required field that is empty. An empty map means the form is valid.
func (f *RegisterForm) Validate(tr TranslateFunc) map[string]string {
	errs := make(map[string]string)
	if f.Login == "" {
		errs["login"] = requiredError(tr, "pages.login.login")
	}
	if f.Password == "" {
		errs["password"] = requiredError(tr, "pages.login.password")
	}
	if f.ConfirmPassword == "" {
		errs["confirm_password"] = requiredError(tr, "pages.reg.confirmPassword")
	}
	return errs
}

// Validate flags empty login or password. RememberMe is optional.
func (f *LoginForm) Validate(tr TranslateFunc) map[string]string {
	errs := make(map[string]string)
	if f.Login == "" {
		errs["login"] = requiredError(tr, "pages.login.login")
	}
	if f.Password == "" {
		errs["password"] = requiredError(tr, "pages.login.password")
	}
	return errs
}

// Validate flags an empty title. Content and the private flag are
// optional.
func (f *NewsForm) Validate(tr TranslateFunc) map[string]string {
	errs := make(map[string]string)
	if f.Title == "" {
		errs["title"] = requiredError(tr, "pages.news.postTitle")
	}
	return errs
}
