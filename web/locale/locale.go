package locale

import (
	"embed"
	"io/fs"
	"strings"

	"newsboard/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

var (
	i18nBundle *i18n.Bundle

	// supported lists the bundled translations, default first.
	supported = []language.Tag{
		language.MustParse("en-US"),
		language.MustParse("ru-RU"),
	}
	matcher = language.NewMatcher(supported)
)

// InitLocalizer parses the embedded translation files into the bundle.
// English is the default language.
func InitLocalizer(i18nFS embed.FS) error {
	i18nBundle = i18n.NewBundle(supported[0])
	i18nBundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return parseTranslationFiles(i18nFS, i18nBundle)
}

// Languages returns the supported language tags, default first.
func Languages() []string {
	langs := make([]string, 0, len(supported))
	for _, tag := range supported {
		langs = append(langs, tag.String())
	}
	return langs
}

// MatchLanguage picks the best supported language for the given
// preferences, falling back to the default.
func MatchLanguage(prefs ...string) string {
	_, idx := language.MatchStrings(matcher, prefs...)
	return supported[idx].String()
}

// NewLocalizerFor creates a localizer for the given language
// preferences.
func NewLocalizerFor(langs ...string) *i18n.Localizer {
	return i18n.NewLocalizer(i18nBundle, langs...)
}

func createTemplateData(params []string) map[string]any {
	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, "==", 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}
	return templateData
}

// Localize resolves a message key against the given localizer. Params
// are "name==value" pairs for message templates.
func Localize(localizer *i18n.Localizer, key string, params ...string) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Errorf("Failed to localize message: %v", err)
		return key
	}
	return msg
}

// LocalizerMiddleware resolves the request language from the "lang"
// cookie, falling back to the Accept-Language header, and stores the
// matched language and a request-scoped localizer in the gin context.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var pref string

		if cookie, err := c.Request.Cookie("lang"); err == nil {
			pref = cookie.Value
		} else {
			pref = c.GetHeader("Accept-Language")
		}

		lang := MatchLanguage(pref)
		localizer := NewLocalizerFor(lang)

		c.Set("lang", lang)
		c.Set("localizer", localizer)
		c.Set("I18n", func(key string, params ...string) string {
			return Localize(localizer, key, params...)
		})
		c.Next()
	}
}

func parseTranslationFiles(i18nFS embed.FS, i18nBundle *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			data, err := i18nFS.ReadFile(path)
			if err != nil {
				return err
			}

			_, err = i18nBundle.ParseMessageFileBytes(data, path)
			return err
		})
}
