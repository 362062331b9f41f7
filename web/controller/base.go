// Package controller provides the HTTP handlers for the newsboard pages:
// the post list, registration, login, and post management.
package controller

import (
	"newsboard/logger"
	"newsboard/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers,
// including the authentication check.
type BaseController struct{}

// checkLogin guards protected routes: anonymous requests get the 401
// page before the handler body runs.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		htmlUnauthorized(c)
		return
	}
	c.Next()
}

// I18nWeb retrieves a localized message using the translator the locale
// middleware put into the gin context.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return name
	}
	i18nFunc, _ := anyfunc.(func(key string, params ...string) string)
	return i18nFunc(name, params...)
}
