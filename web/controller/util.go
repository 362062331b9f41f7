package controller

import (
	"html/template"
	"net"
	"net/http"
	"strings"

	"newsboard/config"
	"newsboard/web/form"
	"newsboard/web/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// getRemoteIp extracts the real IP address from the request headers or
// remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// translator adapts the per-request localizer to the form layer.
func translator(c *gin.Context) form.TranslateFunc {
	return func(key string, params ...string) string {
		return I18nWeb(c, key, params...)
	}
}

// html renders a template with HTTP 200.
func html(c *gin.Context, name string, title string, data gin.H) {
	htmlStatus(c, http.StatusOK, name, title, data)
}

// htmlStatus renders an HTML template with the provided data, localized
// title, and status code. The template set for the request language is
// picked by the middleware in web.go.
func htmlStatus(c *gin.Context, statusCode int, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = I18nWeb(c, title)
	data["request_uri"] = c.Request.RequestURI

	if v, exists := c.Get("htmlTemplate"); exists {
		if tpl, ok := v.(*template.Template); ok {
			c.Render(statusCode, render.HTML{
				Template: tpl,
				Name:     name,
				Data:     getContext(c, data),
			})
			return
		}
	}
	c.HTML(statusCode, name, getContext(c, data))
}

// getContext adds version and the current user to the template data.
func getContext(c *gin.Context, h gin.H) gin.H {
	a := gin.H{
		"cur_ver":   config.GetVersion(),
		"loginUser": session.GetLoginUser(c),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// NotFound renders the 404 page and aborts the request. Used both for
// unknown routes and for lookups that miss (or hit another user's post,
// which must look the same).
func NotFound(c *gin.Context) {
	htmlStatus(c, http.StatusNotFound, "404.html", "pages.error.notFoundTitle", nil)
	c.Abort()
}

// htmlUnauthorized renders the 401 page and aborts the request.
func htmlUnauthorized(c *gin.Context) {
	htmlStatus(c, http.StatusUnauthorized, "401.html", "pages.error.unauthorizedTitle", nil)
	c.Abort()
}
