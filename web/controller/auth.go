package controller

import (
	"errors"
	"net/http"

	"newsboard/logger"
	"newsboard/web/form"
	"newsboard/web/service"
	"newsboard/web/session"

	"github.com/gin-gonic/gin"
)

// rememberMaxAge keeps a "remember me" login for 30 days.
const rememberMaxAge = 30 * 24 * 60 * 60

// AuthController handles registration, login, and logout.
type AuthController struct {
	BaseController

	userService service.UserService
}

func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.GET("/reg", a.registerPage)
	g.POST("/reg", a.register)

	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)

	g.GET("/logout", a.checkLogin, a.logout)
}

func (a *AuthController) registerPage(c *gin.Context) {
	html(c, "reg.html", "pages.reg.title", gin.H{
		"form":   form.RegisterForm{},
		"errors": map[string]string{},
	})
}

// register creates an account. Validation failures, a password mismatch,
// and a taken login all re-render the form with HTTP 200; success
// redirects to the login page.
func (a *AuthController) register(c *gin.Context) {
	var f form.RegisterForm
	if err := c.ShouldBind(&f); err != nil {
		logger.Warning("bind register form err:", err)
	}

	render := func(message string, errs map[string]string) {
		html(c, "reg.html", "pages.reg.title", gin.H{
			"form":    f,
			"errors":  errs,
			"message": message,
		})
	}

	if errs := f.Validate(translator(c)); len(errs) > 0 {
		render("", errs)
		return
	}
	if f.Password != f.ConfirmPassword {
		render(I18nWeb(c, "pages.reg.passwordMismatch"), nil)
		return
	}

	_, err := a.userService.AddUser(f.Login, f.Password)
	if errors.Is(err, service.ErrUserExists) {
		render(I18nWeb(c, "pages.reg.userExists"), nil)
		return
	} else if err != nil {
		logger.Warning("add user err:", err)
		render(I18nWeb(c, "pages.reg.userExists"), nil)
		return
	}

	logger.Infof("user %s registered", f.Login)
	c.Redirect(http.StatusFound, "/login")
}

func (a *AuthController) loginPage(c *gin.Context) {
	html(c, "login.html", "pages.login.title", gin.H{
		"form":   form.LoginForm{},
		"errors": map[string]string{},
	})
}

// login authenticates the user and establishes the session identity.
// Unknown login and wrong password produce the identical message.
func (a *AuthController) login(c *gin.Context) {
	var f form.LoginForm
	if err := c.ShouldBind(&f); err != nil {
		logger.Warning("bind login form err:", err)
	}

	render := func(message string, errs map[string]string) {
		html(c, "login.html", "pages.login.title", gin.H{
			"form":    f,
			"errors":  errs,
			"message": message,
		})
	}

	if errs := f.Validate(translator(c)); len(errs) > 0 {
		render("", errs)
		return
	}

	user := a.userService.CheckUser(f.Login, f.Password)
	if user == nil {
		logger.Warningf("failed login for %q, IP: %q", f.Login, getRemoteIp(c))
		render(I18nWeb(c, "pages.login.wrongCredentials"), nil)
		return
	}

	maxAge := 0
	if f.RememberMe {
		maxAge = rememberMaxAge
	}
	if err := session.SetMaxAge(c, maxAge); err != nil {
		logger.Warning("set session max age err:", err)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("save session err:", err)
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Login, getRemoteIp(c))
	c.Redirect(http.StatusFound, "/")
}

// logout clears the session identity and returns to the main page.
func (a *AuthController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil {
		logger.Infof("%s logged out", user.Login)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("clear session err:", err)
	}
	c.Redirect(http.StatusFound, "/")
}
