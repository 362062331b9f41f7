// Package web provides the newsboard web server: HTTP serving, routing,
// session middleware, and embedded templates.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"

	"newsboard/config"
	"newsboard/logger"
	"newsboard/util/common"
	"newsboard/util/random"
	"newsboard/web/controller"
	"newsboard/web/locale"
	"newsboard/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

// Server is the newsboard web server with its controllers.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	auth  *controller.AuthController
	news  *controller.NewsController

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// getHtmlTemplates parses the HTML templates once per bundled language,
// each set with an i18n func bound to that language's localizer. The
// map is read-only after startup, so concurrent requests in different
// languages cannot bleed into each other.
func (s *Server) getHtmlTemplates(htmlRoot fs.FS) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)
	for _, lang := range locale.Languages() {
		localizer := locale.NewLocalizerFor(lang)
		funcMap := template.FuncMap{
			"i18n": func(key string, params ...string) string {
				return locale.Localize(localizer, key, params...)
			},
		}
		tpl, err := template.New("").Funcs(funcMap).ParseFS(htmlRoot, "html/*.html")
		if err != nil {
			return nil, err
		}
		templates[lang] = tpl
	}
	return templates, nil
}

// initRouter initializes gin, registers middleware, templates, static
// assets, and controllers, and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	secret := config.GetSessionSecret()
	if secret == "" {
		secret = random.Secret()
		logger.Warning("NB_SESSION_SECRET not set, sessions will not survive a restart")
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
	})
	engine.Use(sessions.Sessions(session.SessionName, store))

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	engine.Use(locale.LocalizerMiddleware())

	var htmlRoot fs.FS = htmlFS
	if config.IsDebug() {
		htmlRoot = os.DirFS("web")
	}
	templates, err := s.getHtmlTemplates(htmlRoot)
	if err != nil {
		return nil, err
	}
	engine.Use(func(c *gin.Context) {
		tpl, ok := templates[c.GetString("lang")]
		if !ok {
			tpl = templates[locale.Languages()[0]]
		}
		c.Set("htmlTemplate", tpl)
		c.Next()
	})

	if config.IsDebug() {
		engine.StaticFS("/assets", http.FS(os.DirFS("web/assets")))
	} else {
		assets, err := fs.Sub(assetsFS, "assets")
		if err != nil {
			return nil, err
		}
		engine.StaticFS("/assets", http.FS(assets))
	}

	g := engine.Group("/")
	s.index = controller.NewIndexController(g)
	s.auth = controller.NewAuthController(g)
	s.news = controller.NewNewsController(g)

	engine.NoRoute(controller.NotFound)

	return engine, nil
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	return nil
}

// Stop gracefully shuts down the web server.
func (s *Server) Stop() error {
	s.cancel()
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}
