package controller

import (
	"net/http"
	"strconv"

	"newsboard/database"
	"newsboard/logger"
	"newsboard/web/form"
	"newsboard/web/service"
	"newsboard/web/session"

	"github.com/gin-gonic/gin"
)

// NewsController handles creating, editing, and deleting posts. Every
// route requires a logged-in user; edit and delete additionally require
// ownership.
type NewsController struct {
	BaseController

	newsService service.NewsService
}

func NewNewsController(g *gin.RouterGroup) *NewsController {
	a := &NewsController{}
	a.initRouter(g)
	return a
}

func (a *NewsController) initRouter(g *gin.RouterGroup) {
	g.GET("/news", a.checkLogin, a.addNewsPage)
	g.POST("/news", a.checkLogin, a.addNews)

	g.GET("/news/:id", a.checkLogin, a.editNewsPage)
	g.POST("/news/:id", a.checkLogin, a.editNews)

	g.GET("/news_delete/:id", a.checkLogin, a.delNews)
	g.POST("/news_delete/:id", a.checkLogin, a.delNews)
}

func newsId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		NotFound(c)
		return 0, false
	}
	return id, true
}

func (a *NewsController) renderForm(c *gin.Context, title string, f form.NewsForm, errs map[string]string) {
	html(c, "news.html", title, gin.H{
		"form":   f,
		"errors": errs,
	})
}

func (a *NewsController) addNewsPage(c *gin.Context) {
	a.renderForm(c, "pages.news.addTitle", form.NewsForm{}, nil)
}

func (a *NewsController) addNews(c *gin.Context) {
	user := session.GetLoginUser(c)

	var f form.NewsForm
	if err := c.ShouldBind(&f); err != nil {
		logger.Warning("bind news form err:", err)
	}
	if errs := f.Validate(translator(c)); len(errs) > 0 {
		a.renderForm(c, "pages.news.addTitle", f, errs)
		return
	}

	if _, err := a.newsService.AddNews(user.Id, f.Title, f.Content, f.IsPrivate); err != nil {
		logger.Warning("add news err:", err)
		a.renderForm(c, "pages.news.addTitle", f, nil)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// editNewsPage pre-populates the form from the owned post, or renders
// the 404 page when the post is missing or owned by someone else.
func (a *NewsController) editNewsPage(c *gin.Context) {
	user := session.GetLoginUser(c)
	id, ok := newsId(c)
	if !ok {
		return
	}

	news, err := a.newsService.GetUserNews(id, user.Id)
	if err != nil {
		if !database.IsNotFound(err) {
			logger.Warning("get news err:", err)
		}
		NotFound(c)
		return
	}

	f := form.NewsForm{
		Title:     news.Title,
		Content:   news.Content,
		IsPrivate: news.IsPrivate,
	}
	a.renderForm(c, "pages.news.editTitle", f, nil)
}

// editNews re-resolves ownership at write time: the post may have been
// deleted between display and submit.
func (a *NewsController) editNews(c *gin.Context) {
	user := session.GetLoginUser(c)
	id, ok := newsId(c)
	if !ok {
		return
	}

	var f form.NewsForm
	if err := c.ShouldBind(&f); err != nil {
		logger.Warning("bind news form err:", err)
	}
	if errs := f.Validate(translator(c)); len(errs) > 0 {
		a.renderForm(c, "pages.news.editTitle", f, errs)
		return
	}

	err := a.newsService.UpdateNews(id, user.Id, f.Title, f.Content, f.IsPrivate)
	if database.IsNotFound(err) {
		NotFound(c)
		return
	} else if err != nil {
		logger.Warning("update news err:", err)
		a.renderForm(c, "pages.news.editTitle", f, nil)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// delNews removes an owned post and redirects to the main page. A
// missing or foreign post renders the 404 page instead of redirecting.
func (a *NewsController) delNews(c *gin.Context) {
	user := session.GetLoginUser(c)
	id, ok := newsId(c)
	if !ok {
		return
	}

	err := a.newsService.DelNews(id, user.Id)
	if database.IsNotFound(err) {
		NotFound(c)
		return
	} else if err != nil {
		logger.Warning("delete news err:", err)
		NotFound(c)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
