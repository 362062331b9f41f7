package controller

import (
	"newsboard/database/model"
	"newsboard/logger"
	"newsboard/web/service"
	"newsboard/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController handles the post list on the main page.
type IndexController struct {
	BaseController

	newsService service.NewsService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
}

// index shows every public post; an authenticated user additionally
// sees their own private posts.
func (a *IndexController) index(c *gin.Context) {
	user := session.GetLoginUser(c)

	var news []model.News
	var err error
	if user != nil {
		news, err = a.newsService.GetVisibleNews(user.Id, true)
	} else {
		news, err = a.newsService.GetVisibleNews(0, false)
	}
	if err != nil {
		logger.Warning("load news err:", err)
	}

	html(c, "index.html", "pages.index.title", gin.H{
		"newsdata": news,
	})
}
