// Package render wraps pongo2 template execution. Every rendered context gets
// the consumed flash messages, the authenticated user's claims, the CSRF
// token, and the resolved project when one is in scope.
package render

import (
	"net/http"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"github.com/trackline/tracker/config"
	"github.com/trackline/tracker/utils"
)

var (
	mu  sync.Mutex
	set *pongo2.TemplateSet
)

func Init(dir string) {
	mu.Lock()
	defer mu.Unlock()
	set = pongo2.NewSet("tracker", pongo2.MustNewLocalFileSystemLoader(dir))
}

func templateSet() *pongo2.TemplateSet {
	mu.Lock()
	defer mu.Unlock()
	if set == nil {
		dir := config.TemplateDir
		if dir == "" {
			dir = "templates"
		}
		set = pongo2.NewSet("tracker", pongo2.MustNewLocalFileSystemLoader(dir))
	}
	return set
}

func HTML(c *gin.Context, status int, name string, ctx pongo2.Context) {
	if ctx == nil {
		ctx = pongo2.Context{}
	}

	ctx["flashes"] = utils.ConsumeFlashes(c)
	if claims, err := utils.GetClaimsFromContext(c); err == nil {
		ctx["user"] = claims
	}
	if token, exists := c.Get("csrf_token"); exists {
		ctx["csrf_token"] = token
	}
	if project, err := utils.GetProjectFromContext(c); err == nil {
		ctx["current_project"] = project
	}

	tpl, err := templateSet().FromCache(name)
	if err != nil {
		c.String(http.StatusInternalServerError, "template %s: %v", name, err)
		return
	}

	out, err := tpl.ExecuteBytes(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, "template %s: %v", name, err)
		return
	}

	c.Data(status, "text/html; charset=utf-8", out)
}

func NotFound(c *gin.Context) {
	HTML(c, http.StatusNotFound, "not_found.pongo2", nil)
	c.Abort()
}
