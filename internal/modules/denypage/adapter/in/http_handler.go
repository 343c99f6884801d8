package in

import (
	_ "embed"
	"html/template"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	denyin "hyprfocus/internal/modules/denypage/port/in"
)

//go:embed deny.html
var denyPage string

const denyTemplate = "deny.html"

var releaseMode sync.Once

type HTTPHandler struct {
	usecase denyin.Usecase
}

// NewRouter builds the engine that answers every path with the deny page.
// Request logs go to logWriter; pass io.Discard to silence them.
func NewRouter(usecase denyin.Usecase, logWriter io.Writer) *gin.Engine {
	releaseMode.Do(func() { gin.SetMode(gin.ReleaseMode) })
	if logWriter == nil {
		logWriter = io.Discard
	}
	h := HTTPHandler{usecase: usecase}

	engine := gin.New()
	engine.Use(gin.LoggerWithWriter(logWriter), gin.Recovery())
	engine.SetHTMLTemplate(template.Must(template.New(denyTemplate).Parse(denyPage)))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.NoRoute(h.Deny)
	return engine
}

func (h HTTPHandler) Deny(c *gin.Context) {
	page, err := h.usecase.Page(c.Request.Context(), c.Request.Host)
	if err != nil {
		c.String(http.StatusInternalServerError, "focus mode active")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, denyTemplate, gin.H{
		"Host":      page.Host,
		"Goal":      page.Goal,
		"Intention": page.Intention,
	})
}
