package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kuldeep2thakur/depression/internal/content"
)

// MediaPath is where the video asset is served.
const MediaPath = "/naturevideo.mp4"

// Route binds one (method, path) pair to a handler.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Routes is the dispatch table of the site. Anything not listed is a 404.
func (h *Handlers) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/", Handler: h.Page(content.PageHome)},
		{Method: http.MethodGet, Path: "/about", Handler: h.Page(content.PageAbout)},
		{Method: http.MethodGet, Path: "/services", Handler: h.Page(content.PageServices)},
		{Method: http.MethodGet, Path: "/contactus", Handler: h.Page(content.PageContactUs)},
		{Method: http.MethodGet, Path: "/quiz", Handler: h.Page(content.PageQuiz)},
		{Method: http.MethodGet, Path: "/again", Handler: h.Page(content.PageQuiz)},
		{Method: http.MethodGet, Path: "/result", Handler: h.Page(content.PageResult)},
		{Method: http.MethodPost, Path: "/result", Handler: h.SubmitResult},
		{Method: http.MethodGet, Path: MediaPath, Handler: h.Media},
	}
}

// Register mounts routes on r.
func Register(r gin.IRoutes, routes []Route) {
	for _, rt := range routes {
		r.Handle(rt.Method, rt.Path, rt.Handler)
	}
}
