// Package router dispatches requests through an explicit, ordered route
// table. Routes are tried by group, then by priority; the first route whose
// method and pattern both match handles the request.
package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/middleware"
	"rhythm-registry/internal/models"
)

// Group orders route evaluation. Lower groups are tried first.
type Group int

const (
	GroupHealth Group = iota
	GroupAuth
	GroupUser
	GroupArtist
	GroupSong
)

// Route is one entry of the dispatch table. Within a group, a lower Priority
// is tried first: literal paths must outrank parameterized paths sharing a
// prefix. A nil Roles makes the route public.
type Route struct {
	Group     Group
	Method    string
	Pattern   string
	Priority  int
	Roles     []models.Role
	Ownership bool
	Before    []gin.HandlerFunc
	Handler   gin.HandlerFunc
}

type segment struct {
	literal string
	param   string
}

type compiledRoute struct {
	Route
	segments []segment
	chain    []gin.HandlerFunc
}

// Router holds the compiled table.
type Router struct {
	routes []compiledRoute
}

// New sorts and compiles routes. authenticate runs before the role check of
// every protected route; ownership runs on routes marked Ownership.
func New(routes []Route, authenticate, ownership gin.HandlerFunc) *Router {
	sorted := append([]Route(nil), routes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Group != sorted[j].Group {
			return sorted[i].Group < sorted[j].Group
		}
		return sorted[i].Priority < sorted[j].Priority
	})

	r := &Router{routes: make([]compiledRoute, 0, len(sorted))}
	for _, route := range sorted {
		if route.Handler == nil {
			panic(fmt.Sprintf("router: %s %s has no handler", route.Method, route.Pattern))
		}

		chain := append([]gin.HandlerFunc(nil), route.Before...)
		if route.Roles != nil {
			chain = append(chain, authenticate, middleware.RequireRoles(route.Roles...))
		}
		if route.Ownership {
			chain = append(chain, ownership)
		}
		chain = append(chain, route.Handler)

		r.routes = append(r.routes, compiledRoute{
			Route:    route,
			segments: compile(route.Pattern),
			chain:    chain,
		})
	}
	return r
}

func compile(pattern string) []segment {
	parts := splitPath(pattern)
	segments := make([]segment, len(parts))
	for i, part := range parts {
		if name, ok := strings.CutPrefix(part, ":"); ok {
			if name == "" {
				panic(fmt.Sprintf("router: empty parameter name in %q", pattern))
			}
			segments[i] = segment{param: name}
			continue
		}
		segments[i] = segment{literal: part}
	}
	return segments
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// match reports whether path fits the route. Parameters only match digits.
func (r *compiledRoute) match(parts []string) (gin.Params, bool) {
	if len(parts) != len(r.segments) {
		return nil, false
	}
	var params gin.Params
	for i, seg := range r.segments {
		if seg.param == "" {
			if parts[i] != seg.literal {
				return nil, false
			}
			continue
		}
		if !digits(parts[i]) {
			return nil, false
		}
		params = append(params, gin.Param{Key: seg.param, Value: parts[i]})
	}
	return params, true
}

// Lookup returns the route that would handle method and path.
func (rt *Router) Lookup(method, path string) (Route, gin.Params, bool) {
	parts := splitPath(path)
	for i := range rt.routes {
		route := &rt.routes[i]
		if route.Method != method {
			continue
		}
		if params, ok := route.match(parts); ok {
			return route.Route, params, true
		}
	}
	return Route{}, nil, false
}

// Dispatch runs the matching route's steps in order and stops as soon as one
// aborts. Unmatched requests get 404.
func (rt *Router) Dispatch(c *gin.Context) {
	parts := splitPath(c.Request.URL.Path)
	for i := range rt.routes {
		route := &rt.routes[i]
		if route.Method != c.Request.Method {
			continue
		}
		params, ok := route.match(parts)
		if !ok {
			continue
		}

		c.Params = params
		for _, step := range route.chain {
			step(c)
			if c.IsAborted() {
				return
			}
		}
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
}

// Mount sends every request that reaches engine through Dispatch.
func (rt *Router) Mount(engine *gin.Engine) {
	engine.NoRoute(rt.Dispatch)
	engine.NoMethod(rt.Dispatch)
}
