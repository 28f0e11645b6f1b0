package router

import "github.com/gin-gonic/gin"

// RouteRegistrar mounts a handler's routes on a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router assembles the API route tree under a base path
type Router struct {
	engine     *gin.Engine
	basePath   string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// New creates a router mounting routes under basePath
func New(engine *gin.Engine, basePath string) *Router {
	return &Router{
		engine:   engine,
		basePath: basePath,
	}
}

// Use appends middleware applied to every route in the base path group
func (r *Router) Use(mw ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, mw...)
	return r
}

// Register adds route registrars to be mounted on Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts the middleware and all registered routes
func (r *Router) Setup() {
	group := r.engine.Group(r.basePath)
	group.Use(r.middleware...)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(group)
	}
}
