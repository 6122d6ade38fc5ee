package rest

import "github.com/gin-gonic/gin"

// Middleware is attached to every route of Group; "*" means the whole engine.
type Middleware struct {
	Handler gin.HandlerFunc
	Group   string
}

const AllGroups = "*"

func NewMiddleware(group string, handler gin.HandlerFunc) Middleware {
	return Middleware{
		Group:   group,
		Handler: handler,
	}
}
