package rest

import "github.com/gin-gonic/gin"

type HttpMethod int

const (
	GET HttpMethod = iota
	POST
	PUT
	PATCH
	DELETE
)

func (m HttpMethod) String() string {
	switch m {
	case GET:
		return "GET"
	case POST:
		return "POST"
	case PUT:
		return "PUT"
	case PATCH:
		return "PATCH"
	case DELETE:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

type Route struct {
	Method      HttpMethod
	Path        string
	HandlerFunc gin.HandlerFunc
	Group       string
}

func NewRoute(method HttpMethod, group, path string, handler gin.HandlerFunc) Route {
	return Route{
		Method:      method,
		Path:        path,
		Group:       group,
		HandlerFunc: handler,
	}
}

// Register attaches the route to the router group matching its method.
func (r Route) Register(group gin.IRoutes) bool {
	switch r.Method {
	case GET:
		group.GET(r.Path, r.HandlerFunc)
	case POST:
		group.POST(r.Path, r.HandlerFunc)
	case PUT:
		group.PUT(r.Path, r.HandlerFunc)
	case PATCH:
		group.PATCH(r.Path, r.HandlerFunc)
	case DELETE:
		group.DELETE(r.Path, r.HandlerFunc)
	default:
		return false
	}
	return true
}
