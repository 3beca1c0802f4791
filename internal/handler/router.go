package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/remindme/internal/middleware"
	"github.com/xxxsen/remindme/internal/pkg/jwt"
	"github.com/xxxsen/remindme/internal/pkg/response"
)

var knownMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodTrace,
}

type RouterDeps struct {
	Auth          *AuthHandler
	Reminders     *ReminderHandler
	Notifications *NotificationHandler
	Tokens        *jwt.Manager
}

type route struct {
	method   string
	handlers []gin.HandlerFunc
}

func on(method string, handlers ...gin.HandlerFunc) route {
	return route{method: method, handlers: handlers}
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	authRequired := middleware.JWTAuth(deps.Tokens)

	mount(api, "/auth/register", on(http.MethodPost, deps.Auth.Register))
	mount(api, "/auth/login", on(http.MethodPost, deps.Auth.Login))
	mount(api, "/reminders",
		on(http.MethodGet, authRequired, deps.Reminders.List),
		on(http.MethodPost, authRequired, deps.Reminders.Create),
		on(http.MethodPut, authRequired, deps.Reminders.Update),
		on(http.MethodDelete, authRequired, deps.Reminders.Delete),
	)
	mount(api, "/notifications", on(http.MethodPost, deps.Notifications.Send))
}

// mount registers routes on path together with an OPTIONS preflight listing
// them and a 405 for every other method.
func mount(group *gin.RouterGroup, path string, routes ...route) {
	allowed := make([]string, 0, len(routes)+1)
	registered := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		group.Handle(r.method, path, r.handlers...)
		allowed = append(allowed, r.method)
		registered[r.method] = struct{}{}
	}
	group.OPTIONS(path, middleware.Preflight(append(allowed, http.MethodOptions)))
	for _, method := range knownMethods {
		if _, ok := registered[method]; ok {
			continue
		}
		group.Handle(method, path, methodNotAllowed)
	}
}

func methodNotAllowed(c *gin.Context) {
	response.Error(c, http.StatusMethodNotAllowed, "Method not allowed")
}
