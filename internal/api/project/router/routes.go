package router

import (
	"github.com/gofiber/fiber/v3"

	identitymodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/identity/models"
	"github.com/devxankit/CRM-SaaS-sub000/internal/api/middleware"
	projecthdl "github.com/devxankit/CRM-SaaS-sub000/internal/api/project/handler"
	"github.com/devxankit/CRM-SaaS-sub000/internal/api/router"
)

// RegisterProjectRoutes đăng ký các route lifecycle dự án phía PM.
// Mọi route yêu cầu vai trò ProjectManager.
func RegisterProjectRoutes(api fiber.Router, _ *router.Router) error {
	handler, err := projecthdl.NewProjectHandler()
	if err != nil {
		return err
	}

	pmOnly := []fiber.Handler{
		middleware.AuthMiddleware(),
		middleware.RequireRole(identitymodels.RoleProjectManager),
	}

	router.RegisterRouteWithMiddleware(api, "/pm", "GET", "/new-projects", pmOnly, handler.HandleGetNewProjects)
	router.RegisterRouteWithMiddleware(api, "/pm", "PATCH", "/projects/:id/meeting-status", pmOnly, handler.HandleUpdateMeetingStatus)
	router.RegisterRouteWithMiddleware(api, "/pm", "PATCH", "/projects/:id/start", pmOnly, handler.HandleStartProject)
	router.RegisterRouteWithMiddleware(api, "/pm", "PATCH", "/projects/:id/activate", pmOnly, handler.HandleActivateProject)

	return nil
}
