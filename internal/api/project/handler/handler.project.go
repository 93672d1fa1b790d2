// Package projecthdl chứa các handler HTTP cho lifecycle dự án phía PM.
package projecthdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/handler"
	"github.com/devxankit/CRM-SaaS-sub000/internal/api/middleware"
	projectdto "github.com/devxankit/CRM-SaaS-sub000/internal/api/project/dto"
	projectmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/project/models"
	projectsvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/project/service"
	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
	"github.com/devxankit/CRM-SaaS-sub000/internal/logger"
)

// ProjectHandler xử lý các request HTTP của lifecycle dự án.
type ProjectHandler struct {
	basehdl.BaseHandler[projectmodels.Project, projectdto.ActivateProjectInput, projectdto.ActivateProjectInput]
	service *projectsvc.ProjectService
}

// NewProjectHandler tạo mới ProjectHandler.
func NewProjectHandler() (*ProjectHandler, error) {
	service, err := projectsvc.NewProjectService()
	if err != nil {
		return nil, err
	}
	handler := &ProjectHandler{service: service}
	handler.BaseService = service
	return handler, nil
}

// HandleGetNewProjects liệt kê dự án mới của PM đang đăng nhập.
// GET /api/pm/new-projects
func (h *ProjectHandler) HandleGetNewProjects(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, err := middleware.GetActor(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		query := new(projectdto.NewProjectListQuery)
		if err := c.Bind().Query(query); err != nil {
			return basehdl.SendError(c, common.NewValidationError("Invalid query parameters"))
		}

		result, err := h.service.GetNewProjects(c.Context(), actor.ID, query)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		return basehdl.SendPaginated(c, "New projects retrieved successfully", result.Items, basehdl.PaginationFrom(result))
	})
}

// HandleUpdateMeetingStatus cập nhật meetingStatus của một dự án.
// PATCH /api/pm/projects/:id/meeting-status
func (h *ProjectHandler) HandleUpdateMeetingStatus(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, err := middleware.GetActor(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.SendError(c, err)
		}

		input := new(projectdto.MeetingStatusInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			return basehdl.SendError(c, err)
		}

		project, err := h.service.UpdateMeetingStatus(c.Context(), actor.ID, id, input.MeetingStatus)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		logger.LogAction("project_meeting_status", c, map[string]interface{}{
			"projectId":     id.Hex(),
			"meetingStatus": input.MeetingStatus,
		})
		return basehdl.SendSuccess(c, common.StatusOK, "Meeting status updated successfully", project)
	})
}

// HandleStartProject chuyển dự án từ untouched sang started.
// PATCH /api/pm/projects/:id/start
func (h *ProjectHandler) HandleStartProject(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, err := middleware.GetActor(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.SendError(c, err)
		}

		project, err := h.service.StartProject(c.Context(), actor.ID, id)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		logger.LogStateChange("project", id.Hex(),
			projectmodels.ProjectStatusUntouched, projectmodels.ProjectStatusStarted, c, nil)
		return basehdl.SendSuccess(c, common.StatusOK, "Project started successfully", project)
	})
}

// HandleActivateProject chuyển dự án từ started sang active với team và due date.
// PATCH /api/pm/projects/:id/activate
func (h *ProjectHandler) HandleActivateProject(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, err := middleware.GetActor(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.SendError(c, err)
		}

		input := new(projectdto.ActivateProjectInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			return basehdl.SendError(c, err)
		}
		if err := h.ValidateInput(input); err != nil {
			return basehdl.SendError(c, err)
		}

		detail, err := h.service.ActivateProject(c.Context(), actor.ID, id, input)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		logger.LogStateChange("project", id.Hex(),
			projectmodels.ProjectStatusStarted, projectmodels.ProjectStatusActive, c,
			map[string]interface{}{"teamSize": len(input.AssignedTeam)})
		return basehdl.SendSuccess(c, common.StatusOK, "Project activated successfully", detail)
	})
}
