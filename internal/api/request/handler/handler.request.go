// Package requesthdl chứa các handler HTTP cho workflow request.
package requesthdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/handler"
	"github.com/devxankit/CRM-SaaS-sub000/internal/api/middleware"
	requestdto "github.com/devxankit/CRM-SaaS-sub000/internal/api/request/dto"
	requestmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/request/models"
	requestsvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/request/service"
	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
	"github.com/devxankit/CRM-SaaS-sub000/internal/logger"
)

// RequestHandler xử lý các request HTTP của workflow request.
type RequestHandler struct {
	basehdl.BaseHandler[requestmodels.Request, requestdto.RequestCreateInput, requestdto.RequestUpdateInput]
	service *requestsvc.RequestService
}

// NewRequestHandler tạo mới RequestHandler.
func NewRequestHandler() (*RequestHandler, error) {
	service, err := requestsvc.NewRequestService()
	if err != nil {
		return nil, err
	}
	handler := &RequestHandler{service: service}
	handler.BaseService = service
	return handler, nil
}

// HandleCreate tạo một request mới.
// POST /api/requests
func (h *RequestHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, err := middleware.GetActor(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		input := new(requestdto.RequestCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			return basehdl.SendError(c, err)
		}
		if err := h.ValidateInput(input); err != nil {
			return basehdl.SendError(c, err)
		}

		detail, err := h.service.Create(c.Context(), actor.ID, actor.Role, input)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		logger.LogAction("request_create", c, map[string]interface{}{
			"requestId": detail.ID.Hex(),
			"type":      detail.Type,
			"recipient": detail.Recipient.Hex(),
		})
		return basehdl.SendSuccess(c, common.StatusCreated, "Request created successfully", detail)
	})
}

// HandleList liệt kê request theo hướng nhìn của actor.
// GET /api/requests
func (h *RequestHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, err := middleware.GetActor(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		query := new(requestdto.RequestListQuery)
		if err := c.Bind().Query(query); err != nil {
			return basehdl.SendError(c, common.NewValidationError("Invalid query parameters"))
		}

		result, err := h.service.List(c.Context(), actor.ID, actor.Role, query)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		return basehdl.SendPaginated(c, "Requests retrieved successfully", result.Items, basehdl.PaginationFrom(result))
	})
}

// HandleStatistics trả về thống kê request theo hướng.
// GET /api/requests/statistics
func (h *RequestHandler) HandleStatistics(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, err := middleware.GetActor(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		stats, err := h.service.Statistics(c.Context(), actor.ID, actor.Role, c.Query("direction"))
		if err != nil {
			return basehdl.SendError(c, err)
		}
		return basehdl.SendSuccess(c, common.StatusOK, "Request statistics retrieved successfully", stats)
	})
}

// HandleRecipients liệt kê người nhận khả dĩ theo role tag.
// GET /api/requests/recipients?type=Admin
func (h *RequestHandler) HandleRecipients(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		roleTag := c.Query("type")
		if roleTag == "" {
			return basehdl.SendError(c, common.NewValidationError("Recipient type is required"))
		}

		recipients, err := h.service.Recipients(c.Context(), roleTag)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		return basehdl.SendSuccess(c, common.StatusOK, "Recipients retrieved successfully", recipients)
	})
}

// HandleGetByID trả về chi tiết một request.
// GET /api/requests/:id
func (h *RequestHandler) HandleGetByID(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, err := middleware.GetActor(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.SendError(c, err)
		}

		detail, err := h.service.GetByID(c.Context(), actor.ID, actor.Role, id)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		return basehdl.SendSuccess(c, common.StatusOK, "Request retrieved successfully", detail)
	})
}

// HandleRespond ghi phản hồi cho một request.
// POST /api/requests/:id/respond
func (h *RequestHandler) HandleRespond(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, err := middleware.GetActor(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.SendError(c, err)
		}

		input := new(requestdto.RequestRespondInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			return basehdl.SendError(c, err)
		}

		detail, err := h.service.Respond(c.Context(), actor.ID, actor.Role, id, input)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		logger.LogStateChange("request", id.Hex(),
			requestmodels.StatusPending, detail.Status, c,
			map[string]interface{}{"responseType": input.ResponseType})
		return basehdl.SendSuccess(c, common.StatusOK, "Response recorded successfully", detail)
	})
}

// HandleUpdate sửa một request còn pending.
// PUT /api/requests/:id
func (h *RequestHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, err := middleware.GetActor(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.SendError(c, err)
		}

		input := new(requestdto.RequestUpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			return basehdl.SendError(c, err)
		}
		if err := h.ValidateInput(input); err != nil {
			return basehdl.SendError(c, err)
		}

		detail, err := h.service.Update(c.Context(), actor.ID, actor.Role, id, input)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		logger.LogAction("request_update", c, map[string]interface{}{"requestId": id.Hex()})
		return basehdl.SendSuccess(c, common.StatusOK, "Request updated successfully", detail)
	})
}

// HandleDelete xóa một request còn pending.
// DELETE /api/requests/:id
func (h *RequestHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, err := middleware.GetActor(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.SendError(c, err)
		}

		if err := h.service.Delete(c.Context(), actor.ID, actor.Role, id); err != nil {
			return basehdl.SendError(c, err)
		}

		logger.LogAction("request_delete", c, map[string]interface{}{"requestId": id.Hex()})
		return basehdl.SendSuccess(c, common.StatusOK, "Request deleted successfully", nil)
	})
}
