package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction log một hành động audit
type AuditAction struct {
	Action       string                 `json:"action"`        // Tên hành động (ví dụ: "request_respond", "project_start")
	ActorID      string                 `json:"actor_id"`      // ID người thực hiện
	ActorRole    string                 `json:"actor_role"`    // Vai trò của người thực hiện (Admin, Client, Employee, ProjectManager, Sales)
	ResourceID   string                 `json:"resource_id"`   // ID tài nguyên bị ảnh hưởng
	ResourceType string                 `json:"resource_type"` // Loại tài nguyên (ví dụ: "request", "project")
	IP           string                 `json:"ip"`            // IP address
	UserAgent    string                 `json:"user_agent"`    // User agent
	Details      map[string]interface{} `json:"details"`       // Chi tiết bổ sung
	Timestamp    time.Time              `json:"timestamp"`     // Thời gian
}

// LogAction log một hành động audit
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	auditLogger := GetAuditLogger()

	if details == nil {
		details = make(map[string]interface{})
	}

	audit := AuditAction{
		Action:    action,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		Details:   details,
		Timestamp: time.Now(),
	}

	// Lấy actor từ context nếu có (được set bởi auth middleware)
	if actorID := c.Locals("actor_id"); actorID != nil {
		if id, ok := actorID.(string); ok {
			audit.ActorID = id
		}
	}
	if actorRole := c.Locals("actor_role"); actorRole != nil {
		if role, ok := actorRole.(string); ok {
			audit.ActorRole = role
		}
	}

	// Lấy request ID
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		audit.Details["request_id"] = requestID
	}

	auditLogger.WithFields(logrus.Fields{
		"action":        audit.Action,
		"actor_id":      audit.ActorID,
		"actor_role":    audit.ActorRole,
		"resource_id":   audit.ResourceID,
		"resource_type": audit.ResourceType,
		"ip":            audit.IP,
		"user_agent":    audit.UserAgent,
		"details":       audit.Details,
		"timestamp":     audit.Timestamp,
	}).Info("Audit log")
}

// LogStateChange log một chuyển trạng thái (request respond, project transition)
func LogStateChange(resourceType string, resourceID string, fromState string, toState string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["resource_type"] = resourceType
	details["resource_id"] = resourceID
	details["from_state"] = fromState
	details["to_state"] = toState

	LogAction(resourceType+"_state_change", c, details)
}

// LogAuth log các thao tác authentication
func LogAuth(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["auth_action"] = action

	LogAction("auth_"+action, c, details)
}
