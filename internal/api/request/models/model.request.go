// Package models - model Request: yêu cầu phê duyệt đa vai trò, có hướng.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Module là ngữ cảnh vai trò phát sinh request.
const (
	ModuleAdmin    = "admin"
	ModuleClient   = "client"
	ModuleEmployee = "employee"
	ModulePM       = "pm"
	ModuleSales    = "sales"
)

// AllModules liệt kê toàn bộ module hợp lệ.
var AllModules = []string{ModuleAdmin, ModuleClient, ModuleEmployee, ModulePM, ModuleSales}

// Loại request, enum cố định.
const (
	TypeApproval           = "approval"
	TypeFeedback           = "feedback"
	TypeConfirmation       = "confirmation"
	TypePaymentRecovery    = "payment-recovery"
	TypeHoldWork           = "hold-work"
	TypeAccelerateWork     = "accelerate-work"
	TypeIncreaseCost       = "increase-cost"
	TypeAccessRequest      = "access-request"
	TypeTimelineExtension  = "timeline-extension"
	TypeBudgetApproval     = "budget-approval"
	TypeResourceAllocation = "resource-allocation"
)

// AllTypes liệt kê toàn bộ loại request hợp lệ.
var AllTypes = []string{
	TypeApproval, TypeFeedback, TypeConfirmation, TypePaymentRecovery,
	TypeHoldWork, TypeAccelerateWork, TypeIncreaseCost, TypeAccessRequest,
	TypeTimelineExtension, TypeBudgetApproval, TypeResourceAllocation,
}

// Độ ưu tiên của request.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// AllPriorities liệt kê toàn bộ mức ưu tiên hợp lệ.
var AllPriorities = []string{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}

// Trạng thái request. Một chiều: pending chuyển sang đúng một trạng thái
// kết thúc, không bao giờ quay lại pending.
const (
	StatusPending   = "pending"
	StatusResponded = "responded"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// Loại phản hồi khi respond một request.
const (
	ResponseApprove        = "approve"
	ResponseReject         = "reject"
	ResponseRequestChanges = "request_changes"
)

// StatusForResponseType ánh xạ loại phản hồi sang trạng thái kết thúc.
// Trả về chuỗi rỗng nếu loại phản hồi không hợp lệ.
func StatusForResponseType(responseType string) string {
	switch responseType {
	case ResponseApprove:
		return StatusApproved
	case ResponseReject:
		return StatusRejected
	case ResponseRequestChanges:
		return StatusResponded
	default:
		return ""
	}
}

// DescriptionMaxLength giới hạn độ dài description; phần vượt bị cắt khi tạo/sửa.
const DescriptionMaxLength = 2000

// Response là khối phản hồi của request, được ghi đúng một lần cùng lúc
// với việc chuyển trạng thái.
type Response struct {
	Type             string             `json:"type" bson:"type"`
	Message          string             `json:"message,omitempty" bson:"message,omitempty"`
	RespondedBy      primitive.ObjectID `json:"respondedBy" bson:"respondedBy"`
	RespondedByModel string             `json:"respondedByModel" bson:"respondedByModel"`
	RespondedAt      int64              `json:"respondedAt" bson:"respondedAt"`
}

// Request là một yêu cầu phê duyệt có hướng giữa hai actor.
// requestedBy/requestedByModel và recipient/recipientModel là tham chiếu
// polymorphic: id + discriminator chỉ định collection vai trò để resolve.
type Request struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Module      string             `json:"module" bson:"module"`
	Type        string             `json:"type" bson:"type"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty"`
	Priority    string             `json:"priority" bson:"priority"`

	RequestedBy      primitive.ObjectID `json:"requestedBy" bson:"requestedBy"`
	RequestedByModel string             `json:"requestedByModel" bson:"requestedByModel"`
	Recipient        primitive.ObjectID `json:"recipient" bson:"recipient"`
	RecipientModel   string             `json:"recipientModel" bson:"recipientModel"`

	Project primitive.ObjectID `json:"project,omitempty" bson:"project,omitempty"`
	Client  primitive.ObjectID `json:"client,omitempty" bson:"client,omitempty"`
	// Amount chỉ bắt buộc (và phải dương) khi Type là payment-recovery.
	Amount   float64                `json:"amount,omitempty" bson:"amount,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`

	Status   string    `json:"status" bson:"status"`
	Response *Response `json:"response,omitempty" bson:"response,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// IsRequestedBy kiểm tra actor (id + role model) có phải người tạo request không.
// So khớp id mà khác role model thì không được coi là chủ sở hữu.
func (r *Request) IsRequestedBy(id primitive.ObjectID, roleModel string) bool {
	return r.RequestedBy == id && r.RequestedByModel == roleModel
}

// IsRecipient kiểm tra actor (id + role model) có phải người nhận request không.
func (r *Request) IsRecipient(id primitive.ObjectID, roleModel string) bool {
	return r.Recipient == id && r.RecipientModel == roleModel
}
