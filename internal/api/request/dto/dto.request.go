// Package requestdto - DTO tầng transport cho domain Request.
package requestdto

import (
	identitymodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/identity/models"
	requestmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/request/models"
)

// RequestCreateInput dùng cho tạo request (tầng transport).
// Các thông báo lỗi nghiệp vụ (thiếu field, recipient không tồn tại, ...)
// do service kiểm tra để giữ message ổn định; tag validate chặn sớm định dạng.
type RequestCreateInput struct {
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Type           string                 `json:"type"`
	Recipient      string                 `json:"recipient"`
	RecipientModel string                 `json:"recipientModel"`
	Module         string                 `json:"module,omitempty" validate:"omitempty,oneof=admin client employee pm sales"`
	Priority       string                 `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	Category       string                 `json:"category,omitempty" validate:"omitempty,no_xss"`
	Project        string                 `json:"project,omitempty"`
	Client         string                 `json:"client,omitempty"`
	Amount         float64                `json:"amount,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// RequestUpdateInput dùng cho sửa request khi còn pending. Con trỏ nil nghĩa là
// không đổi field tương ứng.
type RequestUpdateInput struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Priority    *string  `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,no_xss"`
	Amount      *float64 `json:"amount,omitempty"`
}

// RequestRespondInput dùng cho phản hồi request.
type RequestRespondInput struct {
	ResponseType string `json:"responseType"`
	Message      string `json:"message,omitempty"`
}

// RequestListQuery là tập filter của danh sách request.
type RequestListQuery struct {
	Direction string `query:"direction"` // incoming | outgoing | all
	Module    string `query:"module"`
	Type      string `query:"type"`
	Status    string `query:"status"`
	Priority  string `query:"priority"`
	Search    string `query:"search"`
	Page      int64  `query:"page"`
	Limit     int64  `query:"limit"`
}

// ProjectRef là projection gọn của project khi đính kèm vào request.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RequestDetail là request đã populate các tham chiếu polymorphic cho hiển thị.
type RequestDetail struct {
	requestmodels.Request
	RequesterInfo   *identitymodels.Summary `json:"requesterInfo,omitempty"`
	RecipientInfo   *identitymodels.Summary `json:"recipientInfo,omitempty"`
	RespondedByInfo *identitymodels.Summary `json:"respondedByInfo,omitempty"`
	ProjectInfo     *ProjectRef             `json:"projectInfo,omitempty"`
}

// RequestStatistics là khối thống kê trả về từ getRequestStatistics.
type RequestStatistics struct {
	Total         int64            `json:"total"`
	Pending       int64            `json:"pending"`
	Responded     int64            `json:"responded"`
	Approved      int64            `json:"approved"`
	Rejected      int64            `json:"rejected"`
	UrgentPending int64            `json:"urgentPending"`
	ByModule      map[string]int64 `json:"byModule"`
}
