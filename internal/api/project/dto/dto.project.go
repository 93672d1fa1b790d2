// Package projectdto chứa input/output DTO cho lifecycle dự án phía PM.
package projectdto

import (
	identitymodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/identity/models"
	projectmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/project/models"
)

// NewProjectListQuery là query string của GET /api/pm/new-projects.
type NewProjectListQuery struct {
	Status   string `query:"status"`
	Priority string `query:"priority"`
	Search   string `query:"search"`
	Page     int64  `query:"page"`
	Limit    int64  `query:"limit"`
}

// MeetingStatusInput là body của PATCH /api/pm/projects/:id/meeting-status.
type MeetingStatusInput struct {
	MeetingStatus string `json:"meetingStatus" validate:"required"`
}

// ActivateProjectInput là body của PATCH /api/pm/projects/:id/activate.
// DueDate và AssignedTeam bắt buộc; EstimatedHours và Tags tùy chọn.
// Mỗi thành viên team phải tồn tại trong collection employees.
type ActivateProjectInput struct {
	DueDate        int64    `json:"dueDate"`
	AssignedTeam   []string `json:"assignedTeam" validate:"omitempty,dive,exists=employees"`
	EstimatedHours float64  `json:"estimatedHours,omitempty"`
	Tags           []string `json:"tags,omitempty" validate:"omitempty,dive,no_xss"`
}

// ProjectDetail là project kèm các tham chiếu đã populate cho hiển thị.
type ProjectDetail struct {
	projectmodels.Project `bson:",inline"`

	ProjectManagerInfo *identitymodels.Summary  `json:"projectManagerInfo,omitempty" bson:"-"`
	ClientInfo         *identitymodels.Summary  `json:"clientInfo,omitempty" bson:"-"`
	TeamInfo           []identitymodels.Summary `json:"teamInfo,omitempty" bson:"-"`
}
