// Package models - các model thuộc domain Project: Project, Milestone, Task, FinanceTransaction.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Các trạng thái của project. Guard vòng đời chỉ quản lý nhánh
// untouched → started → active; các trạng thái còn lại do luồng vận hành khác đặt.
const (
	ProjectStatusUntouched   = "untouched"
	ProjectStatusStarted     = "started"
	ProjectStatusActive      = "active"
	ProjectStatusTesting     = "testing"
	ProjectStatusOnHold      = "on-hold"
	ProjectStatusCompleted   = "completed"
	ProjectStatusCancelled   = "cancelled"
	ProjectStatusPlanning    = "planning"
	ProjectStatusMaintenance = "maintenance"
)

// AllProjectStatuses dùng để validate query filter theo trạng thái.
var AllProjectStatuses = []string{
	ProjectStatusUntouched,
	ProjectStatusStarted,
	ProjectStatusActive,
	ProjectStatusTesting,
	ProjectStatusOnHold,
	ProjectStatusCompleted,
	ProjectStatusCancelled,
	ProjectStatusPlanning,
	ProjectStatusMaintenance,
}

// Trạng thái meeting của project, chỉ có ý nghĩa trước khi project active.
const (
	MeetingStatusPending = "pending"
	MeetingStatusDone    = "done"
)

// Trạng thái một đợt thanh toán trong installment plan.
const (
	InstallmentStatusPending = "pending"
	InstallmentStatusPaid    = "paid"
)

// Installment là một đợt thanh toán trong kế hoạch trả góp của project.
type Installment struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Amount   float64            `json:"amount" bson:"amount"`
	Status   string             `json:"status" bson:"status"`
	PaidDate int64              `json:"paidDate,omitempty" bson:"paidDate,omitempty"`
	Notes    string             `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Project là bản ghi dự án. ClientName/ClientCompany là denormalized copy
// phục vụ tìm kiếm regex không phân biệt hoa thường trong getNewProjects.
type Project struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name           string               `json:"name" bson:"name"`
	Description    string               `json:"description,omitempty" bson:"description,omitempty"`
	Status         string               `json:"status" bson:"status"`
	Priority       string               `json:"priority,omitempty" bson:"priority,omitempty"`
	MeetingStatus  string               `json:"meetingStatus,omitempty" bson:"meetingStatus,omitempty"`
	ProjectManager primitive.ObjectID   `json:"projectManager" bson:"projectManager"`
	Client         primitive.ObjectID   `json:"client,omitempty" bson:"client,omitempty"`
	ClientName     string               `json:"clientName,omitempty" bson:"clientName,omitempty"`
	ClientCompany  string               `json:"clientCompany,omitempty" bson:"clientCompany,omitempty"`
	AssignedTeam   []primitive.ObjectID `json:"assignedTeam" bson:"assignedTeam,omitempty"`
	DueDate        int64                `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	EstimatedHours float64              `json:"estimatedHours,omitempty" bson:"estimatedHours,omitempty"`
	Tags           []string             `json:"tags,omitempty" bson:"tags,omitempty"`

	// Kế hoạch trả góp và các tổng tài chính dẫn xuất từ nó.
	// Các tổng được recompute best-effort sau mỗi lần duyệt installment.
	InstallmentPlan []Installment `json:"installmentPlan,omitempty" bson:"installmentPlan,omitempty"`
	TotalAmount     float64       `json:"totalAmount,omitempty" bson:"totalAmount,omitempty"`
	TotalPaid       float64       `json:"totalPaid,omitempty" bson:"totalPaid,omitempty"`
	TotalPending    float64       `json:"totalPending,omitempty" bson:"totalPending,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// Milestone là một mốc trong project.
type Milestone struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Project   primitive.ObjectID `json:"project" bson:"project"`
	Title     string             `json:"title" bson:"title"`
	Status    string             `json:"status,omitempty" bson:"status,omitempty"`
	DueDate   int64              `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// Task là một đầu việc trong một milestone, gán cho một hoặc nhiều employee.
type Task struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Project    primitive.ObjectID   `json:"project" bson:"project"`
	Milestone  primitive.ObjectID   `json:"milestone,omitempty" bson:"milestone,omitempty"`
	Title      string               `json:"title" bson:"title"`
	Status     string               `json:"status,omitempty" bson:"status,omitempty"`
	AssignedTo []primitive.ObjectID `json:"assignedTo" bson:"assignedTo,omitempty"`
	DueDate    int64                `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	CreatedAt  int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64                `json:"updatedAt" bson:"updatedAt"`
}

// FinanceTransaction ghi nhận một giao dịch tài chính của project.
// InstallmentID dùng để phát hiện ghi trùng khi duyệt lại cùng một installment.
type FinanceTransaction struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type          string             `json:"type" bson:"type"` // incoming | outgoing
	Amount        float64            `json:"amount" bson:"amount"`
	Project       primitive.ObjectID `json:"project" bson:"project"`
	InstallmentID primitive.ObjectID `json:"installmentId,omitempty" bson:"installmentId,omitempty"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}
