// Package models - model Activity: bản ghi sự kiện append-only của domain.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Loại thực thể mà một activity gắn vào.
const (
	EntityTypeProject   = "project"
	EntityTypeMilestone = "milestone"
	EntityTypeTask      = "task"
)

// Các loại sự kiện domain được ghi vào activity log.
const (
	ActivityCreated              = "created"
	ActivityStatusChanged        = "status_changed"
	ActivityMeetingStatusUpdated = "meeting_status_updated"
	ActivityProjectStarted       = "project_started"
	ActivityProjectActivated     = "project_activated"
	ActivityTaskAssigned         = "task_assigned"
)

// MessageMaxLength giới hạn độ dài message của một activity.
const MessageMaxLength = 500

// Activity là một sự kiện domain. Được tạo một lần, không bao giờ sửa hay xóa;
// feed thông báo đọc lại theo thứ tự thời gian tạo.
type Activity struct {
	ID           primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	EntityType   string                 `json:"entityType" bson:"entityType"`
	EntityID     primitive.ObjectID     `json:"entityId" bson:"entityId"`
	ActivityType string                 `json:"activityType" bson:"activityType"`
	User         primitive.ObjectID     `json:"user" bson:"user"`
	UserModel    string                 `json:"userModel" bson:"userModel"`
	Message      string                 `json:"message" bson:"message"`
	Metadata     map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt    int64                  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64                  `json:"updatedAt" bson:"updatedAt"`
}
