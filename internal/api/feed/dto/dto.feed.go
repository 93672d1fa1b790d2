// Package feeddto chứa các DTO của feed thông báo đọc-lúc-gọi.
package feeddto

// EntityRef là payload hiển thị gọn của một entity tham chiếu trong feed.
type EntityRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

// FeedItem là một dòng trong feed thông báo. Feed được dựng lại mỗi lần gọi
// từ các collection nguồn; Read luôn là false vì trạng thái đã-đọc chưa được lưu.
type FeedItem struct {
	ID        string                 `json:"id"`
	Kind      string                 `json:"kind"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Direction string                 `json:"direction,omitempty"`
	Status    string                 `json:"status,omitempty"`
	Priority  string                 `json:"priority,omitempty"`
	Read      bool                   `json:"read"`
	Project   *EntityRef             `json:"project,omitempty"`
	Milestone *EntityRef             `json:"milestone,omitempty"`
	Task      *EntityRef             `json:"task,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt int64                  `json:"createdAt"`
	UpdatedAt int64                  `json:"updatedAt,omitempty"`
}

// Các kind của một dòng feed.
const (
	KindRequest        = "request"
	KindActivity       = "activity"
	KindTaskAssignment = "task_assignment"
)

// Hướng của một request so với người xem.
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
	DirectionOther    = "other"
)
