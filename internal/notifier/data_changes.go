package notifier

import (
	"context"
	"fmt"

	"github.com/devxankit/CRM-SaaS-sub000/internal/api/events"
)

// BindDataChanges đăng ký hub vào luồng event thay đổi dữ liệu của tầng CRUD.
// Payload chỉ mang tên collection và loại thao tác, không mang document,
// để kênh broadcast không lộ nội dung bản ghi cho client khác vai trò.
// Gọi một lần từ main trước khi hub bắt đầu serve.
func BindDataChanges(h *Hub) {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		h.Broadcast(Notification{
			Type:    "data_changed",
			Title:   e.CollectionName,
			Message: fmt.Sprintf("%s %s", e.CollectionName, e.Operation),
			Metadata: map[string]interface{}{
				"collection": e.CollectionName,
				"operation":  e.Operation,
			},
		})
	})
}
