package notifier

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/devxankit/CRM-SaaS-sub000/internal/api/events"
)

// fakeClient đăng ký một client giả (không có kết nối websocket thật) vào hub.
func fakeClient(h *Hub, role, id string) *client {
	c := &client{send: make(chan []byte, 8)}
	h.register(actorKey(role, id), c)
	return c
}

func waitPayload(t *testing.T, c *client) Notification {
	t.Helper()
	select {
	case data := <-c.send:
		var n Notification
		if err := json.Unmarshal(data, &n); err != nil {
			t.Fatalf("payload không phải JSON hợp lệ: %v", err)
		}
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("client không nhận được payload")
		return Notification{}
	}
}

func TestNotifyUser_ChiDenDungActor(t *testing.T) {
	h := NewHub()
	target := fakeClient(h, "Employee", "a1")
	other := fakeClient(h, "Client", "b2")

	h.NotifyUser("Employee", "a1", Notification{Type: "project_activated", Message: "hello"})

	n := waitPayload(t, target)
	if n.Type != "project_activated" || n.Message != "hello" {
		t.Errorf("payload sai: %+v", n)
	}
	if n.Timestamp == 0 {
		t.Error("timestamp phải được điền khi gửi")
	}
	select {
	case <-other.send:
		t.Error("actor khác không được nhận notification cá nhân")
	default:
	}
}

func TestBindDataChanges_BroadcastEventThayDoiDuLieu(t *testing.T) {
	h := NewHub()
	c := fakeClient(h, "Admin", "x1")
	BindDataChanges(h)

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "requests",
		Operation:      events.OpUpdate,
	})

	n := waitPayload(t, c)
	if n.Type != "data_changed" {
		t.Errorf("type phải là data_changed, got %q", n.Type)
	}
	if n.Metadata["collection"] != "requests" || n.Metadata["operation"] != events.OpUpdate {
		t.Errorf("metadata phải mang collection và operation: %+v", n.Metadata)
	}
}
