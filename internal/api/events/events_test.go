package events

import (
	"context"
	"testing"
	"time"
)

func TestEmitDataChanged_GoiHandlerDaDangKy(t *testing.T) {
	received := make(chan DataChangeEvent, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		received <- e
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "requests",
		Operation:      OpUpdate,
	})

	select {
	case e := <-received:
		if e.CollectionName != "requests" || e.Operation != OpUpdate {
			t.Errorf("handler nhận sai event: %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler đã đăng ký không được gọi sau khi emit")
	}
}

func TestEmitDataChanged_PanicMotHandlerKhongChanHandlerKhac(t *testing.T) {
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		panic("handler hỏng")
	})
	received := make(chan struct{}, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		received <- struct{}{}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "projects",
		Operation:      OpInsert,
	})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("panic của một handler không được chặn handler còn lại")
	}
}
