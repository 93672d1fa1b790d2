// Package models - test ánh xạ responseType sang trạng thái và ngữ nghĩa
// khớp cặp (id, roleModel) của quan hệ polymorphic.
package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStatusForResponseType(t *testing.T) {
	cases := []struct {
		responseType string
		want         string
	}{
		{ResponseApprove, StatusApproved},
		{ResponseReject, StatusRejected},
		{ResponseRequestChanges, StatusResponded},
		{"unknown", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := StatusForResponseType(c.responseType); got != c.want {
			t.Errorf("StatusForResponseType(%q) = %q, muốn %q", c.responseType, got, c.want)
		}
	}
}

func TestIsRecipient_PhaiKhopCaIdVaRoleModel(t *testing.T) {
	id := primitive.NewObjectID()
	req := Request{Recipient: id, RecipientModel: "Admin"}

	if !req.IsRecipient(id, "Admin") {
		t.Error("IsRecipient phải true khi khớp cả id và roleModel")
	}
	if req.IsRecipient(id, "Client") {
		t.Error("IsRecipient phải false khi id khớp nhưng roleModel khác (cùng id ở collection khác là người khác)")
	}
	if req.IsRecipient(primitive.NewObjectID(), "Admin") {
		t.Error("IsRecipient phải false khi roleModel khớp nhưng id khác")
	}
}

func TestIsRequestedBy_PhaiKhopCaIdVaRoleModel(t *testing.T) {
	id := primitive.NewObjectID()
	req := Request{RequestedBy: id, RequestedByModel: "Sales"}

	if !req.IsRequestedBy(id, "Sales") {
		t.Error("IsRequestedBy phải true khi khớp cả id và roleModel")
	}
	if req.IsRequestedBy(id, "Employee") {
		t.Error("IsRequestedBy phải false khi roleModel khác")
	}
}
