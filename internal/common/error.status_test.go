// Package common - test taxonomy lỗi và chuyển đổi lỗi MongoDB.
package common

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestConvertMongoError_NoDocumentsThanhNotFound(t *testing.T) {
	if got := ConvertMongoError(mongo.ErrNoDocuments); got != ErrNotFound {
		t.Errorf("ErrNoDocuments phải chuyển thành ErrNotFound, có %v", got)
	}
}

func TestConvertMongoError_NilTraVeNil(t *testing.T) {
	if got := ConvertMongoError(nil); got != nil {
		t.Errorf("nil phải trả về nil, có %v", got)
	}
}

func TestConvertMongoError_LoiTaxonomyDiQuaNguyenVen(t *testing.T) {
	custom := NewConflictError("This request has already been responded to")
	if got := ConvertMongoError(custom); got != custom {
		t.Errorf("lỗi đã thuộc taxonomy phải đi qua nguyên vẹn, có %v", got)
	}
	if got := ConvertMongoError(ErrNotFound); got != ErrNotFound {
		t.Errorf("ErrNotFound phải đi qua nguyên vẹn, có %v", got)
	}
}

func TestConvertMongoError_CommandErrorTheoDaiMa(t *testing.T) {
	cases := []struct {
		code int32
		want error
	}{
		{150, ErrMongoConnection},
		{250, ErrMongoAuth},
		{350, ErrMongoQuery},
		{450, ErrMongoWrite},
		{550, ErrMongoSystem},
	}
	for _, c := range cases {
		err := mongo.CommandError{Code: c.code, Message: "x"}
		if got := ConvertMongoError(err); got != c.want {
			t.Errorf("CommandError code %d: muốn %v, có %v", c.code, c.want, got)
		}
	}
}

func TestConvertMongoError_LoiLaThanhLoiDatabaseChung(t *testing.T) {
	got := ConvertMongoError(errors.New("something odd"))
	var customErr *Error
	if !errors.As(got, &customErr) {
		t.Fatalf("lỗi lạ phải được wrap thành *Error, có %T", got)
	}
	if customErr.StatusCode != StatusInternalServerError {
		t.Errorf("lỗi lạ phải là 500, có %d", customErr.StatusCode)
	}
}

func TestNewConflictError_Tra400(t *testing.T) {
	err := NewConflictError("Only pending requests can be updated")
	var customErr *Error
	if !errors.As(err, &customErr) {
		t.Fatal("NewConflictError phải trả về *Error")
	}
	// Conflict nghiệp vụ trả 400 theo thiết kế API
	if customErr.StatusCode != StatusBadRequest {
		t.Errorf("conflict nghiệp vụ phải là 400, có %d", customErr.StatusCode)
	}
	if customErr.Message != "Only pending requests can be updated" {
		t.Errorf("message sai: %q", customErr.Message)
	}
}
