package registry

import (
	"errors"
	"testing"
)

func TestRegistry_RegisterVaGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("a", 1)
	if err != nil || !isNew {
		t.Fatalf("Register lần đầu phải isNew=true, err=nil; có isNew=%v err=%v", isNew, err)
	}

	isNew, err = r.Register("a", 2)
	if err != nil || isNew {
		t.Fatalf("Register ghi đè phải isNew=false; có isNew=%v err=%v", isNew, err)
	}

	v, exists := r.Get("a")
	if !exists || v != 2 {
		t.Errorf("Get phải trả về giá trị mới nhất, có v=%d exists=%v", v, exists)
	}

	if _, exists := r.Get("missing"); exists {
		t.Error("Get key không tồn tại phải exists=false")
	}
}

func TestRegistry_RegisterTenRongLoi(t *testing.T) {
	r := NewRegistry[string]()
	if _, err := r.Register("", "x"); err == nil {
		t.Error("Register với tên rỗng phải trả lỗi")
	}
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry[string]()
	calls := 0
	creator := func() (string, error) {
		calls++
		return "made", nil
	}

	v, err := r.GetOrCreate("k", creator)
	if err != nil || v != "made" {
		t.Fatalf("GetOrCreate lần đầu: v=%q err=%v", v, err)
	}
	v, err = r.GetOrCreate("k", creator)
	if err != nil || v != "made" {
		t.Fatalf("GetOrCreate lần hai: v=%q err=%v", v, err)
	}
	if calls != 1 {
		t.Errorf("creator chỉ được gọi một lần, đã gọi %d lần", calls)
	}

	_, err = r.GetOrCreate("bad", func() (string, error) {
		return "", errors.New("boom")
	})
	if err == nil {
		t.Error("GetOrCreate phải lan lỗi của creator")
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry[int]()
	_, _ = r.Register("x", 1)

	cleaned := false
	deleted, err := r.Clear("x", func(int) error {
		cleaned = true
		return nil
	})
	if err != nil || !deleted || !cleaned {
		t.Errorf("Clear phải gọi cleanup và xóa item: deleted=%v cleaned=%v err=%v", deleted, cleaned, err)
	}

	deleted, err = r.Clear("x", nil)
	if err != nil || deleted {
		t.Errorf("Clear key đã xóa phải deleted=false: deleted=%v err=%v", deleted, err)
	}
}
