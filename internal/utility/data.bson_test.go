package utility

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// docAsMap đưa document con (bson.D sau ToMap) về map để so sánh.
func docAsMap(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	switch doc := v.(type) {
	case map[string]interface{}:
		return doc
	case bson.M:
		return map[string]interface{}(doc)
	case bson.D:
		m := make(map[string]interface{}, len(doc))
		for _, e := range doc {
			m[e.Key] = e.Value
		}
		return m
	}
	t.Fatalf("document con phải là map hoặc bson.D, got %T", v)
	return nil
}

type totalsDoc struct {
	TotalAmount float64 `bson:"totalAmount"`
	TotalPaid   float64 `bson:"totalPaid"`
}

func TestCustomBsonSet(t *testing.T) {
	update, err := new(CustomBson).Set(totalsDoc{TotalAmount: 300, TotalPaid: 100})
	if err != nil {
		t.Fatalf("Set lỗi: %v", err)
	}

	if len(update) != 1 {
		t.Errorf("Set chỉ được sinh đúng một toán tử: %+v", update)
	}
	set := docAsMap(t, update["$set"])
	if set["totalAmount"] != float64(300) || set["totalPaid"] != float64(100) {
		t.Errorf("$set sai nội dung: %+v", set)
	}
}

func TestCustomBsonCacToanTuKhac(t *testing.T) {
	cb := new(CustomBson)
	cases := []struct {
		name string
		fn   func(interface{}) (map[string]interface{}, error)
		key  string
	}{
		{"Push", cb.Push, "$push"},
		{"Unset", cb.Unset, "$unset"},
		{"AddToSet", cb.AddToSet, "$addToSet"},
	}
	data := map[string]interface{}{"tags": "golang"}
	for _, c := range cases {
		update, err := c.fn(data)
		if err != nil {
			t.Fatalf("%s lỗi: %v", c.name, err)
		}
		if len(update) != 1 {
			t.Errorf("%s chỉ được sinh đúng một toán tử, got %+v", c.name, update)
		}
		inner := docAsMap(t, update[c.key])
		if inner["tags"] != "golang" {
			t.Errorf("%s sai nội dung: %+v", c.name, inner)
		}
	}
}
