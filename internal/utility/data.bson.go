package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// CustomBson dùng để tạo các bản đồ truy vấn bson ($set, $push, ...) từ struct
type CustomBson struct{}

// BsonWrapper chứa các toán tử bson cơ bản ($set, $unset, $push, $addToSet).
// Gán struct dữ liệu vào trường tương ứng rồi gọi ToMap để sinh truy vấn update.
type BsonWrapper struct {
	// Set thay thế giá trị của các trường bằng giá trị cụ thể
	Set interface{} `json:"$set,omitempty" bson:"$set,omitempty"`

	// Unset xóa một trường cụ thể. Nếu trường không tồn tại, Unset không làm gì cả
	Unset interface{} `json:"$unset,omitempty" bson:"$unset,omitempty"`

	// Push thêm một giá trị vào một trường mảng
	Push interface{} `json:"$push,omitempty" bson:"$push,omitempty"`

	// AddToSet thêm một giá trị vào mảng trừ khi giá trị đã có
	AddToSet interface{} `json:"$addToSet,omitempty" bson:"$addToSet,omitempty"`
}

// ToMap chuyển đổi struct thành map[string]interface{} thông qua bson marshal/unmarshal.
// Dùng bởi base service để thêm timestamps trước khi ghi xuống MongoDB.
func ToMap(s interface{}) (map[string]interface{}, error) {
	var stringInterfaceMap map[string]interface{}
	raw, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	if err := bson.Unmarshal(raw, &stringInterfaceMap); err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return stringInterfaceMap, nil
}

// Set tạo truy vấn $set từ struct dữ liệu
func (customBson *CustomBson) Set(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Set: data}
	return ToMap(s)
}

// Push tạo truy vấn $push từ struct dữ liệu
func (customBson *CustomBson) Push(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Push: data}
	return ToMap(s)
}

// Unset tạo truy vấn $unset từ struct dữ liệu
func (customBson *CustomBson) Unset(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{Unset: data}
	return ToMap(s)
}

// AddToSet tạo truy vấn $addToSet từ struct dữ liệu
func (customBson *CustomBson) AddToSet(data interface{}) (map[string]interface{}, error) {
	s := BsonWrapper{AddToSet: data}
	return ToMap(s)
}
