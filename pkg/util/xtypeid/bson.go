package xtypeid

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/x/bsonx/bsoncore"
)

var (
	_ bson.ValueMarshaler   = TypeID{}
	_ bson.ValueUnmarshaler = (*TypeID)(nil)
)

// MarshalBSONValue 实现 [bson.ValueMarshaler]，以 BSON string 存储规范字符串。
func (t TypeID) MarshalBSONValue() (byte, []byte, error) {
	return byte(bson.TypeString), bsoncore.AppendString(nil, t.String()), nil
}

// UnmarshalBSONValue 实现 [bson.ValueUnmarshaler]。
// 支持 BSON string；null/undefined 设置为零值。
// 对 nil 接收者返回 [ErrNilReceiver]。
func (t *TypeID) UnmarshalBSONValue(typ byte, data []byte) error {
	if t == nil {
		return ErrNilReceiver
	}
	switch bson.Type(typ) {
	case bson.TypeNull, bson.TypeUndefined:
		*t = TypeID{}
		return nil
	case bson.TypeString:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("%w: malformed bson string", ErrInvalidValue)
		}
		return t.scanString(s)
	default:
		return fmt.Errorf("%w: unsupported bson type %s", ErrInvalidValue, bson.Type(typ))
	}
}
