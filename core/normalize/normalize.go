// Package normalize converts the shapes returned by search endpoints into a single
// ordered record list. The API answers either with a bare array or with an object
// wrapping the array in "data"; anything else degrades to no results.
package normalize

import (
	"log/slog"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Value returns the records carried by payload. It never fails.
func Value(payload *structpb.Value) []*structpb.Value {
	switch k := payload.GetKind().(type) {
	case *structpb.Value_ListValue:
		return records(k.ListValue)
	case *structpb.Value_StructValue:
		data, ok := k.StructValue.GetFields()["data"]
		if !ok {
			return []*structpb.Value{}
		}
		if list := data.GetListValue(); list != nil {
			return records(list)
		}
	}
	return []*structpb.Value{}
}

// JSON decodes raw and normalizes it. Malformed input yields an empty list.
func JSON(raw []byte) []*structpb.Value {
	if len(raw) == 0 {
		return []*structpb.Value{}
	}
	v := &structpb.Value{}
	if err := protojson.Unmarshal(raw, v); err != nil {
		slog.Debug("Discarding malformed search payload", "error", err)
		return []*structpb.Value{}
	}
	return Value(v)
}

func records(list *structpb.ListValue) []*structpb.Value {
	values := list.GetValues()
	if values == nil {
		return []*structpb.Value{}
	}
	return values
}
