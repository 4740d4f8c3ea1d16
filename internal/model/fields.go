package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is fixed width so that string columns sort in time order.
const TimestampLayout = "2006-01-02T15:04:05.000000"

func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func Now() string {
	return Timestamp(time.Now())
}

// EncodeListField turns a category or materials value into its column form.
// Lists are stored as JSON (an empty list as NULL), strings are stored as
// given.
func EncodeListField(v any) (*string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &val, nil
	case []string:
		if len(val) == 0 {
			return nil, nil
		}
		return marshalList(val)
	case []any:
		if len(val) == 0 {
			return nil, nil
		}
		return marshalList(val)
	default:
		s := fmt.Sprint(val)
		return &s, nil
	}
}

func marshalList(v any) (*string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode list field: %w", err)
	}
	s := string(b)
	return &s, nil
}

// DecodeListField reverses EncodeListField. A value that is not valid JSON
// is returned unchanged as a string.
func DecodeListField(s *string) any {
	if s == nil {
		return nil
	}
	if *s == "" {
		return *s
	}
	var decoded any
	if err := json.Unmarshal([]byte(*s), &decoded); err != nil {
		return *s
	}
	return decoded
}

// Decode fills the decoded category and materials values.
func (p *ManualProduct) Decode() {
	p.CategoryValue = DecodeListField(p.Category)
	p.MaterialsValue = DecodeListField(p.Materials)
	if p.Images == nil {
		p.Images = []ProductImage{}
	}
}
