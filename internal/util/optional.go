package util

import "encoding/json"

// Optional distinguishes the three states a JSON field can be in on a
// partial update: absent (keep the stored value), explicit null (clear it),
// or present (overwrite with Value). encoding/json only calls UnmarshalJSON
// for keys that appear in the body, so Set stays false when a field is
// omitted.
type Optional[T any] struct {
	Set   bool // key appeared in the JSON body
	Valid bool // value was non-null
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
