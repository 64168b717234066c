// Package normalizer turns untrusted generative-model output into a canonical
// clinical note. The pipeline runs Accept, Extract and Normalize in that order;
// none of the stages perform I/O or return errors.
package normalizer

import "encoding/json"

// Kind tags the shape of a raw upstream payload.
type Kind int

const (
	KindOther Kind = iota
	KindObject
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// RawResponse is an upstream payload tagged once at the boundary.
type RawResponse struct {
	kind   Kind
	object map[string]any
	text   string
}

// Kind returns the tag assigned by Accept.
func (r RawResponse) Kind() Kind { return r.kind }

// Accept tags raw as an object, text or other. Other Go values (structs,
// typed maps) are tagged as objects when they encode to a JSON object. It
// never fails: anything else is tagged KindOther and degrades to an empty
// document later.
func Accept(raw any) RawResponse {
	switch v := raw.(type) {
	case Document:
		if v != nil {
			return RawResponse{kind: KindObject, object: v}
		}
	case map[string]any:
		if v != nil {
			return RawResponse{kind: KindObject, object: v}
		}
	case string:
		return RawResponse{kind: KindText, text: v}
	case *string:
		if v != nil {
			return RawResponse{kind: KindText, text: *v}
		}
	case json.RawMessage:
		return RawResponse{kind: KindText, text: string(v)}
	case []byte:
		return RawResponse{kind: KindText, text: string(v)}
	case nil:
	default:
		if obj, ok := asObject(v); ok {
			return RawResponse{kind: KindObject, object: obj}
		}
	}
	return RawResponse{kind: KindOther}
}

// asObject encodes v and decodes it back as a generic JSON object.
func asObject(v any) (map[string]any, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
