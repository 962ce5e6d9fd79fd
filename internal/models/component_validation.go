package models

import "fmt"

// ComponentError reports the first component that failed validation.
// Index is -1 when the candidate itself is not a non-empty array.
type ComponentError struct {
	Index int
	Type  interface{}
}

func (e *ComponentError) Error() string {
	if e.Index < 0 {
		return "schema must be a non-empty array"
	}
	if e.Type == nil {
		return fmt.Sprintf("Invalid component type at index %d: missing", e.Index)
	}
	return fmt.Sprintf("Invalid component type at index %d: %v", e.Index, e.Type)
}

// ValidateComponents checks that candidate is a non-empty array whose elements
// are objects tagged with a recognized type. Validation is shallow and stops
// at the first offending element.
func ValidateComponents(candidate interface{}) error {
	var items []interface{}
	switch v := candidate.(type) {
	case []interface{}:
		items = v
	case []Component:
		items = make([]interface{}, len(v))
		for i := range v {
			items[i] = map[string]interface{}(v[i])
		}
	case []map[string]interface{}:
		items = make([]interface{}, len(v))
		for i := range v {
			items[i] = v[i]
		}
	default:
		return &ComponentError{Index: -1}
	}

	if len(items) == 0 {
		return &ComponentError{Index: -1}
	}

	for i, item := range items {
		var obj map[string]interface{}
		switch o := item.(type) {
		case map[string]interface{}:
			obj = o
		case Component:
			obj = o
		default:
			return &ComponentError{Index: i}
		}

		raw, ok := obj["type"]
		if !ok || raw == nil {
			return &ComponentError{Index: i}
		}
		tag, ok := raw.(string)
		if !ok || !ComponentType(tag).Valid() {
			return &ComponentError{Index: i, Type: raw}
		}
	}

	return nil
}
