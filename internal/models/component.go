package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ComponentType is the tag carried by every component descriptor.
type ComponentType string

const (
	ComponentTypeForm  ComponentType = "form"
	ComponentTypeText  ComponentType = "text"
	ComponentTypeImage ComponentType = "image"
)

// ComponentTypes is the closed set of recognized component tags.
var ComponentTypes = []ComponentType{ComponentTypeForm, ComponentTypeText, ComponentTypeImage}

func (t ComponentType) Valid() bool {
	for _, known := range ComponentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Component is a single UI component descriptor. Only the "type" key is
// interpreted; every other key is an opaque payload kept verbatim.
type Component map[string]interface{}

// Type returns the component tag, or "" when it is missing or not a string.
func (c Component) Type() ComponentType {
	value, ok := c["type"].(string)
	if !ok {
		return ""
	}
	return ComponentType(value)
}

// UnmarshalJSON keeps numbers as json.Number so integers beyond 2^53 come
// back from storage exactly as they were written.
func (c *Component) UnmarshalJSON(data []byte) error {
	var obj map[string]interface{}
	if err := decodeJSON(data, &obj); err != nil {
		return err
	}
	*c = obj
	return nil
}

// ToComponents converts a decoded JSON value into components. The value must
// already have passed ValidateComponents.
func ToComponents(candidate interface{}) ([]Component, error) {
	switch items := candidate.(type) {
	case []Component:
		return items, nil
	case []map[string]interface{}:
		components := make([]Component, len(items))
		for i, item := range items {
			components[i] = Component(item)
		}
		return components, nil
	case []interface{}:
		components := make([]Component, len(items))
		for i, item := range items {
			switch obj := item.(type) {
			case map[string]interface{}:
				components[i] = Component(obj)
			case Component:
				components[i] = obj
			default:
				return nil, fmt.Errorf("component at index %d is not an object", i)
			}
		}
		return components, nil
	case nil:
		return nil, errors.New("components are missing")
	default:
		return nil, fmt.Errorf("components must be an array, got %T", candidate)
	}
}

// ErrInvalidJSON is returned by ParseComponents when data does not decode.
var ErrInvalidJSON = errors.New("invalid JSON")

// ParseComponents decodes raw JSON into components and validates them.
func ParseComponents(data []byte) ([]Component, error) {
	var candidate interface{}
	if err := decodeJSON(data, &candidate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := ValidateComponents(candidate); err != nil {
		return nil, err
	}
	return ToComponents(candidate)
}

func decodeJSON(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}
