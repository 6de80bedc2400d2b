// internal/domain/components.go
package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// ComponentType is the closed enumeration of page builder block kinds.
type ComponentType string

const (
	ComponentText    ComponentType = "text"
	ComponentImage   ComponentType = "image"
	ComponentButton  ComponentType = "button"
	ComponentHeading ComponentType = "heading"
	ComponentSpacer  ComponentType = "spacer"
	ComponentColumns ComponentType = "columns"
)

var (
	ErrUnknownComponentType = errors.New("unknown component type")
	ErrInvalidComponentData = errors.New("component data does not match component type")
)

var (
	validate = validator.New()

	// contentPolicy allows basic user-generated markup inside text blocks;
	// labelPolicy strips all markup from plain-text fields.
	contentPolicy = bluemonday.UGCPolicy()
	labelPolicy   = bluemonday.StrictPolicy()
)

// IsValidComponentType reports whether t names a known component kind.
func IsValidComponentType(t ComponentType) bool {
	switch t {
	case ComponentText, ComponentImage, ComponentButton, ComponentHeading, ComponentSpacer, ComponentColumns:
		return true
	}
	return false
}

// TextData is the payload for a "text" component.
type TextData struct {
	Content   string `json:"content" validate:"required"`
	FontSize  string `json:"fontSize" validate:"required,oneof=sm base lg xl 2xl"`
	TextAlign string `json:"textAlign" validate:"required,oneof=left center right"`
	TextColor string `json:"textColor" validate:"required"`
}

// ImageData is the payload for an "image" component.
type ImageData struct {
	Src       string `json:"src" validate:"required"`
	Alt       string `json:"alt" validate:"required"`
	Width     int    `json:"width" validate:"required,gt=0"`
	Height    int    `json:"height" validate:"required,gt=0"`
	ObjectFit string `json:"objectFit" validate:"required,oneof=cover contain fill"`
}

// ButtonData is the payload for a "button" component.
type ButtonData struct {
	Text    string `json:"text" validate:"required"`
	Href    string `json:"href" validate:"required"`
	Variant string `json:"variant" validate:"required,oneof=primary secondary outline"`
	Size    string `json:"size" validate:"required,oneof=sm md lg"`
}

// HeadingData is the payload for a "heading" component.
type HeadingData struct {
	Text      string `json:"text" validate:"required"`
	Level     int    `json:"level" validate:"required,min=1,max=6"`
	TextAlign string `json:"textAlign" validate:"required,oneof=left center right"`
}

// SpacerData is the payload for a "spacer" component. Height is in pixels.
type SpacerData struct {
	Height int `json:"height" validate:"required,gt=0"`
}

// ChildComponent is a nested block inside a columns layout. Children carry
// their own type tag so each payload can be validated against its schema.
type ChildComponent struct {
	ComponentType ComponentType   `json:"component_type"`
	ComponentData json.RawMessage `json:"component_data"`
}

// ColumnsData is the payload for a "columns" layout component.
type ColumnsData struct {
	Columns  int              `json:"columns" validate:"required,oneof=2 3 4"`
	Gap      string           `json:"gap" validate:"required,oneof=sm md lg"`
	Children []ChildComponent `json:"children"`
}

// ValidateComponentData checks that raw structurally matches the payload
// schema implied by componentType and returns the payload with user-supplied
// text fields sanitized. A tag/payload mismatch is rejected, never stored.
func ValidateComponentData(componentType ComponentType, raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty payload for type '%s'", ErrInvalidComponentData, componentType)
	}

	switch componentType {
	case ComponentText:
		var data TextData
		if err := decodeStrict(raw, &data); err != nil {
			return nil, err
		}
		if err := validate.Struct(data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidComponentData, err)
		}
		data.Content = contentPolicy.Sanitize(data.Content)
		data.TextColor = labelPolicy.Sanitize(data.TextColor)
		return json.Marshal(data)

	case ComponentImage:
		var data ImageData
		if err := decodeStrict(raw, &data); err != nil {
			return nil, err
		}
		if err := validate.Struct(data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidComponentData, err)
		}
		data.Alt = labelPolicy.Sanitize(data.Alt)
		return json.Marshal(data)

	case ComponentButton:
		var data ButtonData
		if err := decodeStrict(raw, &data); err != nil {
			return nil, err
		}
		if err := validate.Struct(data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidComponentData, err)
		}
		data.Text = labelPolicy.Sanitize(data.Text)
		return json.Marshal(data)

	case ComponentHeading:
		var data HeadingData
		if err := decodeStrict(raw, &data); err != nil {
			return nil, err
		}
		if err := validate.Struct(data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidComponentData, err)
		}
		data.Text = labelPolicy.Sanitize(data.Text)
		return json.Marshal(data)

	case ComponentSpacer:
		var data SpacerData
		if err := decodeStrict(raw, &data); err != nil {
			return nil, err
		}
		if err := validate.Struct(data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidComponentData, err)
		}
		return json.Marshal(data)

	case ComponentColumns:
		var data ColumnsData
		if err := decodeStrict(raw, &data); err != nil {
			return nil, err
		}
		if err := validate.Struct(data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidComponentData, err)
		}
		// Validate nested children recursively against their own tags.
		for i, child := range data.Children {
			if !IsValidComponentType(child.ComponentType) {
				return nil, fmt.Errorf("%w: '%s' (child %d)", ErrUnknownComponentType, child.ComponentType, i)
			}
			sanitized, err := ValidateComponentData(child.ComponentType, child.ComponentData)
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i, err)
			}
			data.Children[i].ComponentData = sanitized
		}
		return json.Marshal(data)

	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownComponentType, componentType)
	}
}

// decodeStrict unmarshals raw into dst, rejecting unknown fields so a payload
// of the wrong shape cannot slip through under a mismatched tag.
func decodeStrict(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidComponentData, err)
	}
	return nil
}
