package request

import (
	"encoding/json"
	"fmt"

	"github.com/jonwraymond/opentok/validate"
)

// LayoutType names a composed-output arrangement.
type LayoutType string

const (
	LayoutBestFit                LayoutType = "bestFit"
	LayoutPIP                    LayoutType = "pip"
	LayoutVerticalPresentation   LayoutType = "verticalPresentation"
	LayoutHorizontalPresentation LayoutType = "horizontalPresentation"
	LayoutCustom                 LayoutType = "custom"
)

// Layout is the arrangement of streams in composed output. The stylesheet
// is set if and only if the type is LayoutCustom.
type Layout struct {
	layoutType LayoutType
	stylesheet string
}

// BestFit tiles every stream.
func BestFit() Layout { return Layout{layoutType: LayoutBestFit} }

// PIP shows one stream full size with a second inset.
func PIP() Layout { return Layout{layoutType: LayoutPIP} }

// VerticalPresentation gives the focus stream most of the frame with the
// others in a column.
func VerticalPresentation() Layout { return Layout{layoutType: LayoutVerticalPresentation} }

// HorizontalPresentation gives the focus stream most of the frame with the
// others in a row.
func HorizontalPresentation() Layout { return Layout{layoutType: LayoutHorizontalPresentation} }

// Custom arranges streams with a CSS stylesheet, which must not be empty.
func Custom(stylesheet string) (Layout, error) {
	return NewLayout(LayoutCustom, stylesheet)
}

// NewLayout validates a type and stylesheet pair.
func NewLayout(t LayoutType, stylesheet string) (Layout, error) {
	if err := validate.LayoutType(string(t),
		string(LayoutBestFit), string(LayoutPIP), string(LayoutVerticalPresentation),
		string(LayoutHorizontalPresentation), string(LayoutCustom)); err != nil {
		return Layout{}, err
	}
	if err := validate.Layout(t == LayoutCustom, stylesheet); err != nil {
		return Layout{}, err
	}
	return Layout{layoutType: t, stylesheet: stylesheet}, nil
}

// Type returns the layout type.
func (l Layout) Type() LayoutType { return l.layoutType }

// Stylesheet returns the custom stylesheet, or "".
func (l Layout) Stylesheet() string { return l.stylesheet }

// IsZero reports whether l was never constructed.
func (l Layout) IsZero() bool { return l.layoutType == "" }

func (l Layout) check() error {
	if l.IsZero() {
		return &validate.ArgumentError{Field: "layout", Message: validate.MsgUnknownLayoutType}
	}
	return nil
}

type layoutJSON struct {
	Type       LayoutType `json:"type"`
	Stylesheet string     `json:"stylesheet,omitempty"`
}

// MarshalJSON writes {"type":..} with "stylesheet" only for custom layouts.
func (l Layout) MarshalJSON() ([]byte, error) {
	return json.Marshal(layoutJSON{Type: l.layoutType, Stylesheet: l.stylesheet})
}

// UnmarshalJSON reads a layout and enforces the stylesheet rule.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var raw layoutJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewLayout(raw.Type, raw.Stylesheet)
	if err != nil {
		return fmt.Errorf("request: decode layout: %w", err)
	}
	*l = parsed
	return nil
}
