package layer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrWrongKind is returned when an edit does not apply to a layer's kind,
// for example a font size edit on an image layer.
var ErrWrongKind = errors.New("layer: property does not apply to this layer kind")

// ErrEmptyEdit is returned for the zero Edit.
var ErrEmptyEdit = errors.New("layer: empty edit")

// Property names a settable layer field.
type Property uint8

// Settable properties.
const (
	PropX Property = iota
	PropY
	PropPosition
	PropWidth
	PropHeight
	PropSize
	PropRotation
	PropText
	PropFontSize
	PropFontFamily
	PropColor
)

var propertyNames = [...]string{
	PropX:          "x",
	PropY:          "y",
	PropPosition:   "position",
	PropWidth:      "width",
	PropHeight:     "height",
	PropSize:       "size",
	PropRotation:   "rotation",
	PropText:       "text",
	PropFontSize:   "fontSize",
	PropFontFamily: "fontFamily",
	PropColor:      "color",
}

// String returns the form-field name of the property.
func (p Property) String() string {
	if int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return fmt.Sprintf("Property(%d)", uint8(p))
}

// TextOnly reports whether the property exists only on text layers.
func (p Property) TextOnly() bool {
	switch p {
	case PropText, PropFontSize, PropFontFamily, PropColor:
		return true
	}
	return false
}

// Edit is a typed assignment of one property. Edits are built with the
// constructors in this file (X, Width, FontSize, ...) and applied with
// Apply; the set of properties is closed.
type Edit struct {
	prop  Property
	apply func(*Layer)
}

// Property returns the property the edit assigns.
func (e Edit) Property() Property { return e.prop }

// AppliesTo reports whether the edit is valid for layers of kind k.
func (e Edit) AppliesTo(k Kind) bool {
	return !e.prop.TextOnly() || k == KindText
}

// Check reports why the edit cannot be applied to a layer of kind k, or
// nil if it can.
func (e Edit) Check(k Kind) error {
	if e.apply == nil {
		return ErrEmptyEdit
	}
	if !e.AppliesTo(k) {
		return fmt.Errorf("%w: %s on %s layer", ErrWrongKind, e.prop, k)
	}
	return nil
}

// Apply assigns the property on l. Nothing changes when Check fails.
func (e Edit) Apply(l *Layer) error {
	if err := e.Check(l.kind); err != nil {
		return err
	}
	e.apply(l)
	return nil
}

// X sets the left edge.
func X(v float64) Edit {
	return Edit{PropX, func(l *Layer) { l.x = v }}
}

// Y sets the top edge.
func Y(v float64) Edit {
	return Edit{PropY, func(l *Layer) { l.y = v }}
}

// Position sets the top-left corner.
func Position(x, y float64) Edit {
	return Edit{PropPosition, func(l *Layer) { l.SetPosition(x, y) }}
}

// Width sets the box width, clamped to MinSize.
func Width(v float64) Edit {
	return Edit{PropWidth, func(l *Layer) { l.width = clampSize(v) }}
}

// Height sets the box height, clamped to MinSize.
func Height(v float64) Edit {
	return Edit{PropHeight, func(l *Layer) { l.height = clampSize(v) }}
}

// Size sets width and height, each clamped to MinSize.
func Size(w, h float64) Edit {
	return Edit{PropSize, func(l *Layer) { l.SetSize(w, h) }}
}

// Rotation sets the rotation in degrees.
func Rotation(deg float64) Edit {
	return Edit{PropRotation, func(l *Layer) { l.rotation = deg }}
}

// Text sets the content of a text layer. The string is NFC-normalized.
func Text(s string) Edit {
	s = norm.NFC.String(s)
	return Edit{PropText, func(l *Layer) { l.text = s }}
}

// FontSize sets the text size, clamped to MinFontSize.
func FontSize(v float64) Edit {
	if v < MinFontSize || v != v {
		v = MinFontSize
	}
	return Edit{PropFontSize, func(l *Layer) { l.fontSize = v }}
}

// FontFamily sets the font family name.
func FontFamily(name string) Edit {
	return Edit{PropFontFamily, func(l *Layer) { l.fontFamily = name }}
}

// Color sets the text color specification (hex or CSS name).
func Color(spec string) Edit {
	return Edit{PropColor, func(l *Layer) { l.color = spec }}
}

// ParseEdit maps a UI form field name and its raw value to a typed edit.
// Field names are case-insensitive; "font-size" and "font_size" are
// accepted for fontSize, likewise for fontFamily.
func ParseEdit(field, value string) (Edit, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(field))

	number := func(ctor func(float64) Edit) (Edit, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return Edit{}, fmt.Errorf("layer: %s: %w", field, err)
		}
		return ctor(v), nil
	}

	switch key {
	case "x":
		return number(X)
	case "y":
		return number(Y)
	case "width", "w":
		return number(Width)
	case "height", "h":
		return number(Height)
	case "rotation", "angle":
		return number(Rotation)
	case "fontsize":
		return number(FontSize)
	case "text", "content":
		return Text(value), nil
	case "fontfamily", "font":
		return FontFamily(value), nil
	case "color", "colour":
		return Color(value), nil
	}
	return Edit{}, fmt.Errorf("layer: unknown property %q", field)
}
