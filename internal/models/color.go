package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// maxColorLength is the length in characters of a full "#RRGGBB" value.
const maxColorLength = 7

// Color is a hex color value. The empty string means unstyled and is
// persisted as JSON null.
type Color string

// IsSet reports whether the color has a value.
func (c Color) IsSet() bool {
	return c != ""
}

// String returns the raw value.
func (c Color) String() string {
	return string(c)
}

// Display returns the color expanded for rendering.
func (c Color) Display() string {
	return ExpandColor(string(c))
}

// MarshalJSON encodes an unset color as null.
func (c Color) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON decodes null as an unset color.
func (c *Color) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = Color(s)
	return nil
}

// MarshalYAML encodes an unset color as null.
func (c Color) MarshalYAML() (interface{}, error) {
	if c == "" {
		return nil, nil
	}
	return string(c), nil
}

// NormalizeColor turns user input into a stored color value: trimmed,
// a single leading '#', at most seven characters. Blank input clears the color.
func NormalizeColor(input string) Color {
	value := strings.TrimSpace(input)
	value = strings.TrimLeft(value, "#")
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	runes := []rune("#" + value)
	if len(runes) > maxColorLength {
		runes = runes[:maxColorLength]
	}
	return Color(runes)
}

// ExpandColor expands "#RGB" shorthand to "#RRGGBB". Other values are
// returned unchanged.
func ExpandColor(value string) string {
	if len(value) != 4 || value[0] != '#' {
		return value
	}
	var b strings.Builder
	b.Grow(maxColorLength)
	b.WriteByte('#')
	for i := 1; i < 4; i++ {
		b.WriteByte(value[i])
		b.WriteByte(value[i])
	}
	return b.String()
}
