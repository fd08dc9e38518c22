package report

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Blob is attachment content. In YAML printable UTF-8 text is written as a
// literal block, or double-quoted when a literal block would not read back
// unchanged, and anything else as !!binary. JSON and CBOR use their native
// byte encodings.
type Blob []byte

// MarshalYAML implements yaml.Marshaler
func (b Blob) MarshalYAML() (interface{}, error) {
	if !isText(b) {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!binary", Value: base64.StdEncoding.EncodeToString(b)}, nil
	}
	style := yaml.LiteralStyle
	if !literalSafe(string(b)) {
		style = yaml.DoubleQuotedStyle
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: style, Value: string(b)}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (b *Blob) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: attachment data must be a scalar", node.Line)
	}
	if node.ShortTag() == "!!binary" {
		data, err := base64.StdEncoding.DecodeString(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*b = data
		return nil
	}
	*b = Blob(node.Value)
	return nil
}

// literalSafe reports whether text survives a literal block unchanged. A
// leading blank or line break is taken as indentation or dropped, and a text
// of line breaks only reads back empty.
func literalSafe(text string) bool {
	if strings.Trim(text, "\n") == "" {
		return false
	}
	switch text[0] {
	case ' ', '\t', '\n':
		return false
	}
	return true
}

func isText(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if r != '\n' && r != '\t' && !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
