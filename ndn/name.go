/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"strconv"
	"strings"

	"github.com/optoflood/tracecheck/ndn/tlv"
)

func isUnreserved(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

func escapeComponent(value []byte) string {
	var out strings.Builder
	for _, c := range value {
		if isUnreserved(c) {
			out.WriteByte(c)
		} else {
			out.WriteByte('%')
			const hex = "0123456789ABCDEF"
			out.WriteByte(hex[c>>4])
			out.WriteByte(hex[c&0x0f])
		}
	}
	return out.String()
}

// RenderName renders the value of a Name TLV in URI form. The result supports
// exact-equality and exact-prefix comparison only; component structure beyond
// that is not preserved. Typed (non-generic) components are rendered with a
// numeric type prefix so that they never collide with generic ones.
func RenderName(value []byte) (string, error) {
	var out strings.Builder
	offset := 0
	for offset < len(value) {
		component, err := tlv.ReadElement(value, offset)
		if err != nil {
			return "", err
		}
		out.WriteByte('/')
		if component.Type != tlv.GenericNameComponent {
			out.WriteString(strconv.FormatUint(component.Type, 10))
			out.WriteByte('=')
		}
		out.WriteString(escapeComponent(component.Value))
		offset = component.End
	}
	if out.Len() == 0 {
		return "/", nil
	}
	return out.String(), nil
}

// NameHasPrefix reports whether name falls under prefix, both in the form
// produced by RenderName.
func NameHasPrefix(name string, prefix string) bool {
	if prefix == "/" || name == prefix {
		return true
	}
	return strings.HasPrefix(name, prefix+"/")
}
