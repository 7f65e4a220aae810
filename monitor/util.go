// Copyright 2024-2026 The famicore authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package monitor

import (
	"fmt"
	"strconv"
	"strings"
)

// parseAddr converts a numeric string into a 16-bit value. A leading
// '$' or '0x' forces hexadecimal. Bare numbers are decimal unless the
// hexmode setting is on.
func (m *Monitor) parseAddr(s string) (uint16, error) {
	base := 10
	if m.settings.HexMode {
		base = 16
	}

	switch {
	case strings.HasPrefix(s, "$"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}

	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid value '%s'", s)
	}
	return uint16(v), nil
}

func stringToBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "0", "false", "off":
		return false, nil
	case "1", "true", "on":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool value '%s'", s)
	}
}

var hexDigits = "0123456789ABCDEF"

func addrToBuf(addr uint16, b []byte) {
	b[0] = hexDigits[(addr>>12)&0xf]
	b[1] = hexDigits[(addr>>8)&0xf]
	b[2] = hexDigits[(addr>>4)&0xf]
	b[3] = hexDigits[addr&0xf]
}

func byteToBuf(v byte, b []byte) {
	b[0] = hexDigits[(v>>4)&0xf]
	b[1] = hexDigits[v&0xf]
}

func toPrintableChar(v byte) byte {
	switch {
	case v >= 32 && v < 127:
		return v
	case v >= 160 && v < 255:
		return v - 128
	default:
		return '.'
	}
}

// indentWrap formats a long description as indented lines wrapped at 80
// columns.
func indentWrap(indent int, s string) string {
	var sb strings.Builder
	prefix := strings.Repeat(" ", indent)

	line := prefix
	for _, word := range strings.Fields(s) {
		if len(line)+len(word)+1 > 80 && line != prefix {
			sb.WriteString(line)
			sb.WriteByte('\n')
			line = prefix
		}
		if line != prefix {
			line += " "
		}
		line += word
	}
	if line != prefix {
		sb.WriteString(line)
	}
	return sb.String()
}
