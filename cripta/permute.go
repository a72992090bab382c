package cripta

import (
	"fmt"
	"strings"
)

// PermuteBits reorders the low width bits of value according to rule.
// Positions are 1-indexed from the most significant bit, the way the DES
// tables are printed, so rule[i] = 1 selects the leftmost input bit.
func PermuteBits(value uint64, width int, rule []int) (uint64, error) {
	if width <= 0 || width > 64 {
		return 0, fmt.Errorf("input width %d out of range", width)
	}
	if len(rule) == 0 || len(rule) > 64 {
		return 0, fmt.Errorf("rule length %d out of range", len(rule))
	}
	if width < 64 && value>>uint(width) != 0 {
		return 0, fmt.Errorf("value %#x does not fit in %d bits", value, width)
	}

	var result uint64
	for i, pos := range rule {
		if pos < 1 || pos > width {
			return 0, fmt.Errorf("position %d at index %d out of bounds", pos, i)
		}
		bit := (value >> uint(width-pos)) & 1
		result = result<<1 | bit
	}

	return result, nil
}

// FormatBits renders the low width bits of value MSB first, grouped by
// group bits (no grouping when group <= 0).
func FormatBits(value uint64, width int, group int) string {
	var sb strings.Builder
	for i := width - 1; i >= 0; i-- {
		if (value>>uint(i))&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		if group > 0 && i > 0 && (width-i)%group == 0 {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// ParseBits is the inverse of FormatBits. Spaces and underscores are ignored.
func ParseBits(s string) (uint64, int, error) {
	var value uint64
	width := 0
	for i, r := range s {
		switch r {
		case ' ', '_':
			continue
		case '0', '1':
		default:
			return 0, 0, fmt.Errorf("%w: invalid bit %q at offset %d", ErrFormat, r, i)
		}
		if width == 64 {
			return 0, 0, fmt.Errorf("%w: bit string longer than 64 bits", ErrFormat)
		}
		value = value<<1 | uint64(r-'0')
		width++
	}
	return value, width, nil
}
