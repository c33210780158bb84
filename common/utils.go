package common

import (
	"fmt"
	"strconv"
	"strings"
	"unsafe"
)

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// ParseHexColor converts a "#RRGGBB" or "#RRGGBBAA" string into normalized RGBA components.
// Alpha defaults to 1 when omitted.
//
// Parameters:
//   - hex: the color string, with or without the leading '#'
//
// Returns:
//   - [4]float32: RGBA components in [0, 1]
//   - error: error if the string is not a valid hex color
func ParseHexColor(hex string) ([4]float32, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 && len(s) != 8 {
		return [4]float32{}, fmt.Errorf("invalid hex color %q: want 6 or 8 digits", hex)
	}
	if len(s) == 6 {
		s += "ff"
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return [4]float32{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	return [4]float32{
		float32((v>>24)&0xff) / 255,
		float32((v>>16)&0xff) / 255,
		float32((v>>8)&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}
