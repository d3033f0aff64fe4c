// Package itf8 implements the ITF-8 variable-length integer form used by
// encoding parameter blocks.
//
// A 32-bit value occupies one to five bytes. The count of leading one bits
// in the first byte gives the number of continuation bytes; the remaining
// bits of the first byte are the high bits of the value. The five-byte form
// carries the low four bits of the value in the low nibble of the final
// byte, so 32-bit round trips are exact for any value, negative included.
package itf8

// Len returns the encoded size of v in bytes.
func Len(v int32) int {
	u := uint32(v)
	switch {
	case u>>7 == 0:
		return 1
	case u>>14 == 0:
		return 2
	case u>>21 == 0:
		return 3
	case u>>28 == 0:
		return 4
	default:
		return 5
	}
}

// Append appends the ITF-8 form of v to dst and returns the extended slice.
func Append(dst []byte, v int32) []byte {
	u := uint32(v)
	switch {
	case u>>7 == 0:
		return append(dst, byte(u))
	case u>>14 == 0:
		return append(dst, byte(u>>8)|0x80, byte(u))
	case u>>21 == 0:
		return append(dst, byte(u>>16)|0xC0, byte(u>>8), byte(u))
	case u>>28 == 0:
		return append(dst, byte(u>>24)|0xE0, byte(u>>16), byte(u>>8), byte(u))
	default:
		return append(dst, byte(u>>28)|0xF0, byte(u>>20), byte(u>>12), byte(u>>4), byte(u))
	}
}

// Decode reads one ITF-8 value from the head of src. It returns the value
// and the number of bytes consumed; n == 0 means src ends inside the value.
func Decode(src []byte) (v int32, n int) {
	if len(src) == 0 {
		return 0, 0
	}

	b1 := uint32(src[0])
	switch {
	case b1&0x80 == 0:
		return int32(b1), 1
	case b1&0x40 == 0:
		if len(src) < 2 {
			return 0, 0
		}

		return int32((b1&0x7F)<<8 | uint32(src[1])), 2
	case b1&0x20 == 0:
		if len(src) < 3 {
			return 0, 0
		}

		return int32((b1&0x3F)<<16 | uint32(src[1])<<8 | uint32(src[2])), 3
	case b1&0x10 == 0:
		if len(src) < 4 {
			return 0, 0
		}

		return int32((b1&0x1F)<<24 | uint32(src[1])<<16 | uint32(src[2])<<8 | uint32(src[3])), 4
	default:
		if len(src) < 5 {
			return 0, 0
		}
		u := (b1&0x0F)<<28 |
			uint32(src[1])<<20 |
			uint32(src[2])<<12 |
			uint32(src[3])<<4 |
			uint32(src[4])&0x0F

		return int32(u), 5
	}
}
