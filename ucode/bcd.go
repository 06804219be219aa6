package ucode

const (
	minYear = 2007
	maxYear = 2020
)

// decodeBCD decodes the lowest digits
// nibbles of value as packed BCD, the
// lowest nibble holding the ones digit.
//
// The second return is false if any of
// the nibbles is not a decimal digit.
func decodeBCD(value uint32, digits int) (int, bool) {
	var (
		decoded int
		weight  = 1
	)

	for i := 0; i < digits; i++ {
		nibble := value & 0xf
		if nibble > 9 {
			return 0, false
		}

		decoded += int(nibble) * weight
		weight *= 10
		value >>= 4
	}

	return decoded, true
}

// encodeBCD is the inverse of decodeBCD
// for values that fit in digits digits.
func encodeBCD(value, digits int) uint32 {
	var encoded uint32

	for i := 0; i < digits; i++ {
		encoded |= uint32(value%10) << (4 * i)
		value /= 10
	}

	return encoded
}

func decodeInRange(value uint32, digits, lower, upper int) (int, bool) {
	decoded, ok := decodeBCD(value, digits)
	if !ok || decoded < lower || decoded > upper {
		return 0, false
	}

	return decoded, true
}

// DecodeYear decodes a four digit BCD year,
// only years from 2007 to 2020 are accepted.
func DecodeYear(year uint16) (int, bool) {
	return decodeInRange(uint32(year), 4, minYear, maxYear)
}

// DecodeMonth decodes a two digit BCD month.
func DecodeMonth(month uint8) (int, bool) {
	return decodeInRange(uint32(month), 2, 1, 12)
}

// DecodeDay decodes a two digit BCD day of month.
func DecodeDay(day uint8) (int, bool) {
	return decodeInRange(uint32(day), 2, 1, 31)
}
