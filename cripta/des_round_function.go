package cripta

import "fmt"

type DESRoundFunction struct{}

// Substitute runs the 48-bit value through the eight S-boxes. For each 6-bit
// group the outer bits pick the row and the middle four pick the column.
func Substitute(value uint64) (uint32, error) {
	if value>>desRoundBits != 0 {
		return 0, fmt.Errorf("S-box input %#x does not fit in 48 bits", value)
	}

	var result uint32
	for box := 0; box < len(sBoxes); box++ {
		group := uint8(value>>uint(desRoundBits-6*(box+1))) & 0x3F
		row := (group>>4)&0x2 | group&0x1
		column := (group >> 1) & 0xF
		result = result<<4 | uint32(sBoxes[box][row][column])
	}

	return result, nil
}

func (rf *DESRoundFunction) Apply(half uint32, roundKey uint64) (uint32, error) {
	if roundKey>>desRoundBits != 0 {
		return 0, fmt.Errorf("DES round key %#x does not fit in 48 bits", roundKey)
	}

	expanded, err := PermuteBits(uint64(half), desHalfBits, expansion[:])
	if err != nil {
		return 0, fmt.Errorf("expansion failed: %w", err)
	}

	substituted, err := Substitute(expanded ^ roundKey)
	if err != nil {
		return 0, fmt.Errorf("substitution failed: %w", err)
	}

	permuted, err := PermuteBits(uint64(substituted), desHalfBits, pBox[:])
	if err != nil {
		return 0, fmt.Errorf("P-box permutation failed: %w", err)
	}

	return uint32(permuted), nil
}
