package cripta

import (
	"fmt"
	"math/bits"
)

const keyChunkChars = 8

type DESKeySchedule struct{}

// FoldKey turns a text key into one 64-bit DES key word. Every character
// contributes its low 7 bits followed by an odd-parity bit; the key is
// NUL-padded to whole 8-character chunks and the chunks are XORed together.
func (dks *DESKeySchedule) FoldKey(key string) (uint64, error) {
	if key == "" {
		return 0, fmt.Errorf("%w: key cannot be empty", ErrValidation)
	}

	codes := make([]uint8, 0, len(key)+keyChunkChars)
	for i, r := range key {
		if r > 0x7F {
			return 0, fmt.Errorf("%w: key character %q at offset %d is not ASCII", ErrValidation, r, i)
		}
		codes = append(codes, uint8(r))
	}
	for len(codes)%keyChunkChars != 0 {
		codes = append(codes, 0)
	}

	var folded uint64
	for i := 0; i < len(codes); i += keyChunkChars {
		var chunk uint64
		for _, c := range codes[i : i+keyChunkChars] {
			chunk = chunk<<8 | uint64(withOddParity(c))
		}
		folded ^= chunk
	}

	return folded, nil
}

func withOddParity(c uint8) uint8 {
	c &= 0x7F
	parity := uint8(0)
	if bits.OnesCount8(c)%2 == 0 {
		parity = 1
	}
	return c<<1 | parity
}

func (dks *DESKeySchedule) leftShift28(value uint32, shifts int) (uint32, error) {
	const mask28 = uint32(1)<<desKeyHalf - 1
	if value&^mask28 != 0 {
		return 0, fmt.Errorf("value %#x does not fit in 28 bits", value)
	}
	if shifts < 0 || shifts >= desKeyHalf {
		return 0, fmt.Errorf("shift %d out of range", shifts)
	}

	return ((value << uint(shifts)) | (value >> uint(desKeyHalf-shifts))) & mask28, nil
}

// ExpandKey derives the 16 round keys from a 64-bit key word.
func (dks *DESKeySchedule) ExpandKey(key uint64) ([]uint64, error) {
	permutedKey, err := PermuteBits(key, desBlockBits, permutedChoice1[:])
	if err != nil {
		return nil, fmt.Errorf("PC1 permutation failed: %w", err)
	}

	c := uint32(permutedKey >> desKeyHalf)
	d := uint32(permutedKey) & (1<<desKeyHalf - 1)

	roundKeys := make([]uint64, 0, desRoundCount)
	for round := 0; round < desRoundCount; round++ {
		c, err = dks.leftShift28(c, shiftSchedule[round])
		if err != nil {
			return nil, fmt.Errorf("left shift C failed in round %d: %w", round, err)
		}

		d, err = dks.leftShift28(d, shiftSchedule[round])
		if err != nil {
			return nil, fmt.Errorf("left shift D failed in round %d: %w", round, err)
		}

		cd := uint64(c)<<desKeyHalf | uint64(d)

		roundKey, err := PermuteBits(cd, desKeyBits, permutedChoice2[:])
		if err != nil {
			return nil, fmt.Errorf("PC2 permutation failed in round %d: %w", round, err)
		}

		roundKeys = append(roundKeys, roundKey)
	}

	return roundKeys, nil
}

func (dks *DESKeySchedule) GenerateRoundKeys(key string) ([]uint64, error) {
	folded, err := dks.FoldKey(key)
	if err != nil {
		return nil, err
	}
	return dks.ExpandKey(folded)
}
