package cripta

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

const blockBytes = desBlockBits / 8

// BytesToBlocks reads data as consecutive big-endian 64-bit blocks.
func BytesToBlocks(data []uint8) ([]uint64, error) {
	if len(data)%blockBytes != 0 {
		return nil, fmt.Errorf("%w: data length %d is not a multiple of %d bytes", ErrFormat, len(data), blockBytes)
	}

	blocks := make([]uint64, len(data)/blockBytes)
	for i := range blocks {
		blocks[i] = binary.BigEndian.Uint64(data[i*blockBytes:])
	}
	return blocks, nil
}

func BlocksToBytes(blocks []uint64) []uint8 {
	data := make([]uint8, len(blocks)*blockBytes)
	for i, block := range blocks {
		binary.BigEndian.PutUint64(data[i*blockBytes:], block)
	}
	return data
}

// EncodeHex renders ciphertext as uppercase hex, 16 digits per block.
func EncodeHex(data []uint8) string {
	return strings.ToUpper(hex.EncodeToString(data))
}

// DecodeHex parses ciphertext hex in either case. The decoded length must be
// a whole number of blocks.
func DecodeHex(s string) ([]uint8, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd hex length %d", ErrFormat, len(s))
	}

	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	if len(data)%blockBytes != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a multiple of %d", ErrFormat, len(data)*8, desBlockBits)
	}

	return data, nil
}
