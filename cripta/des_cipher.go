package cripta

import "fmt"

type DESCipher struct {
	keySchedule *DESKeySchedule
	feistel     *FeistelNetwork
}

func NewDESCipher() (*DESCipher, error) {
	keySchedule := &DESKeySchedule{}
	roundFunction := &DESRoundFunction{}

	feistel, err := NewFeistelNetwork(
		keySchedule,
		roundFunction,
		desRoundCount,
	)
	if err != nil {
		return nil, err
	}

	return &DESCipher{
		keySchedule: keySchedule,
		feistel:     feistel,
	}, nil
}

// SetKey derives the schedule from a text key. It must not run concurrently
// with EncryptBlock or DecryptBlock.
func (des *DESCipher) SetKey(key string) error {
	err := des.feistel.SetKey(key)
	if err != nil {
		return fmt.Errorf("failed to set key in feistel network: %w", err)
	}
	return nil
}

// SetKeyWord derives the schedule from a raw 64-bit DES key, parity bits
// included.
func (des *DESCipher) SetKeyWord(key uint64) error {
	roundKeys, err := des.keySchedule.ExpandKey(key)
	if err != nil {
		return fmt.Errorf("failed to expand key: %w", err)
	}
	return des.feistel.SetRoundKeys(roundKeys)
}

func (des *DESCipher) RoundKeys() []uint64 {
	return des.feistel.RoundKeys()
}

func (des *DESCipher) EncryptBlock(plainBlock uint64) (uint64, error) {
	permuted, err := PermuteBits(plainBlock, desBlockBits, initialPermutation[:])
	if err != nil {
		return 0, fmt.Errorf("IP permutation failed: %w", err)
	}

	feistelOutput, err := des.feistel.EncryptBlock(permuted)
	if err != nil {
		return 0, fmt.Errorf("feistel encryption failed: %w", err)
	}

	cipherBlock, err := PermuteBits(feistelOutput, desBlockBits, finalPermutation[:])
	if err != nil {
		return 0, fmt.Errorf("FP permutation failed: %w", err)
	}

	return cipherBlock, nil
}

func (des *DESCipher) DecryptBlock(cipherBlock uint64) (uint64, error) {
	permuted, err := PermuteBits(cipherBlock, desBlockBits, initialPermutation[:])
	if err != nil {
		return 0, fmt.Errorf("IP permutation failed: %w", err)
	}

	feistelOutput, err := des.feistel.DecryptBlock(permuted)
	if err != nil {
		return 0, fmt.Errorf("feistel decryption failed: %w", err)
	}

	plainBlock, err := PermuteBits(feistelOutput, desBlockBits, finalPermutation[:])
	if err != nil {
		return 0, fmt.Errorf("FP permutation failed: %w", err)
	}

	return plainBlock, nil
}
