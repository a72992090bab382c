package cripta

import (
	"fmt"
)

type FeistelNetwork struct {
	keySchedule   IKeySchedule
	roundFunction IRoundFunction

	roundsCount int

	roundKeys []uint64
}

func NewFeistelNetwork(
	keyScheduleImpl IKeySchedule,
	roundFunctionImpl IRoundFunction,
	roundsCount int,
) (*FeistelNetwork, error) {

	if keyScheduleImpl == nil {
		return nil, fmt.Errorf("key schedule implementation cannot be nil")
	}
	if roundFunctionImpl == nil {
		return nil, fmt.Errorf("round function implementation cannot be nil")
	}
	if roundsCount < 0 {
		return nil, fmt.Errorf("rounds count cannot be negative")
	}

	fRoundsCount := roundsCount
	if fRoundsCount == 0 {
		fRoundsCount = desRoundCount
	}

	return &FeistelNetwork{
		keySchedule:   keyScheduleImpl,
		roundFunction: roundFunctionImpl,
		roundsCount:   fRoundsCount,
	}, nil
}

func (fn *FeistelNetwork) GetRoundsCount() int {
	return fn.roundsCount
}

func (fn *FeistelNetwork) splitBlock(block uint64) (uint32, uint32) {
	return uint32(block >> desHalfBits), uint32(block)
}

func (fn *FeistelNetwork) combineBlocks(left uint32, right uint32) uint64 {
	return uint64(left)<<desHalfBits | uint64(right)
}

func (fn *FeistelNetwork) SetKey(key string) error {
	roundKeys, err := fn.keySchedule.GenerateRoundKeys(key)
	if err != nil {
		return fmt.Errorf("failed to generate round keys: %w", err)
	}
	return fn.SetRoundKeys(roundKeys)
}

// SetRoundKeys installs an already derived schedule. The slice is copied.
func (fn *FeistelNetwork) SetRoundKeys(roundKeys []uint64) error {
	if len(roundKeys) != fn.roundsCount {
		return fmt.Errorf("key schedule generated wrong number of round keys: got %d, need %d",
			len(roundKeys), fn.roundsCount)
	}

	fn.roundKeys = make([]uint64, len(roundKeys))
	copy(fn.roundKeys, roundKeys)
	return nil
}

func (fn *FeistelNetwork) RoundKeys() []uint64 {
	keys := make([]uint64, len(fn.roundKeys))
	copy(keys, fn.roundKeys)
	return keys
}

// Round is one Feistel step: (L, R) -> (R, L xor f(R, K)).
func (fn *FeistelNetwork) Round(left, right uint32, roundKey uint64) (uint32, uint32, error) {
	functionOutput, err := fn.roundFunction.Apply(right, roundKey)
	if err != nil {
		return 0, 0, err
	}
	return right, left ^ functionOutput, nil
}

// EncryptBlock runs all rounds with the schedule in order and returns the
// halves swapped, R16 || L16.
func (fn *FeistelNetwork) EncryptBlock(plainBlock uint64) (uint64, error) {
	if len(fn.roundKeys) == 0 {
		return 0, fmt.Errorf("key not set. Call SetKey() before encryption")
	}

	left, right := fn.splitBlock(plainBlock)

	var err error
	for round := 0; round < fn.roundsCount; round++ {
		left, right, err = fn.Round(left, right, fn.roundKeys[round])
		if err != nil {
			return 0, fmt.Errorf("round function error in round %d: %w", round, err)
		}
	}

	return fn.combineBlocks(right, left), nil
}

// DecryptBlock is EncryptBlock with the schedule reversed.
func (fn *FeistelNetwork) DecryptBlock(cipherBlock uint64) (uint64, error) {
	if len(fn.roundKeys) == 0 {
		return 0, fmt.Errorf("key not set. Call SetKey() before decryption")
	}

	left, right := fn.splitBlock(cipherBlock)

	var err error
	for round := fn.roundsCount - 1; round >= 0; round-- {
		left, right, err = fn.Round(left, right, fn.roundKeys[round])
		if err != nil {
			return 0, fmt.Errorf("round function error in round %d: %w", round, err)
		}
	}

	return fn.combineBlocks(right, left), nil
}
