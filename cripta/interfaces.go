package cripta

type IKeySchedule interface {
	GenerateRoundKeys(key string) ([]uint64, error)
}

type IRoundFunction interface {
	Apply(half uint32, roundKey uint64) (uint32, error)
}

type ISymmetricCipher interface {
	SetKey(key string) error
	EncryptBlock(plainBlock uint64) (uint64, error)
	DecryptBlock(cipherBlock uint64) (uint64, error)
}
