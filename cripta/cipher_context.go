package cripta

import (
	"crypto/rand"
	"fmt"
	"runtime"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

type PaddingMode int

const (
	// PaddingModeZeros pads with NUL bytes and trims trailing NULs on decrypt.
	PaddingModeZeros PaddingMode = iota
	// PaddingModeZerosRetained pads with NUL bytes and keeps them on decrypt.
	PaddingModeZerosRetained
	PaddingModeANSIX923
	PaddingModePKCS7
	PaddingModeISO10126
)

func (pm PaddingMode) String() string {
	switch pm {
	case PaddingModeZeros:
		return "zeros"
	case PaddingModeZerosRetained:
		return "zeros-retained"
	case PaddingModeANSIX923:
		return "ansi-x923"
	case PaddingModePKCS7:
		return "pkcs7"
	case PaddingModeISO10126:
		return "iso10126"
	default:
		return fmt.Sprintf("PaddingMode(%d)", int(pm))
	}
}

// CipherContext applies a block cipher to whole messages, block by block,
// with no chaining between blocks.
type CipherContext struct {
	cipher      ISymmetricCipher
	paddingMode PaddingMode
	workers     int
}

// NewCipherContext keys cipher with key. workers > 1 spreads blocks over that
// many goroutines; a negative value uses one per CPU.
func NewCipherContext(
	cipher ISymmetricCipher,
	key string,
	paddingMode PaddingMode,
	workers int,
) (*CipherContext, error) {

	if cipher == nil {
		return nil, fmt.Errorf("cipher implementation cannot be nil")
	}
	if paddingMode < PaddingModeZeros || paddingMode > PaddingModeISO10126 {
		return nil, fmt.Errorf("unsupported padding mode %v", paddingMode)
	}

	if workers < 0 {
		workers = runtime.NumCPU()
	}
	if workers == 0 {
		workers = 1
	}

	ctx := &CipherContext{
		cipher:      cipher,
		paddingMode: paddingMode,
		workers:     workers,
	}

	err := ctx.cipher.SetKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to set key: %w", err)
	}

	return ctx, nil
}

func (ctx *CipherContext) GetPaddingMode() PaddingMode {
	return ctx.paddingMode
}

func (ctx *CipherContext) GetWorkers() int {
	return ctx.workers
}

func (ctx *CipherContext) applyPadding(data []uint8) ([]uint8, error) {
	dataLength := len(data)
	paddingLength := blockBytes - dataLength%blockBytes

	switch ctx.paddingMode {
	case PaddingModeZeros, PaddingModeZerosRetained:
		if paddingLength == blockBytes {
			paddingLength = 0
		}
	}

	padded := make([]uint8, dataLength+paddingLength)
	copy(padded, data)
	if paddingLength == 0 {
		return padded, nil
	}

	switch ctx.paddingMode {
	case PaddingModeZeros, PaddingModeZerosRetained:

	case PaddingModePKCS7:
		for i := dataLength; i < len(padded); i++ {
			padded[i] = uint8(paddingLength)
		}

	case PaddingModeANSIX923:
		padded[len(padded)-1] = uint8(paddingLength)

	case PaddingModeISO10126:
		if paddingLength > 1 {
			_, err := rand.Read(padded[dataLength : len(padded)-1])
			if err != nil {
				return nil, fmt.Errorf("failed to generate random bytes: %w", err)
			}
		}
		padded[len(padded)-1] = uint8(paddingLength)

	default:
		return nil, fmt.Errorf("unsupported padding mode %v", ctx.paddingMode)
	}

	return padded, nil
}

func (ctx *CipherContext) removePadding(data []uint8) ([]uint8, error) {
	switch ctx.paddingMode {
	case PaddingModeZerosRetained:
		return data, nil

	case PaddingModeZeros:
		end := len(data)
		for end > 0 && data[end-1] == 0 {
			end--
		}
		return data[:end], nil
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: missing %v padding", ErrDecode, ctx.paddingMode)
	}

	paddingLength := int(data[len(data)-1])
	if paddingLength == 0 || paddingLength > blockBytes || paddingLength > len(data) {
		return nil, fmt.Errorf("%w: invalid %v padding length %d", ErrDecode, ctx.paddingMode, paddingLength)
	}

	switch ctx.paddingMode {
	case PaddingModePKCS7:
		for i := len(data) - paddingLength; i < len(data); i++ {
			if data[i] != uint8(paddingLength) {
				return nil, fmt.Errorf("%w: corrupted PKCS7 padding", ErrDecode)
			}
		}

	case PaddingModeANSIX923:
		for i := len(data) - paddingLength; i < len(data)-1; i++ {
			if data[i] != 0 {
				return nil, fmt.Errorf("%w: corrupted ANSI X.923 padding", ErrDecode)
			}
		}

	case PaddingModeISO10126:

	default:
		return nil, fmt.Errorf("unsupported padding mode %v", ctx.paddingMode)
	}

	return data[:len(data)-paddingLength], nil
}

// processBlocks applies transform to every block. Blocks are split into
// contiguous ranges, one per worker.
func (ctx *CipherContext) processBlocks(blocks []uint64, transform func(uint64) (uint64, error)) ([]uint64, error) {
	out := make([]uint64, len(blocks))

	numBlocks := len(blocks)
	numWorkers := ctx.workers
	if numWorkers > numBlocks {
		numWorkers = numBlocks
	}

	if numWorkers <= 1 {
		for i, block := range blocks {
			result, err := transform(block)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", i, err)
			}
			out[i] = result
		}
		return out, nil
	}

	blocksPerWorker := (numBlocks + numWorkers - 1) / numWorkers

	var g errgroup.Group
	g.SetLimit(numWorkers)

	for start := 0; start < numBlocks; start += blocksPerWorker {
		end := min(start+blocksPerWorker, numBlocks)

		g.Go(func() error {
			for i := start; i < end; i++ {
				result, err := transform(blocks[i])
				if err != nil {
					return fmt.Errorf("block %d: %w", i, err)
				}
				out[i] = result
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// Encrypt pads data and encrypts every block independently.
func (ctx *CipherContext) Encrypt(data []uint8) ([]uint8, error) {
	padded, err := ctx.applyPadding(data)
	if err != nil {
		return nil, err
	}

	blocks, err := BytesToBlocks(padded)
	if err != nil {
		return nil, err
	}

	encrypted, err := ctx.processBlocks(blocks, ctx.cipher.EncryptBlock)
	if err != nil {
		return nil, fmt.Errorf("encryption failed: %w", err)
	}

	return BlocksToBytes(encrypted), nil
}

// Decrypt decrypts every block and strips the padding.
func (ctx *CipherContext) Decrypt(ciphertext []uint8) ([]uint8, error) {
	blocks, err := BytesToBlocks(ciphertext)
	if err != nil {
		return nil, err
	}

	decrypted, err := ctx.processBlocks(blocks, ctx.cipher.DecryptBlock)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return ctx.removePadding(BlocksToBytes(decrypted))
}

// EncryptText encrypts UTF-8 text to uppercase hex.
func (ctx *CipherContext) EncryptText(plaintext string) (string, error) {
	if !utf8.ValidString(plaintext) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", ErrValidation)
	}

	encrypted, err := ctx.Encrypt([]uint8(plaintext))
	if err != nil {
		return "", err
	}

	return EncodeHex(encrypted), nil
}

// DecryptText decrypts hex ciphertext back to UTF-8 text.
func (ctx *CipherContext) DecryptText(ciphertextHex string) (string, error) {
	ciphertext, err := DecodeHex(ciphertextHex)
	if err != nil {
		return "", err
	}

	plaintext, err := ctx.Decrypt(ciphertext)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: decrypted data is not valid UTF-8", ErrDecode)
	}

	return string(plaintext), nil
}
