package cripta

import (
	"fmt"
	"unicode/utf8"
)

// MaxKeyLength is the longest key, in characters, Encrypt and Decrypt accept.
const MaxKeyLength = 32

// ValidateKey checks the key constraints shared by Encrypt and Decrypt:
// 1 to MaxKeyLength characters, all 7-bit ASCII.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrValidation)
	}
	if n := utf8.RuneCountInString(key); n > MaxKeyLength {
		return fmt.Errorf("%w: key has %d characters, maximum is %d", ErrValidation, n, MaxKeyLength)
	}
	for i, r := range key {
		if r > 0x7F {
			return fmt.Errorf("%w: key character %q at offset %d is not ASCII", ErrValidation, r, i)
		}
	}
	return nil
}

func newDESContext(key string, paddingMode PaddingMode, workers int) (*CipherContext, error) {
	cipher, err := NewDESCipher()
	if err != nil {
		return nil, err
	}
	return NewCipherContext(cipher, key, paddingMode, workers)
}

// NewDESContext validates key and returns a DES context over it.
func NewDESContext(key string, paddingMode PaddingMode, workers int) (*CipherContext, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return newDESContext(key, paddingMode, workers)
}

// Encrypt encrypts UTF-8 plaintext with DES under a text key and returns
// uppercase hex, 16 digits per 64-bit block. The last block is zero-padded.
func Encrypt(plaintext string, key string) (string, error) {
	ctx, err := NewDESContext(key, PaddingModeZeros, 1)
	if err != nil {
		return "", err
	}
	return ctx.EncryptText(plaintext)
}

// Decrypt reverses Encrypt. Trailing NUL bytes left by the zero padding are
// removed, so plaintext that itself ends in NUL does not survive a round trip.
func Decrypt(ciphertextHex string, key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}

	ciphertext, err := DecodeHex(ciphertextHex)
	if err != nil {
		return "", err
	}

	ctx, err := newDESContext(key, PaddingModeZeros, 1)
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
