package cripta

import "errors"

var (
	// ErrValidation marks unusable input: a bad key or non-UTF-8 plaintext.
	ErrValidation = errors.New("validation error")
	// ErrFormat marks malformed ciphertext.
	ErrFormat = errors.New("format error")
	// ErrDecode marks decrypted data that is not text, usually a wrong key.
	ErrDecode = errors.New("decode error")
)
