package cripta

import (
	"errors"
	"math/bits"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestEncryptKnownAnswers(t *testing.T) {
	tests := []struct {
		name       string
		plaintext  string
		key        string
		ciphertext string
	}{
		{
			name:       "single block",
			plaintext:  "Hello, W",
			key:        "12345678",
			ciphertext: "8FEBBB491328A14E",
		},
		{
			name:       "padded tail",
			plaintext:  "Hello, World!",
			key:        "password",
			ciphertext: "78CA4455F4FC233404E993B64359AC47",
		},
		{
			name:       "one character key",
			plaintext:  "abc",
			key:        "k",
			ciphertext: "E4DFAB6DABD65453",
		},
		{
			name:       "cyrillic text",
			plaintext:  "Привет, мир",
			key:        "secretkey",
			ciphertext: "C79419E0E88EE3F0462C52E7F8A44D800A09F47164F31C5E",
		},
		{
			name:       "longest key",
			plaintext:  "The quick brown fox jumps over the lazy dog",
			key:        strings.Repeat("A", 32),
			ciphertext: "43549183CB69FD00914D70864721D021498779C42C88D75A3DFA16F392BF7135CE9D51CE04D1A659C96B9A160D8B3C8B",
		},
		{
			name:       "classic vector with key 0123456789ABCDEF",
			plaintext:  "Now is the time for all ",
			key:        "\x00\x11\"3DUfw",
			ciphertext: "3FA40E8A984D48156A271787AB8883F9893D51EC4B563B53",
		},
		{
			name:       "empty text",
			plaintext:  "",
			key:        "12345678",
			ciphertext: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encrypt(tt.plaintext, tt.key)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(got, tt.ciphertext))

			back, err := Decrypt(tt.ciphertext, tt.key)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(back, tt.plaintext))
		})
	}
}

func TestDecryptAcceptsLowercaseHex(t *testing.T) {
	got, err := Decrypt("78ca4455f4fc233404e993b64359ac47", "password")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, "Hello, World!"))
}

func TestEncryptIsDeterministic(t *testing.T) {
	first, err := Encrypt("same input, same output", "determinism")
	qt.Assert(t, qt.IsNil(err))
	second, err := Encrypt("same input, same output", "determinism")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(first, second))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(56))
	alphabet := []rune("abcdefghijklmnopqrstuvwxyz ABCXYZ0123456789.,!?-абвгдеёжз€😀")

	for i := 0; i < 100; i++ {
		key := make([]byte, 1+rng.Intn(MaxKeyLength))
		for j := range key {
			key[j] = byte(rng.Intn(128))
		}

		text := make([]rune, rng.Intn(64))
		for j := range text {
			text[j] = alphabet[rng.Intn(len(alphabet))]
		}
		plaintext := string(text)

		ciphertext, err := Encrypt(plaintext, string(key))
		qt.Assert(t, qt.IsNil(err))

		paddedBits := (len(plaintext)*8 + 63) / 64 * 64
		qt.Assert(t, qt.Equals(len(ciphertext), paddedBits/4))
		qt.Assert(t, qt.Equals(len(ciphertext)%16, 0))
		qt.Assert(t, qt.Equals(strings.ToUpper(ciphertext), ciphertext))

		decrypted, err := Decrypt(ciphertext, string(key))
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(decrypted, plaintext), qt.Commentf("key %q", key))
	}
}

func TestKeyLengthBoundaries(t *testing.T) {
	_, err := Encrypt("text", strings.Repeat("k", 32))
	qt.Assert(t, qt.IsNil(err))

	_, err = Encrypt("text", strings.Repeat("k", 33))
	qt.Assert(t, qt.ErrorIs(err, ErrValidation))

	_, err = Encrypt("text", "")
	qt.Assert(t, qt.ErrorIs(err, ErrValidation))

	_, err = Decrypt("8FEBBB491328A14E", strings.Repeat("k", 33))
	qt.Assert(t, qt.ErrorIs(err, ErrValidation))

	_, err = Decrypt("8FEBBB491328A14E", "")
	qt.Assert(t, qt.ErrorIs(err, ErrValidation))
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key   string
		valid bool
	}{
		{"k", true},
		{strings.Repeat("x", 32), true},
		{"\x00\x7f", true},
		{"", false},
		{strings.Repeat("x", 33), false},
		{"ключ", false},
		{"café", false},
	}

	for i, tt := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.valid {
				qt.Assert(t, qt.IsNil(err))
			} else {
				qt.Assert(t, qt.ErrorIs(err, ErrValidation))
			}
		})
	}
}

func TestEncryptRejectsNonASCIIKey(t *testing.T) {
	_, err := Encrypt("text", "пароль")
	qt.Assert(t, qt.ErrorIs(err, ErrValidation))
}

func TestDecryptFormatErrors(t *testing.T) {
	for _, input := range []string{"not-hex!!", "ABC", "8FEBBB49", "8FEBBB491328A14G"} {
		_, err := Decrypt(input, "12345678")
		qt.Assert(t, qt.ErrorIs(err, ErrFormat), qt.Commentf("input %q", input))
		qt.Assert(t, qt.IsFalse(errors.Is(err, ErrDecode)))
	}
}

func TestDecryptWithWrongKeyFailsToDecode(t *testing.T) {
	_, err := Decrypt("78CA4455F4FC233404E993B64359AC47", "wrongkey")
	qt.Assert(t, qt.ErrorIs(err, ErrDecode))
}

func TestSingleKeyBitFlipChangesCiphertext(t *testing.T) {
	base, err := Encrypt("Hello, W", "12345678")
	qt.Assert(t, qt.IsNil(err))
	flipped, err := Encrypt("Hello, W", "12345679")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(flipped, "CC787A7914E69D68"))

	a, err := strconv.ParseUint(base, 16, 64)
	qt.Assert(t, qt.IsNil(err))
	b, err := strconv.ParseUint(flipped, 16, 64)
	qt.Assert(t, qt.IsNil(err))

	changed := bits.OnesCount64(a ^ b)
	qt.Assert(t, qt.IsTrue(changed >= 16), qt.Commentf("only %d ciphertext bits changed", changed))
}
