package keymerge

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/nPaBwaYT/OKDes/cripta"
)

func TestMergeKnownDigests(t *testing.T) {
	tests := []struct {
		digest Digest
		want   string
	}{
		{DigestSHA256, "a83ab2505ace9a8705ea2f0f4187087d"},
		{DigestSHA3, "43c239feec3f709d365aa887e78298f9"},
		{DigestBLAKE2b, "92e9e5f389999d1b6735ca95664fc16d"},
	}

	for _, tt := range tests {
		t.Run(tt.digest.String(), func(t *testing.T) {
			got, err := Merge("alice", "bob", tt.digest)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(got, tt.want))
			qt.Assert(t, qt.HasLen(got, KeyLength))
			qt.Assert(t, qt.IsNil(cripta.ValidateKey(got)))
		})
	}
}

func TestMergedKeyDrivesCipher(t *testing.T) {
	key, err := Merge("alice", "bob", DigestSHA256)
	qt.Assert(t, qt.IsNil(err))

	ciphertext, err := cripta.Encrypt("Hello, World!", key)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(ciphertext, "F50A461D80A4A5F0923A040F94D30D73"))

	plaintext, err := cripta.Decrypt(ciphertext, key)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(plaintext, "Hello, World!"))
}

func TestMergeAcceptsNonASCIIParts(t *testing.T) {
	got, err := Merge("пароль", "ключ", DigestSHA256)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(cripta.ValidateKey(got)))
}

func TestMergeIsOrderSensitive(t *testing.T) {
	ab, err := Merge("alice", "bob", DigestSHA256)
	qt.Assert(t, qt.IsNil(err))
	ba, err := Merge("bob", "alice", DigestSHA256)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Not(qt.Equals(ab, ba)))
}

func TestMergeRejectsEmptyParts(t *testing.T) {
	_, err := Merge("", "bob", DigestSHA256)
	qt.Assert(t, qt.ErrorIs(err, cripta.ErrValidation))

	_, err = Merge("alice", "", DigestSHA256)
	qt.Assert(t, qt.ErrorIs(err, cripta.ErrValidation))

	_, err = Merge("alice", "bob", Digest(9))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseDigest(t *testing.T) {
	for name, want := range map[string]Digest{
		"":        DigestSHA256,
		"SHA256":  DigestSHA256,
		"sha3":    DigestSHA3,
		"blake2b": DigestBLAKE2b,
	} {
		got, err := ParseDigest(name)
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(got, want))
	}

	_, err := ParseDigest("md5")
	qt.Assert(t, qt.IsNotNil(err))
}
