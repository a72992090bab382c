// Package keymerge derives one shared cipher key from two independently
// entered keys.
package keymerge

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/nPaBwaYT/OKDes/cripta"
)

// KeyLength is the length in hex characters of a merged key.
const KeyLength = 32

type Digest int

const (
	DigestSHA256 Digest = iota
	DigestSHA3
	DigestBLAKE2b
)

func (d Digest) String() string {
	switch d {
	case DigestSHA256:
		return "sha256"
	case DigestSHA3:
		return "sha3"
	case DigestBLAKE2b:
		return "blake2b"
	default:
		return fmt.Sprintf("Digest(%d)", int(d))
	}
}

func ParseDigest(name string) (Digest, error) {
	switch strings.ToLower(name) {
	case "", "sha256", "sha-256":
		return DigestSHA256, nil
	case "sha3", "sha3-256":
		return DigestSHA3, nil
	case "blake2b", "blake2b-256":
		return DigestBLAKE2b, nil
	default:
		return 0, fmt.Errorf("unknown digest %q", name)
	}
}

func (d Digest) sum(data []byte) ([]byte, error) {
	switch d {
	case DigestSHA256:
		sum := sha256.Sum256(data)
		return sum[:], nil
	case DigestSHA3:
		sum := sha3.Sum256(data)
		return sum[:], nil
	case DigestBLAKE2b:
		sum := blake2b.Sum256(data)
		return sum[:], nil
	default:
		return nil, fmt.Errorf("unsupported digest %v", d)
	}
}

// Merge hashes first+second and keeps the first KeyLength lowercase hex
// digits. The result is checked against the cipher's key rules before it is
// returned.
func Merge(first, second string, digest Digest) (string, error) {
	if first == "" || second == "" {
		return "", fmt.Errorf("%w: both keys are required", cripta.ErrValidation)
	}

	sum, err := digest.sum([]byte(first + second))
	if err != nil {
		return "", err
	}

	encoded := hex.EncodeToString(sum)
	if len(encoded) < KeyLength {
		return "", fmt.Errorf("%v digest too short: %d hex characters", digest, len(encoded))
	}
	merged := encoded[:KeyLength]

	if err := cripta.ValidateKey(merged); err != nil {
		return "", fmt.Errorf("merged key rejected: %w", err)
	}

	return merged, nil
}
