package signature

import (
	"crypto/md5" // #nosec G501 -- grouping key, not a security boundary
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// Algorithm names the content hash used for the short hash
type Algorithm string

const (
	// AlgorithmMD5 reproduces the short hashes of previously filed reports.
	AlgorithmMD5 Algorithm = "md5"
	// AlgorithmBLAKE2b uses a 256-bit BLAKE2b digest.
	AlgorithmBLAKE2b Algorithm = "blake2b"
	// AlgorithmBLAKE3 uses a 256-bit BLAKE3 digest.
	AlgorithmBLAKE3 Algorithm = "blake3"
)

// ShortHashLen is the number of hex characters kept from the digest
const ShortHashLen = 8

// ParseAlgorithm converts a config value into an Algorithm
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case AlgorithmMD5, AlgorithmBLAKE2b, AlgorithmBLAKE3:
		return Algorithm(name), nil
	case "":
		return AlgorithmMD5, nil
	default:
		return "", fmt.Errorf("unknown signature hash %q", name)
	}
}

// digest returns the full hex digest of data
func (a Algorithm) digest(data []byte) string {
	switch a {
	case AlgorithmBLAKE2b:
		sum := blake2b.Sum256(data)
		return hex.EncodeToString(sum[:])
	case AlgorithmBLAKE3:
		sum := blake3.Sum256(data)
		return hex.EncodeToString(sum[:])
	default:
		sum := md5.Sum(data) // #nosec G401
		return hex.EncodeToString(sum[:])
	}
}

// ShortHash returns the first ShortHashLen hex characters of the digest
func (a Algorithm) ShortHash(data []byte) string {
	return a.digest(data)[:ShortHashLen]
}
