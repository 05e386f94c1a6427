package policy

import (
	"crypto/md5"  //nolint:gosec // kept for legacy secrets
	"crypto/sha1" //nolint:gosec // kept for legacy secrets
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"sort"
	"strings"

	"credguard/internal/domain/sensitive"
	"credguard/internal/errors"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// Canonical algorithm names.
const (
	AlgorithmSHA256     = "SHA-256"
	AlgorithmSHA224     = "SHA-224"
	AlgorithmSHA384     = "SHA-384"
	AlgorithmSHA512     = "SHA-512"
	AlgorithmSHA512_256 = "SHA-512/256"
	AlgorithmSHA1       = "SHA-1"
	AlgorithmMD5        = "MD5"
	AlgorithmSHA3_256   = "SHA3-256"
	AlgorithmSHA3_512   = "SHA3-512"
	AlgorithmBLAKE2b256 = "BLAKE2B-256"
	AlgorithmBLAKE2b512 = "BLAKE2B-512"
	AlgorithmBLAKE2s256 = "BLAKE2S-256"

	// AlgorithmNone is accepted by configuration to disable hashing.
	AlgorithmNone = "NONE"
)

var algorithms = map[string]func() (hash.Hash, error){
	AlgorithmSHA256:     plain(sha256.New),
	AlgorithmSHA224:     plain(sha256.New224),
	AlgorithmSHA384:     plain(sha512.New384),
	AlgorithmSHA512:     plain(sha512.New),
	AlgorithmSHA512_256: plain(sha512.New512_256),
	AlgorithmSHA1:       plain(sha1.New),
	AlgorithmMD5:        plain(md5.New),
	AlgorithmSHA3_256:   plain(sha3.New256),
	AlgorithmSHA3_512:   plain(sha3.New512),
	AlgorithmBLAKE2b256: func() (hash.Hash, error) { return blake2b.New256(nil) },
	AlgorithmBLAKE2b512: func() (hash.Hash, error) { return blake2b.New512(nil) },
	AlgorithmBLAKE2s256: func() (hash.Hash, error) { return blake2s.New256(nil) },
}

func plain(fn func() hash.Hash) func() (hash.Hash, error) {
	return func() (hash.Hash, error) { return fn(), nil }
}

// Algorithms lists the supported algorithm names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// canonicalAlgorithm upper-cases name and maps the "none" spelling to the empty string.
func canonicalAlgorithm(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == AlgorithmNone {
		return ""
	}

	return name
}

func lookupAlgorithm(name string) (func() (hash.Hash, error), error) {
	fn, ok := algorithms[canonicalAlgorithm(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
	}

	return fn, nil
}

// Hash derives the stored secret for buf under the current rules.
func (p *Policy) Hash(buf *sensitive.Buffer) (string, error) {
	return p.Rules().Hash(buf)
}

// Hash derives the stored secret for buf. With an algorithm configured the
// digest is rendered as upper-case hexadecimal; without one the plaintext is
// returned unchanged.
func (r Rules) Hash(buf *sensitive.Buffer) (string, error) {
	if !r.HashingEnabled() {
		return buf.String(), nil
	}

	newHash, err := lookupAlgorithm(r.Algorithm)
	if err != nil {
		return "", err
	}

	h, err := newHash()
	if err != nil {
		return "", errors.Wrapf(err, "init %s", r.Algorithm)
	}

	// hash.Hash.Write never returns an error
	_, _ = h.Write(buf.Bytes())
	sum := h.Sum(nil)

	return strings.ToUpper(hex.EncodeToString(sum)), nil
}
