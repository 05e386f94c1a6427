package policy

import (
	"regexp"
	"testing"

	"credguard/internal/domain/sensitive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upperHex = regexp.MustCompile(`^[0-9A-F]+$`)

func hashString(t *testing.T, rules Rules, plaintext string) string {
	t.Helper()
	secret, err := rules.Hash(sensitive.FromString(plaintext))
	require.NoError(t, err)

	return secret
}

func TestHash_SHA256KnownDigest(t *testing.T) {
	rules := Rules{Algorithm: AlgorithmSHA256}

	// sha256("abc")
	assert.Equal(t,
		"BA7816BF8F01CFEA414140DE5DAE2223B00361A396177A9CB410FF61F20015AD",
		hashString(t, rules, "abc"))
}

func TestHash_DeterministicAndDistinct(t *testing.T) {
	rules := Strict()

	a := hashString(t, rules, "one2Three!")
	b := hashString(t, rules, "one2Three!")
	c := hashString(t, rules, "two3Four!")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, "one2Three!", a)
	assert.Len(t, a, 64)
	assert.Regexp(t, upperHex, a)
}

func TestHash_PlaintextWhenDisabled(t *testing.T) {
	assert.Equal(t, "one2Three!", hashString(t, Permissive(), "one2Three!"))
}

func TestHash_AllAlgorithms(t *testing.T) {
	lengths := map[string]int{
		AlgorithmSHA256:     64,
		AlgorithmSHA224:     56,
		AlgorithmSHA384:     96,
		AlgorithmSHA512:     128,
		AlgorithmSHA512_256: 64,
		AlgorithmSHA1:       40,
		AlgorithmMD5:        32,
		AlgorithmSHA3_256:   64,
		AlgorithmSHA3_512:   128,
		AlgorithmBLAKE2b256: 64,
		AlgorithmBLAKE2b512: 128,
		AlgorithmBLAKE2s256: 64,
	}
	require.Len(t, Algorithms(), len(lengths))

	for _, name := range Algorithms() {
		t.Run(name, func(t *testing.T) {
			secret := hashString(t, Rules{Algorithm: name}, "one2Three!")
			assert.Len(t, secret, lengths[name])
			assert.Regexp(t, upperHex, secret)
		})
	}
}

func TestHash_ClearsSourceRunes(t *testing.T) {
	buf := sensitive.FromString("one2Three!")

	_, err := Strict().Hash(buf)
	require.NoError(t, err)

	buf.Clear()
	assert.True(t, buf.Cleared())
}
