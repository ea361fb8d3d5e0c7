package crypto

import (
	"bytes"
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpix/proquint/encoding"
	"github.com/corpix/proquint/errors"
)

func sequence(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i)
	}
	return buf
}

func TestRandomIdentifier(t *testing.T) {
	id, err := RandomIdentifier(bytes.NewReader([]byte{1, 2, 3, 4}), 4)
	require.NoError(t, err)
	assert.Equal(t, "bahaf-basah", id)

	id, err = RandomIdentifier(DefaultRand, 8)
	require.NoError(t, err)
	assert.True(t, encoding.IsProquint(id))
	assert.Len(t, id, encoding.ProquintLen(8))
}

func TestRandomIdentifierInvalidSize(t *testing.T) {
	_, err := RandomIdentifier(DefaultRand, 0)
	assert.Error(t, err)

	_, err = RandomIdentifier(DefaultRand, 3)
	assert.ErrorIs(t, err, encoding.ErrInvalidInputLength)

	_, err = RandomIdentifier(bytes.NewReader([]byte{1}), 2)
	assert.Error(t, err)
}

func TestSeedString(t *testing.T) {
	var s Seed
	copy(s[:], sequence(SeedSize))
	assert.Equal(t, "babad-bamag-bibaj-bimal.boban-bomar-bubat-bumaz", s.String())
	assert.Len(t, s.String(), SeedStringSize)
}

func TestParseSeed(t *testing.T) {
	var want Seed
	copy(want[:], sequence(SeedSize))

	for _, str := range []string{
		"babad-bamag-bibaj-bimal.boban-bomar-bubat-bumaz",
		"babad-bamag-bibaj-bimal-boban-bomar-bubat-bumaz",
	} {
		s, err := ParseSeed(str)
		require.NoError(t, err, str)
		assert.Equal(t, want, s)
	}

	for _, str := range []string{
		"",
		"babad-bamag-bibaj-bimal",
		"babad-bamag-bibaj-bimal_boban-bomar-bubat-bumaz",
		"babad-bamag-bibaj-bimal.boban-bomar-bubat-bumae",
		strings.ToUpper("babad-bamag-bibaj-bimal.boban-bomar-bubat-bumaz"),
	} {
		_, err := ParseSeed(str)
		assert.True(t, errors.Is(err, ErrInvalidSeed), str)
	}
}

func TestParseSeedCodecError(t *testing.T) {
	_, err := ParseSeed("babad-bamag-bibaj-bimal.boban-bomar-bubat-bumae")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSeed))

	var charErr *encoding.InvalidCharacterError
	require.True(t, errors.As(err, &charErr))
	assert.Equal(t, byte('e'), charErr.Char)
	assert.Equal(t, SeedStringSize-1, charErr.Position)

	_, err = ParseSeed("babad-bamag-bibaj-bimal_boban-bomar-bubat-bumaz")
	var formatErr *encoding.InvalidFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, seedHalfStringSize, formatErr.Position)
}

func TestSeedKeyPair(t *testing.T) {
	s, err := NewSeed(DefaultRand)
	require.NoError(t, err)

	parsed, err := ParseSeed(s.String())
	require.NoError(t, err)
	assert.Equal(t, s, parsed)

	public, private, err := s.KeyPair()
	require.NoError(t, err)
	assert.Len(t, public, ed25519.PublicKeySize)

	samePublic, _, err := parsed.KeyPair()
	require.NoError(t, err)
	assert.Equal(t, public, samePublic)

	msg := []byte("lusab-babad")
	assert.True(t, ed25519.Verify(public, msg, ed25519.Sign(private, msg)))
}
