package crypto

import (
	"crypto/ed25519"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/corpix/proquint/encoding"
	"github.com/corpix/proquint/errors"
)

const (
	SeedSize = 16
	// SeedStringSize is the length of the textual seed form:
	//
	//	lusab-babad-gutih-tugad.gutuk-bisog-mudof-sakat
	SeedStringSize = SeedSize/2*6 - 1
	SeedSeparator  = '.'

	seedHalfStringSize = SeedSize/4*6 - 1
)

var (
	ErrInvalidSeed = errors.New("invalid seed")

	seedKeyInfo = []byte("proquint ed25519 key")
)

// Seed is a 128 bit secret which is easy to write down and dictate.
type Seed [SeedSize]byte

func (s Seed) String() string {
	head, _ := encoding.ProquintEncode(s[:SeedSize/2])
	tail, _ := encoding.ProquintEncode(s[SeedSize/2:])
	return head + string(SeedSeparator) + tail
}

// KeyPair derives an ed25519 key pair from the seed.
// Same seed always yields the same key pair.
func (s Seed) KeyPair() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	keySeed := make([]byte, ed25519.SeedSize)
	_, err := io.ReadFull(hkdf.New(sha256.New, s[:], nil, seedKeyInfo), keySeed)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to derive key seed")
	}

	private := ed25519.NewKeyFromSeed(keySeed)
	return private.Public().(ed25519.PublicKey), private, nil
}

func NewSeed(r io.Reader) (Seed, error) {
	var s Seed
	buf, err := RandomBytes(r, SeedSize)
	if err != nil {
		return s, err
	}
	copy(s[:], buf)
	return s, nil
}

// ParseSeed accepts a seed in the form produced by Seed.String,
// a hyphen in place of the dot is also accepted.
func ParseSeed(str string) (Seed, error) {
	var s Seed
	if len(str) != SeedStringSize {
		return s, errors.Wrapf(
			ErrInvalidSeed,
			"expected %d characters like %q, got %d",
			SeedStringSize, "lusab-babad-gutih-tugad.gutuk-bisog-mudof-sakat", len(str),
		)
	}
	if str[seedHalfStringSize] == SeedSeparator {
		str = str[:seedHalfStringSize] + string(encoding.ProquintSeparator) + str[seedHalfStringSize+1:]
	}

	buf, err := encoding.ProquintDecode(str)
	if err != nil {
		return s, errors.Mark(errors.Wrap(err, "invalid seed"), ErrInvalidSeed)
	}
	copy(s[:], buf)
	return s, nil
}
