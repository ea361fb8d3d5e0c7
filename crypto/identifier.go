package crypto

import (
	"crypto/rand"
	"io"

	"github.com/corpix/proquint/encoding"
	"github.com/corpix/proquint/errors"
)

var DefaultRand = rand.Reader

// RandomBytes reads exactly size bytes from r.
func RandomBytes(r io.Reader, size int) ([]byte, error) {
	buf := make([]byte, size)
	_, err := io.ReadFull(r, buf)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %d random bytes", size)
	}
	return buf, nil
}

// RandomIdentifier returns a proquint of size random bytes,
// size should be a positive even number.
func RandomIdentifier(r io.Reader, size int) (string, error) {
	if size <= 0 {
		return "", errors.Errorf("identifier size should be larger than zero, got %d", size)
	}
	if size%2 != 0 {
		return "", &encoding.InvalidInputLengthError{Length: size}
	}

	buf, err := RandomBytes(r, size)
	if err != nil {
		return "", err
	}
	return encoding.ProquintEncode(buf)
}
