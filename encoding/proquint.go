package encoding

import (
	"fmt"
	"strings"

	"github.com/corpix/proquint/errors"
)

// Proquint (PRO-nounceable QUINT-uplet) encoding of byte strings,
// see https://arxiv.org/html/0901.4016.
//
// Every pair of bytes maps to one consonant-vowel-consonant-vowel-consonant
// syllable, syllables are joined with a hyphen:
//
//	[127 0 0 1] <-> lusab-babad

const (
	ProquintConsonants = "bdfghjklmnprstvz"
	ProquintVowels     = "aiou"
	ProquintSeparator  = '-'

	// field widths in bits, most significant first: c v c v c
	proquintConsonantBits = 4
	proquintVowelBits     = 2

	proquintConsonantMask = 1<<proquintConsonantBits - 1
	proquintVowelMask     = 1<<proquintVowelBits - 1

	// bit offsets of every field inside a 16 bit word
	proquintShift1 = proquintShift2 + proquintVowelBits
	proquintShift2 = proquintShift3 + proquintConsonantBits
	proquintShift3 = proquintShift4 + proquintVowelBits
	proquintShift4 = proquintShift5 + proquintConsonantBits
	proquintShift5 = 0

	ProquintSyllableSize = 5
	// syllable plus separator
	proquintStride = ProquintSyllableSize + 1

	proquintAbsent = 0xff
)

type (
	ProquintRole string

	InvalidInputLengthError struct {
		Length int
	}
	InvalidCharacterError struct {
		Char     byte
		Position int
		Role     ProquintRole
	}
	InvalidFormatError struct {
		Length   int
		Position int
		Reason   string
	}

	proquintLookup [256]byte
)

const (
	ProquintRoleConsonant ProquintRole = "consonant"
	ProquintRoleVowel     ProquintRole = "vowel"
)

var (
	ErrInvalidInputLength = errors.New("invalid input length")
	ErrInvalidCharacter   = errors.New("invalid character")
	ErrInvalidFormat      = errors.New("invalid format")

	proquintConsonantValues = newProquintLookup(ProquintConsonants)
	proquintVowelValues     = newProquintLookup(ProquintVowels)

	// role of every character inside a syllable
	proquintRoles = [ProquintSyllableSize]ProquintRole{
		ProquintRoleConsonant,
		ProquintRoleVowel,
		ProquintRoleConsonant,
		ProquintRoleVowel,
		ProquintRoleConsonant,
	}
)

func (e *InvalidInputLengthError) Error() string {
	return fmt.Sprintf("%s: number of bytes must be even, got %d", ErrInvalidInputLength, e.Length)
}

func (e *InvalidInputLengthError) Is(target error) bool { return target == ErrInvalidInputLength }

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%s: %q at position %d is not a %s", ErrInvalidCharacter, e.Char, e.Position, e.Role)
}

func (e *InvalidCharacterError) Is(target error) bool { return target == ErrInvalidCharacter }

func (e *InvalidFormatError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s: %s at position %d", ErrInvalidFormat, e.Reason, e.Position)
	}
	return fmt.Sprintf("%s: %s, got %d characters", ErrInvalidFormat, e.Reason, e.Length)
}

func (e *InvalidFormatError) Is(target error) bool { return target == ErrInvalidFormat }

//

func newProquintLookup(table string) *proquintLookup {
	l := &proquintLookup{}
	for n := range l {
		l[n] = proquintAbsent
	}
	for n := 0; n < len(table); n++ {
		l[table[n]] = byte(n)
	}
	return l
}

func (l *proquintLookup) value(c byte) (uint16, bool) {
	v := l[c]
	if v == proquintAbsent {
		return 0, false
	}
	return uint16(v), true
}

//

// ProquintLen returns the length of the proquint for n bytes.
func ProquintLen(n int) int {
	if n == 0 {
		return 0
	}
	return n/2*proquintStride - 1
}

// ProquintDecodedLen returns the number of bytes encoded by
// a proquint of length n.
func ProquintDecodedLen(n int) int {
	if n == 0 {
		return 0
	}
	return (n + 1) / proquintStride * 2
}

func appendProquintSyllable(buf []byte, word uint16) []byte {
	return append(buf,
		ProquintConsonants[word>>proquintShift1&proquintConsonantMask],
		ProquintVowels[word>>proquintShift2&proquintVowelMask],
		ProquintConsonants[word>>proquintShift3&proquintConsonantMask],
		ProquintVowels[word>>proquintShift4&proquintVowelMask],
		ProquintConsonants[word>>proquintShift5&proquintConsonantMask],
	)
}

// ProquintEncode encodes an even number of bytes as a proquint.
func ProquintEncode(buf []byte) (string, error) {
	if len(buf)%2 != 0 {
		return "", &InvalidInputLengthError{Length: len(buf)}
	}

	out := make([]byte, 0, ProquintLen(len(buf)))
	for n := 0; n < len(buf); n += 2 {
		if n > 0 {
			out = append(out, ProquintSeparator)
		}
		out = appendProquintSyllable(out, uint16(buf[n])<<8|uint16(buf[n+1]))
	}

	return string(out), nil
}

func decodeProquintSyllable(s string, offset int) (uint16, error) {
	var (
		word uint16
		v    uint16
		ok   bool
	)
	for n, role := range proquintRoles {
		c := s[offset+n]
		switch role {
		case ProquintRoleConsonant:
			v, ok = proquintConsonantValues.value(c)
			word = word<<proquintConsonantBits | v
		default:
			v, ok = proquintVowelValues.value(c)
			word = word<<proquintVowelBits | v
		}
		if !ok {
			return 0, &InvalidCharacterError{
				Char:     c,
				Position: offset + n,
				Role:     role,
			}
		}
	}
	return word, nil
}

// ProquintDecode decodes a proquint back into bytes.
func ProquintDecode(s string) ([]byte, error) {
	if (len(s)+1)%proquintStride != 0 {
		if len(s) == 0 {
			return []byte{}, nil
		}
		return nil, &InvalidFormatError{
			Length:   len(s),
			Position: -1,
			Reason:   "length does not match any number of syllables",
		}
	}

	buf := make([]byte, 0, ProquintDecodedLen(len(s)))
	for offset := 0; offset < len(s); offset += proquintStride {
		if offset > 0 && s[offset-1] != ProquintSeparator {
			return nil, &InvalidFormatError{
				Length:   len(s),
				Position: offset - 1,
				Reason:   fmt.Sprintf("expected separator %q, got %q", ProquintSeparator, s[offset-1]),
			}
		}
		word, err := decodeProquintSyllable(s, offset)
		if err != nil {
			return nil, err
		}
		buf = append(buf, byte(word>>8), byte(word))
	}

	return buf, nil
}

// IsProquint reports whether s is a well formed proquint.
func IsProquint(s string) bool {
	_, err := ProquintDecode(s)
	return err == nil
}

// ProquintSyllables splits a well formed proquint into syllables.
func ProquintSyllables(s string) ([]string, error) {
	if _, err := ProquintDecode(s); err != nil {
		return nil, err
	}
	if s == "" {
		return []string{}, nil
	}
	return strings.Split(s, string(ProquintSeparator)), nil
}
