package encoding

import (
	"encoding/binary"
	"strconv"

	"github.com/corpix/proquint/errors"
)

// EncodeDecoderUint represents big-endian unsigned integers
// of a fixed width as decimal (or 0x prefixed hex) text.
type EncodeDecoderUint struct {
	Size int
}

var _ EncodeDecoder = &EncodeDecoderUint{}

func (e *EncodeDecoderUint) Encode(buf []byte) ([]byte, error) {
	if len(buf) != e.Size {
		return nil, errors.Errorf("uint%d should be %d bytes long, got %d", e.Size*8, e.Size, len(buf))
	}
	var x uint64
	for _, b := range buf {
		x = x<<8 | uint64(b)
	}
	return strconv.AppendUint(nil, x, 10), nil
}

func (e *EncodeDecoderUint) Decode(buf []byte) ([]byte, error) {
	x, err := strconv.ParseUint(string(buf), 0, e.Size*8)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse uint%d", e.Size*8)
	}
	res := make([]byte, 8)
	binary.BigEndian.PutUint64(res, x)
	return res[8-e.Size:], nil
}

func NewEncodeDecoderUint(size int) *EncodeDecoderUint {
	return &EncodeDecoderUint{Size: size}
}

//

func EncodeUint16(x uint16) string {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, x)
	s, _ := ProquintEncode(buf)
	return s
}

func EncodeUint32(x uint32) string {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, x)
	s, _ := ProquintEncode(buf)
	return s
}

func EncodeUint64(x uint64) string {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, x)
	s, _ := ProquintEncode(buf)
	return s
}

func decodeUint(s string, size int) ([]byte, error) {
	buf, err := ProquintDecode(s)
	if err != nil {
		return nil, err
	}
	if len(buf) != size {
		return nil, &InvalidFormatError{
			Length:   len(s),
			Position: -1,
			Reason:   "expected " + strconv.Itoa(size/2) + " syllables",
		}
	}
	return buf, nil
}

func DecodeUint16(s string) (uint16, error) {
	buf, err := decodeUint(s, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

func DecodeUint32(s string) (uint32, error) {
	buf, err := decodeUint(s, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

func DecodeUint64(s string) (uint64, error) {
	buf, err := decodeUint(s, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf), nil
}
