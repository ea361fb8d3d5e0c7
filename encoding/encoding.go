package encoding

import (
	"strings"

	"github.com/corpix/proquint/errors"
	"github.com/corpix/proquint/reflect"
)

type (
	// EncodeDecoder converts raw bytes into the textual form of a format (Encode)
	// and back (Decode).
	EncodeDecoder interface {
		Encode([]byte) ([]byte, error)
		Decode([]byte) ([]byte, error)
	}
	EncodeDecoderType string
)

const (
	EncodeDecoderTypeProquint EncodeDecoderType = "proquint"
	EncodeDecoderTypeHex      EncodeDecoderType = "hex"
	EncodeDecoderTypeBase64   EncodeDecoderType = "base64"
	EncodeDecoderTypeZstd     EncodeDecoderType = "zstd"
	EncodeDecoderTypeIP       EncodeDecoderType = "ip"
	EncodeDecoderTypeUint16   EncodeDecoderType = "uint16"
	EncodeDecoderTypeUint32   EncodeDecoderType = "uint32"
	EncodeDecoderTypeUint64   EncodeDecoderType = "uint64"
	EncodeDecoderTypeRaw      EncodeDecoderType = "raw"
)

var (
	ErrUnknownFormat = errors.New("unknown format")

	EncodeDecoders = map[EncodeDecoderType]func() EncodeDecoder{
		EncodeDecoderTypeProquint: func() EncodeDecoder { return NewEncodeDecoderProquint() },
		EncodeDecoderTypeHex:      func() EncodeDecoder { return NewEncodeDecoderHex() },
		EncodeDecoderTypeBase64:   func() EncodeDecoder { return NewEncodeDecoderBase64() },
		EncodeDecoderTypeZstd:     func() EncodeDecoder { return NewEncodeDecoderZstd() },
		EncodeDecoderTypeIP:       func() EncodeDecoder { return NewEncodeDecoderIP() },
		EncodeDecoderTypeUint16:   func() EncodeDecoder { return NewEncodeDecoderUint(2) },
		EncodeDecoderTypeUint32:   func() EncodeDecoder { return NewEncodeDecoderUint(4) },
		EncodeDecoderTypeUint64:   func() EncodeDecoder { return NewEncodeDecoderUint(8) },
		EncodeDecoderTypeRaw:      func() EncodeDecoder { return NewEncodeDecoderRaw() },
	}
)

// Names returns sorted names of the known formats.
func Names() []string {
	return reflect.MapSortedKeys(reflect.ValueOf(EncodeDecoders))
}

func NewEncodeDecoder(t string) (EncodeDecoder, error) {
	constructor, ok := EncodeDecoders[EncodeDecoderType(strings.ToLower(t))]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "%q, expected one of %s", t, strings.Join(Names(), ", "))
	}
	return constructor(), nil
}

// Convert decodes buf from one format and encodes the result into another.
func Convert(from EncodeDecoder, to EncodeDecoder, buf []byte) ([]byte, error) {
	raw, err := from.Decode(buf)
	if err != nil {
		return nil, err
	}
	return to.Encode(raw)
}

// ConvertNamed is Convert for formats referenced by name.
func ConvertNamed(from string, to string, buf []byte) ([]byte, error) {
	fromEncodeDecoder, err := NewEncodeDecoder(from)
	if err != nil {
		return nil, err
	}
	toEncodeDecoder, err := NewEncodeDecoder(to)
	if err != nil {
		return nil, err
	}

	res, err := Convert(fromEncodeDecoder, toEncodeDecoder, buf)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to convert from %s to %s", from, to)
	}
	return res, nil
}
