package encoding

import (
	"github.com/klauspost/compress/zstd"

	"github.com/corpix/proquint/errors"
)

// ZstdMaxDecodedSize is the default limit of decompressed data size.
const ZstdMaxDecodedSize = 1 << 20

var ErrZstdSizeExceeded = errors.New("zstd decompressed size limit exceeded")

// EncodeDecoderZstd compresses with zstd and represents the result as base64.
// Decode refuses frames which inflate beyond MaxDecodedSize.
type EncodeDecoderZstd struct {
	*EncodeDecoderBase64
	MaxDecodedSize uint64
}

var _ EncodeDecoder = &EncodeDecoderZstd{}

//

// Encode compresses buf as a single frame, window is sized to the input.
func (e *EncodeDecoderZstd) Encode(buf []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	return e.EncodeDecoderBase64.Encode(enc.EncodeAll(buf, nil))
}

func (e *EncodeDecoderZstd) Decode(buf []byte) ([]byte, error) {
	compressed, err := e.EncodeDecoderBase64.Decode(buf)
	if err != nil {
		return nil, err
	}

	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(e.MaxDecodedSize))
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	res, err := decoder.DecodeAll(compressed, nil)
	switch {
	case errors.Is(err, zstd.ErrDecoderSizeExceeded), errors.Is(err, zstd.ErrWindowSizeExceeded):
		return nil, errors.Wrapf(ErrZstdSizeExceeded, "more than %d bytes", e.MaxDecodedSize)
	case err != nil:
		return nil, errors.Wrap(err, "failed to decompress zstd")
	}
	return res, nil
}

func NewEncodeDecoderZstd() *EncodeDecoderZstd {
	return &EncodeDecoderZstd{
		EncodeDecoderBase64: NewEncodeDecoderBase64(),
		MaxDecodedSize:      ZstdMaxDecodedSize,
	}
}
