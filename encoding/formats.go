package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"net/netip"
	"strings"

	"github.com/corpix/proquint/errors"
)

type (
	EncodeDecoderProquint struct{}
	EncodeDecoderHex      struct{}
	EncodeDecoderBase64   struct{}
	EncodeDecoderIP       struct{}
	EncodeDecoderRaw      struct{}
)

var (
	_ EncodeDecoder = &EncodeDecoderProquint{}
	_ EncodeDecoder = &EncodeDecoderHex{}
	_ EncodeDecoder = &EncodeDecoderBase64{}
	_ EncodeDecoder = &EncodeDecoderIP{}
	_ EncodeDecoder = &EncodeDecoderRaw{}
)

//

func (e *EncodeDecoderProquint) Encode(buf []byte) ([]byte, error) {
	s, err := ProquintEncode(buf)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (e *EncodeDecoderProquint) Decode(buf []byte) ([]byte, error) {
	return ProquintDecode(string(buf))
}

func NewEncodeDecoderProquint() *EncodeDecoderProquint {
	return &EncodeDecoderProquint{}
}

//

func (e *EncodeDecoderHex) Encode(buf []byte) ([]byte, error) {
	res := make([]byte, hex.EncodedLen(len(buf)))
	hex.Encode(res, buf)
	return res, nil
}

func (e *EncodeDecoderHex) Decode(buf []byte) ([]byte, error) {
	s := strings.TrimPrefix(strings.ToLower(string(buf)), "0x")
	res, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode hex %q", buf)
	}
	return res, nil
}

func NewEncodeDecoderHex() *EncodeDecoderHex {
	return &EncodeDecoderHex{}
}

//

var base64Normalizer = strings.NewReplacer("+", "-", "/", "_")

// Encode emits unpadded url-safe base64.
func (e *EncodeDecoderBase64) Encode(buf []byte) ([]byte, error) {
	res := make([]byte, base64.RawURLEncoding.EncodedLen(len(buf)))
	base64.RawURLEncoding.Encode(res, buf)
	return res, nil
}

// Decode accepts both standard and url-safe alphabets, padded or not.
func (e *EncodeDecoderBase64) Decode(buf []byte) ([]byte, error) {
	s := base64Normalizer.Replace(strings.TrimRight(string(buf), "="))
	res, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode base64")
	}
	return res, nil
}

func NewEncodeDecoderBase64() *EncodeDecoderBase64 {
	return &EncodeDecoderBase64{}
}

//

// Encode renders 4 bytes as IPv4 and 16 bytes as IPv6,
// IPv4-mapped addresses keep their ::ffff: form.
func (e *EncodeDecoderIP) Encode(buf []byte) ([]byte, error) {
	addr, ok := netip.AddrFromSlice(buf)
	if !ok {
		return nil, errors.Errorf(
			"ip address should be %d or %d bytes long, got %d",
			ipv4Len, ipv6Len, len(buf),
		)
	}
	return []byte(addr.String()), nil
}

func (e *EncodeDecoderIP) Decode(buf []byte) ([]byte, error) {
	addr, err := netip.ParseAddr(string(buf))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse ip address %q", buf)
	}
	if addr.Zone() != "" {
		return nil, errors.Errorf("ip address %q should not have a zone", buf)
	}
	return addr.AsSlice(), nil
}

const (
	ipv4Len = 4
	ipv6Len = 16
)

func NewEncodeDecoderIP() *EncodeDecoderIP {
	return &EncodeDecoderIP{}
}

//

func (e *EncodeDecoderRaw) Encode(buf []byte) ([]byte, error) { return buf, nil }
func (e *EncodeDecoderRaw) Decode(buf []byte) ([]byte, error) { return buf, nil }

func NewEncodeDecoderRaw() *EncodeDecoderRaw {
	return &EncodeDecoderRaw{}
}
