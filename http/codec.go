package http

import (
	"encoding/json"
	"io"
	"mime"
	"strings"

	"github.com/fxamacker/cbor/v2"
	msgpack "github.com/vmihailenco/msgpack/v5"

	"github.com/corpix/proquint/errors"
)

type (
	// Codec marshals API payloads for a single media type.
	Codec interface {
		ContentType() string
		Marshal(interface{}) ([]byte, error)
		Unmarshal([]byte, interface{}) error
	}
	CodecJson    struct{}
	CodecMsgpack struct{}
	CodecCbor    struct {
		enc cbor.EncMode
		dec cbor.DecMode
	}
)

const (
	MimeApplicationJson    = "application/json"
	MimeApplicationMsgpack = "application/msgpack"
	MimeApplicationCbor    = "application/cbor"
	MimeTextHtml           = "text/html; charset=utf-8"
	MimeImagePng           = "image/png"

	maxBodySize = 64 * 1024
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	Codecs = map[string]Codec{
		MimeApplicationJson:       CodecJson{},
		MimeApplicationMsgpack:    CodecMsgpack{},
		"application/x-msgpack":   CodecMsgpack{},
		"application/vnd.msgpack": CodecMsgpack{},
		MimeApplicationCbor:       NewCodecCbor(),
	}
	DefaultCodec Codec = CodecJson{}
)

func (CodecJson) ContentType() string                       { return MimeApplicationJson }
func (CodecJson) Marshal(v interface{}) ([]byte, error)     { return json.Marshal(v) }
func (CodecJson) Unmarshal(buf []byte, v interface{}) error { return json.Unmarshal(buf, v) }

func (CodecMsgpack) ContentType() string                       { return MimeApplicationMsgpack }
func (CodecMsgpack) Marshal(v interface{}) ([]byte, error)     { return msgpack.Marshal(v) }
func (CodecMsgpack) Unmarshal(buf []byte, v interface{}) error { return msgpack.Unmarshal(buf, v) }

func (c CodecCbor) ContentType() string                       { return MimeApplicationCbor }
func (c CodecCbor) Marshal(v interface{}) ([]byte, error)     { return c.enc.Marshal(v) }
func (c CodecCbor) Unmarshal(buf []byte, v interface{}) error { return c.dec.Unmarshal(buf, v) }

// NewCodecCbor uses deterministic encoding, same payload always
// produces the same bytes.
func NewCodecCbor() CodecCbor {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
	return CodecCbor{enc: enc, dec: dec}
}

//

func mediaType(header string) string {
	t, _, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return strings.ToLower(t)
}

// RequestCodec selects codec for the request body by content type.
func RequestCodec(r *Request) (Codec, error) {
	header := r.Header.Get(HeaderContentType)
	if header == "" {
		return DefaultCodec, nil
	}
	c, ok := Codecs[mediaType(header)]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedMediaType, "%q", header)
	}
	return c, nil
}

// ResponseCodec selects codec for the response by the first
// supported media type in the accept header.
func ResponseCodec(r *Request) Codec {
	for _, accepted := range strings.Split(r.Header.Get(HeaderAccept), ",") {
		if c, ok := Codecs[mediaType(strings.TrimSpace(accepted))]; ok {
			return c
		}
	}
	return DefaultCodec
}

func ReadRequest(r *Request, v interface{}) error {
	c, err := RequestCodec(r)
	if err != nil {
		return err
	}
	buf, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return errors.Wrap(err, "failed to read request body")
	}
	err = c.Unmarshal(buf, v)
	if err != nil {
		return errors.Wrapf(err, "failed to decode %s request body", c.ContentType())
	}
	return nil
}

func WriteResponse(w ResponseWriter, r *Request, code int, v interface{}) {
	c := ResponseCodec(r)
	buf, err := c.Marshal(v)
	if err != nil {
		l := RequestLogGet(r)
		l.Error().Err(err).Msg("failed to marshal response")
		w.WriteHeader(StatusInternalServerError)
		return
	}

	w.Header().Set(HeaderContentType, c.ContentType())
	w.WriteHeader(code)
	_, err = w.Write(buf)
	if err != nil {
		l := RequestLogGet(r)
		l.Warn().Err(err).Msg("failed to write response")
	}
}
