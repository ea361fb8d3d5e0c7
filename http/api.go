package http

import (
	"io"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/corpix/proquint/crypto"
	"github.com/corpix/proquint/encoding"
	"github.com/corpix/proquint/errors"
	"github.com/corpix/proquint/metrics"
	"github.com/corpix/proquint/template"
)

type (
	ConvertRequest struct {
		From  string `json:"from" msgpack:"from"`
		To    string `json:"to" msgpack:"to"`
		Value string `json:"value" msgpack:"value"`
	}
	ConvertResponse struct {
		From   string `json:"from" msgpack:"from"`
		To     string `json:"to" msgpack:"to"`
		Value  string `json:"value" msgpack:"value"`
		Result string `json:"result" msgpack:"result"`
	}
	RandomResponse struct {
		Size   int    `json:"size" msgpack:"size"`
		Result string `json:"result" msgpack:"result"`
	}
	ErrorResponse struct {
		Error string `json:"error" msgpack:"error"`
	}

	Api struct {
		Config      *Config
		Rand        io.Reader
		Conversions *metrics.Conversions
		Index       *template.Template
	}
	ApiOption func(*Api)
)

const (
	QrSize = 256

	proquintFormat = string(encoding.EncodeDecoderTypeProquint)
)

func WithApiRand(r io.Reader) ApiOption {
	return func(a *Api) { a.Rand = r }
}

func WithApiConversions(c *metrics.Conversions) ApiOption {
	return func(a *Api) { a.Conversions = c }
}

func NewApi(c *Config, options ...ApiOption) *Api {
	a := &Api{
		Config: c,
		Rand:   crypto.DefaultRand,
		Index:  template.Must(template.Parse("index", IndexTemplate)),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Register mounts api routes on the router.
func (a *Api) Register(r *Router) {
	r.HandleFunc("/", a.HandleIndex).Methods(MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/formats", a.HandleFormats).Methods(MethodGet)
	api.HandleFunc("/convert", a.HandleConvert).Methods(MethodPost)
	api.HandleFunc("/encode/{format}/{value}", a.HandleEncode).Methods(MethodGet)
	api.HandleFunc("/decode/{format}/{value}", a.HandleDecode).Methods(MethodGet)
	api.HandleFunc("/random", a.HandleRandom).Methods(MethodGet)
	api.HandleFunc("/qr/{proquint}", a.HandleQr).Methods(MethodGet)
}

func (a *Api) convert(from string, to string, value string) (string, error) {
	res, err := encoding.ConvertNamed(from, to, []byte(value))
	if a.Conversions != nil {
		a.Conversions.Observe(formatLabel(from), formatLabel(to), err)
	}
	if err != nil {
		return "", err
	}
	return string(res), nil
}

// formatLabel keeps metric label values bounded by the known format names.
func formatLabel(name string) string {
	name = strings.ToLower(name)
	if _, ok := encoding.EncodeDecoders[encoding.EncodeDecoderType(name)]; !ok {
		return metrics.LabelUnknown
	}
	return name
}

func (a *Api) fail(w ResponseWriter, r *Request, code int, err error) {
	l := RequestLogGet(r)
	l.Warn().Err(err).Int("code", code).Msg("request failed")
	WriteResponse(w, r, code, ErrorResponse{Error: err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, encoding.ErrUnknownFormat):
		return StatusNotFound
	case errors.Is(err, ErrUnsupportedMediaType):
		return StatusUnsupportedMedia
	default:
		return StatusBadRequest
	}
}

//

func (a *Api) HandleFormats(w ResponseWriter, r *Request) {
	WriteResponse(w, r, StatusOK, encoding.Names())
}

func (a *Api) HandleConvert(w ResponseWriter, r *Request) {
	req := ConvertRequest{}
	err := ReadRequest(r, &req)
	if err != nil {
		a.fail(w, r, errorStatus(err), err)
		return
	}

	res, err := a.convert(req.From, req.To, req.Value)
	if err != nil {
		a.fail(w, r, StatusBadRequest, err)
		return
	}

	WriteResponse(w, r, StatusOK, ConvertResponse{
		From:   req.From,
		To:     req.To,
		Value:  req.Value,
		Result: res,
	})
}

func (a *Api) handlePath(w ResponseWriter, r *Request, from string, to string) {
	value := GetURLVars(r)["value"]
	res, err := a.convert(from, to, value)
	if err != nil {
		a.fail(w, r, errorStatus(err), err)
		return
	}

	WriteResponse(w, r, StatusOK, ConvertResponse{
		From:   from,
		To:     to,
		Value:  value,
		Result: res,
	})
}

func (a *Api) HandleEncode(w ResponseWriter, r *Request) {
	a.handlePath(w, r, GetURLVars(r)["format"], proquintFormat)
}

func (a *Api) HandleDecode(w ResponseWriter, r *Request) {
	a.handlePath(w, r, proquintFormat, GetURLVars(r)["format"])
}

func (a *Api) HandleRandom(w ResponseWriter, r *Request) {
	size := a.Config.Random.Size
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			a.fail(w, r, StatusBadRequest, errors.Wrapf(err, "invalid size %q", raw))
			return
		}
		size = n
	}
	if size > a.Config.Random.MaxSize {
		a.fail(w, r, StatusBadRequest, errors.Errorf("size should not exceed %d bytes", a.Config.Random.MaxSize))
		return
	}

	id, err := crypto.RandomIdentifier(a.Rand, size)
	if err != nil {
		a.fail(w, r, StatusBadRequest, err)
		return
	}

	WriteResponse(w, r, StatusOK, RandomResponse{Size: size, Result: id})
}

func (a *Api) HandleQr(w ResponseWriter, r *Request) {
	pq := GetURLVars(r)["proquint"]
	if _, err := encoding.ProquintDecode(pq); err != nil {
		a.fail(w, r, StatusBadRequest, err)
		return
	}

	png, err := qrcode.Encode(pq, qrcode.Medium, QrSize)
	if err != nil {
		a.fail(w, r, StatusInternalServerError, errors.Wrap(err, "failed to render qr code"))
		return
	}

	w.Header().Set(HeaderContentType, MimeImagePng)
	w.WriteHeader(StatusOK)
	_, _ = w.Write(png)
}

//

func WithApi(options ...ApiOption) Option {
	return func(h *Http) {
		NewApi(h.Config, options...).Register(h.Router)
	}
}
