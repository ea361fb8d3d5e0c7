package http

import (
	"net"
	"net/netip"

	"github.com/corpix/proquint/crypto"
	"github.com/corpix/proquint/encoding"
	"github.com/corpix/proquint/template"
)

const (
	TemplateContextKeyRequest    template.ContextKey = "request"
	TemplateContextKeyIdentifier template.ContextKey = "identifier"
	TemplateContextKeyAddress    template.ContextKey = "address"
	TemplateContextKeyFrom       template.ContextKey = "from"
	TemplateContextKeyTo         template.ContextKey = "to"
	TemplateContextKeyValue      template.ContextKey = "value"
	TemplateContextKeyResult     template.ContextKey = "result"
	TemplateContextKeyError      template.ContextKey = "error"
)

const (
	IndexDefaultFrom = string(encoding.EncodeDecoderTypeIP)
	IndexDefaultTo   = string(encoding.EncodeDecoderTypeProquint)
)

const IndexTemplate = `<!doctype html>
<html>
  <head><title>proquint</title></head>
  <body>
    <h1>{{ .identifier }}</h1>
    {{- with .address }}
    <p>{{ . }} is {{ proquint "ip" . }}</p>
    {{- end }}
    <form method="get">
      <select name="from">
        {{- range formats }}<option{{ if eq . $.from }} selected{{ end }}>{{ . }}</option>{{ end -}}
      </select>
      <select name="to">
        {{- range formats }}<option{{ if eq . $.to }} selected{{ end }}>{{ . }}</option>{{ end -}}
      </select>
      <input name="value" value="{{ .value }}">
      <button type="submit">convert</button>
    </form>
    {{- with .result }}
    <p class="result">{{ . }}</p>
    {{- end }}
    {{- with .error }}
    <p class="error">{{ . }}</p>
    {{- end }}
    <p>formats: {{ formats | join ", " }}</p>
    <p><img src="api/qr/{{ .identifier }}" alt="{{ .identifier }}"></p>
  </body>
</html>
`

func NewTemplateContext(r *Request) template.Context {
	return template.NewContext().
		With(TemplateContextKeyRequest, r)
}

// RemoteAddress returns client ip address without port,
// empty string if it could not be parsed.
func RemoteAddress(r *Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return ""
	}
	return addr.WithZone("").String()
}

func (a *Api) HandleIndex(w ResponseWriter, r *Request) {
	id, err := crypto.RandomIdentifier(a.Rand, a.Config.Random.Size)
	if err != nil {
		a.fail(w, r, StatusInternalServerError, err)
		return
	}

	query := r.URL.Query()
	from := query.Get("from")
	if from == "" {
		from = IndexDefaultFrom
	}
	to := query.Get("to")
	if to == "" {
		to = IndexDefaultTo
	}

	ctx := NewTemplateContext(r).
		With(TemplateContextKeyIdentifier, id).
		With(TemplateContextKeyAddress, RemoteAddress(r)).
		With(TemplateContextKeyFrom, from).
		With(TemplateContextKeyTo, to).
		With(TemplateContextKeyValue, query.Get("value"))

	if value := query.Get("value"); value != "" {
		res, err := a.convert(from, to, value)
		if err != nil {
			ctx.With(TemplateContextKeyError, err.Error())
		} else {
			ctx.With(TemplateContextKeyResult, res)
		}
	}

	w.Header().Set(HeaderContentType, MimeTextHtml)
	err = a.Index.Execute(w, ctx)
	if err != nil {
		l := RequestLogGet(r)
		l.Error().Err(err).Msg("failed to render index")
	}
}
