package http

import (
	"context"
	"net/http"
	"time"

	"github.com/corpix/proquint/di"
	"github.com/corpix/proquint/errors"
	"github.com/corpix/proquint/log"
)

type (
	Option         func(*Http)
	Handler        = http.Handler
	HandlerFunc    = http.HandlerFunc
	Middleware     = func(Handler) Handler
	Request        = http.Request
	ResponseWriter = http.ResponseWriter
	Server         = http.Server
	ContextKey     uint8

	Config struct {
		Address string         `yaml:"address,omitempty"`
		Prefix  string         `yaml:"prefix,omitempty"`
		Metrics *MetricsConfig `yaml:"metrics,omitempty"`
		Trace   *TraceConfig   `yaml:"trace,omitempty"`
		Random  *RandomConfig  `yaml:"random,omitempty"`
	}
	RandomConfig struct {
		Size    int `yaml:"size"`
		MaxSize int `yaml:"max-size"`
	}
	Http struct {
		Config  *Config
		Address string
		Router  *Router
		Handler Handler
	}
)

const (
	MethodGet  = http.MethodGet
	MethodPost = http.MethodPost

	StatusOK                  = http.StatusOK
	StatusBadRequest          = http.StatusBadRequest
	StatusNotFound            = http.StatusNotFound
	StatusUnsupportedMedia    = http.StatusUnsupportedMediaType
	StatusInternalServerError = http.StatusInternalServerError

	HeaderRequestId     = "x-request-id"
	HeaderAuthorization = "authorization"
	HeaderAccept        = "accept"
	HeaderContentType   = "content-type"

	AuthTokenTypeBearer = "bearer"

	DefaultAddress = "127.0.0.1:8080"

	shutdownTimeout = 5 * time.Second
)

func (c *Config) Default() {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{}
	}
	c.Metrics.Default()
	if c.Trace == nil {
		c.Trace = &TraceConfig{}
	}
	c.Trace.Default()
	if c.Random == nil {
		c.Random = &RandomConfig{}
	}
	c.Random.Default()

	if c.Metrics.Enable {
		c.Trace.SkipPaths[c.Metrics.Path] = struct{}{}
	}
}

func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("address should not be empty")
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	return c.Random.Validate()
}

func (c *RandomConfig) Default() {
	if c.Size == 0 {
		c.Size = 4
	}
	if c.MaxSize == 0 {
		c.MaxSize = 64
	}
}

func (c *RandomConfig) Validate() error {
	if c.Size <= 0 || c.Size%2 != 0 {
		return errors.Errorf("random size should be a positive even number, got %d", c.Size)
	}
	if c.MaxSize < c.Size {
		return errors.Errorf("random max-size %d should not be less than size %d", c.MaxSize, c.Size)
	}
	return nil
}

//

// Compose wraps h into middleware, first middleware becomes the outermost.
func Compose(h Handler, middleware ...Middleware) Handler {
	for n := len(middleware) - 1; n >= 0; n-- {
		h = middleware[n](h)
	}
	return h
}

func WithAddress(addr string) Option {
	return func(h *Http) { h.Address = addr }
}

func WithProvide(cont *di.Container) Option {
	return func(h *Http) {
		di.MustProvide(cont, func() *Http { return h })
	}
}

func WithInvoke(cont *di.Container, f di.Function) Option {
	return func(h *Http) { di.MustInvoke(cont, f) }
}

func WithMiddleware(middleware ...Middleware) Option {
	return func(h *Http) {
		h.Handler = Compose(h.Handler, middleware...)
	}
}

func (h *Http) ServeHTTP(w ResponseWriter, r *Request) {
	h.Handler.ServeHTTP(w, r)
}

// ListenAndServe serves requests until ctx is done,
// then gracefully shuts the server down.
func (h *Http) ListenAndServe(ctx context.Context) error {
	if h.Address == "" {
		return errors.New("no address was defined for http server to listen on (use WithAddress Option)")
	}
	if h.Handler == nil {
		return errors.New("no handler assigned to the server")
	}

	srv := &Server{
		Addr:    h.Address,
		Handler: h.Handler,
	}
	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("address", h.Address).Msg("starting http server")
	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}

func New(c *Config, options ...Option) *Http {
	r := NewRouter(c)
	h := &Http{
		Config:  c,
		Address: c.Address,
		Router:  r,
		Handler: r,
	}
	for _, option := range options {
		option(h)
	}

	return h
}
