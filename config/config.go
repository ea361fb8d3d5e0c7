package config

import (
	"bytes"
	"os"

	"github.com/corpix/revip"

	"github.com/corpix/proquint/encoding"
	"github.com/corpix/proquint/errors"
	"github.com/corpix/proquint/http"
	"github.com/corpix/proquint/log"
)

type (
	Config       = revip.Config
	Container    = revip.Container
	Defaultable  = revip.Defaultable
	Validatable  = revip.Validatable
	Marshaler    = revip.Marshaler
	Unmarshaler  = revip.Unmarshaler
	SourceOption = revip.SourceOption
)

//

// CodecConfig holds formats used by conversion commands when
// they are not given on the command line.
type CodecConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

func (c *CodecConfig) Default() {
	if c.Input == "" {
		c.Input = string(encoding.EncodeDecoderTypeHex)
	}
	if c.Output == "" {
		c.Output = string(encoding.EncodeDecoderTypeHex)
	}
}

func (c *CodecConfig) Validate() error {
	if _, err := encoding.NewEncodeDecoder(c.Input); err != nil {
		return errors.Wrap(err, "invalid codec input format")
	}
	if _, err := encoding.NewEncodeDecoder(c.Output); err != nil {
		return errors.Wrap(err, "invalid codec output format")
	}
	return nil
}

//

type BaseConfig struct {
	Log   *log.Config  `yaml:"log"`
	Codec *CodecConfig `yaml:"codec"`
	Http  *http.Config `yaml:"http"`
}

func (c *BaseConfig) Default() {
	if c.Log == nil {
		c.Log = &log.Config{}
	}
	c.Log.Default()
	if c.Codec == nil {
		c.Codec = &CodecConfig{}
	}
	c.Codec.Default()
	if c.Http == nil {
		c.Http = &http.Config{}
	}
	c.Http.Default()
}

func (c *BaseConfig) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Codec.Validate(); err != nil {
		return err
	}
	return c.Http.Validate()
}

func (c *BaseConfig) LogConfig() *log.Config    { return c.Log }
func (c *BaseConfig) CodecConfig() *CodecConfig { return c.Codec }
func (c *BaseConfig) HttpConfig() *http.Config  { return c.Http }

//

var (
	FromFile       = revip.FromFile
	FromReader     = revip.FromReader
	Load           = revip.Load
	New            = revip.New
	Postprocess    = revip.Postprocess
	ToWriter       = revip.ToWriter
	WithDefaults   = revip.WithDefaults
	WithExpansion  = revip.WithExpansion
	WithValidation = revip.WithValidation

	YamlMarshaler   = revip.YamlMarshaler
	YamlUnmarshaler = revip.YamlUnmarshaler
)

// Exists reports whether configuration file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FromBytes loads configuration from in-memory buffer.
func FromBytes(buf []byte, unmarshaler Unmarshaler) SourceOption {
	return FromReader(bytes.NewReader(buf), unmarshaler)
}
