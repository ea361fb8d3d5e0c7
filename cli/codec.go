package cli

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/corpix/proquint/config"
	"github.com/corpix/proquint/crypto"
	"github.com/corpix/proquint/encoding"
	"github.com/corpix/proquint/errors"
	"github.com/corpix/proquint/log"
)

const (
	proquintFormat = string(encoding.EncodeDecoderTypeProquint)
	stdio          = "-"
)

// values returns positional arguments or, if there are none,
// non-empty lines read from the application reader.
func values(ctx *Context) ([]string, error) {
	if ctx.Args().Present() {
		return ctx.Args().Slice(), nil
	}

	res := []string{}
	scanner := bufio.NewScanner(ctx.App.Reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		res = append(res, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}
	return res, nil
}

func convert(ctx *Context, from string, to string) error {
	vs, err := values(ctx)
	if err != nil {
		return err
	}

	log.Debug().
		Str("from", from).
		Str("to", to).
		Int("count", len(vs)).
		Msg("converting")

	for _, v := range vs {
		res, err := encoding.ConvertNamed(from, to, []byte(v))
		if err != nil {
			return errors.Wrapf(err, "failed to convert %q", v)
		}
		fmt.Fprintln(ctx.App.Writer, string(res))
	}
	return nil
}

func formatFlag(name string, alias string, usage string) *StringFlag {
	return &StringFlag{
		Name:    name,
		Aliases: []string{alias},
		Usage:   usage + " (" + strings.Join(encoding.Names(), ", ") + ")",
	}
}

func formatFromContext(ctx *Context, name string, fallback string) string {
	if v := ctx.String(name); v != "" {
		return v
	}
	return fallback
}

//

func encodeCommand(cfg func() *config.CodecConfig) *Command {
	return &Command{
		Name:      "encode",
		Aliases:   []string{"e"},
		Usage:     "Encode values into proquints",
		ArgsUsage: "[value...]",
		Flags: Flags{
			formatFlag("from", "f", "input format"),
		},
		Action: func(ctx *Context) error {
			return convert(ctx, formatFromContext(ctx, "from", cfg().Input), proquintFormat)
		},
	}
}

func decodeCommand(cfg func() *config.CodecConfig) *Command {
	return &Command{
		Name:      "decode",
		Aliases:   []string{"d"},
		Usage:     "Decode proquints into values",
		ArgsUsage: "[proquint...]",
		Flags: Flags{
			formatFlag("to", "t", "output format"),
		},
		Action: func(ctx *Context) error {
			return convert(ctx, proquintFormat, formatFromContext(ctx, "to", cfg().Output))
		},
	}
}

func convertCommand(cfg func() *config.CodecConfig) *Command {
	return &Command{
		Name:      "convert",
		Aliases:   []string{"c"},
		Usage:     "Convert values between formats",
		ArgsUsage: "[value...]",
		Flags: Flags{
			formatFlag("from", "f", "input format"),
			formatFlag("to", "t", "output format"),
		},
		Action: func(ctx *Context) error {
			return convert(ctx,
				formatFromContext(ctx, "from", cfg().Input),
				formatFromContext(ctx, "to", cfg().Output),
			)
		},
	}
}

func randomCommand() *Command {
	return &Command{
		Name:    "random",
		Aliases: []string{"r"},
		Usage:   "Generate random proquint identifiers",
		Flags: Flags{
			&IntFlag{
				Name:    "size",
				Aliases: []string{"s"},
				Usage:   "number of random bytes, should be even",
				Value:   4,
			},
			&IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "number of identifiers to generate",
				Value:   1,
			},
		},
		Action: func(ctx *Context) error {
			for n := 0; n < ctx.Int("count"); n++ {
				id, err := crypto.RandomIdentifier(crypto.DefaultRand, ctx.Int("size"))
				if err != nil {
					return err
				}
				fmt.Fprintln(ctx.App.Writer, id)
			}
			return nil
		},
	}
}

func uuidCommand() *Command {
	return &Command{
		Name:  "uuid",
		Usage: "Generate random UUIDs along with their proquints",
		Flags: Flags{
			&IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "number of identifiers to generate",
				Value:   1,
			},
		},
		Action: func(ctx *Context) error {
			for n := 0; n < ctx.Int("count"); n++ {
				id, err := uuid.NewRandom()
				if err != nil {
					return errors.Wrap(err, "failed to generate uuid")
				}
				pq, err := encoding.ProquintEncode(id[:])
				if err != nil {
					return err
				}
				fmt.Fprintf(ctx.App.Writer, "%s\t%s\n", id, pq)
			}
			return nil
		},
	}
}

func seedCommand() *Command {
	return &Command{
		Name:  "seed",
		Usage: "Generate a 128 bit secret seed and show the ed25519 public key derived from it",
		Flags: Flags{
			&StringFlag{
				Name:    "secret",
				Aliases: []string{"s"},
				Usage:   "existing seed like lusab-babad-gutih-tugad.gutuk-bisog-mudof-sakat",
			},
		},
		Action: func(ctx *Context) error {
			var (
				seed crypto.Seed
				err  error
			)
			if secret := ctx.String("secret"); secret != "" {
				seed, err = crypto.ParseSeed(secret)
			} else {
				seed, err = crypto.NewSeed(crypto.DefaultRand)
			}
			if err != nil {
				return err
			}

			public, _, err := seed.KeyPair()
			if err != nil {
				return err
			}

			fmt.Fprintf(ctx.App.Writer, "seed:       %s\n", seed)
			fmt.Fprintf(ctx.App.Writer, "public key: %s\n", base64.StdEncoding.EncodeToString(public))
			return nil
		},
	}
}

func qrCommand() *Command {
	return &Command{
		Name:      "qr",
		Usage:     "Render proquint as a QR code PNG image",
		ArgsUsage: "<proquint>",
		Flags: Flags{
			&StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "path to write PNG image into, - for stdout",
				Value:   stdio,
			},
			&IntFlag{
				Name:  "size",
				Usage: "image size in pixels",
				Value: 256,
			},
		},
		Action: func(ctx *Context) error {
			if ctx.Args().Len() != 1 {
				return errors.New("expected exactly one proquint argument")
			}
			pq := ctx.Args().First()
			if _, err := encoding.ProquintDecode(pq); err != nil {
				return err
			}

			png, err := qrcode.Encode(pq, qrcode.Medium, ctx.Int("size"))
			if err != nil {
				return errors.Wrap(err, "failed to render qr code")
			}

			var w io.Writer = ctx.App.Writer
			if path := ctx.String("output"); path != stdio {
				f, err := os.Create(path)
				if err != nil {
					return errors.Wrapf(err, "failed to create %q", path)
				}
				defer f.Close()
				w = f
			}

			_, err = w.Write(png)
			return err
		},
	}
}

// WithCodecTools adds conversion and identifier generation commands.
func WithCodecTools(cfg func() *config.CodecConfig) Option {
	return WithCommands(Commands{
		encodeCommand(cfg),
		decodeCommand(cfg),
		convertCommand(cfg),
		randomCommand(),
		uuidCommand(),
		seedCommand(),
		qrCommand(),
	})
}
