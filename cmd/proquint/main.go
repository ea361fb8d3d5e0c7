package main

import (
	"github.com/corpix/proquint/cli"
	"github.com/corpix/proquint/config"
	"github.com/corpix/proquint/di"
	"github.com/corpix/proquint/http"
)

var (
	version = "development"

	conf = &config.BaseConfig{}
)

func main() {
	cli.New(
		cli.WithName("proquint"),
		cli.WithUsage("Readable, spellable and pronounceable identifiers"),
		cli.WithDescription("Converts bytes, ip addresses and integers to and from proquints (https://arxiv.org/html/0901.4016)"),
		cli.WithVersion(version),
		cli.WithConfigTools(
			conf,
			config.YamlUnmarshaler,
			config.YamlMarshaler,
		),
		cli.WithLogTools(conf.LogConfig),
		cli.WithCodecTools(conf.CodecConfig),
		cli.WithHttpTools(
			conf.HttpConfig,
			http.WithProvide(di.Default),
			http.WithInvoke(
				di.Default,
				func(h *http.Http) {
					h.Router.
						HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
							w.Write([]byte("ok"))
						}).
						Methods(http.MethodGet)
				},
			),
		),
	).RunAndExitOnError()
}
