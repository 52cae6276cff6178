package main

import (
	"io"
	"os"

	"github.com/signadot/ido-format/go-ido"
	"github.com/signadot/ido-format/go-ido/encode"
	"github.com/signadot/ido-format/go-ido/layout"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	D      bool `cli:"name=d aliases=decompile desc='decompile binary input to text'"`
	C      bool `cli:"name=c aliases=compile desc='compile text input to binary'"`
	Verify bool `cli:"name=verify desc='check the input survives a round trip'"`

	File  string `cli:"name=f aliases=file desc='input file (default stdin)'"`
	Tags  string `cli:"name=tags desc='tag name table (toml)'"`
	V     bool   `cli:"name=v desc='report detected format and sizes on stderr'"`
	Color bool   `cli:"name=color desc='color decompiled output'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) table() (*layout.Table, error) {
	if cfg.Tags == "" {
		return layout.Builtin(), nil
	}
	return layout.LoadFile(cfg.Tags)
}

func (cfg *MainConfig) convOpts(t *layout.Table, w io.Writer) []ido.Option {
	res := []ido.Option{ido.WithTable(t)}
	if cfg.Color {
		return append(res, ido.WithColors(encode.NewColors()))
	}
	colorSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorSet = opt.Value != nil
		break
	}
	if colorSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, ido.WithColors(encode.NewColors()))
	}
	return res
}
