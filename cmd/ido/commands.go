package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Aliases:     []string{"output"},
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "ido").
		WithSynopsis("ido -d|-c [-verify] [-f file] [-o file] [opts] [file]").
		WithDescription("ido converts game containers between binary and text.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return idoMain(cfg, cc, args)
		})
}
