package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/ido-format/go-ido"
	"github.com/signadot/ido-format/go-ido/debug"
	"github.com/signadot/ido-format/go-ido/format"
	"github.com/signadot/ido-format/go-ido/layout"
	"github.com/signadot/ido-format/go-ido/shopdb"

	"github.com/fatih/color"
	"github.com/klauspost/compress/zlib"
	"github.com/scott-cotton/cli"
)

func idoMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.D, cfg.C) != 1 && !cfg.Verify {
		return fmt.Errorf("%w: must specify exactly one of -d[ecompile] -c[ompile]", cli.ErrUsage)
	}
	if cfg.D && cfg.C {
		return fmt.Errorf("%w: -d and -c are exclusive", cli.ErrUsage)
	}
	in, err := readInput(cfg, args)
	if err != nil {
		return err
	}
	f := format.Detect(in)
	if cfg.V {
		fmt.Fprintf(os.Stderr, "%s: %s, %d bytes\n",
			color.CyanString("input"), f, len(in))
	}
	if debug.Detect() {
		debug.Logf("detected %s over %d bytes", f, len(in))
	}
	tbl, err := cfg.table()
	if err != nil {
		return err
	}

	if cfg.Verify {
		return verify(cc, in, f, tbl)
	}
	if cfg.C {
		if f != format.TextFormat {
			return fmt.Errorf("compile wants text input, found %s", f)
		}
		out, err := ido.Compile(in, ido.WithTable(tbl))
		if err != nil {
			return err
		}
		return write(cc, out)
	}

	switch f {
	case format.ContainerFormat:
		text, err := ido.Decompile(in, cfg.convOpts(tbl, cc.Out)...)
		if err != nil {
			return err
		}
		return write(cc, text)
	case format.ShopDBFormat:
		db, err := shopdb.Decode(in)
		if err != nil {
			return err
		}
		if debug.ShopDB() {
			debug.Logf("shop database: %d records", len(db.Records))
		}
		var buf bytes.Buffer
		if err := shopdb.WriteCSV(db, &buf); err != nil {
			return err
		}
		return write(cc, buf.Bytes())
	case format.LegacyFormat:
		payload, err := inflateLegacy(in)
		if err != nil {
			return err
		}
		if cfg.V {
			fmt.Fprintf(os.Stderr, "%s: %s payload, %d bytes\n",
				color.CyanString("legacy"), format.Detect(payload), len(payload))
		}
		return write(cc, payload)
	case format.DDSFormat, format.TGAFormat, format.BMPFormat, format.PNGFormat:
		return fmt.Errorf("input is already a raw %s texture", f)
	case format.TextFormat:
		return fmt.Errorf("input is already text; use -c to compile it")
	}
	return fmt.Errorf("unrecognized input format")
}

func verify(cc *cli.Context, in []byte, f format.Format, tbl *layout.Table) error {
	switch f {
	case format.ContainerFormat:
		rep, err := ido.VerifyRoundTrip(in, ido.WithTable(tbl))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", color.RedString("round trip failed"))
			return err
		}
		fmt.Fprintf(cc.Out, "%s %d bytes, hash %x, compressed=%v\n",
			color.GreenString("ok:"), rep.Bytes, rep.Hash[:8], rep.Compressed)
		return nil
	case format.ShopDBFormat:
		db, err := shopdb.Decode(in)
		if err != nil {
			return err
		}
		out, err := shopdb.Encode(db)
		if err != nil {
			return err
		}
		if !bytes.Equal(in, out) {
			return fmt.Errorf("shop database did not survive a round trip")
		}
		fmt.Fprintf(cc.Out, "%s %d records\n",
			color.GreenString("ok:"), len(db.Records))
		return nil
	}
	return fmt.Errorf("cannot verify %s input", f)
}

func readInput(cfg *MainConfig, args []string) ([]byte, error) {
	name := cfg.File
	if name == "" && len(args) > 0 {
		name = args[0]
	}
	if name == "" || name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

func write(cc *cli.Context, d []byte) error {
	_, err := cc.Out.Write(d)
	return err
}

func inflateLegacy(in []byte) ([]byte, error) {
	body, err := format.LegacyBody(in)
	if err != nil {
		return nil, err
	}
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}
