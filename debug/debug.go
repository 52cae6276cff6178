// Package debug provides env-gated trace logging for the codec
// internals. Each area has its own IDO_DEBUG_* switch so a single
// stage can be traced without drowning in the rest.
package debug

import (
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

type debug struct {
	Wire   bool
	Text   bool
	Detect bool
	ShopDB bool
	Verify bool
}

var (
	d   *debug
	log zerolog.Logger
)

func init() {
	d = &debug{}
	d.Wire = boolEnv("IDO_DEBUG_WIRE")
	d.Text = boolEnv("IDO_DEBUG_TEXT")
	d.Detect = boolEnv("IDO_DEBUG_DETECT")
	d.ShopDB = boolEnv("IDO_DEBUG_SHOPDB")
	d.Verify = boolEnv("IDO_DEBUG_VERIFY")
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Wire() bool {
	return d.Wire
}
func Text() bool {
	return d.Text
}
func Detect() bool {
	return d.Detect
}
func ShopDB() bool {
	return d.ShopDB
}
func Verify() bool {
	return d.Verify
}
