package parse

import "github.com/signadot/ido-format/go-ido/layout"

type opts struct {
	table *layout.Table
}

// Option configures Parse.
type Option func(*opts)

// WithTable supplies the tag table used to resolve element names and
// decide which tags carry structured bodies. The default is
// layout.Builtin.
func WithTable(t *layout.Table) Option {
	return func(o *opts) {
		o.table = t
	}
}
