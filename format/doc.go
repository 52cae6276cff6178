// Package format identifies what a byte payload holds: a binary
// container, its text form, a shop database, or one of the raw
// texture formats that ship alongside containers.
//
// # Usage
//
//	kind := format.Detect(data)
//	if kind == format.ContainerFormat {
//	    ...
//	}
//
// Detection is content based; file extensions are never consulted.
//
// # Related Packages
//
//   - github.com/signadot/ido-format/go-ido/wire - binary codec
//   - github.com/signadot/ido-format/go-ido/shopdb - shop databases
package format
