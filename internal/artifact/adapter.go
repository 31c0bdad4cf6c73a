// Package artifact integrates compiled-bytecode cache files into the scan
// pipeline. Secrets embedded in source can survive in cache artifacts after
// the source itself was edited or deleted, so artifact blobs are reconstructed
// into readable text before the regular detectors run over them.
package artifact

import "errors"

// Typed decompilation failures. A failure is never fatal to the scan; it
// downgrades the blob to "not scanned" and is recorded once per blob hash.
var (
	ErrUnsupportedFormat  = errors.New("unsupported artifact format version")
	ErrCorruptHeader      = errors.New("corrupt artifact header")
	ErrUnsupportedVersion = errors.New("unsupported bytecode version")
)

// Adapter reconstructs readable source text from a compiled-bytecode cache
// blob. Implementations must behave as pure functions of (path, data): no
// side effects on scanner state, identical output for identical input. The
// call may be expensive; results are memoized by blob hash upstream.
type Adapter interface {
	Decompile(path string, data []byte) (string, error)
}

// AdapterFunc adapts a plain function to the Adapter interface.
type AdapterFunc func(path string, data []byte) (string, error)

func (f AdapterFunc) Decompile(path string, data []byte) (string, error) {
	return f(path, data)
}
