package artifact

import (
	"strings"
	"unicode"
)

// pyc files start with a 4-byte magic: a version-specific 16-bit number
// followed by \r\n. The \r\n tail is stable across CPython versions and
// doubles as a corruption check (it breaks when the file was transferred in
// text mode).
const pycHeaderLen = 4

// minLiteralLen filters out the short opcode-adjacent byte runs that happen
// to be printable.
const minLiteralLen = 4

// StringTable is a best-effort Adapter that recovers the printable string
// literals embedded in a bytecode blob, one per line. It does not reconstruct
// source structure; for secret detection the literal pool is what matters,
// since that is where committed credentials end up. A full decompiler can be
// plugged in via the Adapter interface without touching the pipeline.
type StringTable struct{}

// NewStringTable creates the default string-table adapter.
func NewStringTable() *StringTable {
	return &StringTable{}
}

// Decompile extracts printable literal runs from the blob.
func (s *StringTable) Decompile(path string, data []byte) (string, error) {
	if len(data) < pycHeaderLen {
		return "", ErrCorruptHeader
	}
	if strings.HasSuffix(path, ".pyc") && (data[2] != '\r' || data[3] != '\n') {
		return "", ErrCorruptHeader
	}

	var sb strings.Builder
	var run []byte
	flush := func() {
		if len(run) >= minLiteralLen {
			sb.Write(run)
			sb.WriteByte('\n')
		}
		run = run[:0]
	}

	for _, b := range data[pycHeaderLen:] {
		if b < 0x80 && (unicode.IsPrint(rune(b)) || b == '\t') {
			run = append(run, b)
			continue
		}
		flush()
	}
	flush()

	if sb.Len() == 0 {
		return "", ErrUnsupportedFormat
	}
	return sb.String(), nil
}
