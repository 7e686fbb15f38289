package subtitle

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const maxLineLength = 1024 * 1024

// newLineScanner strips a leading byte order mark (and decodes UTF-16 when
// the mark says so) before splitting the input into lines.
func newLineScanner(r io.Reader) *bufio.Scanner {
	decoded := transform.NewReader(
		r,
		unicode.BOMOverride(unicode.UTF8.NewDecoder()),
	)
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return scanner
}
