// Package loader reads program text from a filesystem into the engine's
// long-lived string region. Program sources back identifier and literal
// strings for the lifetime of the program, which is exactly what the
// long-lived placement is for.
package loader

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/starlingvm/starling/lib/strprim"
)

// SourceData is a loaded program source: where it came from and the string
// value holding its text.
type SourceData struct {
	Path string
	Text strprim.String
}

// ReadSource reads the file at path from fs and materializes its text as a
// long-lived string: narrow when the content is pure ASCII, wide otherwise.
func ReadSource(fs afero.Fs, rt *strprim.Runtime, logger logrus.FieldLogger, path string) (*SourceData, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("loading source %q: %w", path, err)
	}
	text, err := rt.CreateLongLived(SpanFromUTF8(data))
	if err != nil {
		return nil, fmt.Errorf("materializing source %q: %w", path, err)
	}
	if logger != nil {
		logger.WithFields(logrus.Fields{
			"path":   path,
			"units":  text.Length(),
			"narrow": text.IsNarrow(),
		}).Debug("loaded program source")
	}
	return &SourceData{Path: path, Text: text}, nil
}

// SpanFromUTF8 decodes UTF-8 bytes into a borrowed span: the bytes
// themselves when pure ASCII, otherwise a fresh UTF-16 unit sequence.
func SpanFromUTF8(data []byte) strprim.Span {
	ascii := true
	for _, b := range data {
		if b >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return strprim.Narrow(data)
	}
	units := utf16.Encode([]rune(string(data)))
	return strprim.Wide(units)
}
