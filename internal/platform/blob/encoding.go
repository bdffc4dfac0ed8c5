package blob

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DecodeText converts raw file bytes to a UTF-8 string. Uploaded pricelists
// arrive as UTF-8 (with or without BOM), UTF-16, or Latin-1 exports from older
// tooling; anything that is not valid UTF-8 falls back to Latin-1.
func DecodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		enc := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	case utf8.Valid(data):
		return string(data), nil
	default:
		decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}
}
