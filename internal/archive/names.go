package archive

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Zip entry name encodings.
const (
	NameEncodingCP437 = "cp437"
	NameEncodingCP866 = "cp866"
	NameEncodingNone  = "none"
)

// decodeName converts a zip entry name stored without the UTF-8 flag.
// Legacy archivers wrote names in the OEM code page; cp437 reproduces what
// most unzip tools show, cp866 recovers the original Cyrillic.
func decodeName(name string, nonUTF8 bool, enc string) string {
	if !nonUTF8 {
		return name
	}

	var cm encoding.Encoding
	switch enc {
	case NameEncodingCP437:
		cm = charmap.CodePage437
	case NameEncodingCP866:
		cm = charmap.CodePage866
	default:
		return name
	}

	decoded, err := cm.NewDecoder().String(name)
	if err != nil {
		return name
	}
	return decoded
}
