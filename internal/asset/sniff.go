package asset

import (
	"bytes"
	"fmt"

	"github.com/h2non/filetype"
)

// Format is the container format of a glTF asset.
type Format int

const (
	FormatUnknown Format = iota
	FormatGLB
	FormatGLTF
)

func (f Format) String() string {
	switch f {
	case FormatGLB:
		return "glb"
	case FormatGLTF:
		return "gltf"
	default:
		return "unknown"
	}
}

// sniffLen is how many leading bytes Sniff needs.
const sniffLen = 262

var glbType = filetype.NewType("glb", "model/gltf-binary")

func init() {
	filetype.AddMatcher(glbType, func(buf []byte) bool {
		return len(buf) >= 4 && string(buf[:4]) == "glTF"
	})
}

// Sniff classifies asset content from its leading bytes.
func Sniff(head []byte) (Format, error) {
	kind, _ := filetype.Match(head)
	if kind == glbType {
		return FormatGLB, nil
	}

	trimmed := bytes.TrimLeft(head, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatGLTF, nil
	}

	if kind != filetype.Unknown {
		return FormatUnknown, fmt.Errorf("%w: content is %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	return FormatUnknown, ErrUnsupportedFormat
}
