package asset

import "errors"

var (
	// ErrNotFound means the referenced resource does not exist.
	ErrNotFound = errors.New("asset not found")

	// ErrUnsupportedScheme means the reference uses a scheme no source handles.
	ErrUnsupportedScheme = errors.New("unsupported asset scheme")

	// ErrUnsupportedFormat means the fetched bytes are not glTF or GLB.
	ErrUnsupportedFormat = errors.New("unsupported asset format")

	// ErrInvalidAsset means the document decoded but references data it lacks.
	ErrInvalidAsset = errors.New("invalid asset")

	// ErrEmptyScene means the document has no drawable triangles.
	ErrEmptyScene = errors.New("asset has no drawable geometry")
)
