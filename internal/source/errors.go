package source

import "errors"

var (
	ErrUnsupportedFormat   = errors.New("source: unsupported file format")
	ErrInvalidFile         = errors.New("source: not a valid audio file")
	ErrUnsupportedBitDepth = errors.New("source: unsupported bit depth")
	ErrEmpty               = errors.New("source: no audio data")
	ErrNotStereo           = errors.New("source: buffer must be stereo")
)
