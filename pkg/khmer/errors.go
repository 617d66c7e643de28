package khmer

import "errors"

// Errors returned while loading or decoding a KDIC dictionary.
var (
	ErrBadMagic     = errors.New("khmer: not a KDIC dictionary (bad magic)")
	ErrUnsupported  = errors.New("khmer: unsupported KDIC version")
	ErrTruncated    = errors.New("khmer: truncated KDIC dictionary")
	ErrTableSize    = errors.New("khmer: KDIC table size is not a power of two")
	ErrNoDictionary = errors.New("khmer: segmenter requires a non-nil dictionary")
)
