// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package cell

import "errors"

// Sentinel errors for the closed taxonomies described in spec §7. Each
// wraps additional context via fmt.Errorf("...: %w", Err...) at the call
// site, the way parser/block_header.go wraps io errors in the teacher.
var (
	// BoCError
	ErrMagic              = errors.New("cell: bad BoC magic")
	ErrUnsupportedRefSize = errors.New("cell: unsupported ref size")
	ErrSizeOverflow       = errors.New("cell: size overflow")
	ErrMissingPaddingTag  = errors.New("cell: missing padding-tag bit")
	ErrTruncated          = errors.New("cell: truncated buffer")

	// CellError
	ErrInvalidCellData       = errors.New("cell: invalid cell data")
	ErrInvalidExoticCellData = errors.New("cell: invalid exotic cell data")
	ErrInvalidTLBPrefix      = errors.New("cell: invalid TLB prefix")

	// ParserError
	ErrCellUnderflow = errors.New("cell: underflow")
	ErrNonEmptyCell  = errors.New("cell: parser has unread data")
	ErrBadAddressTag = errors.New("cell: bad address tag")
	ErrBadUTF8       = errors.New("cell: bad utf8")

	// BuilderError
	ErrCapacityExceeded = errors.New("cell: capacity exceeded")
	ErrTooManyRefs      = errors.New("cell: too many refs")
	ErrNotByteAligned   = errors.New("cell: not byte aligned")
	ErrValueOutOfRange  = errors.New("cell: value out of range")

	// DictError
	ErrKeyTooWide     = errors.New("cell: dict key too wide")
	ErrDuplicateKey   = errors.New("cell: dict duplicate key")
	ErrMalformedLabel = errors.New("cell: dict malformed label")
)
