// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package cell

import "math/bits"

// LevelMask is the 3-bit mask described in spec §3.1: its popcount is the
// cell's level, and it drives which of the 4 hash/depth slots are
// distinct for a given cell. Grounded on
// original_source/core/src/cell/level_mask.rs (level/apply/hash_index/
// shift_right/apply_or).
type LevelMask struct {
	mask uint32
}

func NewLevelMask(m uint32) LevelMask {
	return LevelMask{mask: m}
}

func (m LevelMask) Mask() uint32 { return m.mask }

// Level is the number of significant levels (popcount of the mask).
func (m LevelMask) Level() int { return bits.OnesCount32(m.mask) }

// Apply masks off every bit at or above `level`, leaving only the levels
// strictly below it significant.
func (m LevelMask) Apply(level int) LevelMask {
	if level <= 0 {
		return LevelMask{}
	}
	return LevelMask{mask: m.mask & uint32((1<<uint(level))-1)}
}

// HashIndex maps this mask to the compact per-significant-level hash
// slot: it is simply the count of significant levels below the mask's
// own top bit, i.e. its level.
func (m LevelMask) HashIndex() int { return m.Level() }

// HashCount is the number of distinct hashes a cell with this mask
// needs to store: one base hash plus one per significant level.
func (m LevelMask) HashCount() int { return m.Level() + 1 }

func (m LevelMask) ApplyOr(other LevelMask) LevelMask {
	return LevelMask{mask: m.mask | other.mask}
}

// ShiftRight drops the lowest significant bit, used when a MerkleProof
// or MerkleUpdate cell derives its own mask from its children's.
func (m LevelMask) ShiftRight() LevelMask {
	return LevelMask{mask: m.mask >> 1}
}

// IsSignificant reports whether level L has its own distinct hash: level
// 0 always does, and level L>0 does iff bit L-1 of the mask is set.
func (m LevelMask) IsSignificant(level int) bool {
	if level <= 0 {
		return true
	}
	return (m.mask>>uint(level-1))&1 != 0
}
