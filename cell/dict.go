// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package cell

import (
	"fmt"
	"math/big"
	"math/bits"
	"sort"
)

// DictEntry is one key/value pair fed to BuildHashmap. Write fills in
// the value at the leaf node's own builder, which may itself consume
// references (e.g. to store a nested cell).
type DictEntry struct {
	Key   *big.Int
	Write func(b *Builder) error
}

// labelBitLen is the exact-integer ⌈log2(n+1)⌉ spec §4.F/§9 calls for,
// computed via math/bits.Len rather than the floating-point
// log2(n).ceil() the original implementation used.
func labelBitLen(maxLabelLen int) int {
	return bits.Len(uint(maxLabelLen))
}

func bitAt(v *big.Int, totalLen, pos int) bool {
	return v.Bit(totalLen-1-pos) != 0
}

func commonPrefixLen(a, b *big.Int, totalLen, start, limit int) int {
	n := 0
	for start+n < totalLen && n < limit {
		if bitAt(a, totalLen, start+n) != bitAt(b, totalLen, start+n) {
			break
		}
		n++
	}
	return n
}

func labelValue(key *big.Int, totalLen, start, length int) *big.Int {
	v := new(big.Int)
	for i := 0; i < length; i++ {
		v.Lsh(v, 1)
		if bitAt(key, totalLen, start+i) {
			v.SetBit(v, 0, 1)
		}
	}
	return v
}

func allOnes(n int) *big.Int {
	if n <= 0 {
		return big.NewInt(0)
	}
	v := new(big.Int).Lsh(big.NewInt(1), uint(n))
	return v.Sub(v, big.NewInt(1))
}

// writeLabel picks the shortest of the Short/Long/Same encodings for a
// label of the given length at a node whose remaining key length is
// maxLabelLen, per spec §4.F.
func writeLabel(b *Builder, label *big.Int, length, maxLabelLen int) {
	l := labelBitLen(maxLabelLen)

	shortCost := 2 + 2*length
	longCost := 2 + l + length
	sameApplicable, sameBit := isUniform(label, length)
	sameCost := 2 + 1 + l

	best := "short"
	bestCost := shortCost
	if longCost < bestCost {
		best, bestCost = "long", longCost
	}
	if sameApplicable && sameCost < bestCost {
		best, bestCost = "same", sameCost
	}

	switch best {
	case "short":
		b.StoreBit(false)
		for i := 0; i < length; i++ {
			b.StoreBit(true)
		}
		b.StoreBit(false)
		if length > 0 {
			b.StoreUint(length, label)
		}
	case "long":
		b.StoreBit(true)
		b.StoreBit(false)
		b.StoreUint(l, big.NewInt(int64(length)))
		if length > 0 {
			b.StoreUint(length, label)
		}
	case "same":
		b.StoreBit(true)
		b.StoreBit(true)
		b.StoreBit(sameBit)
		b.StoreUint(l, big.NewInt(int64(length)))
	}
}

func isUniform(label *big.Int, length int) (applicable bool, bit bool) {
	if length == 0 {
		return false, false
	}
	first := label.Bit(length - 1) != 0
	for i := 0; i < length; i++ {
		if (label.Bit(i) != 0) != first {
			return false, false
		}
	}
	return true, first
}

func readLabel(p *Parser, maxLabelLen int) (*big.Int, int, error) {
	tag0, err := p.LoadBit()
	if err != nil {
		return nil, 0, err
	}
	if !tag0 {
		n, err := p.LoadUnaryLength()
		if err != nil {
			return nil, 0, err
		}
		val, err := p.LoadUint(n)
		if err != nil {
			return nil, 0, err
		}
		return val, n, nil
	}

	tag1, err := p.LoadBit()
	if err != nil {
		return nil, 0, err
	}
	l := labelBitLen(maxLabelLen)

	if !tag1 {
		nBig, err := p.LoadUint(l)
		if err != nil {
			return nil, 0, err
		}
		n := int(nBig.Int64())
		val, err := p.LoadUint(n)
		if err != nil {
			return nil, 0, err
		}
		return val, n, nil
	}

	bitVal, err := p.LoadBit()
	if err != nil {
		return nil, 0, err
	}
	nBig, err := p.LoadUint(l)
	if err != nil {
		return nil, 0, err
	}
	n := int(nBig.Int64())
	if bitVal {
		return allOnes(n), n, nil
	}
	return big.NewInt(0), n, nil
}

// BuildHashmap builds the trie root cell for a non-empty set of
// entries, each key exactly keySize bits wide (0 <= key < 2^keySize).
func BuildHashmap(keySize int, entries []DictEntry) (*Cell, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: BuildHashmap needs at least one entry", ErrMalformedLabel)
	}
	totalLen := keySize + 1
	sentinel := new(big.Int).Lsh(big.NewInt(1), uint(keySize))

	sKeys := make([]*big.Int, len(entries))
	seen := map[string]bool{}
	for i, e := range entries {
		if e.Key.Sign() < 0 || e.Key.BitLen() > keySize {
			return nil, fmt.Errorf("%w: key does not fit in %d bits", ErrKeyTooWide, keySize)
		}
		sk := new(big.Int).Or(sentinel, e.Key)
		sKeys[i] = sk
		k := sk.Text(16)
		if seen[k] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, e.Key.Text(10))
		}
		seen[k] = true
	}

	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return sKeys[order[i]].Cmp(sKeys[order[j]]) < 0 })

	sorted := make([]DictEntry, len(order))
	sortedKeys := make([]*big.Int, len(order))
	for i, oi := range order {
		sorted[i] = entries[oi]
		sortedKeys[i] = sKeys[oi]
	}

	return buildDictNode(sortedKeys, sorted, totalLen, 1)
}

func buildDictNode(keys []*big.Int, entries []DictEntry, totalLen, start int) (*Cell, error) {
	b := NewBuilder()
	maxLabelLen := totalLen - start

	first, last := keys[0], keys[len(keys)-1]
	commonLen := commonPrefixLen(first, last, totalLen, start, maxLabelLen)
	label := labelValue(first, totalLen, start, commonLen)
	writeLabel(b, label, commonLen, maxLabelLen)

	newStart := start + commonLen
	if newStart == totalLen {
		if len(entries) != 1 {
			return nil, fmt.Errorf("%w: multiple entries share an identical key", ErrDuplicateKey)
		}
		if err := entries[0].Write(b); err != nil {
			return nil, err
		}
		return b.Build()
	}

	splitAt := sort.Search(len(keys), func(i int) bool { return bitAt(keys[i], totalLen, newStart) })
	leftKeys, rightKeys := keys[:splitAt], keys[splitAt:]
	leftEntries, rightEntries := entries[:splitAt], entries[splitAt:]
	if len(leftKeys) == 0 || len(rightKeys) == 0 {
		return nil, fmt.Errorf("%w: dict node has an empty branch after a non-terminal label", ErrMalformedLabel)
	}

	left, err := buildDictNode(leftKeys, leftEntries, totalLen, newStart+1)
	if err != nil {
		return nil, err
	}
	right, err := buildDictNode(rightKeys, rightEntries, totalLen, newStart+1)
	if err != nil {
		return nil, err
	}
	b.StoreReference(left)
	b.StoreReference(right)
	return b.Build()
}

// ParseHashmap walks the trie rooted at root, invoking onEntry once per
// leaf with the reconstructed key and a Parser positioned at the
// leaf's value bits.
func ParseHashmap(root *Cell, keySize int, onEntry func(key *big.Int, vp *Parser) error) error {
	totalLen := keySize + 1
	return parseDictNode(root, totalLen, big.NewInt(1), 1, onEntry)
}

func parseDictNode(c *Cell, totalLen int, prefix *big.Int, prefixLen int, onEntry func(*big.Int, *Parser) error) error {
	p := NewParser(c)
	maxLabelLen := totalLen - prefixLen
	label, labelLen, err := readLabel(p, maxLabelLen)
	if err != nil {
		return err
	}

	newPrefix := new(big.Int).Lsh(prefix, uint(labelLen))
	newPrefix.Or(newPrefix, label)
	newPrefixLen := prefixLen + labelLen

	if newPrefixLen == totalLen {
		keySize := totalLen - 1
		key := new(big.Int).Sub(newPrefix, new(big.Int).Lsh(big.NewInt(1), uint(keySize)))
		return onEntry(key, p)
	}

	left, err := p.NextReference()
	if err != nil {
		return err
	}
	right, err := p.NextReference()
	if err != nil {
		return err
	}

	leftPrefix := new(big.Int).Lsh(newPrefix, 1)
	rightPrefix := new(big.Int).Or(new(big.Int).Set(leftPrefix), big.NewInt(1))

	if err := parseDictNode(left, totalLen, leftPrefix, newPrefixLen+1, onEntry); err != nil {
		return err
	}
	return parseDictNode(right, totalLen, rightPrefix, newPrefixLen+1, onEntry)
}

// StoreDict writes a HashmapE-shaped optional dictionary: a presence
// bit, then (if non-empty) a reference to the trie root.
func StoreDict(b *Builder, keySize int, entries []DictEntry) error {
	if len(entries) == 0 {
		b.StoreBit(false)
		return nil
	}
	root, err := BuildHashmap(keySize, entries)
	if err != nil {
		return err
	}
	b.StoreBit(true)
	b.StoreReference(root)
	return nil
}

// LoadDict reads a HashmapE-shaped optional dictionary.
func LoadDict(p *Parser, keySize int, onEntry func(key *big.Int, vp *Parser) error) error {
	present, err := p.LoadBit()
	if err != nil {
		return err
	}
	if !present {
		return nil
	}
	root, err := p.NextReference()
	if err != nil {
		return err
	}
	return ParseHashmap(root, keySize, onEntry)
}
