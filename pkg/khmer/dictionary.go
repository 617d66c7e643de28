package khmer

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
)

// KDIC is a flat, mmap-friendly binary dictionary: a fixed header, an
// open-addressed hash table of (string-pool offset, cost) slots, and a
// NUL-terminated string pool. Table slot 0 offset is reserved as the
// "empty" sentinel, so the pool's first byte is always a throwaway NUL.
const (
	kdicMagic      = "KDIC"
	kdicVersion    = 1
	kdicHeaderSize = 32
	kdicEntrySize  = 8
)

var (
	coengTa = "្ត"
	coengDa = "្ឍ"
)

type kdicHeader struct {
	NumEntries    uint32
	TableSize     uint32
	DefaultCost   float32
	UnknownCost   float32
	MaxWordLength uint32
	_             uint32
}

type tableEntry struct {
	NameOffset uint32
	Cost       float32
}

// Dictionary is a loaded KDIC dictionary, open for lookups via the same
// hash-and-probe algorithm used to build the on-disk table.
type Dictionary struct {
	header kdicHeader
	table  []tableEntry
	pool   []byte
}

// djb2 is the hash used both to build and to probe the KDIC table.
func djb2(s string) uint32 {
	h := uint32(5381)
	for i := 0; i < len(s); i++ {
		h = ((h << 5) + h) + uint32(s[i])
	}
	return h
}

func isPowerOfTwo(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}

// LoadDictionary reads a KDIC dictionary from path.
func LoadDictionary(path string) (*Dictionary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("khmer: reading dictionary %s: %w", path, err)
	}
	return LoadDictionaryBytes(b)
}

// LoadDictionaryBytes parses a KDIC dictionary already read into memory.
func LoadDictionaryBytes(b []byte) (*Dictionary, error) {
	if len(b) < kdicHeaderSize {
		return nil, ErrTruncated
	}
	if string(b[0:4]) != kdicMagic {
		return nil, ErrBadMagic
	}
	version := binary.LittleEndian.Uint32(b[4:8])
	if version != kdicVersion {
		return nil, ErrUnsupported
	}

	h := kdicHeader{
		NumEntries:    binary.LittleEndian.Uint32(b[8:12]),
		TableSize:     binary.LittleEndian.Uint32(b[12:16]),
		DefaultCost:   decodeFloat32(b[16:20]),
		UnknownCost:   decodeFloat32(b[20:24]),
		MaxWordLength: binary.LittleEndian.Uint32(b[24:28]),
	}
	if !isPowerOfTwo(h.TableSize) {
		return nil, ErrTableSize
	}

	tableBytes := int(h.TableSize) * kdicEntrySize
	tableEnd := kdicHeaderSize + tableBytes
	if len(b) < tableEnd {
		return nil, ErrTruncated
	}

	table := make([]tableEntry, h.TableSize)
	for i := range table {
		off := kdicHeaderSize + i*kdicEntrySize
		table[i] = tableEntry{
			NameOffset: binary.LittleEndian.Uint32(b[off : off+4]),
			Cost:       decodeFloat32(b[off+4 : off+8]),
		}
	}

	return &Dictionary{header: h, table: table, pool: b[tableEnd:]}, nil
}

func decodeFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// poolEquals reports whether the NUL-terminated pool string at off is
// exactly word. Hash equality alone is not trusted: bytes and length are
// compared on every probe hit, without allocating.
func (d *Dictionary) poolEquals(off uint32, word string) bool {
	end := int(off) + len(word)
	if end > len(d.pool) {
		return false
	}
	if string(d.pool[off:end]) != word {
		return false
	}
	return end == len(d.pool) || d.pool[end] == 0
}

// lookup returns the table slot holding word, or false if absent.
func (d *Dictionary) lookup(word string) (tableEntry, bool) {
	return d.lookupWithHash(djb2(word), word)
}

// lookupWithHash probes the table starting from a caller-supplied hash,
// letting the decoder's incremental rolling hash avoid rehashing every
// growing candidate substring from scratch.
func (d *Dictionary) lookupWithHash(hash uint32, word string) (tableEntry, bool) {
	if len(d.table) == 0 {
		return tableEntry{}, false
	}
	size := uint32(len(d.table))
	start := hash % size
	for i := uint32(0); i < size; i++ {
		idx := (start + i) % size
		e := d.table[idx]
		if e.NameOffset == 0 {
			return tableEntry{}, false
		}
		if d.poolEquals(e.NameOffset, word) {
			return e, true
		}
	}
	return tableEntry{}, false
}

// Contains reports whether word is present in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.lookup(word)
	return ok
}

// GetWordCost returns word's cost: the cost stored with its entry if
// present, or UnknownCost if word isn't in the dictionary at all.
func (d *Dictionary) GetWordCost(word string) float32 {
	if e, ok := d.lookup(word); ok {
		return e.Cost
	}
	return d.header.UnknownCost
}

// MaxWordLength is the byte length of the longest entry, used by the
// decoder's dictionary sweep to bound lookahead.
func (d *Dictionary) MaxWordLength() int {
	return int(d.header.MaxWordLength)
}

// DefaultCost is the header's default word cost. The decoder charges it for
// acronym runs and, when frequency costs are disabled, for every dictionary
// hit.
func (d *Dictionary) DefaultCost() float32 { return d.header.DefaultCost }

// UnknownCost is the cost assigned to codepoint runs absent from the
// dictionary.
func (d *Dictionary) UnknownCost() float32 { return d.header.UnknownCost }

// generateVariants produces the Ta/Da coeng swap and COENG+Ro reordering
// spelling variants of word, the two orthographic ambiguities the source
// dictionary does not spell out explicitly.
func generateVariants(word string) []string {
	variants := make(map[string]bool)

	if strings.Contains(word, coengTa) {
		variants[strings.ReplaceAll(word, coengTa, coengDa)] = true
	}
	if strings.Contains(word, coengDa) {
		variants[strings.ReplaceAll(word, coengDa, coengTa)] = true
	}

	baseSet := map[string]bool{word: true}
	for v := range variants {
		baseSet[v] = true
	}
	for w := range baseSet {
		if swapped := swapCoengRoOrder(w); swapped != w {
			variants[swapped] = true
		}
	}

	result := make([]string, 0, len(variants))
	for v := range variants {
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}

// swapCoengRoOrder swaps an adjacent COENG+Ro / COENG+X pair, since source
// material disagrees on whether Ro sorts before or after the other
// subscript in a stacked cluster.
func swapCoengRoOrder(word string) string {
	runes := []rune(word)
	n := len(runes)
	if n < 4 {
		return word
	}

	result := make([]rune, 0, n)
	i := 0
	changed := false

	for i < n {
		if i+3 < n &&
			runes[i] == coeng && runes[i+1] == cpRo &&
			runes[i+2] == coeng && runes[i+3] != cpRo {
			result = append(result, runes[i+2], runes[i+3], runes[i], runes[i+1])
			i += 4
			changed = true
			continue
		}
		if i+3 < n &&
			runes[i] == coeng && runes[i+1] != cpRo &&
			runes[i+2] == coeng && runes[i+3] == cpRo {
			result = append(result, runes[i+2], runes[i+3], runes[i], runes[i+1])
			i += 4
			changed = true
			continue
		}
		result = append(result, runes[i])
		i++
	}

	if changed {
		return string(result)
	}
	return word
}

// DictionaryBuilder accumulates words and costs and serializes them to the
// KDIC binary format. It is the dictionary store's write path: the
// counterpart to LoadDictionaryBytes, not a corpus-frequency trainer.
type DictionaryBuilder struct {
	defaultCost      float32
	unknownCost      float32
	generateVariants bool
	words            map[string]float32
	order            []string
	maxWordLen       int
}

// NewDictionaryBuilder creates a builder that will stamp defaultCost and
// unknownCost into the KDIC header it produces.
func NewDictionaryBuilder(defaultCost, unknownCost float32, generateVariants bool) *DictionaryBuilder {
	return &DictionaryBuilder{
		defaultCost:      defaultCost,
		unknownCost:      unknownCost,
		generateVariants: generateVariants,
		words:            make(map[string]float32),
	}
}

// Add inserts word with the given cost. When generateVariants was enabled
// at construction, spelling variants are added alongside it at the same
// cost unless already present.
func (b *DictionaryBuilder) Add(word string, cost float32) {
	b.addOne(word, cost)
	if b.generateVariants {
		for _, v := range generateVariants(word) {
			if _, exists := b.words[v]; !exists {
				b.addOne(v, cost)
			}
		}
	}
}

func (b *DictionaryBuilder) addOne(word string, cost float32) {
	if _, exists := b.words[word]; !exists {
		b.order = append(b.order, word)
	}
	b.words[word] = cost
	if l := len(word); l > b.maxWordLen {
		b.maxWordLen = l
	}
}

// Build serializes the accumulated words into a KDIC byte stream.
func (b *DictionaryBuilder) Build() []byte {
	tableSize := uint32(16)
	for tableSize < uint32(len(b.words))*2 {
		tableSize *= 2
	}

	table := make([]tableEntry, tableSize)
	pool := []byte{0} // offset 0 is the reserved empty sentinel

	// Pool strings land in insertion order so identical Add sequences
	// serialize to identical blobs.
	for _, word := range b.order {
		cost := b.words[word]
		off := uint32(len(pool))
		pool = append(pool, []byte(word)...)
		pool = append(pool, 0)

		size := tableSize
		start := djb2(word) % size
		for i := uint32(0); i < size; i++ {
			idx := (start + i) % size
			if table[idx].NameOffset == 0 {
				table[idx] = tableEntry{NameOffset: off, Cost: cost}
				break
			}
		}
	}

	buf := make([]byte, 0, kdicHeaderSize+int(tableSize)*kdicEntrySize+len(pool))
	buf = append(buf, kdicMagic...)
	buf = appendUint32(buf, kdicVersion)
	buf = appendUint32(buf, uint32(len(b.words)))
	buf = appendUint32(buf, tableSize)
	buf = appendFloat32(buf, b.defaultCost)
	buf = appendFloat32(buf, b.unknownCost)
	buf = appendUint32(buf, uint32(b.maxWordLen))
	buf = appendUint32(buf, 0) // padding

	for _, e := range table {
		buf = appendUint32(buf, e.NameOffset)
		buf = appendFloat32(buf, e.Cost)
	}
	buf = append(buf, pool...)

	return buf
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendFloat32(buf []byte, v float32) []byte {
	return appendUint32(buf, math.Float32bits(v))
}
