package frame

import (
	"hash/maphash"
	"math"

	"github.com/shopspring/decimal"
)

// nullKey is the key of a null row. Null keys are equal to each other and
// to nothing else.
type nullKey struct{}

// decimalText keys decimals that have no exact float64 form.
type decimalText string

// floatKey folds integral floats onto int64 so 2.0 and 2 compare equal.
func floatKey(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}
	return f
}

func decimalKey(d decimal.Decimal) any {
	if d.IsInteger() {
		if bi := d.BigInt(); bi.IsInt64() {
			return bi.Int64()
		} else if bi.IsUint64() {
			return bi.Uint64()
		}
		return decimalText(d.String())
	}
	f := d.InexactFloat64()
	if decimal.NewFromFloat(f).Equal(d) {
		return f
	}
	return decimalText(d.String())
}

// rowKeys hashes composite keys drawn from a fixed list of columns.
type rowKeys struct {
	cols []Column
	seed maphash.Seed
}

// newRowKeys binds key columns to a seed. Keys compared across tables must
// share the seed.
func newRowKeys(cols []Column, seed maphash.Seed) *rowKeys {
	return &rowKeys{cols: cols, seed: seed}
}

func (k *rowKeys) hash(row int) uint64 {
	var h uint64
	for _, c := range k.cols {
		h = h*31 + maphash.Comparable(k.seed, c.key(row))
	}
	return h
}

// equal reports whether row a of k and row b of other carry the same key.
func (k *rowKeys) equal(a int, other *rowKeys, b int) bool {
	for i, c := range k.cols {
		if c.key(a) != other.cols[i].key(b) {
			return false
		}
	}
	return true
}

// keyIndex maps key hashes to the rows that carry them, in row order.
type keyIndex struct {
	keys    *rowKeys
	buckets map[uint64][]int
}

func buildKeyIndex(keys *rowKeys, rows int) *keyIndex {
	idx := &keyIndex{keys: keys, buckets: make(map[uint64][]int, rows)}
	for r := 0; r < rows; r++ {
		h := keys.hash(r)
		idx.buckets[h] = append(idx.buckets[h], r)
	}
	return idx
}

// lookup returns the indexed rows whose key equals row of other.
func (idx *keyIndex) lookup(other *rowKeys, row int) []int {
	bucket := idx.buckets[other.hash(row)]
	if len(bucket) == 0 {
		return nil
	}
	var out []int
	for _, r := range bucket {
		if idx.keys.equal(r, other, row) {
			out = append(out, r)
		}
	}
	return out
}
