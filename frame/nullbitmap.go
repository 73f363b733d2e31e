package frame

// NullBitmap tracks per-row validity, one bit per row, 1 meaning valid.
// It grows with appends and is indexed identically to the value buffer
// of the column that owns it.
type NullBitmap struct {
	words []uint64
	n     int
	nulls int
}

// NewNullBitmap returns a bitmap of n rows, all valid.
func NewNullBitmap(n int) NullBitmap {
	var b NullBitmap
	b.AppendMany(true, n)
	return b
}

// NullBitmapFromBytes builds a bitmap from an LSB-ordered validity buffer such
// as the ones used by arrow. A nil buffer means every row is valid.
func NullBitmapFromBytes(validity []byte, offset, n int) NullBitmap {
	if validity == nil {
		return NewNullBitmap(n)
	}
	var b NullBitmap
	for i := 0; i < n; i++ {
		bit := offset + i
		b.Append(validity[bit>>3]&(1<<(bit&7)) != 0)
	}
	return b
}

// Len returns the number of rows tracked.
func (b *NullBitmap) Len() int { return b.n }

// NullCount returns the number of invalid rows.
func (b *NullBitmap) NullCount() int { return b.nulls }

// IsValid reports whether row i holds a value.
func (b *NullBitmap) IsValid(i int) bool {
	return b.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// Set marks row i valid or null.
func (b *NullBitmap) Set(i int, valid bool) {
	was := b.IsValid(i)
	if was == valid {
		return
	}
	mask := uint64(1) << (uint(i) & 63)
	if valid {
		b.words[i>>6] |= mask
		b.nulls--
	} else {
		b.words[i>>6] &^= mask
		b.nulls++
	}
}

// Append adds one row.
func (b *NullBitmap) Append(valid bool) {
	if b.n>>6 >= len(b.words) {
		b.words = append(b.words, 0)
	}
	if valid {
		b.words[b.n>>6] |= 1 << (uint(b.n) & 63)
	} else {
		b.nulls++
	}
	b.n++
}

// AppendMany adds n rows with the same validity.
func (b *NullBitmap) AppendMany(valid bool, n int) {
	for ; n > 0 && b.n&63 != 0; n-- {
		b.Append(valid)
	}
	for ; n >= 64; n -= 64 {
		if valid {
			b.words = append(b.words, ^uint64(0))
		} else {
			b.words = append(b.words, 0)
			b.nulls += 64
		}
		b.n += 64
	}
	for ; n > 0; n-- {
		b.Append(valid)
	}
}

// Clone returns an independent copy.
func (b *NullBitmap) Clone() NullBitmap {
	return NullBitmap{
		words: append([]uint64(nil), b.words...),
		n:     b.n,
		nulls: b.nulls,
	}
}
