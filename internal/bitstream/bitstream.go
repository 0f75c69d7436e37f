// Package bitstream expands tokens into bit sequences for the
// statistical tests. Two constructors reflect the two views of a token:
// FromText expands the printable characters (what the generator emitted
// on the wire) and FromBytes expands decoded bytes (the generator's
// native output). Statistical tests on structure use the text view;
// entropy and bias measurements use the decoded view.
package bitstream

// Bits is a sequence of bits, one per element, each 0 or 1.
type Bits []uint8

// FromBytes expands each byte into 8 bits, most significant first.
func FromBytes(data []byte) Bits {
	bits := make(Bits, 0, len(data)*8)
	for _, b := range data {
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, (b>>uint(shift))&1)
		}
	}
	return bits
}

// FromText expands the UTF-8 bytes of s into bits, most significant first.
func FromText(s string) Bits {
	return FromBytes([]byte(s))
}

// Ones counts the set bits.
func (b Bits) Ones() int {
	count := 0
	for _, bit := range b {
		count += int(bit)
	}
	return count
}

// OnesFraction is the proportion of set bits, or 0 for an empty sequence.
func (b Bits) OnesFraction() float64 {
	if len(b) == 0 {
		return 0
	}
	return float64(b.Ones()) / float64(len(b))
}

// Concat joins multiple bit sequences into one pooled sequence.
func Concat(sequences ...Bits) Bits {
	total := 0
	for _, s := range sequences {
		total += len(s)
	}
	pooled := make(Bits, 0, total)
	for _, s := range sequences {
		pooled = append(pooled, s...)
	}
	return pooled
}
