package structure

import (
	"math"

	"github.com/KodyMike/rndSequencer/internal/bitstream"
	"github.com/KodyMike/rndSequencer/pkg/report"
)

// compressionMinBits is the minimum input below which the LZ78 estimate
// is not evaluated.
const compressionMinBits = 100

// compressionStructureThreshold is the ratio above which latent structure
// is flagged.
const compressionStructureThreshold = 1.05

// CompressionEstimate runs greedy LZ78 over the bit sequence and compares
// the resulting entropy-rate estimate against the measured Shannon bit
// entropy. A ratio above 1.05 means the sequence compresses worse than
// its symbol distribution predicts, i.e. it carries repeated structure.
// Inputs under 100 bits are not evaluated.
func CompressionEstimate(bits bitstream.Bits, shannonPerBit float64) report.Compression {
	if len(bits) < compressionMinBits {
		return report.Compression{Applicable: false}
	}

	type node struct {
		children [2]*node
	}
	root := &node{}
	dictSize := 1

	compressedBits := 0.0
	curr := root
	for _, bit := range bits {
		next := curr.children[bit]
		if next != nil {
			curr = next
			continue
		}
		// phrase boundary: emit a dictionary reference and extend
		if dictSize >= 2 {
			compressedBits += math.Ceil(math.Log2(float64(dictSize)))
		}
		curr.children[bit] = &node{}
		dictSize++
		curr = root
	}
	if curr != root && dictSize >= 2 {
		// trailing partial phrase
		compressedBits += math.Ceil(math.Log2(float64(dictSize)))
	}

	entropyRate := compressedBits / float64(len(bits))
	ratio := 0.0
	if shannonPerBit > 0 {
		ratio = entropyRate / shannonPerBit
	}
	return report.Compression{
		Ratio:       ratio,
		EntropyRate: entropyRate,
		Applicable:  true,
	}
}

// HasLatentStructure reports whether the compression ratio indicates
// repeated structure beyond what the bit distribution explains.
func HasLatentStructure(c report.Compression) bool {
	return c.Applicable && c.Ratio > compressionStructureThreshold
}
