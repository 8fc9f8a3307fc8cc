// Package sampler provides the deterministic low-discrepancy sampling used by
// the renderer. Every sample value is derived purely from integer indices
// (pixel, frame, pass, bounce, dimension), so repeated calls with the same
// indices return bit-identical results with no shared generator state.
package sampler

// Primes are the radical inverse bases assigned to sample dimensions.
// Bounces reuse the bases cyclically, see BounceSamples.
var Primes = [...]int{2, 3, 5, 7, 11, 13}

// Largest float64 strictly below 1.0
const oneMinusEpsilon = 0x1.fffffffffffffp-1

const uint32Scale = 1.0 / (1 << 32)

// Hash applies Thomas Wang's 32-bit integer hash.
// The constants are fixed so the same scene renders identically across runs.
// https://burtleburtle.net/bob/hash/integer.html
func Hash(x uint32) uint32 {
	x = (x ^ 12345391) * 2654435769
	x ^= (x << 6) ^ (x >> 26)
	x *= 2654435769
	x += (x << 5) ^ (x >> 12)
	return x
}

// RadicalInverse reverses the base-b digits of a and interprets them as a
// fraction, giving the a-th element of the base-b Halton sequence.
// The result is clamped strictly below 1 to guard against rounding up. From PBRT.
func RadicalInverse(a, base int) float64 {
	invBase := 1.0 / float64(base)

	reversedDigits := 0
	invBaseN := 1.0
	for a > 0 {
		next := a / base
		digit := a - base*next
		reversedDigits = reversedDigits*base + digit
		invBaseN *= invBase
		a = next
	}

	return min(float64(reversedDigits)*invBaseN, oneMinusEpsilon)
}

// UnitReal maps a 32-bit integer to [0, 1) by direct scaling.
func UnitReal(v uint32) float64 {
	return float64(v) * uint32Scale
}

// Wrap01 adds two values in [0, 1) modulo 1, keeping the result in [0, 1).
// Used to offset a Halton value by a per-pixel hash without losing the
// sequence's low-discrepancy property within a pixel.
func Wrap01(u, v float64) float64 {
	if u+v < 1 {
		return u + v
	}
	return u + v - 1
}

// PixelSampler draws decorrelated sample values for one (pixel, frame, pass)
// key. All dimensions share a single hash-derived offset for the pixel, so
// they are consistently decorrelated from neighboring pixels.
type PixelSampler struct {
	pass       int
	hashRandom float64
}

// NewPixelSampler creates a sampler for the given pixel, frame and pass.
func NewPixelSampler(x, y, frame, pass, width, height int) PixelSampler {
	pixelIndex := uint32(frame*width*height + y*width + x)
	return PixelSampler{
		pass:       pass,
		hashRandom: UnitReal(Hash(pixelIndex)),
	}
}

// PixelSamples returns the sub-pixel jitter pair and the time-of-frame jitter
// for the primary ray, drawn from the first three prime bases.
func (s PixelSampler) PixelSamples() (sx, sy, st float64) {
	sx = Wrap01(RadicalInverse(s.pass, Primes[0]), s.hashRandom)
	sy = Wrap01(RadicalInverse(s.pass, Primes[1]), s.hashRandom)
	st = Wrap01(RadicalInverse(s.pass, Primes[2]), s.hashRandom)
	return sx, sy, st
}

// BounceSamples returns the two scatter-direction samples for the given
// bounce. Successive bounces consume bases at cyclic offset 3+2*bounce,
// wrapping modulo the prime count; distant bounces therefore share bases,
// which is acceptable under the fixed low bounce cap.
func (s PixelSampler) BounceSamples(bounce int) (u, v float64) {
	u = Wrap01(RadicalInverse(s.pass, Primes[(3+bounce*2)%len(Primes)]), s.hashRandom)
	v = Wrap01(RadicalInverse(s.pass, Primes[(3+bounce*2+1)%len(Primes)]), s.hashRandom)
	return u, v
}
