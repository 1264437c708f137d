package biome

import (
	"math"
	"math/bits"
)

// hash2 mixes a lattice point and a seed into 32 well-scrambled bits.
func hash2(ix, iy int, seed uint32) uint32 {
	h := seed ^ 0x9e3779b9
	h ^= uint32(ix) * 0x85ebca6b
	h = bits.RotateLeft32(h, 13)
	h ^= uint32(iy) * 0xc2b2ae35
	h = bits.RotateLeft32(h, 17)
	h *= 0x27d4eb2f
	h ^= h >> 15
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// lattice returns the value in [0, 1] pinned to an integer lattice point.
func lattice(ix, iy int, seed uint32) float64 {
	return float64(hash2(ix, iy, seed)) / math.MaxUint32
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func fade(t float64) float64 {
	return t * t * (3 - 2*t)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ValueNoise interpolates seeded lattice values bilinearly (with smoothstep
// weights). Output is in [0, 1].
func ValueNoise(x, y float64, seed uint32) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	ix, iy := int(x0), int(y0)
	tx := fade(x - x0)
	ty := fade(y - y0)

	v00 := lattice(ix, iy, seed)
	v10 := lattice(ix+1, iy, seed)
	v01 := lattice(ix, iy+1, seed)
	v11 := lattice(ix+1, iy+1, seed)
	return lerp(lerp(v00, v10, tx), lerp(v01, v11, tx), ty)
}

// Octaves configures fractal layering.
type Octaves struct {
	Count      int
	Lacunarity float64
	Gain       float64
}

var defaultOctaves = Octaves{Count: 4, Lacunarity: 2, Gain: 0.5}

func (o Octaves) normalized() Octaves {
	if o.Count <= 0 {
		o.Count = 1
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = 2
	}
	if o.Gain <= 0 {
		o.Gain = 0.5
	}
	return o
}

// octaveSeed gives each octave its own lattice so octaves do not line up.
func octaveSeed(seed uint32, i int) uint32 {
	return seed + uint32(i)*0x632be5ab
}

// FBM layers ValueNoise octaves. Output is in [0, 1].
func FBM(x, y float64, seed uint32, o Octaves) float64 {
	o = o.normalized()
	var total, norm float64
	amp, freq := 1.0, 1.0
	for i := 0; i < o.Count; i++ {
		total += ValueNoise(x*freq, y*freq, octaveSeed(seed, i)) * amp
		norm += amp
		amp *= o.Gain
		freq *= o.Lacunarity
	}
	return total / norm
}

// Ridged folds each octave as 1-|2n-1| so crests become sharp ridgelines.
// Weights decrease by Gain per octave. Output is in [0, 1].
func Ridged(x, y float64, seed uint32, o Octaves) float64 {
	o = o.normalized()
	var total, norm float64
	w, freq := 1.0, 1.0
	for i := 0; i < o.Count; i++ {
		n := ValueNoise(x*freq, y*freq, octaveSeed(seed, i))
		r := 1 - math.Abs(2*n-1)
		total += r * w
		norm += w
		w *= o.Gain
		freq *= o.Lacunarity
	}
	return total / norm
}

// Dome is 1 at (cx, cy), falling smoothly to 0 at radius r and beyond.
func Dome(nx, ny, cx, cy, r float64) float64 {
	if r <= 0 {
		return 0
	}
	d := math.Hypot(nx-cx, ny-cy) / r
	if d >= 1 {
		return 0
	}
	return fade(1 - d)
}

// Bowl is the negative of Dome.
func Bowl(nx, ny, cx, cy, r float64) float64 {
	return -Dome(nx, ny, cx, cy, r)
}

// rotate expresses (nx, ny), relative to the board center, in a frame turned
// by angle: u runs along the angle and v across it.
func rotate(nx, ny, angle float64) (u, v float64) {
	s, c := math.Sincos(angle)
	dx, dy := nx-0.5, ny-0.5
	return dx*c + dy*s, -dx*s + dy*c
}

// CliffBand is a sigmoid step from 0 to 1 across a line perpendicular to
// angle, offset from the board center by pos. Larger sharpness makes a
// steeper cliff.
func CliffBand(nx, ny, angle, pos, sharpness float64) float64 {
	u, _ := rotate(nx, ny, angle)
	return 1 / (1 + math.Exp(-(u-pos)*sharpness))
}

// DuneWave is a train of asymmetric crests running across angle. Output is in
// [0, 1].
func DuneWave(nx, ny, angle, freq, phase float64) float64 {
	u, v := rotate(nx, ny, angle)
	// A little cross-wind wobble keeps crests from being ruler straight.
	s := math.Sin(2*math.Pi*freq*u + phase + 0.8*math.Sin(2*math.Pi*v*1.3+phase))
	w := 0.5 + 0.5*s
	return math.Pow(w, 1.6)
}

// Channel is 1 along a meandering centerline running in direction angle and
// falls off as a gaussian of the distance from it. Output is in [0, 1].
func Channel(nx, ny, angle, width, meander float64, seed uint32) float64 {
	if width <= 0 {
		return 0
	}
	u, v := rotate(nx, ny, angle)
	phase := lattice(int(seed), 7, seed) * 2 * math.Pi
	center := meander * (math.Sin(2*math.Pi*1.3*u+phase) + 0.4*math.Sin(2*math.Pi*3.1*u+2*phase))
	center += 0.05 * (ValueNoise(u*4+11, 3, seed) - 0.5)
	d := (v - center) / width
	return math.Exp(-d * d)
}

// angleFromSeed derives a stable orientation in [0, pi) when the caller does
// not pick one.
func angleFromSeed(seed uint32) float64 {
	return lattice(31, 17, seed) * math.Pi
}
