package biome

import (
	"math"
	"sort"
)

// Shape carries the caller's per-generation overrides into a recipe.
type Shape struct {
	// Roughness scales how much fine detail survives; 1 is neutral.
	Roughness float64
	// WaterBias pushes water-aware recipes lower; 0 is neutral.
	WaterBias float64
	// Orientation, in radians, steers directional features such as dunes,
	// cliffs and channels.
	Orientation float64
}

// octaves builds an Octaves with gain scaled by roughness and kept in a range
// where fbm stays well behaved.
func (sh Shape) octaves(count int, gain float64) Octaves {
	g := gain * sh.Roughness
	if g < 0.15 {
		g = 0.15
	}
	if g > 0.85 {
		g = 0.85
	}
	return Octaves{Count: count, Lacunarity: 2, Gain: g}
}

// Recipe shapes one biome. It returns a raw height for cell (x, y), whose
// coordinates normalized to [0, 1] are (nx, ny). Raw heights are rescaled
// relative to zero afterward, so only their sign and proportions matter.
type Recipe func(x, y int, nx, ny float64, seed uint32, sh Shape) float64

// derived reuses another recipe on a shifted seed.
func derived(base Recipe, seedOffset uint32) Recipe {
	return func(x, y int, nx, ny float64, seed uint32, sh Shape) float64 {
		return base(x, y, nx, ny, seed+seedOffset, sh)
	}
}

// centered maps [0, 1] noise onto [-0.5, 0.5].
func centered(v float64) float64 {
	return v - 0.5
}

func terrace(v float64, steps int) float64 {
	return math.Floor(v*float64(steps)) / float64(steps)
}

func plains(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	return 0.35 * centered(FBM(nx*3, ny*3, seed, sh.octaves(3, 0.45)))
}

func hills(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	return centered(FBM(nx*4, ny*4, seed, sh.octaves(4, 0.5)))
}

func mountain(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	ridges := Ridged(nx*3, ny*3, seed, sh.octaves(5, 0.5))
	massif := Dome(nx, ny, 0.5, 0.5, 0.75)
	return 0.85*ridges + 0.35*massif - 0.3
}

func volcano(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	cone := math.Pow(Dome(nx, ny, 0.5, 0.5, 0.6), 1.3)
	crater := 0.7 * Bowl(nx, ny, 0.5, 0.5, 0.16)
	flows := 0.15 * centered(Ridged(nx*5, ny*5, seed, sh.octaves(3, 0.5)))
	return cone + crater + flows - 0.15
}

func crater(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	d := math.Hypot(nx-0.5, ny-0.5)
	rim := 0.6 * math.Exp(-math.Pow((d-0.33)/0.07, 2))
	floor := 0.8 * Bowl(nx, ny, 0.5, 0.5, 0.34)
	return rim + floor + 0.1*centered(FBM(nx*5, ny*5, seed, sh.octaves(3, 0.5)))
}

func canyon(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	mesaTop := 0.35 + 0.1*centered(FBM(nx*3, ny*3, seed, sh.octaves(3, 0.5)))
	cut := Channel(nx, ny, sh.Orientation, 0.09, 0.12, seed)
	return mesaTop - 0.95*cut
}

func mesa(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	base := FBM(nx*2.5, ny*2.5, seed, sh.octaves(4, 0.5))
	return terrace(base, 4) - 0.45 + 0.05*centered(FBM(nx*9, ny*9, seed+5, sh.octaves(2, 0.5)))
}

func badlands(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	r := Ridged(nx*6, ny*6, seed, sh.octaves(4, 0.55))
	return terrace(r, 5) - 0.4
}

func plateau(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	d := math.Hypot(nx-0.5, ny-0.5)
	wobble := 0.08 * centered(FBM(nx*4, ny*4, seed, sh.octaves(3, 0.5)))
	top := 1 / (1 + math.Exp(-(0.33+wobble-d)*22))
	return 0.85*top - 0.3 + 0.08*centered(FBM(nx*6, ny*6, seed+3, sh.octaves(2, 0.5)))
}

func cliffs(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	band := CliffBand(nx, ny, sh.Orientation, 0, 18)
	return band - 0.5 + 0.12*centered(FBM(nx*5, ny*5, seed, sh.octaves(3, 0.5)))
}

func valley(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	_, v := rotate(nx, ny, sh.Orientation)
	walls := 2.4*v*v - 0.25
	return walls + 0.15*centered(FBM(nx*4, ny*4, seed, sh.octaves(4, 0.5)))
}

func fjord(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	ridges := Ridged(nx*3, ny*3, seed, sh.octaves(4, 0.5))
	sound := Channel(nx, ny, sh.Orientation, 0.07, 0.08, seed)
	return 0.7*ridges - 1.1*sound - 0.1*sh.WaterBias
}

func dunes(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	phase := lattice(3, 5, seed) * 2 * math.Pi
	crests := DuneWave(nx, ny, sh.Orientation, 4, phase)
	return 0.6*crests + 0.25*centered(FBM(nx*3, ny*3, seed, sh.octaves(3, 0.4))) - 0.15
}

func saltFlats(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	crust := centered(FBM(nx*2, ny*2, seed, sh.octaves(2, 0.3)))
	return 0.12*crust - 0.02
}

func swamp(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	pools := FBM(nx*4, ny*4, seed, sh.octaves(4, 0.55))
	return 0.6*centered(pools) - 0.3 - 0.3*sh.WaterBias
}

func ocean(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	swell := FBM(nx*2.5, ny*2.5, seed, sh.octaves(3, 0.5))
	return -0.7 + 0.3*centered(swell) - 0.2*sh.WaterBias
}

func river(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	banks := 0.25*centered(FBM(nx*3, ny*3, seed, sh.octaves(3, 0.5))) + 0.12
	bed := Channel(nx, ny, sh.Orientation, 0.08, 0.1, seed)
	return banks - 0.8*bed - 0.1*sh.WaterBias
}

func delta(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	var beds float64
	for i := 0; i < 3; i++ {
		a := sh.Orientation + (float64(i)-1)*0.35
		beds = math.Max(beds, Channel(nx, ny, a, 0.05, 0.07, seed+uint32(i)*101))
	}
	silt := 0.2 * centered(FBM(nx*4, ny*4, seed, sh.octaves(3, 0.45)))
	return silt - 0.6*beds - 0.05 - 0.15*sh.WaterBias
}

func lake(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	basin := 0.9 * Bowl(nx, ny, 0.5, 0.5, 0.45)
	return basin + 0.15 + 0.2*centered(FBM(nx*3, ny*3, seed, sh.octaves(3, 0.5))) - 0.2*sh.WaterBias
}

func island(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	land := 1.1 * Dome(nx, ny, 0.5, 0.5, 0.5)
	return land - 0.45 + 0.3*centered(FBM(nx*3, ny*3, seed, sh.octaves(4, 0.5))) - 0.2*sh.WaterBias
}

func archipelago(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	n := FBM(nx*4, ny*4, seed, sh.octaves(4, 0.5))
	return 1.4*(n-0.55) - 0.2*sh.WaterBias
}

func coast(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	shore := CliffBand(nx, ny, sh.Orientation, 0, 6)
	return shore - 0.55 + 0.2*centered(FBM(nx*4, ny*4, seed, sh.octaves(3, 0.5))) - 0.2*sh.WaterBias
}

func glacier(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	sheet := FBM(nx*2, ny*2, seed, sh.octaves(3, 0.35))
	crevasse := Channel(nx, ny, sh.Orientation, 0.04, 0.05, seed)
	return 0.5*sheet + 0.25*CliffBand(nx, ny, sh.Orientation+math.Pi/2, 0, 5) - 0.35*crevasse - 0.3
}

func tundra(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	ground := 0.3 * centered(FBM(nx*3, ny*3, seed, sh.octaves(3, 0.45)))
	hollows := 0.25 * math.Min(0, centered(FBM(nx*7, ny*7, seed+9, sh.octaves(2, 0.5))))
	return ground + hollows
}

func lavaField(_, _ int, nx, ny float64, seed uint32, sh Shape) float64 {
	tongues := centered(Ridged(nx*7, ny*7, seed, sh.octaves(3, 0.55)))
	return 0.3*tongues + 0.2*centered(FBM(nx*3, ny*3, seed+1, sh.octaves(3, 0.5)))
}

// recipes is the biome registry. Many biomes are another biome's recipe on a
// shifted seed; how much relief each gets lives in its Profile.
var recipes = map[string]Recipe{
	"plains":       plains,
	"grassland":    derived(plains, 11),
	"meadow":       derived(plains, 23),
	"steppe":       derived(plains, 31),
	"savanna":      derived(plains, 41),
	"farmland":     derived(plains, 53),
	"hills":        hills,
	"rollingHills": derived(hills, 7),
	"foothills":    derived(hills, 19),
	"highlands":    derived(hills, 29),
	"forest":       derived(hills, 37),
	"jungle":       derived(hills, 43),
	"taiga":        derived(hills, 47),
	"mountain":     mountain,
	"alpine":       derived(mountain, 3),
	"ridgeline":    derived(mountain, 13),
	"volcano":      volcano,
	"crater":       crater,
	"caldera":      derived(crater, 4),
	"canyon":       canyon,
	"ravine":       derived(canyon, 6),
	"mesa":         mesa,
	"badlands":     badlands,
	"plateau":      plateau,
	"cliffs":       cliffs,
	"valley":       valley,
	"fjord":        fjord,
	"desert":       derived(dunes, 5),
	"dunes":        dunes,
	"sandSea":      derived(dunes, 8),
	"saltFlats":    saltFlats,
	"swamp":        swamp,
	"marsh":        derived(swamp, 13),
	"bog":          derived(swamp, 17),
	"wetlands":     derived(swamp, 5),
	"mangrove":     derived(swamp, 61),
	"ocean":        ocean,
	"sea":          derived(ocean, 3),
	"river":        river,
	"delta":        delta,
	"lake":         lake,
	"island":       island,
	"reef":         derived(island, 71),
	"archipelago":  archipelago,
	"coast":        coast,
	"beach":        derived(coast, 3),
	"glacier":      glacier,
	"iceField":     derived(glacier, 2),
	"tundra":       tundra,
	"snowfield":    derived(tundra, 5),
	"lavaField":    lavaField,
}

// Keys lists every known biome in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(recipes))
	for k := range recipes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func Known(key string) bool {
	_, ok := recipes[key]
	return ok
}
