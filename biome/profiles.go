package biome

// Profile is the curated presentation of one biome: how tall it stands and
// how its raw shape is post-processed.
type Profile struct {
	// Amplitude is the target peak magnitude in height levels before relief
	// is applied.
	Amplitude int
	// MinAmp and MaxAmp bound the amplitude after relief. Zero leaves that
	// side open.
	MinAmp, MaxAmp int

	SmoothRadius     int
	SmoothIterations int

	// Power reshapes magnitudes relative to the amplitude; above 1 sharpens
	// ridges, below 1 flattens. Zero means 1.
	Power float64

	// WaterLevel shifts every cell, in height levels.
	WaterLevel float64

	// PixelJump is the on-screen rise in pixels wanted between neighboring
	// quantized levels.
	PixelJump float64

	// ScaleHint is the advisory pixels-per-level for this biome.
	ScaleHint float64
}

var defaultProfile = Profile{Amplitude: 3, PixelJump: 8, ScaleHint: 8}

// lowland is shared by the gentle open biomes.
func lowland(amp int) Profile {
	return Profile{
		Amplitude:        amp,
		MaxAmp:           4,
		SmoothRadius:     1,
		SmoothIterations: 2,
		Power:            0.9,
		PixelJump:        6,
		ScaleHint:        6,
	}
}

func wet(amp int, water float64) Profile {
	return Profile{
		Amplitude:        amp,
		MaxAmp:           4,
		SmoothRadius:     1,
		SmoothIterations: 1,
		WaterLevel:       water,
		PixelJump:        6,
		ScaleHint:        6,
	}
}

func craggy(amp, lo, hi int, power float64) Profile {
	return Profile{
		Amplitude: amp,
		MinAmp:    lo,
		MaxAmp:    hi,
		Power:     power,
		PixelJump: 8,
		ScaleHint: 10,
	}
}

var profiles = map[string]Profile{
	"plains":    lowland(2),
	"grassland": lowland(2),
	"meadow":    lowland(2),
	"steppe":    lowland(2),
	"savanna":   lowland(2),
	"farmland": {
		Amplitude: 1, MaxAmp: 2, SmoothRadius: 2, SmoothIterations: 2,
		PixelJump: 4, ScaleHint: 6,
	},

	"hills":        {Amplitude: 4, MinAmp: 2, MaxAmp: 6, SmoothRadius: 1, SmoothIterations: 1, PixelJump: 8, ScaleHint: 8},
	"rollingHills": {Amplitude: 3, MinAmp: 2, MaxAmp: 5, SmoothRadius: 1, SmoothIterations: 2, Power: 0.9, PixelJump: 8, ScaleHint: 8},
	"foothills":    {Amplitude: 5, MinAmp: 3, MaxAmp: 7, PixelJump: 8, ScaleHint: 8},
	"highlands":    {Amplitude: 6, MinAmp: 4, MaxAmp: 8, Power: 1.1, PixelJump: 8, ScaleHint: 8},
	"forest":       {Amplitude: 3, MaxAmp: 5, SmoothRadius: 1, SmoothIterations: 1, PixelJump: 8, ScaleHint: 8},
	"jungle":       {Amplitude: 4, MaxAmp: 6, PixelJump: 8, ScaleHint: 8},
	"taiga":        {Amplitude: 3, MaxAmp: 5, SmoothRadius: 1, SmoothIterations: 1, PixelJump: 8, ScaleHint: 8},

	"mountain":  craggy(8, 6, 10, 1.3),
	"alpine":    craggy(9, 7, 10, 1.4),
	"ridgeline": craggy(7, 5, 10, 1.5),
	"volcano":   craggy(9, 6, 10, 1.2),
	"crater":    craggy(6, 4, 8, 1),
	"caldera":   craggy(7, 5, 9, 1),
	"canyon":    craggy(7, 5, 10, 1),
	"ravine":    craggy(5, 4, 8, 1.1),
	"mesa":      craggy(6, 4, 8, 1),
	"badlands":  craggy(5, 3, 8, 1),
	"plateau":   craggy(6, 4, 8, 1),
	"cliffs":    craggy(7, 5, 10, 1),
	"valley":    {Amplitude: 6, MinAmp: 4, MaxAmp: 8, SmoothRadius: 1, SmoothIterations: 1, PixelJump: 8, ScaleHint: 8},
	"fjord":     craggy(8, 6, 10, 1.2),

	"desert":    {Amplitude: 3, MaxAmp: 5, SmoothRadius: 1, SmoothIterations: 1, PixelJump: 6, ScaleHint: 6},
	"dunes":     {Amplitude: 4, MinAmp: 2, MaxAmp: 6, SmoothRadius: 1, SmoothIterations: 1, PixelJump: 6, ScaleHint: 6},
	"sandSea":   {Amplitude: 5, MinAmp: 3, MaxAmp: 7, SmoothRadius: 1, SmoothIterations: 1, PixelJump: 6, ScaleHint: 6},
	"saltFlats": {Amplitude: 1, MaxAmp: 1, SmoothRadius: 2, SmoothIterations: 2, PixelJump: 4, ScaleHint: 4},

	"swamp":    wet(2, -0.5),
	"marsh":    wet(2, -0.5),
	"bog":      wet(2, -1),
	"wetlands": wet(2, -0.5),
	"mangrove": wet(3, -1),
	"ocean":    {Amplitude: 6, MaxAmp: 8, SmoothRadius: 1, SmoothIterations: 2, WaterLevel: -1, PixelJump: 6, ScaleHint: 6},
	"sea":      {Amplitude: 5, MaxAmp: 7, SmoothRadius: 1, SmoothIterations: 2, WaterLevel: -1, PixelJump: 6, ScaleHint: 6},
	"river":    {Amplitude: 3, MaxAmp: 5, SmoothRadius: 1, SmoothIterations: 1, PixelJump: 6, ScaleHint: 6},
	"delta":    wet(2, -0.5),
	"lake":     {Amplitude: 4, MaxAmp: 6, SmoothRadius: 1, SmoothIterations: 1, WaterLevel: -0.5, PixelJump: 6, ScaleHint: 6},
	"island":   {Amplitude: 5, MinAmp: 3, MaxAmp: 7, SmoothRadius: 1, SmoothIterations: 1, PixelJump: 8, ScaleHint: 8},
	"reef":     {Amplitude: 2, MaxAmp: 3, SmoothRadius: 1, SmoothIterations: 1, WaterLevel: -1, PixelJump: 6, ScaleHint: 6},
	"archipelago": {
		Amplitude: 4, MaxAmp: 6, SmoothRadius: 1, SmoothIterations: 1,
		WaterLevel: -0.5, PixelJump: 8, ScaleHint: 8,
	},
	"coast": {Amplitude: 4, MaxAmp: 6, SmoothRadius: 1, SmoothIterations: 1, PixelJump: 6, ScaleHint: 6},
	"beach": {Amplitude: 2, MaxAmp: 3, SmoothRadius: 2, SmoothIterations: 1, PixelJump: 4, ScaleHint: 6},

	"glacier":   {Amplitude: 5, MinAmp: 3, MaxAmp: 7, Power: 0.8, PixelJump: 8, ScaleHint: 8},
	"iceField":  {Amplitude: 3, MaxAmp: 5, SmoothRadius: 1, SmoothIterations: 2, Power: 0.8, PixelJump: 6, ScaleHint: 6},
	"tundra":    lowland(2),
	"snowfield": lowland(1),
	"lavaField": {Amplitude: 3, MaxAmp: 5, Power: 1.2, PixelJump: 6, ScaleHint: 6},
}

// ProfileFor returns the profile of key and whether the key has one of its
// own. Keys without a curated profile get a modest default.
func ProfileFor(key string) (Profile, bool) {
	p, ok := profiles[key]
	if !ok {
		return defaultProfile, false
	}
	return p, true
}
