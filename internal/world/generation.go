// Demo terrain generation using layered simplex noise. Rock fields carve
// the floor into cave-like open areas; trees and ore veins scatter over
// the floor as findable objects.
package world

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/karstvale/tile-region-engine/internal/grid"
)

// Object kinds placed by the generator.
const (
	KindTree = "tree"
	KindOre  = "ore"
)

// GenConfig holds terrain generation parameters.
type GenConfig struct {
	Cols, Rows int
	Seed       int64   // 0 picks a random seed
	RockLevel  float64 // noise threshold above which a tile is rock
	TreeLevel  float64 // noise threshold above which floor may grow a tree
	OreLevel   float64 // noise threshold above which rock edges may hold ore
}

// DefaultGenConfig returns generation parameters tuned for a readable
// demo map at the given size.
func DefaultGenConfig(cols, rows int, seed int64) GenConfig {
	return GenConfig{
		Cols:      cols,
		Rows:      rows,
		Seed:      seed,
		RockLevel: 0.62,
		TreeLevel: 0.58,
		OreLevel:  0.55,
	}
}

// Generate creates a world of rock fields, scattered trees, and ore
// veins hugging the rock edges. The same seed always yields the same
// terrain and object positions.
func Generate(cfg GenConfig) *World {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	rockNoise := opensimplex.NewNormalized(seed)
	treeNoise := opensimplex.NewNormalized(seed + 1)
	oreNoise := opensimplex.NewNormalized(seed + 2)
	rng := rand.New(rand.NewSource(seed + 100))

	w := New(cfg.Cols, cfg.Rows)

	for y := 0; y < cfg.Rows; y++ {
		for x := 0; x < cfg.Cols; x++ {
			fx, fy := float64(x), float64(y)

			elev := octaveNoise(rockNoise, fx, fy, 4, 0.08, 0.5)
			if elev > cfg.RockLevel {
				w.solid[w.idx(x, y)] = true
				continue
			}

			// Forested patches, thinned so trees stay findable rather
			// than carpeting the floor.
			if octaveNoise(treeNoise, fx, fy, 3, 0.06, 0.5) > cfg.TreeLevel && rng.Float64() < 0.4 {
				w.PlaceObject(KindTree, grid.Point{X: x, Y: y})
			}
		}
	}

	placeOreVeins(w, oreNoise, cfg, rng)

	return w
}

// placeOreVeins drops ore on floor tiles bordering rock where the ore
// noise runs high, so veins trace the rock edges.
func placeOreVeins(w *World, noise opensimplex.Noise, cfg GenConfig, rng *rand.Rand) {
	for y := 0; y < cfg.Rows; y++ {
		for x := 0; x < cfg.Cols; x++ {
			if w.solid[w.idx(x, y)] {
				continue
			}
			if octaveNoise(noise, float64(x), float64(y), 3, 0.05, 0.5) <= cfg.OreLevel {
				continue
			}
			if !bordersRock(w, x, y) {
				continue
			}
			if rng.Float64() < 0.5 {
				w.PlaceObject(KindOre, grid.Point{X: x, Y: y})
			}
		}
	}
}

func bordersRock(w *World, x, y int) bool {
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if w.IsSolid(x+d[0], y+d[1]) {
			return true
		}
	}
	return false
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
