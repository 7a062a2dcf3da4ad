package emulator

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Generator fabricates `sensors -j` documents with plausible readings.
// Values are scaled by 1000 the way lm-sensors reports them raw.
type Generator struct {
	numTemps int
	numHums  int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator for the given sensor counts.
// A zero seed picks a time-based one.
func NewGenerator(numTemps, numHums int, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		numTemps: numTemps,
		numHums:  numHums,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Report renders one document with a single "emulator" chip carrying
// temperatures uniform in -30..30 °C and humidity uniform in 0..100 %.
func (g *Generator) Report() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	chip := make(map[string]float64, g.numTemps+g.numHums)
	for i := 1; i <= g.numTemps; i++ {
		chip[fmt.Sprintf("temp%d_input", i)] = round2((g.rng.Float64()*60 - 30) * 1000)
	}
	for i := 1; i <= g.numHums; i++ {
		chip[fmt.Sprintf("humidity%d_input", i)] = round2(g.rng.Float64() * 100 * 1000)
	}

	return json.Marshal(map[string]map[string]float64{"emulator": chip})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
