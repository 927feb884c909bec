// Stress test comparing the x-axis partition against a naive pair scan
package main

import (
	"flag"
	"math/rand/v2"
	"os"
	"time"

	"platform2d/internal/physics"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	steps := flag.Int("steps", 60, "physics steps per object count")
	width := flag.Float64("partition-width", float64(physics.DefaultConfig().PartitionWidth), "partition leaf width")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "stress"})

	// Test various object counts
	testCounts := []int{100, 500, 1000, 2000, 5000, 10000}

	failed := false
	for _, count := range testCounts {
		if !testBroadPhase(logger, count, *steps, float32(*width), *seed) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func testBroadPhase(logger *log.Logger, count, steps int, width float32, seed uint64) bool {
	rng := rand.New(rand.NewPCG(seed, uint64(count)))

	engine := physics.NewEngine(physics.Config{PartitionWidth: width}, physics.WithLogger(log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel, Prefix: "physics"})))

	// Spread along x, scaling with count to keep density reasonable
	spawnWidth := float32(50.0) + float32(count)/10.0
	bodies := make([]*physics.Body, count)
	for i := range bodies {
		shape, err := physics.NewCircleShape(0.5 + rng.Float32()*0.5) // 0.5 to 1.0 radius
		if err != nil {
			logger.Fatal("bad shape", "err", err)
		}
		pos := rl.Vector2{X: rng.Float32()*spawnWidth - spawnWidth/2, Y: rng.Float32() * 10}
		b := physics.NewBody(physics.Dynamic, pos, shape)
		b.Velocity = rl.Vector2{X: rng.Float32()*20 - 10}
		engine.AddBody(b)
		bodies[i] = b
	}

	// Time the incremental partition
	start := time.Now()
	for range steps {
		engine.Update(1.0 / 60)
	}
	treeTime := time.Since(start) / time.Duration(steps)

	treePairs := 0
	for _, b := range bodies {
		for _, other := range b.Ball().Candidates() {
			if b.Extent().Overlaps(other.Extent()) {
				treePairs++
			}
		}
	}
	treePairs /= 2

	// Time naive O(n²)
	start = time.Now()
	naivePairs := 0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].Extent().Overlaps(bodies[j].Extent()) {
				naivePairs++
			}
		}
	}
	naiveTime := time.Since(start)

	tree := engine.Partition()
	fields := []any{
		"objects", count,
		"step", treeTime.Round(time.Microsecond),
		"scan", naiveTime.Round(time.Microsecond),
		"pairs", treePairs,
		"leaves", tree.LeafCount(),
		"depth", tree.Depth(),
	}
	if treePairs != naivePairs {
		logger.Error("pair count mismatch", append(fields, "naive", naivePairs)...)
		return false
	}
	logger.Info("ok", fields...)
	return true
}
