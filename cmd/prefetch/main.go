// prefetch warms the pebble elevation cache for a bounding box, so route
// generation in that area never waits on the elevation providers. Run it in
// the background against the areas riders actually plan in.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"baroudique/routeengine/concurrent"
	"baroudique/routeengine/domain"
	"baroudique/routeengine/elevation"
	"baroudique/routeengine/kv"

	"github.com/cockroachdb/pebble"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

var (
	cacheDir          = flag.String("cache-dir", "./routeengine-cache", "pebble cache directory")
	south             = flag.Float64("south", 0, "bounding box south latitude")
	west              = flag.Float64("west", 0, "bounding box west longitude")
	north             = flag.Float64("north", 0, "bounding box north latitude")
	east              = flag.Float64("east", 0, "bounding box east longitude")
	gridStep          = flag.Float64("step", 0.01, "grid step in degrees (~1km)")
	workers           = flag.Int("workers", 4, "concurrent lookup batches")
	batchSize         = flag.Int("batch", 100, "coordinates per provider request")
	elevationURL      = flag.String("elevation-url", "http://localhost:8000/api/elevation/lookup", "primary elevation lookup url")
	elevationFallback = flag.String("elevation-fallback-url", "https://api.open-elevation.com/api/v1/lookup", "fallback elevation lookup url")
	providerTimeout   = flag.Duration("provider-timeout", 30*time.Second, "timeout for provider calls")
)

func main() {
	flag.Parse()

	if *north <= *south || *east <= *west {
		log.Fatal("invalid bounding box: need south < north and west < east")
	}

	db, err := pebble.Open(*cacheDir, &pebble.Options{})
	if err != nil {
		log.Fatal(err)
	}
	kvdb := kv.NewKVDB(db)
	defer kvdb.Close()

	primary := elevation.NewLookupClient("baroudique-elevation", *elevationURL, *providerTimeout)
	fallback := elevation.NewLookupClient("open-elevation", *elevationFallback, *providerTimeout)
	processor := elevation.NewProcessor(kvdb, primary, fallback)

	batches := gridBatches(*south, *west, *north, *east, *gridStep, *batchSize)

	bar := progressbar.NewOptions(len(batches),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][1/1][reset] warming elevation cache..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	pool := concurrent.NewWorkerPool[[]domain.Coordinate, int](*workers, len(batches))
	for _, batch := range batches {
		pool.AddJob(batch)
	}
	pool.Close()

	pool.Start(func(batch []domain.Coordinate) int {
		values, err := processor.Lookup(context.Background(), batch)
		bar.Add(1)
		if err != nil {
			log.Printf("batch lookup failed: %v", err)
			return 0
		}
		stored := 0
		for _, v := range values {
			if v != nil {
				stored++
			}
		}
		return stored
	})
	pool.Wait()

	total := 0
	for stored := range pool.CollectResults() {
		total += stored
	}

	fmt.Println("")
	log.Printf("cached %d elevation samples across %d batches", total, len(batches))
}

func gridBatches(south, west, north, east, step float64, batchSize int) [][]domain.Coordinate {
	var batches [][]domain.Coordinate
	current := make([]domain.Coordinate, 0, batchSize)

	for lat := south; lat <= north; lat += step {
		for lon := west; lon <= east; lon += step {
			current = append(current, domain.Coordinate{Lat: lat, Lon: lon})
			if len(current) == batchSize {
				batches = append(batches, current)
				current = make([]domain.Coordinate, 0, batchSize)
			}
		}
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}
