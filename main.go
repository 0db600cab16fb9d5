package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"baroudique/routeengine/api"
	"baroudique/routeengine/elevation"
	"baroudique/routeengine/kv"
	"baroudique/routeengine/quality"
	"baroudique/routeengine/roadattr"
	"baroudique/routeengine/routing"
	"baroudique/routeengine/service"

	"github.com/cockroachdb/pebble"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	listenAddr         = flag.String("listen-addr", ":8000", "http listen address")
	cacheDir           = flag.String("cache-dir", "./routeengine-cache", "pebble cache directory for elevation cells and overpass responses")
	pbfPath            = flag.String("pbf", "", "optional local .osm.pbf extract, replaces overpass as road-attribute source")
	orsURL             = flag.String("ors-url", "https://api.openrouteservice.org/v2/directions", "openrouteservice directions base url")
	osrmURL            = flag.String("osrm-url", "https://router.project-osrm.org/route/v1/cycling", "osrm cycling base url")
	elevationURL       = flag.String("elevation-url", "http://localhost:8000/api/elevation/lookup", "primary elevation lookup url")
	elevationFallback  = flag.String("elevation-fallback-url", "https://api.open-elevation.com/api/v1/lookup", "fallback elevation lookup url")
	overpassURL        = flag.String("overpass-url", "https://overpass-api.de/api/interpreter", "overpass interpreter url")
	providerTimeout    = flag.Duration("provider-timeout", 30*time.Second, "timeout for outbound provider calls")
	deterministicScore = flag.Bool("deterministic-score", false, "disable heuristic score jitter")
)

func main() {
	flag.Parse()

	db, err := pebble.Open(*cacheDir, &pebble.Options{})
	if err != nil {
		log.Fatal(err)
	}
	kvdb := kv.NewKVDB(db)
	defer kvdb.Close()

	primaryElevation := elevation.NewLookupClient("baroudique-elevation", *elevationURL, *providerTimeout)
	fallbackElevation := elevation.NewLookupClient("open-elevation", *elevationFallback, *providerTimeout)
	processor := elevation.NewProcessor(kvdb, primaryElevation, fallbackElevation)

	var roadProvider roadattr.Provider
	offlineRoads := false
	if *pbfPath != "" {
		extract, err := roadattr.NewExtractProvider(context.Background(), *pbfPath)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("loaded %d road attribute records from %s", extract.Len(), *pbfPath)
		roadProvider = extract
		offlineRoads = true
	} else {
		roadProvider = roadattr.NewOverpassClient(*overpassURL, *providerTimeout)
	}
	fetcher := roadattr.NewFetcher(roadProvider, kvdb)

	var variance quality.Variance = quality.NewSeededVariance(time.Now().UnixNano())
	if *deterministicScore {
		variance = quality.NoVariance{}
	}
	engine := quality.NewEngine(variance)

	var routers []service.RoutingProvider
	routerNames := []string{}
	ors := routing.NewORSClient(*orsURL, os.Getenv("ORS_API_KEY"), *providerTimeout)
	if ors.Configured() {
		routers = append(routers, ors)
		routerNames = append(routerNames, ors.Name())
	} else {
		log.Println("no ORS_API_KEY set, routing through osrm only")
	}
	osrm := routing.NewOSRMClient(*osrmURL, *providerTimeout)
	routers = append(routers, osrm)
	routerNames = append(routerNames, osrm.Name())

	svc := service.NewRoutePlannerService(routers, processor, fetcher, engine)

	reg := prometheus.NewRegistry()
	m := api.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.PromeHttpMiddleware(m))

	api.RoutePlannerRouter(r, svc, processor, api.HealthInfo{
		RoutingProviders:   routerNames,
		ElevationProviders: []string{primaryElevation.Name(), fallbackElevation.Name()},
		OfflineRoadData:    offlineRoads,
	}, m)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	log.Printf("server started at %s", *listenAddr)
	log.Fatal(http.ListenAndServe(*listenAddr, r))
}
