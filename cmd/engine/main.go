package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/pprof"
	"strings"

	_ "github.com/MarioFengW/route-planning/docs"
	"github.com/MarioFengW/route-planning/pkg/datastructure"
	"github.com/MarioFengW/route-planning/pkg/emergency"
	"github.com/MarioFengW/route-planning/pkg/engine/searchengine"
	"github.com/MarioFengW/route-planning/pkg/evaluation"
	"github.com/MarioFengW/route-planning/pkg/kv"
	"github.com/MarioFengW/route-planning/pkg/osmparser"
	"github.com/MarioFengW/route-planning/pkg/server/rest"
	"github.com/MarioFengW/route-planning/pkg/server/rest/service"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	listenAddr = flag.String("listenaddr", ":5000", "server listen address")
	mapFile    = flag.String("f", "solo.osm.pbf", "openstreetmap file for the road network graph")
	dbPath     = flag.String("db", "./routeplanning-db", "badger key-value db directory")
	seed       = flag.Uint64("seed", 42, "rng seed for the evaluation endpoints")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

//	@title			route-planning API
//	@version		1.0
//	@description	openstreetmap route planning engine in go

//	@contact.name	Mario Feng
//	@description 	openstreetmap route planning engine in go. kd-tree road snapping, bfs/dfs/ucs/iddfs/astar path search, nearest-hospital resolution

//	@license.name	MIT

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	db, err := badger.Open(badger.DefaultOptions(*dbPath))
	if err != nil {
		log.Fatal(err)
	}
	kvDB := kv.NewKVDB(db)
	defer kvDB.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vertices, edges, hospitals, err := loadRoadNetwork(ctx, kvDB)
	if err != nil {
		log.Fatal(err)
	}
	recordMemProfile(memprofile, "load_road_network")

	graph, err := datastructure.NewGraph(vertices, edges)
	if err != nil {
		log.Fatal(err)
	}
	graph, err = graph.LargestComponent()
	if err != nil {
		log.Fatal(err)
	}

	points := make([]datastructure.KDPoint, 0, graph.NumVertices())
	for _, id := range graph.VertexIDs() {
		v, _ := graph.GetVertex(id)
		points = append(points, datastructure.NewKDPoint(v.ID, v.Lat, v.Lon))
	}
	index, err := datastructure.BuildKDTree(points)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("kd-tree over %d road vertices built in %s", index.Size(), index.ConstructionTime())

	engine := searchengine.NewSearchEngine(graph)
	resolver := emergency.NewResolver(graph, index, engine)

	svc := service.NewRoutePlanningService(graph, index, engine, resolver, kvDB, kvDB,
		evaluation.NewSearchEvaluator(graph, engine, *seed),
		evaluation.NewKDTreeEvaluator(graph, *seed))

	if err := svc.RestoreFacilities(ctx); err != nil {
		log.Fatal(err)
	}
	if len(svc.Facilities(ctx)) == 0 && len(hospitals) > 0 {
		seedHospitalFacilities(ctx, svc, hospitals)
	}
	recordMemProfile(memprofile, "service_init")

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:5000/swagger/doc.json"),
	))

	rest.RoutePlanningRouter(r, svc)

	fmt.Printf("\nroute planning engine ready!!")
	fmt.Printf("\nserver started at %s\n", *listenAddr)

	log.Fatal(http.ListenAndServe(*listenAddr, r))
}

// loadRoadNetwork uses the cached snapshot when one exists, otherwise parses
// the pbf file and caches the result.
func loadRoadNetwork(ctx context.Context, kvDB *kv.KVDB) ([]datastructure.Vertex,
	[]datastructure.Edge, []osmparser.HospitalPOI, error) {
	vertices, edges, hospitals, err := kvDB.LoadGraphSnapshot()
	if err == nil {
		log.Printf("loaded graph snapshot from key-value db (%d vertices, %d edges)", len(vertices), len(edges))
		return vertices, edges, hospitals, nil
	}
	if !errors.Is(err, kv.ErrSnapshotNotFound) {
		return nil, nil, nil, err
	}

	log.Printf("reading osm file %s", *mapFile)
	parser := osmparser.NewOSMParser()
	vertices, edges, hospitals, err = parser.Parse(*mapFile)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := kvDB.SaveGraphSnapshot(vertices, edges, hospitals); err != nil {
		return nil, nil, nil, err
	}
	if err := kvDB.BuildH3IndexedHospitals(ctx, hospitals); err != nil {
		return nil, nil, nil, err
	}
	return vertices, edges, hospitals, nil
}

func seedHospitalFacilities(ctx context.Context, svc *service.RoutePlanningService,
	hospitals []osmparser.HospitalPOI) {
	inputs := make([]emergency.FacilityInput, 0, len(hospitals))
	for _, h := range hospitals {
		inputs = append(inputs, emergency.FacilityInput{Name: h.Name, Lat: h.Lat, Lon: h.Lon})
	}
	registered, err := svc.RegisterFacilities(ctx, inputs)
	if err != nil {
		log.Printf("error seeding hospital facilities: %v", err)
		return
	}
	log.Printf("seeded %d hospital facilities from openstreetmap", len(registered))
}

func recordMemProfile(memprofile *string, name string) {
	if *memprofile != "" {
		*memprofile = strings.Replace(*memprofile, ".mprof", fmt.Sprintf("%s.mprof", name), -1)
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
