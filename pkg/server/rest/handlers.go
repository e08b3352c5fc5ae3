package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MarioFengW/route-planning/pkg/datastructure"
	"github.com/MarioFengW/route-planning/pkg/emergency"
	"github.com/MarioFengW/route-planning/pkg/evaluation"
	"github.com/MarioFengW/route-planning/pkg/osmparser"
	"github.com/MarioFengW/route-planning/pkg/server"
	"github.com/MarioFengW/route-planning/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type RoutePlanningService interface {
	ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64,
		algorithm, heuristic string) (datastructure.SearchResult, []datastructure.Coordinate, error)
	SnapToVertex(ctx context.Context, lat, lon float64) (datastructure.Vertex, float64, error)
	Stats(ctx context.Context) service.GraphStats
	RegisterFacilities(ctx context.Context, inputs []emergency.FacilityInput) ([]emergency.Facility, error)
	Facilities(ctx context.Context) []emergency.Facility
	NearestFacility(ctx context.Context, lat, lon float64) (emergency.Facility, float64, error)
	NearbyHospitals(ctx context.Context, lat, lon float64) ([]osmparser.HospitalPOI, error)
	EmergencyRoute(ctx context.Context, lat, lon float64,
		algorithm, heuristic string) (emergency.FacilityRoute, []datastructure.Coordinate, error)
	EvaluateSearch(ctx context.Context, pairsPerBucket int) (evaluation.SearchEvaluation, error)
	EvaluateKDTree(ctx context.Context, numSamples int, useRealLocations bool) (evaluation.KDTreeEvaluation, error)
}

type RoutePlanningHandler struct {
	svc RoutePlanningService
}

func RoutePlanningRouter(r *chi.Mux, svc RoutePlanningService) {
	handler := &RoutePlanningHandler{svc}

	r.Group(func(r chi.Router) {
		r.Route("/api", func(r chi.Router) {
			r.Get("/health", handler.Health)
			r.Get("/graph/stats", handler.Stats)

			r.Route("/navigations", func(r chi.Router) {
				r.Post("/shortest-path", handler.ShortestPath)
				r.Post("/snap", handler.SnapToVertex)
			})

			r.Route("/emergency", func(r chi.Router) {
				r.Post("/facilities", handler.RegisterFacilities)
				r.Get("/facilities", handler.Facilities)
				r.Post("/nearest", handler.NearestFacility)
				r.Post("/nearby", handler.NearbyHospitals)
				r.Post("/route", handler.EmergencyRoute)
			})

			r.Route("/evaluation", func(r chi.Router) {
				r.Post("/search", handler.EvaluateSearch)
				r.Post("/kdtree", handler.EvaluateKDTree)
			})
		})
	})
}

// Health
//
//	@Summary		service liveness probe
//	@Tags			meta
//	@Produce		application/json
//	@Router			/health [get]
//	@Success		200	{object}	map[string]string
func (h *RoutePlanningHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// Stats
//
//	@Summary		road network and spatial index statistics
//	@Tags			meta
//	@Produce		application/json
//	@Router			/graph/stats [get]
//	@Success		200	{object}	service.GraphStats
func (h *RoutePlanningHandler) Stats(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.svc.Stats(r.Context()))
}

// ShortestPathRequest model info
//
//	@Description	request body for shortest path between two coordinates
type ShortestPathRequest struct {
	SrcLat    float64 `json:"src_lat" validate:"required,lt=90,gt=-90"`
	SrcLon    float64 `json:"src_lon" validate:"required,lt=180,gt=-180"`
	DstLat    float64 `json:"dst_lat" validate:"required,lt=90,gt=-90"`
	DstLon    float64 `json:"dst_lon" validate:"required,lt=180,gt=-180"`
	Algorithm string  `json:"algorithm" validate:"omitempty,oneof=bfs dfs ucs iddfs astar"`
	Heuristic string  `json:"heuristic" validate:"omitempty,oneof=haversine euclidean manhattan"`
}

func (s *ShortestPathRequest) Bind(r *http.Request) error {
	if s.SrcLat == 0 && s.SrcLon == 0 && s.DstLat == 0 && s.DstLon == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// ShortestPathResponse model info
//
//	@Description	response body for shortest path
type ShortestPathResponse struct {
	Path          string                     `json:"path"`
	Route         []datastructure.Coordinate `json:"route"`
	Algorithm     string                     `json:"algorithm"`
	VertexPath    []int64                    `json:"vertex_path"`
	Distance      float64                    `json:"distance"`
	NodesExpanded int                        `json:"nodes_expanded"`
	SearchTime    float64                    `json:"search_time"`
}

func RenderShortestPathResponse(result datastructure.SearchResult, route []datastructure.Coordinate) *ShortestPathResponse {
	return &ShortestPathResponse{
		Path:          datastructure.RenderPath(route),
		Route:         route,
		Algorithm:     result.Algorithm,
		VertexPath:    result.Path,
		Distance:      result.Cost,
		NodesExpanded: result.Expanded,
		SearchTime:    result.Duration.Seconds(),
	}
}

// ShortestPath
//
//	@Summary		shortest path between two coordinates using the requested search strategy
//	@Description	snaps both coordinates to the road network and runs bfs/dfs/ucs/iddfs/astar between them
//	@Tags			navigations
//	@Param			body	body	ShortestPathRequest	true	"shortest path request body"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *RoutePlanningHandler) ShortestPath(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if ok := h.validate(w, r, data); !ok {
		return
	}

	result, route, err := h.svc.ShortestPath(r.Context(), data.SrcLat, data.SrcLon,
		data.DstLat, data.DstLon, data.Algorithm, data.Heuristic)
	if err != nil {
		render.Render(w, r, ErrFromServerError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderShortestPathResponse(result, route))
}

// SnapRequest model info
//
//	@Description	request body for snapping a coordinate to its nearest road vertex
type SnapRequest struct {
	Lat float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon float64 `json:"lon" validate:"required,lt=180,gt=-180"`
}

func (s *SnapRequest) Bind(r *http.Request) error {
	if s.Lat == 0 && s.Lon == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// SnapResponse model info
//
//	@Description	response body for road network snapping
type SnapResponse struct {
	Vertex   datastructure.Vertex `json:"vertex"`
	Distance float64              `json:"distance"`
}

// SnapToVertex
//
//	@Summary		nearest road vertex to a coordinate
//	@Tags			navigations
//	@Param			body	body	SnapRequest	true	"snap request body"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/snap [post]
//	@Success		200	{object}	SnapResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *RoutePlanningHandler) SnapToVertex(w http.ResponseWriter, r *http.Request) {
	data := &SnapRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if ok := h.validate(w, r, data); !ok {
		return
	}

	vertex, dist, err := h.svc.SnapToVertex(r.Context(), data.Lat, data.Lon)
	if err != nil {
		render.Render(w, r, ErrFromServerError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, SnapResponse{Vertex: vertex, Distance: dist})
}

// RegisterFacilitiesRequest model info
//
//	@Description	request body replacing the registered emergency facility set
type RegisterFacilitiesRequest struct {
	Facilities []FacilityBody `json:"facilities" validate:"required,min=1,dive"`
}

// FacilityBody model info
//
//	@Description	one emergency facility to register
type FacilityBody struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon  float64 `json:"lon" validate:"required,lt=180,gt=-180"`
}

func (s *RegisterFacilitiesRequest) Bind(r *http.Request) error {
	if len(s.Facilities) == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// FacilitiesResponse model info
//
//	@Description	registered emergency facilities with their snapped road vertices
type FacilitiesResponse struct {
	Facilities []emergency.Facility `json:"facilities"`
}

// RegisterFacilities
//
//	@Summary		replace the registered emergency facility set
//	@Description	each facility is snapped to its own road vertex; the previous set is discarded
//	@Tags			emergency
//	@Param			body	body	RegisterFacilitiesRequest	true	"facilities to register"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/emergency/facilities [post]
//	@Success		200	{object}	FacilitiesResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *RoutePlanningHandler) RegisterFacilities(w http.ResponseWriter, r *http.Request) {
	data := &RegisterFacilitiesRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if ok := h.validate(w, r, data); !ok {
		return
	}

	inputs := make([]emergency.FacilityInput, 0, len(data.Facilities))
	for _, f := range data.Facilities {
		inputs = append(inputs, emergency.FacilityInput{Name: f.Name, Lat: f.Lat, Lon: f.Lon})
	}

	registered, err := h.svc.RegisterFacilities(r.Context(), inputs)
	if err != nil {
		render.Render(w, r, ErrFromServerError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, FacilitiesResponse{Facilities: registered})
}

// Facilities
//
//	@Summary		list the registered emergency facilities
//	@Tags			emergency
//	@Produce		application/json
//	@Router			/emergency/facilities [get]
//	@Success		200	{object}	FacilitiesResponse
func (h *RoutePlanningHandler) Facilities(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, FacilitiesResponse{Facilities: h.svc.Facilities(r.Context())})
}

// NearestFacilityResponse model info
//
//	@Description	nearest registered facility to the query coordinate
type NearestFacilityResponse struct {
	Facility emergency.Facility `json:"facility"`
	Distance float64            `json:"distance"`
}

// NearestFacility
//
//	@Summary		nearest registered facility to a coordinate
//	@Tags			emergency
//	@Param			body	body	SnapRequest	true	"query coordinate"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/emergency/nearest [post]
//	@Success		200	{object}	NearestFacilityResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *RoutePlanningHandler) NearestFacility(w http.ResponseWriter, r *http.Request) {
	data := &SnapRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if ok := h.validate(w, r, data); !ok {
		return
	}

	facility, dist, err := h.svc.NearestFacility(r.Context(), data.Lat, data.Lon)
	if err != nil {
		render.Render(w, r, ErrFromServerError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NearestFacilityResponse{Facility: facility, Distance: dist})
}

// NearbyHospitalsResponse model info
//
//	@Description	hospital POIs indexed around the query coordinate
type NearbyHospitalsResponse struct {
	Hospitals []osmparser.HospitalPOI `json:"hospitals"`
	Count     int                     `json:"count"`
}

// NearbyHospitals
//
//	@Summary		hospital POIs from the map around a coordinate
//	@Description	looks up the h3 cell of the coordinate and widens the disk until hospitals are found
//	@Tags			emergency
//	@Param			body	body	SnapRequest	true	"query coordinate"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/emergency/nearby [post]
//	@Success		200	{object}	NearbyHospitalsResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *RoutePlanningHandler) NearbyHospitals(w http.ResponseWriter, r *http.Request) {
	data := &SnapRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if ok := h.validate(w, r, data); !ok {
		return
	}

	hospitals, err := h.svc.NearbyHospitals(r.Context(), data.Lat, data.Lon)
	if err != nil {
		render.Render(w, r, ErrFromServerError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NearbyHospitalsResponse{Hospitals: hospitals, Count: len(hospitals)})
}

// EmergencyRouteRequest model info
//
//	@Description	request body routing a coordinate to its nearest facility
type EmergencyRouteRequest struct {
	Lat       float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon       float64 `json:"lon" validate:"required,lt=180,gt=-180"`
	Algorithm string  `json:"algorithm" validate:"omitempty,oneof=bfs dfs ucs iddfs astar"`
	Heuristic string  `json:"heuristic" validate:"omitempty,oneof=haversine euclidean manhattan"`
}

func (s *EmergencyRouteRequest) Bind(r *http.Request) error {
	if s.Lat == 0 && s.Lon == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// EmergencyRouteResponse model info
//
//	@Description	route from the query coordinate to its nearest facility
type EmergencyRouteResponse struct {
	Path              string                     `json:"path"`
	Route             []datastructure.Coordinate `json:"route"`
	FacilityRoute     emergency.FacilityRoute    `json:"facility_route"`
	TravelTimeMinutes float64                    `json:"travel_time_minutes"`
}

// EmergencyRoute
//
//	@Summary		route from a coordinate to its nearest registered facility
//	@Tags			emergency
//	@Param			body	body	EmergencyRouteRequest	true	"emergency route request body"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/emergency/route [post]
//	@Success		200	{object}	EmergencyRouteResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *RoutePlanningHandler) EmergencyRoute(w http.ResponseWriter, r *http.Request) {
	data := &EmergencyRouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if ok := h.validate(w, r, data); !ok {
		return
	}

	route, coords, err := h.svc.EmergencyRoute(r.Context(), data.Lat, data.Lon, data.Algorithm, data.Heuristic)
	if err != nil {
		render.Render(w, r, ErrFromServerError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, EmergencyRouteResponse{
		Path:              datastructure.RenderPath(coords),
		Route:             coords,
		FacilityRoute:     route,
		TravelTimeMinutes: route.TravelTimeMinutes,
	})
}

// EvaluateSearchRequest model info
//
//	@Description	request body for the search strategy evaluation run
type EvaluateSearchRequest struct {
	PairsPerBucket int `json:"pairs_per_bucket" validate:"required,min=1,max=1000"`
}

func (s *EvaluateSearchRequest) Bind(r *http.Request) error {
	if s.PairsPerBucket == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// EvaluateSearch
//
//	@Summary		run every search strategy over sampled vertex pairs
//	@Description	samples pairs_per_bucket start/goal pairs in every distance bucket and recommends a strategy per bucket
//	@Tags			evaluation
//	@Param			body	body	EvaluateSearchRequest	true	"evaluation parameters"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/evaluation/search [post]
//	@Success		200	{object}	evaluation.SearchEvaluation
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *RoutePlanningHandler) EvaluateSearch(w http.ResponseWriter, r *http.Request) {
	data := &EvaluateSearchRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if ok := h.validate(w, r, data); !ok {
		return
	}

	eval, err := h.svc.EvaluateSearch(r.Context(), data.PairsPerBucket)
	if err != nil {
		render.Render(w, r, ErrFromServerError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, eval)
}

// EvaluateKDTreeRequest model info
//
//	@Description	request body for the spatial index evaluation run
type EvaluateKDTreeRequest struct {
	NumSamples       int  `json:"num_samples" validate:"required,min=1,max=10000"`
	UseRealLocations bool `json:"use_real_locations"`
}

func (s *EvaluateKDTreeRequest) Bind(r *http.Request) error {
	if s.NumSamples == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// EvaluateKDTree
//
//	@Summary		benchmark indexed nearest-neighbor queries against the exhaustive baseline
//	@Tags			evaluation
//	@Param			body	body	EvaluateKDTreeRequest	true	"evaluation parameters"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/evaluation/kdtree [post]
//	@Success		200	{object}	evaluation.KDTreeEvaluation
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *RoutePlanningHandler) EvaluateKDTree(w http.ResponseWriter, r *http.Request) {
	data := &EvaluateKDTreeRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if ok := h.validate(w, r, data); !ok {
		return
	}

	eval, err := h.svc.EvaluateKDTree(r.Context(), data.NumSamples, data.UseRealLocations)
	if err != nil {
		render.Render(w, r, ErrFromServerError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, eval)
}

func (h *RoutePlanningHandler) validate(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	validate := validator.New()
	if err := validate.Struct(data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return false
	}
	return true
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

// ErrResponse model info
//
//	@Description	model for error responses
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

// ErrFromServerError maps a server error code to its HTTP status.
func ErrFromServerError(err error) render.Renderer {
	var serverErr *server.Error
	if !errors.As(err, &serverErr) {
		return ErrInternalServerErrorRend(err)
	}
	switch serverErr.Code() {
	case server.ErrNotFound:
		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: 404,
			StatusText:     "Resource not found.",
			ErrorText:      err.Error(),
		}
	case server.ErrInvalidArgument:
		return ErrInvalidRequest(err)
	case server.ErrConflict:
		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: 409,
			StatusText:     "Conflict.",
			ErrorText:      err.Error(),
		}
	default:
		return ErrInternalServerErrorRend(err)
	}
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}
