package api

import (
	"context"
	"errors"
	"net/http"

	"baroudique/routeengine/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type RoutePlanner interface {
	GenerateRoute(ctx context.Context, waypoints []domain.Waypoint, prefs domain.RoutePreferences) (domain.RouteResult, error)
}

type ElevationLookup interface {
	Lookup(ctx context.Context, coords []domain.Coordinate) ([]*float64, error)
}

// HealthInfo describes the wired providers, surfaced on /api/health.
type HealthInfo struct {
	RoutingProviders   []string `json:"routingProviders"`
	ElevationProviders []string `json:"elevationProviders"`
	OfflineRoadData    bool     `json:"offlineRoadData"`
}

type RoutePlannerHandler struct {
	svc          RoutePlanner
	elevation    ElevationLookup
	health       HealthInfo
	promeMetrics *metrics
}

func RoutePlannerRouter(r *chi.Mux, svc RoutePlanner, elevation ElevationLookup, health HealthInfo, m *metrics) {
	handler := &RoutePlannerHandler{svc, elevation, health, m}

	r.Group(func(r chi.Router) {
		r.Route("/api", func(r chi.Router) {
			r.Post("/routes/generate", handler.generateRoute)
			r.Post("/elevation/lookup", handler.lookupElevation)
			r.Get("/health", handler.healthCheck)
		})
	})
}

// WaypointRequest model info
//
//	@Description	one ordered stop of the requested route
type WaypointRequest struct {
	ID      string  `json:"id"`
	Lat     float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon     float64 `json:"lon" validate:"required,lt=180,gt=-180"`
	Address string  `json:"address"`
}

// PreferencesRequest model info
//
//	@Description	rider preferences applied to routing and quality scoring
type PreferencesRequest struct {
	Profile             string  `json:"profile"`
	AvoidBusyRoads      bool    `json:"avoidBusyRoads"`
	PreferSmoothSurface bool    `json:"preferSmoothSurface"`
	MaxGradient         float64 `json:"maxGradient" validate:"gte=0,lte=30"`
	RouteType           string  `json:"routeType" validate:"omitempty,oneof=fastest safest balanced scenic"`
}

// GenerateRouteRequest model info
//
//	@Description	request body for route generation between ordered waypoints
type GenerateRouteRequest struct {
	Waypoints   []WaypointRequest  `json:"waypoints" validate:"required,min=2,dive"`
	Preferences PreferencesRequest `json:"preferences"`
}

func (g *GenerateRouteRequest) Bind(r *http.Request) error {
	if len(g.Waypoints) == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// generateRoute
//
//	@Summary		generate a scored cycling route through the given waypoints.
//	@Description	routes through the configured providers, builds the smoothed elevation profile and computes the weighted quality score.
//	@Tags			routes
//	@Param			body	body	GenerateRouteRequest	true	"waypoints and rider preferences"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/routes/generate [post]
//	@Success		200	{object}	domain.RouteResult
//	@Failure		400	{object}	ErrResponse
//	@Failure		502	{object}	ErrResponse
func (h *RoutePlannerHandler) generateRoute(w http.ResponseWriter, r *http.Request) {
	data := &GenerateRouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	waypoints := make([]domain.Waypoint, len(data.Waypoints))
	for i, wp := range data.Waypoints {
		waypoints[i] = domain.Waypoint{
			ID:         wp.ID,
			Coordinate: domain.Coordinate{Lat: wp.Lat, Lon: wp.Lon},
			Address:    wp.Address,
		}
	}
	prefs := domain.RoutePreferences{
		Profile:             data.Preferences.Profile,
		AvoidBusyRoads:      data.Preferences.AvoidBusyRoads,
		PreferSmoothSurface: data.Preferences.PreferSmoothSurface,
		MaxGradient:         data.Preferences.MaxGradient,
		RouteType:           domain.RouteType(data.Preferences.RouteType),
	}

	result, err := h.svc.GenerateRoute(r.Context(), waypoints, prefs)
	if err != nil {
		h.promeMetrics.RouteQueryCount.WithLabelValues("error").Inc()
		h.renderDomainError(w, r, err)
		return
	}

	h.promeMetrics.RouteQueryCount.WithLabelValues("ok").Inc()
	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}

func (h *RoutePlannerHandler) renderDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch domain.ErrorCode(err) {
	case domain.ErrInvalidInput, domain.ErrBadParamInput:
		render.Render(w, r, ErrInvalidRequest(err))
	case domain.ErrRouting, domain.ErrElevationService:
		render.Render(w, r, ErrBadGateway(err))
	case domain.ErrInsufficientData:
		render.Render(w, r, ErrUnprocessableEntity(err))
	default:
		render.Render(w, r, ErrInternalServerErrorRend(errors.New(domain.MessageInternalServerError)))
	}
}

// LocationRequest model info
//
//	@Description	one coordinate of an elevation batch lookup
type LocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"required,lt=90,gt=-90"`
	Longitude float64 `json:"longitude" validate:"required,lt=180,gt=-180"`
}

// ElevationLookupRequest model info
//
//	@Description	open-elevation shaped batch lookup request
type ElevationLookupRequest struct {
	Locations []LocationRequest `json:"locations" validate:"required,min=1,dive"`
}

func (e *ElevationLookupRequest) Bind(r *http.Request) error {
	if len(e.Locations) == 0 {
		return errors.New("invalid request")
	}
	return nil
}

type ElevationResult struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Elevation *float64 `json:"elevation"`
}

type ElevationLookupResponse struct {
	Results []ElevationResult `json:"results"`
}

// lookupElevation
//
//	@Summary		batch elevation lookup for a coordinate list.
//	@Description	serves elevations from the local cache and the provider chain, open-elevation response shape.
//	@Tags			elevation
//	@Param			body	body	ElevationLookupRequest	true	"coordinates to resolve"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/elevation/lookup [post]
//	@Success		200	{object}	ElevationLookupResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		502	{object}	ErrResponse
func (h *RoutePlannerHandler) lookupElevation(w http.ResponseWriter, r *http.Request) {
	data := &ElevationLookupRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	coords := make([]domain.Coordinate, len(data.Locations))
	for i, loc := range data.Locations {
		coords[i] = domain.Coordinate{Lat: loc.Latitude, Lon: loc.Longitude}
	}

	values, err := h.elevation.Lookup(r.Context(), coords)
	if err != nil {
		h.promeMetrics.ElevationLookupCount.WithLabelValues("error").Inc()
		h.renderDomainError(w, r, err)
		return
	}

	results := make([]ElevationResult, len(coords))
	for i, coord := range coords {
		results[i] = ElevationResult{
			Latitude:  coord.Lat,
			Longitude: coord.Lon,
			Elevation: values[i],
		}
	}

	h.promeMetrics.ElevationLookupCount.WithLabelValues("ok").Inc()
	render.Status(r, http.StatusOK)
	render.JSON(w, r, ElevationLookupResponse{Results: results})
}

type HealthResponse struct {
	Status string     `json:"status"`
	Info   HealthInfo `json:"info"`
}

// healthCheck
//
//	@Summary	service health and wired providers.
//	@Tags		health
//	@Produce	application/json
//	@Router		/health [get]
//	@Success	200	{object}	HealthResponse
func (h *RoutePlannerHandler) healthCheck(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, HealthResponse{Status: "ok", Info: h.health})
}
