// Package v1 implements the version 1 HTTP API routes.
package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/intervalgen"
	"github.com/helixml/intervalgen/application/service"
	"github.com/helixml/intervalgen/infrastructure/api/jsonapi"
	"github.com/helixml/intervalgen/infrastructure/api/middleware"
	"github.com/helixml/intervalgen/infrastructure/api/v1/dto"
)

// TypeIntervalRequest is the resource type accepted by the batch endpoint.
const TypeIntervalRequest = "interval_request"

// maxBatchBody bounds the size of a batch request body.
const maxBatchBody = 1 << 20

// IntervalsRouter handles interval generation endpoints.
type IntervalsRouter struct {
	client *intervalgen.Client
	logger *slog.Logger
}

// NewIntervalsRouter creates a new IntervalsRouter.
func NewIntervalsRouter(client *intervalgen.Client) *IntervalsRouter {
	return &IntervalsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for interval endpoints.
func (r *IntervalsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/batch", r.Batch)

	return router
}

// List handles GET /api/v1/intervals.
func (r *IntervalsRouter) List(w http.ResponseWriter, req *http.Request) {
	params, err := queryParams(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	request, err := service.ParseRequest(params)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	result, err := r.client.Generate(req.Context(), request)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	doc := jsonapi.NewScheduleResponse(result)
	doc.Links = &jsonapi.Links{Self: req.URL.String()}
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// Batch handles POST /api/v1/intervals/batch.
func (r *IntervalsRouter) Batch(w http.ResponseWriter, req *http.Request) {
	var body dto.BatchRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBatchBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}
	if len(body.Data) == 0 {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "data must contain at least one request", nil), r.logger)
		return
	}

	requests := make([]service.Request, len(body.Data))
	for i, item := range body.Data {
		if item.Type != TypeIntervalRequest {
			err := fmt.Errorf("data[%d]: type must be %q", i, TypeIntervalRequest)
			middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid resource type", err), r.logger)
			return
		}
		request, err := service.ParseRequest(attributesParams(item.Attributes))
		if err != nil {
			middleware.WriteError(w, req, fmt.Errorf("data[%d]: %w", i, err), r.logger)
			return
		}
		requests[i] = request
	}

	results, err := r.client.Schedules.GenerateBatch(req.Context(), requests)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	response := dto.BatchResponse{Data: make([]any, len(results))}
	for i, result := range results {
		response.Data[i] = jsonapi.NewScheduleResponse(result)
	}
	middleware.WriteJSON(w, http.StatusOK, response)
}

func queryParams(req *http.Request) (service.RequestParams, error) {
	q := req.URL.Query()
	params := service.RequestParams{
		Begin:       q.Get("begin"),
		End:         q.Get("end"),
		Granularity: q.Get("granularity"),
		Count:       1,
		WeekStart:   q.Get("week_start"),
	}

	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return params, middleware.NewAPIError(http.StatusBadRequest, "count must be an integer", err)
		}
		params.Count = n
	}
	if raw := q.Get("fixed"); raw != "" {
		fixed, err := strconv.ParseBool(raw)
		if err != nil {
			return params, middleware.NewAPIError(http.StatusBadRequest, "fixed must be a boolean", err)
		}
		params.Fixed = fixed
	}
	return params, nil
}

func attributesParams(a dto.IntervalRequestAttributes) service.RequestParams {
	params := service.RequestParams{
		Begin:       a.Begin,
		End:         a.End,
		Granularity: a.Granularity,
		Count:       1,
		Fixed:       a.Fixed,
		WeekStart:   a.WeekStart,
	}
	if a.Count != nil {
		params.Count = *a.Count
	}
	return params
}
