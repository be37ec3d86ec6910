package rest

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/osa030/playtime/internal/app/analyzer"
	"github.com/osa030/playtime/internal/infra/youtube"
)

const genericErrorMessage = "Something went wrong!"

type errorBody struct {
	Error string `json:"error"`
}

type batchFailure struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type batchErrorBody struct {
	Errors []batchFailure `json:"errors"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "playtime",
	})
}

func (s *Server) handlePlaylists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	req, err := s.validator.Validate(r.URL.Query())
	if err != nil {
		logger.Debug().Err(err).Msg("rejected request")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		s.writeAnalyzeError(w, r, err)
		return
	}

	logger.Info().Str("playlist", req.PlaylistID).Str("locale", req.Locale.String()).Msg("report served")
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) writeAnalyzeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	var apiErr *youtube.APIError
	var batchErr *analyzer.BatchError
	switch {
	case errors.As(err, &apiErr):
		logger.Warn().Err(err).Int("status", apiErr.Status).Msg("upstream rejected request")
		writeError(w, upstreamStatus(apiErr.Status), apiErr.Message)
	case errors.As(err, &batchErr):
		logger.Warn().Err(err).Int("failures", len(batchErr.Failures)).Msg("video lookup failed")
		writeJSON(w, http.StatusInternalServerError, batchErrorBody{
			Errors: lo.Map(batchErr.Failures, func(f youtube.APIError, _ int) batchFailure {
				return batchFailure{Message: f.Message, Status: f.Status}
			}),
		})
	default:
		logger.Error().Err(err).Msg("analysis failed")
		writeError(w, http.StatusInternalServerError, genericErrorMessage)
	}
}

// upstreamStatus passes the Data API status through, falling back to 500
// when the upstream reported something that is not an error status.
func upstreamStatus(status int) int {
	if status < http.StatusBadRequest || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
