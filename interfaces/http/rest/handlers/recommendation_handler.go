package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"coursehub/application/services"
	"coursehub/domain/recommendations"
	"coursehub/pkg/common"
	pkgerrors "coursehub/pkg/errors"
	"coursehub/pkg/utils"
)

// maxRecommendationBody bounds the preferences payload
const maxRecommendationBody = 64 << 10

// RecommendationRequest is the DTO for POST /recommendations
type RecommendationRequest struct {
	Topics     []string `json:"topics" validate:"required,min=1,dive,required"`
	SkillLevel string   `json:"skillLevel" validate:"omitempty,oneof=beginner intermediate advanced"`
	Duration   string   `json:"duration" validate:"omitempty,oneof=short medium long"`
	MaxTuition *float64 `json:"maxTuition" validate:"omitempty,gte=0"`
}

// RecommendationHandler serves the recommendation endpoints
type RecommendationHandler struct {
	recommender  *services.RecommendationService
	catalog      *services.CatalogService
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(
	recommender *services.RecommendationService,
	catalog *services.CatalogService,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommender:  recommender,
		catalog:      catalog,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// Recommend handles POST /api/v1/recommendations
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := common.ParseJSONBody(w, r, &req, maxRecommendationBody); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		details := utils.ValidationFieldErrors(&req)
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid preferences").WithDetails(details))
		return
	}

	prefs := recommendations.Preferences{
		Topics:     req.Topics,
		SkillLevel: recommendations.SkillLevel(req.SkillLevel),
		Duration:   recommendations.DurationBand(req.Duration),
		MaxTuition: req.MaxTuition,
	}

	result, err := h.recommender.Recommend(r.Context(), prefs)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// Popular handles GET /api/v1/recommendations/popular
func (h *RecommendationHandler) Popular(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Popular(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// Topics handles GET /api/v1/recommendations/topics
func (h *RecommendationHandler) Topics(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.Topics(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
