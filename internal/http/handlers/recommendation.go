package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leafline/leafline-backend/internal/http/response"
	"github.com/leafline/leafline-backend/internal/pkg/logger"
	"github.com/leafline/leafline-backend/internal/recs"
	"github.com/leafline/leafline-backend/internal/services"
)

type RecommendationHandler struct {
	log  *logger.Logger
	recs services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recsService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:  log.With("handler", "RecommendationHandler"),
		recs: recsService,
	}
}

func (h *RecommendationHandler) GetForYou(c *gin.Context) {
	userID := queryUUID(c, "user_id")
	storeID := queryUUID(c, "store_id")
	limit := queryInt(c, "limit")

	result, err := h.recs.GetForYou(c.Request.Context(), userID, storeID, limit)
	if err != nil {
		h.log.Error("GetForYou failed", "error", err)
		response.RespondAPIError(c, err, "for_you_failed")
		return
	}
	response.RespondOK(c, result)
}

func (h *RecommendationHandler) GetRelated(c *gin.Context) {
	productID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	storeID := queryUUID(c, "store_id")
	limit := queryInt(c, "limit")

	result, err := h.recs.GetRelated(c.Request.Context(), productID, storeID, limit)
	if err != nil {
		h.log.Error("GetRelated failed", "error", err, "product_id", productID)
		response.RespondAPIError(c, err, "related_failed")
		return
	}
	response.RespondOK(c, result)
}

func (h *RecommendationHandler) GetByWeather(c *gin.Context) {
	input := services.WeatherInput{
		ConditionKey: c.Query("condition"),
		Observation:  queryObservation(c),
		Coordinates:  queryCoordinates(c),
		StoreID:      queryUUID(c, "store_id"),
		Limit:        queryInt(c, "limit"),
	}

	result, err := h.recs.GetByWeather(c.Request.Context(), input)
	if err != nil {
		h.log.Warn("GetByWeather failed", "error", err, "condition", input.ConditionKey)
		response.RespondAPIError(c, err, "weather_failed")
		return
	}
	response.RespondOK(c, result)
}

func queryUUID(c *gin.Context, name string) *uuid.UUID {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func queryInt(c *gin.Context, name string) int {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return 0
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return i
}

func queryFloat(c *gin.Context, name string) *float64 {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func queryBool(c *gin.Context, name string) *bool {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

func queryObservation(c *gin.Context) *recs.WeatherObservation {
	obs := &recs.WeatherObservation{
		TempC:           queryFloat(c, "temp_c"),
		CloudCoverPct:   queryFloat(c, "cloud_cover_pct"),
		PrecipitationMm: queryFloat(c, "precipitation_mm"),
		Thunder:         queryBool(c, "thunder"),
		Snow:            queryBool(c, "snow"),
	}
	if obs.TempC == nil && !obs.HasSignal() {
		return nil
	}
	return obs
}

func queryCoordinates(c *gin.Context) *recs.Coordinates {
	lat := queryFloat(c, "lat")
	lon := queryFloat(c, "lon")
	if lat == nil || lon == nil {
		return nil
	}
	return &recs.Coordinates{Lat: *lat, Lon: *lon}
}
