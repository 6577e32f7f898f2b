package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atulsharma648-byte/ASMan/internal/llm"
	"github.com/atulsharma648-byte/ASMan/internal/store"
)

type modelUsage struct {
	store.UsageStats
	CostUSD *float64 `json:"costUsd,omitempty"`
}

type statsResponse struct {
	Configured bool               `json:"providerConfigured"`
	Model      string             `json:"model,omitempty"`
	Lessons    store.LessonStats  `json:"lessons"`
	ByPurpose  []store.UsageStats `json:"usageByPurpose"`
	ByModel    []modelUsage       `json:"usageByModel"`
}

func (s *Server) stats(c *gin.Context) {
	if s.events == nil {
		respondError(c, http.StatusServiceUnavailable, CodeUnavailable, errors.New("event log is not enabled"))
		return
	}
	ctx := c.Request.Context()

	lessonStats, err := s.events.LessonStats(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	byPurpose, err := s.events.LLMUsageByPurpose(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	byModel, err := s.events.LLMUsageByModel(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}

	resp := statsResponse{
		Configured: s.lessons.Configured(),
		Model:      s.model,
		Lessons:    lessonStats,
		ByPurpose:  byPurpose,
		ByModel:    make([]modelUsage, 0, len(byModel)),
	}
	if resp.ByPurpose == nil {
		resp.ByPurpose = []store.UsageStats{}
	}
	for _, u := range byModel {
		mu := modelUsage{UsageStats: u}
		if cost, ok := llm.EstimateCost(u.Key, u.InputTokens, u.OutputTokens); ok {
			mu.CostUSD = &cost
		}
		resp.ByModel = append(resp.ByModel, mu)
	}
	c.JSON(http.StatusOK, resp)
}
