// ABOUTME: MCP resource implementations for fitness data.
// ABOUTME: Provides fitness://today, fitness://week, and fitness://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI   = "fitness://today"
	weekURI    = "fitness://week"
	summaryURI = "fitness://summary"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Fitness",
		Description: "Today's workouts, stats, and nutrition",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         weekURI,
		Name:        "Weekly Progress",
		Description: "Calories and minutes per day for the last 7 days",
		MIMEType:    "application/json",
	}, s.handleWeekResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Fitness Summary Dashboard",
		Description: "Profile, lifetime totals, and streaks",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	nutrition := s.store.TodayNutrition()

	var workouts []models.Workout
	for _, w := range s.store.Workouts() {
		if w.Date == nutrition.Date {
			workouts = append(workouts, w)
		}
	}

	return jsonResource(todayURI, map[string]any{
		"date":      nutrition.Date,
		"workouts":  workouts,
		"stats":     s.store.TodayStats(),
		"nutrition": nutrition,
		"streak":    s.store.StreakDays(),
	})
}

func (s *Server) handleWeekResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(weekURI, map[string]any{
		"days": s.store.WeekProgress(),
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	profile := s.store.Profile()
	return jsonResource(summaryURI, struct {
		Profile models.Profile        `json:"profile"`
		Goals   models.NutritionGoals `json:"nutrition_goals"`
		Summary stats.Summary         `json:"summary"`
		Session string                `json:"session"`
	}{
		Profile: profile,
		Goals:   models.GoalsFor(profile),
		Summary: s.store.Summary(),
		Session: string(s.store.AuthState().Status),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
