package service

import (
	"artscore_backend/internal/model"
	"artscore_backend/internal/repository"
)

// Confidence thresholds are product constants, not derived statistics.
const (
	confidenceHighBelow   = 3
	confidenceMediumBelow = 6
)

// SessionInsights is derived on demand from the raw interaction log; it
// carries no state of its own and recomputing it is always safe.
type SessionInsights struct {
	TotalInteractions  int            `json:"totalInteractions"`
	DecisionChanges    int            `json:"decisionChanges"`
	DecisionChangeRate float64        `json:"decisionChangeRate"`
	AvgReactionTimeMs  float64        `json:"avgReactionTimeMs"`
	InteractionCounts  map[string]int `json:"interactionCounts"`
	SessionDurationMs  int64          `json:"sessionDurationMs"`
	Confidence         string         `json:"confidence"`
}

// ComputeInsights aggregates one session's event log. Pure function: same
// log in, same insights out.
func ComputeInsights(events []model.QuizAnalytics) SessionInsights {
	insights := SessionInsights{
		InteractionCounts: make(map[string]int),
	}

	insights.TotalInteractions = len(events)

	var reactionSum float64
	var reactionCount int

	for _, e := range events {
		insights.InteractionCounts[e.InteractionType]++
		if e.IsDecisionChange {
			insights.DecisionChanges++
		}
		if e.ReactionTimeMs != nil {
			reactionSum += float64(*e.ReactionTimeMs)
			reactionCount++
		}
	}

	if insights.TotalInteractions > 0 {
		insights.DecisionChangeRate = float64(insights.DecisionChanges) / float64(insights.TotalInteractions)
	}

	divisor := reactionCount
	if divisor < 1 {
		divisor = 1
	}
	insights.AvgReactionTimeMs = reactionSum / float64(divisor)

	if len(events) > 0 {
		first := events[0].Timestamp
		last := events[0].Timestamp
		for _, e := range events[1:] {
			if e.Timestamp.Before(first) {
				first = e.Timestamp
			}
			if e.Timestamp.After(last) {
				last = e.Timestamp
			}
		}
		insights.SessionDurationMs = last.Sub(first).Milliseconds()
	}

	switch {
	case insights.DecisionChanges < confidenceHighBelow:
		insights.Confidence = "high"
	case insights.DecisionChanges < confidenceMediumBelow:
		insights.Confidence = "medium"
	default:
		insights.Confidence = "low"
	}

	return insights
}

type InsightsService struct {
	AnalyticsRepo *repository.AnalyticsRepository
}

func NewInsightsService(analyticsRepo *repository.AnalyticsRepository) *InsightsService {
	return &InsightsService{AnalyticsRepo: analyticsRepo}
}

func (s *InsightsService) GetSessionAnalytics(sessionID string) ([]model.QuizAnalytics, SessionInsights, error) {
	events, err := s.AnalyticsRepo.ListBySession(sessionID)
	if err != nil {
		return nil, SessionInsights{}, err
	}
	return events, ComputeInsights(events), nil
}
