package service

import (
	"testing"
	"time"

	"artscore_backend/internal/model"
)

func msPtr(v int) *int { return &v }

func TestComputeInsightsEmptyLog(t *testing.T) {
	insights := ComputeInsights(nil)

	if insights.TotalInteractions != 0 {
		t.Fatalf("expected 0 interactions, got %d", insights.TotalInteractions)
	}
	if insights.DecisionChangeRate != 0 {
		t.Fatalf("expected 0 change rate, got %v", insights.DecisionChangeRate)
	}
	if insights.AvgReactionTimeMs != 0 {
		t.Fatalf("expected 0 avg reaction, got %v", insights.AvgReactionTimeMs)
	}
	if insights.Confidence != "high" {
		t.Fatalf("expected high confidence for an empty log, got %s", insights.Confidence)
	}
}

func TestComputeInsightsAggregates(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	events := []model.QuizAnalytics{
		{InteractionType: "style_swipe", Timestamp: base, ReactionTimeMs: msPtr(400)},
		{InteractionType: "style_swipe", Timestamp: base.Add(2 * time.Second), ReactionTimeMs: msPtr(800), IsDecisionChange: true},
		{InteractionType: "comment", Timestamp: base.Add(5 * time.Second)},
		{InteractionType: "tag_click", Timestamp: base.Add(8 * time.Second), IsDecisionChange: true},
	}

	insights := ComputeInsights(events)

	if insights.TotalInteractions != 4 {
		t.Fatalf("expected 4 interactions, got %d", insights.TotalInteractions)
	}
	if insights.DecisionChanges != 2 {
		t.Fatalf("expected 2 decision changes, got %d", insights.DecisionChanges)
	}
	if insights.DecisionChangeRate != 0.5 {
		t.Fatalf("expected change rate 0.5, got %v", insights.DecisionChangeRate)
	}
	// Mean over the two events that carry a reaction time.
	if insights.AvgReactionTimeMs != 600 {
		t.Fatalf("expected avg reaction 600, got %v", insights.AvgReactionTimeMs)
	}
	if insights.InteractionCounts["style_swipe"] != 2 || insights.InteractionCounts["comment"] != 1 {
		t.Fatalf("unexpected interaction counts: %+v", insights.InteractionCounts)
	}
	if insights.SessionDurationMs != 8000 {
		t.Fatalf("expected 8000ms duration, got %d", insights.SessionDurationMs)
	}
}

func TestComputeInsightsDurationIgnoresLogOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	events := []model.QuizAnalytics{
		{InteractionType: "comment", Timestamp: base.Add(10 * time.Second)},
		{InteractionType: "style_swipe", Timestamp: base},
		{InteractionType: "tag_click", Timestamp: base.Add(4 * time.Second)},
	}

	insights := ComputeInsights(events)
	if insights.SessionDurationMs != 10000 {
		t.Fatalf("expected 10000ms duration, got %d", insights.SessionDurationMs)
	}
}

func TestComputeInsightsConfidenceBands(t *testing.T) {
	makeEvents := func(changes int) []model.QuizAnalytics {
		events := make([]model.QuizAnalytics, changes)
		for i := range events {
			events[i] = model.QuizAnalytics{InteractionType: "style_swipe", IsDecisionChange: true}
		}
		return events
	}

	cases := []struct {
		changes int
		want    string
	}{
		{0, "high"},
		{2, "high"},
		{3, "medium"},
		{5, "medium"},
		{6, "low"},
		{10, "low"},
	}
	for _, tc := range cases {
		got := ComputeInsights(makeEvents(tc.changes)).Confidence
		if got != tc.want {
			t.Fatalf("%d changes: expected %s confidence, got %s", tc.changes, tc.want, got)
		}
	}
}

func TestInsightsServiceReadsEventLog(t *testing.T) {
	env := newTestEnv(t)
	session := env.startSession(t, model.PhaseStyleSwipe)
	svc := NewInsightsService(env.analytics)

	for i := 0; i < 3; i++ {
		err := env.analytics.Append(&model.QuizAnalytics{
			SessionID:       session.ID,
			InteractionType: "style_swipe",
			Timestamp:       time.Now().Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("append event: %v", err)
		}
	}

	events, insights, err := svc.GetSessionAnalytics(session.ID)
	if err != nil {
		t.Fatalf("get analytics: %v", err)
	}
	if len(events) != 3 || insights.TotalInteractions != 3 {
		t.Fatalf("expected 3 events, got %d events and %d interactions", len(events), insights.TotalInteractions)
	}
}
