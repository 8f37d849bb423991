package model

import "testing"

func TestLeadStatusTransitions(t *testing.T) {
	cases := []struct {
		from    LeadStatus
		to      LeadStatus
		allowed bool
	}{
		{LeadNew, LeadContacted, true},
		{LeadNew, LeadLost, true},
		{LeadNew, LeadWon, false},
		{LeadNew, LeadQualified, false},
		{LeadContacted, LeadQualified, true},
		{LeadContacted, LeadWon, false},
		{LeadQualified, LeadWon, true},
		{LeadQualified, LeadLost, true},
		{LeadWon, LeadLost, false},
		{LeadLost, LeadNew, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestSentimentScoreDelta(t *testing.T) {
	if SentimentPositive.ScoreDelta() != 3 {
		t.Error("positive sentiment should add 3")
	}
	if SentimentNegative.ScoreDelta() != -3 {
		t.Error("negative sentiment should subtract 3")
	}
	if SentimentNeutral.ScoreDelta() != 0 {
		t.Error("neutral sentiment should be score-neutral")
	}
	if Sentiment("unknown").ScoreDelta() != 0 {
		t.Error("unknown sentiment should be score-neutral")
	}
}

func TestImageTagContains(t *testing.T) {
	tag := ImageTag{X: 10, Y: 20, Width: 30, Height: 40}

	if !tag.Contains(10, 20) || !tag.Contains(40, 60) {
		t.Error("boundary points should be inside")
	}
	if !tag.Contains(25, 35) {
		t.Error("interior point should be inside")
	}
	if tag.Contains(9, 35) || tag.Contains(41, 35) || tag.Contains(25, 19) || tag.Contains(25, 61) {
		t.Error("points outside the rectangle should miss")
	}
}
