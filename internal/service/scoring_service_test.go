package service

import (
	"errors"
	"testing"

	"artscore_backend/internal/model"
	"artscore_backend/internal/util"
)

func TestStyleSwipePropagatesToTaggedDetails(t *testing.T) {
	env := newTestEnv(t)
	styles, images, details := env.seedCatalog(t)
	session := env.startSession(t, model.PhaseStyleSwipe)
	svc := env.scoring()

	result, err := svc.RecordStyleSwipe(session.ID, styles[0].ID, images[0].ID, 2, nil, false)
	if err != nil {
		t.Fatalf("swipe failed: %v", err)
	}

	if result.StyleScore.Score != 2 {
		t.Fatalf("expected style score 2, got %v", result.StyleScore.Score)
	}
	if len(result.DetailScores) != 1 {
		t.Fatalf("expected 1 detail score, got %d", len(result.DetailScores))
	}
	if result.DetailScores[0].DetailID != details[0].ID || result.DetailScores[0].Score != 1 {
		t.Fatalf("expected detail %d at half weight 1, got %+v", details[0].ID, result.DetailScores[0])
	}
}

func TestStyleSwipeAccumulates(t *testing.T) {
	env := newTestEnv(t)
	styles, images, _ := env.seedCatalog(t)
	session := env.startSession(t, model.PhaseStyleSwipe)
	svc := env.scoring()

	if _, err := svc.RecordStyleSwipe(session.ID, styles[0].ID, images[0].ID, 2, nil, false); err != nil {
		t.Fatalf("first swipe failed: %v", err)
	}
	result, err := svc.RecordStyleSwipe(session.ID, styles[0].ID, images[0].ID, -1, nil, true)
	if err != nil {
		t.Fatalf("second swipe failed: %v", err)
	}

	if result.StyleScore.Score != 1 {
		t.Fatalf("expected accumulated score 1, got %v", result.StyleScore.Score)
	}

	// One row per (session, style), never duplicates.
	var count int64
	env.db.Model(&model.StyleScore{}).Where("session_id = ?", session.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single style score row, got %d", count)
	}

	updated, err := env.sessions.FindByID(session.ID)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if updated.SwipeCount != 2 {
		t.Fatalf("expected swipe count 2, got %d", updated.SwipeCount)
	}
}

func TestStyleSwipeUnknownSession(t *testing.T) {
	env := newTestEnv(t)
	styles, images, _ := env.seedCatalog(t)
	svc := env.scoring()

	_, err := svc.RecordStyleSwipe("no-such-session", styles[0].ID, images[0].ID, 1, nil, false)
	if !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("expected session-not-found, got %v", err)
	}
}

func TestStyleSwipeUnknownStyle(t *testing.T) {
	env := newTestEnv(t)
	_, images, _ := env.seedCatalog(t)
	session := env.startSession(t, model.PhaseStyleSwipe)
	svc := env.scoring()

	_, err := svc.RecordStyleSwipe(session.ID, 9999, images[0].ID, 1, nil, false)
	if !errors.Is(err, util.ErrStyleNotFound) {
		t.Fatalf("expected style-not-found, got %v", err)
	}
}

func TestCommentInsideTagMovesDetailScore(t *testing.T) {
	env := newTestEnv(t)
	_, images, details := env.seedCatalog(t)
	session := env.startSession(t, model.PhaseStyleSwipe)
	svc := env.scoring()

	x, y := 20.0, 20.0
	comment, err := svc.RecordComment(session.ID, images[0].ID, "love these", model.SentimentPositive, &x, &y, nil, nil)
	if err != nil {
		t.Fatalf("comment failed: %v", err)
	}
	if comment.ImageTagID == nil {
		t.Fatal("expected the comment to be linked to the hit tag")
	}

	scores, err := env.scores.GetDetailScores(session.ID)
	if err != nil {
		t.Fatalf("read detail scores: %v", err)
	}
	if len(scores) != 1 || scores[0].DetailID != details[0].ID || scores[0].Score != 3 {
		t.Fatalf("expected detail %d at +3, got %+v", details[0].ID, scores)
	}
}

func TestCommentOutsideTagIsScoreNeutral(t *testing.T) {
	env := newTestEnv(t)
	_, images, _ := env.seedCatalog(t)
	session := env.startSession(t, model.PhaseStyleSwipe)
	svc := env.scoring()

	x, y := 90.0, 90.0
	comment, err := svc.RecordComment(session.ID, images[0].ID, "hm", model.SentimentNegative, &x, &y, nil, nil)
	if err != nil {
		t.Fatalf("comment failed: %v", err)
	}
	if comment.ImageTagID != nil {
		t.Fatal("expected no tag link for a miss")
	}

	scores, err := env.scores.GetDetailScores(session.ID)
	if err != nil {
		t.Fatalf("read detail scores: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("expected no detail scores, got %+v", scores)
	}
}

func TestCommentOverlappingTagsHitsFirstInCatalogOrder(t *testing.T) {
	env := newTestEnv(t)
	_, images, details := env.seedCatalog(t)
	session := env.startSession(t, model.PhaseStyleSwipe)
	svc := env.scoring()

	// Second tag covering the same area as the seeded one.
	overlap := model.ImageTag{
		StyleImageID: images[0].ID,
		DetailID:     details[1].ID,
		X:            0, Y: 0, Width: 100, Height: 100,
	}
	if err := env.db.Create(&overlap).Error; err != nil {
		t.Fatalf("seed overlapping tag: %v", err)
	}

	x, y := 20.0, 20.0
	comment, err := svc.RecordComment(session.ID, images[0].ID, "nice", model.SentimentPositive, &x, &y, nil, nil)
	if err != nil {
		t.Fatalf("comment failed: %v", err)
	}

	scores, _ := env.scores.GetDetailScores(session.ID)
	if len(scores) != 1 || scores[0].DetailID != details[0].ID {
		t.Fatalf("expected the lower-ID tag's detail %d to win, got %+v", details[0].ID, scores)
	}
	if comment.ImageTagID == nil {
		t.Fatal("expected a tag link")
	}
}

func TestNeutralCommentInsideTagDoesNotMoveScore(t *testing.T) {
	env := newTestEnv(t)
	_, images, _ := env.seedCatalog(t)
	session := env.startSession(t, model.PhaseStyleSwipe)
	svc := env.scoring()

	x, y := 20.0, 20.0
	if _, err := svc.RecordComment(session.ID, images[0].ID, "noted", model.SentimentNeutral, &x, &y, nil, nil); err != nil {
		t.Fatalf("comment failed: %v", err)
	}

	scores, _ := env.scores.GetDetailScores(session.ID)
	if len(scores) != 0 {
		t.Fatalf("expected no detail scores for neutral sentiment, got %+v", scores)
	}
}

func TestRecordAnswerValidatesQuestion(t *testing.T) {
	env := newTestEnv(t)
	session := env.startSession(t, model.PhaseStyleSwipe)
	svc := env.scoring()

	_, err := svc.RecordAnswer(session.ID, 42, "blue")
	if !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("expected question-not-found, got %v", err)
	}

	question := model.QuizQuestion{QuizID: "style-quiz", Text: "Favorite color?"}
	if err := env.db.Create(&question).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}

	answer, err := svc.RecordAnswer(session.ID, question.ID, "blue")
	if err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if answer.Value != "blue" {
		t.Fatalf("expected stored value, got %+v", answer)
	}
}

func TestMutationsAppendAnalyticsEvents(t *testing.T) {
	env := newTestEnv(t)
	styles, images, _ := env.seedCatalog(t)
	session := env.startSession(t, model.PhaseStyleSwipe)
	svc := env.scoring()

	reaction := 850
	if _, err := svc.RecordStyleSwipe(session.ID, styles[0].ID, images[0].ID, 1, &reaction, true); err != nil {
		t.Fatalf("swipe failed: %v", err)
	}
	if err := svc.RecordEvent(session.ID, "tag_click", nil, false); err != nil {
		t.Fatalf("event failed: %v", err)
	}

	events, err := env.analytics.ListBySession(session.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].InteractionType != "style_swipe" || !events[0].IsDecisionChange {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[0].ReactionTimeMs == nil || *events[0].ReactionTimeMs != 850 {
		t.Fatalf("expected reaction time 850, got %+v", events[0].ReactionTimeMs)
	}
	if events[1].InteractionType != "tag_click" {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
}
