package service

import (
	"encoding/json"
	"errors"
	"testing"

	"artscore_backend/internal/config"
	"artscore_backend/internal/model"
	"artscore_backend/internal/util"
)

func testQuizConfig() config.QuizConfig {
	return config.QuizConfig{SwipeLimit: 5, NarrowDownCount: 2, LeadMargin: 2}
}

func TestSessionStartsInModeSelection(t *testing.T) {
	env := newTestEnv(t)
	orc := env.orchestrator(testQuizConfig())

	session, err := orc.StartSession("style-quiz", nil)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if session.Phase != model.PhaseModeSelection {
		t.Fatalf("expected mode_selection, got %s", session.Phase)
	}
	if session.ID == "" {
		t.Fatal("expected a generated session id")
	}
}

func TestPairModeRejected(t *testing.T) {
	env := newTestEnv(t)
	orc := env.orchestrator(testQuizConfig())
	session, _ := orc.StartSession("style-quiz", nil)

	_, err := orc.SelectMode(session.ID, model.ModePair)
	if !errors.Is(err, util.ErrPairModeUnsupported) {
		t.Fatalf("expected pair mode rejection, got %v", err)
	}
}

func TestModeAndRoomSelectionAdvancePhases(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session, _ := orc.StartSession("style-quiz", nil)

	session, err := orc.SelectMode(session.ID, model.ModeSingle)
	if err != nil {
		t.Fatalf("select mode: %v", err)
	}
	if session.Phase != model.PhaseRoomSelection {
		t.Fatalf("expected room_selection, got %s", session.Phase)
	}

	var room model.Room
	if err := env.db.First(&room).Error; err != nil {
		t.Fatalf("load room: %v", err)
	}
	session, err = orc.SelectRoom(session.ID, room.ID)
	if err != nil {
		t.Fatalf("select room: %v", err)
	}
	if session.Phase != model.PhaseStyleSwipe {
		t.Fatalf("expected style_swipe, got %s", session.Phase)
	}
	if session.RoomID == nil || *session.RoomID != room.ID {
		t.Fatalf("expected room %d on session, got %+v", room.ID, session.RoomID)
	}
}

func TestSelectRoomOutOfPhase(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session, _ := orc.StartSession("style-quiz", nil)

	_, err := orc.SelectRoom(session.ID, 1)
	if !errors.Is(err, util.ErrWrongPhase) {
		t.Fatalf("expected wrong-phase, got %v", err)
	}
}

func TestSelectRoomUnknownRoom(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session := env.startSession(t, model.PhaseRoomSelection)

	_, err := orc.SelectRoom(session.ID, 9999)
	if !errors.Is(err, util.ErrRoomNotFound) {
		t.Fatalf("expected room-not-found, got %v", err)
	}
}

func TestStyleSwipeCompletionNarrowsDownTopStyles(t *testing.T) {
	env := newTestEnv(t)
	styles, _, _ := env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session := env.startSession(t, model.PhaseStyleSwipe)

	env.scores.IncrementStyleScore(session.ID, styles[0].ID, 5, false)
	env.scores.IncrementStyleScore(session.ID, styles[1].ID, 1, false)

	session, err := orc.CompleteStyleSwipe(session.ID)
	if err != nil {
		t.Fatalf("complete swipe: %v", err)
	}
	if session.Phase != model.PhaseNarrowDown {
		t.Fatalf("expected narrow_down, got %s", session.Phase)
	}

	var candidates []uint
	if err := json.Unmarshal([]byte(session.Candidates), &candidates); err != nil {
		t.Fatalf("decode candidates: %v", err)
	}
	if len(candidates) != 2 || candidates[0] != styles[0].ID {
		t.Fatalf("expected leader %d first, got %v", styles[0].ID, candidates)
	}
}

func TestSwipeLimitWithoutLeaderFallsToMaterialSelection(t *testing.T) {
	env := newTestEnv(t)
	styles, _, _ := env.seedCatalog(t)
	cfg := testQuizConfig()
	orc := env.orchestrator(cfg)
	session := env.startSession(t, model.PhaseStyleSwipe)

	// Tied field at the swipe limit.
	env.scores.IncrementStyleScore(session.ID, styles[0].ID, 3, false)
	env.scores.IncrementStyleScore(session.ID, styles[1].ID, 3, false)
	session.SwipeCount = cfg.SwipeLimit
	if err := env.sessions.Update(session); err != nil {
		t.Fatalf("update session: %v", err)
	}

	session, err := orc.CompleteStyleSwipe(session.ID)
	if err != nil {
		t.Fatalf("complete swipe: %v", err)
	}
	if session.Phase != model.PhaseMaterialSelection {
		t.Fatalf("expected material_selection, got %s", session.Phase)
	}
}

func TestNarrowDownDecisiveGoesToDetailsRound(t *testing.T) {
	env := newTestEnv(t)
	styles, _, _ := env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session := env.startSession(t, model.PhaseNarrowDown)

	session, err := orc.CompleteNarrowDown(session.ID, map[uint]float64{
		styles[0].ID: 4,
		styles[1].ID: 1,
	})
	if err != nil {
		t.Fatalf("complete narrow-down: %v", err)
	}
	if session.Phase != model.PhaseDetailsRound {
		t.Fatalf("expected details_round, got %s", session.Phase)
	}
}

func TestNarrowDownIndecisiveEntersPlayoff(t *testing.T) {
	env := newTestEnv(t)
	styles, _, _ := env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session := env.startSession(t, model.PhaseNarrowDown)

	session, err := orc.CompleteNarrowDown(session.ID, map[uint]float64{
		styles[0].ID: 2,
		styles[1].ID: 1,
	})
	if err != nil {
		t.Fatalf("complete narrow-down: %v", err)
	}
	if session.Phase != model.PhasePlayoffRound {
		t.Fatalf("expected playoff_round, got %s", session.Phase)
	}
	if session.PlayoffReason != model.PlayoffIndecisive {
		t.Fatalf("expected indecisive reason, got %s", session.PlayoffReason)
	}
	if session.PhaseAfterPlayoff != model.PhaseDetailsRound {
		t.Fatalf("expected details_round after playoff, got %s", session.PhaseAfterPlayoff)
	}
}

func TestPlayoffCountsSignFlips(t *testing.T) {
	env := newTestEnv(t)
	styles, _, _ := env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session := env.startSession(t, model.PhasePlayoffRound)
	session.PlayoffReason = model.PlayoffIndecisive
	session.PhaseAfterPlayoff = model.PhaseDetailsRound
	env.sessions.Update(session)

	env.scores.IncrementStyleScore(session.ID, styles[0].ID, 1, false)
	env.scores.IncrementStyleScore(session.ID, styles[1].ID, 2, false)

	session, err := orc.CompletePlayoff(session.ID, map[uint]float64{
		styles[0].ID: -3, // flips positive to negative
		styles[1].ID: 2,  // same sign, no flip
	})
	if err != nil {
		t.Fatalf("complete playoff: %v", err)
	}
	if session.Phase != model.PhaseDetailsRound {
		t.Fatalf("expected details_round resume, got %s", session.Phase)
	}
	if session.PlayoffReason != "" || session.PhaseAfterPlayoff != "" {
		t.Fatalf("expected cleared playoff markers, got %+v", session)
	}

	scores, _ := env.scores.GetStyleScores(session.ID)
	byStyle := map[uint]model.StyleScore{}
	for _, sc := range scores {
		byStyle[sc.StyleID] = sc
	}
	if byStyle[styles[0].ID].Changes != 1 {
		t.Fatalf("expected one sign flip for style %d, got %+v", styles[0].ID, byStyle[styles[0].ID])
	}
	if byStyle[styles[1].ID].Changes != 0 {
		t.Fatalf("expected no flip for style %d, got %+v", styles[1].ID, byStyle[styles[1].ID])
	}
}

func TestDetailsRoundMixedCompletesSession(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session := env.startSession(t, model.PhaseDetailsRound)

	session, err := orc.CompleteDetailsRound(session.ID, DetailsMixed)
	if err != nil {
		t.Fatalf("complete details: %v", err)
	}
	if session.Phase != model.PhaseResults {
		t.Fatalf("expected results, got %s", session.Phase)
	}
	if session.CompletedAt == nil {
		t.Fatal("expected completion timestamp")
	}
}

func TestDetailsRoundAllLikedEntersPlayoffThenResults(t *testing.T) {
	env := newTestEnv(t)
	styles, _, _ := env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session := env.startSession(t, model.PhaseDetailsRound)

	session, err := orc.CompleteDetailsRound(session.ID, DetailsAllLiked)
	if err != nil {
		t.Fatalf("complete details: %v", err)
	}
	if session.Phase != model.PhasePlayoffRound || session.PlayoffReason != model.PlayoffAllLiked {
		t.Fatalf("expected all_liked playoff, got %+v", session)
	}

	session, err = orc.CompletePlayoff(session.ID, map[uint]float64{styles[0].ID: 2})
	if err != nil {
		t.Fatalf("complete playoff: %v", err)
	}
	if session.Phase != model.PhaseResults {
		t.Fatalf("expected results after playoff, got %s", session.Phase)
	}
	if session.CompletedAt == nil {
		t.Fatal("expected completion timestamp")
	}
}

func TestCompletedSessionRejectsFurtherAdvances(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session := env.startSession(t, model.PhaseDetailsRound)

	if _, err := orc.CompleteDetailsRound(session.ID, DetailsMixed); err != nil {
		t.Fatalf("complete details: %v", err)
	}

	_, err := orc.CompleteDetailsRound(session.ID, DetailsMixed)
	if !errors.Is(err, util.ErrSessionCompleted) {
		t.Fatalf("expected session-completed, got %v", err)
	}
}

func TestMaterialSelectionMergesDetailScores(t *testing.T) {
	env := newTestEnv(t)
	_, _, details := env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session := env.startSession(t, model.PhaseMaterialSelection)

	session, err := orc.CompleteMaterialSelection(session.ID, map[uint]float64{
		details[0].ID: 2,
		details[1].ID: -1,
	})
	if err != nil {
		t.Fatalf("complete material selection: %v", err)
	}
	if session.Phase != model.PhaseDetailsRound {
		t.Fatalf("expected details_round, got %s", session.Phase)
	}

	scores, _ := env.scores.GetDetailScores(session.ID)
	if len(scores) != 2 {
		t.Fatalf("expected 2 detail scores, got %+v", scores)
	}
}

func TestResultsRankStylesAndSplitDetails(t *testing.T) {
	env := newTestEnv(t)
	styles, _, details := env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session := env.startSession(t, model.PhaseResults)

	env.scores.IncrementStyleScore(session.ID, styles[0].ID, 2, false)
	env.scores.IncrementStyleScore(session.ID, styles[1].ID, 6, false)
	env.scores.IncrementDetailScore(session.ID, details[0].ID, 3)
	env.scores.IncrementDetailScore(session.ID, details[1].ID, -2)

	results, err := orc.Results(session.ID)
	if err != nil {
		t.Fatalf("results: %v", err)
	}

	if len(results.Styles) != 2 || results.Styles[0].StyleID != styles[1].ID {
		t.Fatalf("expected style %d ranked first, got %+v", styles[1].ID, results.Styles)
	}
	if len(results.LikedDetails) != 1 || results.LikedDetails[0].DetailID != details[0].ID {
		t.Fatalf("unexpected liked details: %+v", results.LikedDetails)
	}
	if len(results.DislikedDetails) != 1 || results.DislikedDetails[0].DetailID != details[1].ID {
		t.Fatalf("unexpected disliked details: %+v", results.DislikedDetails)
	}
}

func TestResultsRequireResultsPhase(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	orc := env.orchestrator(testQuizConfig())
	session := env.startSession(t, model.PhaseStyleSwipe)

	_, err := orc.Results(session.ID)
	if !errors.Is(err, util.ErrWrongPhase) {
		t.Fatalf("expected wrong-phase, got %v", err)
	}
}
