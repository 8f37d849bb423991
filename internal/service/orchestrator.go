package service

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"artscore_backend/internal/config"
	"artscore_backend/internal/model"
	"artscore_backend/internal/repository"
	"artscore_backend/internal/util"

	"gorm.io/gorm"
)

// Orchestrator drives the quiz round state machine. The session record
// holds the authoritative phase; clients post round outcomes and re-fetch
// state instead of advancing locally, so a dropped request cannot make the
// client and server disagree about scores.
type Orchestrator struct {
	SessionRepo *repository.QuizSessionRepository
	ScoreRepo   *repository.ScoreRepository
	CatalogRepo *repository.CatalogRepository
	Quiz        config.QuizConfig
}

func NewOrchestrator(
	sessionRepo *repository.QuizSessionRepository,
	scoreRepo *repository.ScoreRepository,
	catalogRepo *repository.CatalogRepository,
	quizCfg config.QuizConfig,
) *Orchestrator {
	return &Orchestrator{
		SessionRepo: sessionRepo,
		ScoreRepo:   scoreRepo,
		CatalogRepo: catalogRepo,
		Quiz:        quizCfg,
	}
}

func (o *Orchestrator) StartSession(quizID string, userID *uint) (*model.QuizSession, error) {
	session := &model.QuizSession{
		QuizID: quizID,
		UserID: userID,
		Phase:  model.PhaseModeSelection,
	}
	if err := o.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (o *Orchestrator) GetSession(sessionID string) (*model.QuizSession, error) {
	session, err := o.SessionRepo.FindByID(sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	return session, err
}

func (o *Orchestrator) requirePhase(sessionID string, phase model.QuizPhase) (*model.QuizSession, error) {
	session, err := o.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.CompletedAt != nil {
		return nil, util.ErrSessionCompleted
	}
	if session.Phase != phase {
		return nil, util.ErrWrongPhase
	}
	return session, nil
}

func (o *Orchestrator) SelectMode(sessionID string, mode model.QuizMode) (*model.QuizSession, error) {
	session, err := o.requirePhase(sessionID, model.PhaseModeSelection)
	if err != nil {
		return nil, err
	}

	if mode == model.ModePair {
		return nil, util.ErrPairModeUnsupported
	}
	if mode != model.ModeSingle {
		return nil, util.ErrWrongPhase
	}

	session.Mode = mode
	session.Phase = model.PhaseRoomSelection
	return session, o.SessionRepo.Update(session)
}

func (o *Orchestrator) SelectRoom(sessionID string, roomID uint) (*model.QuizSession, error) {
	session, err := o.requirePhase(sessionID, model.PhaseRoomSelection)
	if err != nil {
		return nil, err
	}

	if _, err := o.CatalogRepo.FindRoom(roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoomNotFound
		}
		return nil, err
	}

	session.RoomID = &roomID
	session.Phase = model.PhaseStyleSwipe
	return session, o.SessionRepo.Update(session)
}

// CompleteStyleSwipe closes the swipe round. When the swipe limit was
// reached without a clear leader the session falls through to material
// selection; otherwise the top styles by score advance to narrow-down.
func (o *Orchestrator) CompleteStyleSwipe(sessionID string) (*model.QuizSession, error) {
	session, err := o.requirePhase(sessionID, model.PhaseStyleSwipe)
	if err != nil {
		return nil, err
	}

	scores, err := o.ScoreRepo.GetStyleScores(sessionID)
	if err != nil {
		return nil, err
	}

	if session.SwipeCount >= o.Quiz.SwipeLimit && !o.decisive(scores) {
		session.Phase = model.PhaseMaterialSelection
		return session, o.SessionRepo.Update(session)
	}

	topN := o.Quiz.NarrowDownCount
	if topN > len(scores) {
		topN = len(scores)
	}
	candidates := make([]uint, 0, topN)
	for _, sc := range scores[:topN] {
		candidates = append(candidates, sc.StyleID)
	}
	encoded, err := json.Marshal(candidates)
	if err != nil {
		return nil, err
	}

	session.Candidates = string(encoded)
	session.Phase = model.PhaseNarrowDown
	return session, o.SessionRepo.Update(session)
}

// CompleteNarrowDown merges the round scores into the running totals and
// either proceeds to the details round or enters a playoff when no style
// leads by the configured margin.
func (o *Orchestrator) CompleteNarrowDown(sessionID string, roundScores map[uint]float64) (*model.QuizSession, error) {
	session, err := o.requirePhase(sessionID, model.PhaseNarrowDown)
	if err != nil {
		return nil, err
	}

	for styleID, delta := range roundScores {
		if err := o.ScoreRepo.IncrementStyleScore(sessionID, styleID, delta, false); err != nil {
			return nil, err
		}
	}

	scores, err := o.ScoreRepo.GetStyleScores(sessionID)
	if err != nil {
		return nil, err
	}

	if o.decisive(scores) {
		session.Phase = model.PhaseDetailsRound
		return session, o.SessionRepo.Update(session)
	}

	o.enterPlayoff(session, model.PlayoffIndecisive, model.PhaseDetailsRound)
	return session, o.SessionRepo.Update(session)
}

// CompleteMaterialSelection merges material preferences into the detail
// scores and proceeds to the details round.
func (o *Orchestrator) CompleteMaterialSelection(sessionID string, detailScores map[uint]float64) (*model.QuizSession, error) {
	session, err := o.requirePhase(sessionID, model.PhaseMaterialSelection)
	if err != nil {
		return nil, err
	}

	for detailID, delta := range detailScores {
		if err := o.ScoreRepo.IncrementDetailScore(sessionID, detailID, delta); err != nil {
			return nil, err
		}
	}

	session.Phase = model.PhaseDetailsRound
	return session, o.SessionRepo.Update(session)
}

// CompletePlayoff merges the playoff votes, counting votes that flipped a
// style's running sign, then resumes whichever step was pending when the
// playoff was entered.
func (o *Orchestrator) CompletePlayoff(sessionID string, votes map[uint]float64) (*model.QuizSession, error) {
	session, err := o.requirePhase(sessionID, model.PhasePlayoffRound)
	if err != nil {
		return nil, err
	}

	current, err := o.ScoreRepo.GetStyleScores(sessionID)
	if err != nil {
		return nil, err
	}
	currentByStyle := make(map[uint]float64, len(current))
	for _, sc := range current {
		currentByStyle[sc.StyleID] = sc.Score
	}

	for styleID, vote := range votes {
		flipped := signFlip(currentByStyle[styleID], vote)
		if err := o.ScoreRepo.IncrementStyleScore(sessionID, styleID, vote, flipped); err != nil {
			return nil, err
		}
	}

	next := session.PhaseAfterPlayoff
	if next == "" {
		next = model.PhaseResults
	}
	session.Phase = next
	session.PlayoffReason = ""
	session.PhaseAfterPlayoff = ""
	if next == model.PhaseResults {
		o.complete(session)
	}
	return session, o.SessionRepo.Update(session)
}

type DetailsOutcome string

const (
	DetailsAllLiked    DetailsOutcome = "all_liked"
	DetailsAllDisliked DetailsOutcome = "all_disliked"
	DetailsMixed       DetailsOutcome = "mixed"
)

// CompleteDetailsRound routes to results, or back into a playoff when the
// round produced no discriminating signal.
func (o *Orchestrator) CompleteDetailsRound(sessionID string, outcome DetailsOutcome) (*model.QuizSession, error) {
	session, err := o.requirePhase(sessionID, model.PhaseDetailsRound)
	if err != nil {
		return nil, err
	}

	switch outcome {
	case DetailsAllLiked:
		o.enterPlayoff(session, model.PlayoffAllLiked, model.PhaseResults)
	case DetailsAllDisliked:
		o.enterPlayoff(session, model.PlayoffAllDisliked, model.PhaseResults)
	default:
		session.Phase = model.PhaseResults
		o.complete(session)
	}
	return session, o.SessionRepo.Update(session)
}

func (o *Orchestrator) enterPlayoff(session *model.QuizSession, reason model.PlayoffReason, next model.QuizPhase) {
	session.Phase = model.PhasePlayoffRound
	session.PlayoffReason = reason
	session.PhaseAfterPlayoff = next
}

func (o *Orchestrator) complete(session *model.QuizSession) {
	now := time.Now()
	session.CompletedAt = &now
}

// decisive reports whether a single style leads the field by at least the
// configured margin.
func (o *Orchestrator) decisive(scores []model.StyleScore) bool {
	if len(scores) == 0 {
		return false
	}
	if len(scores) == 1 {
		return true
	}
	sorted := make([]float64, len(scores))
	for i, sc := range scores {
		sorted[i] = sc.Score
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	return sorted[0]-sorted[1] >= float64(o.Quiz.LeadMargin)
}

func signFlip(current, vote float64) bool {
	if current == 0 || vote == 0 {
		return false
	}
	return (current > 0) != (vote > 0)
}

// RankedStyle is one entry of the terminal results view.
type RankedStyle struct {
	StyleID     uint    `json:"styleId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
	Changes     int     `json:"changes"`
}

type RankedDetail struct {
	DetailID uint    `json:"detailId"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
}

type SessionResults struct {
	SessionID       string         `json:"sessionId"`
	Styles          []RankedStyle  `json:"styles"`
	LikedDetails    []RankedDetail `json:"likedDetails"`
	DislikedDetails []RankedDetail `json:"dislikedDetails"`
}

// Results renders the terminal scores. Catalog lookup misses are skipped
// rather than failing the whole result.
func (o *Orchestrator) Results(sessionID string) (*SessionResults, error) {
	session, err := o.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Phase != model.PhaseResults {
		return nil, util.ErrWrongPhase
	}

	styleScores, err := o.ScoreRepo.GetStyleScores(sessionID)
	if err != nil {
		return nil, err
	}
	detailScores, err := o.ScoreRepo.GetDetailScores(sessionID)
	if err != nil {
		return nil, err
	}

	styleIDs := make([]uint, 0, len(styleScores))
	for _, sc := range styleScores {
		styleIDs = append(styleIDs, sc.StyleID)
	}
	styles, err := o.CatalogRepo.FindStylesByIDs(styleIDs)
	if err != nil {
		return nil, err
	}
	styleByID := make(map[uint]model.Style, len(styles))
	for _, st := range styles {
		styleByID[st.ID] = st
	}

	detailIDs := make([]uint, 0, len(detailScores))
	for _, sc := range detailScores {
		detailIDs = append(detailIDs, sc.DetailID)
	}
	details, err := o.CatalogRepo.FindDetailsByIDs(detailIDs)
	if err != nil {
		return nil, err
	}
	detailByID := make(map[uint]model.Detail, len(details))
	for _, d := range details {
		detailByID[d.ID] = d
	}

	results := &SessionResults{SessionID: sessionID}
	for _, sc := range styleScores {
		style, ok := styleByID[sc.StyleID]
		if !ok {
			continue
		}
		results.Styles = append(results.Styles, RankedStyle{
			StyleID:     sc.StyleID,
			Name:        style.Name,
			Description: style.Description,
			Score:       sc.Score,
			Changes:     sc.Changes,
		})
	}
	for _, sc := range detailScores {
		detail, ok := detailByID[sc.DetailID]
		if !ok {
			continue
		}
		ranked := RankedDetail{DetailID: sc.DetailID, Name: detail.Name, Score: sc.Score}
		if sc.Score > 0 {
			results.LikedDetails = append(results.LikedDetails, ranked)
		} else if sc.Score < 0 {
			results.DislikedDetails = append(results.DislikedDetails, ranked)
		}
	}

	return results, nil
}
