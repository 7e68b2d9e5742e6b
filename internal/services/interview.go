package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"resumate/backend/internal/models"
)

// AnswerScorer scores one interview answer. AnalyzerService satisfies it;
// tests inject stubs.
type AnswerScorer interface {
	ScoreAnswer(ctx context.Context, userID uint, question, answer string) (*models.AnswerScore, error)
}

// Decision thresholds for the final summary. Fixed by design, not
// configurable.
const (
	strongHireThreshold = 8.0
	hireThreshold       = 6.5
	maybeThreshold      = 5.0
	strengthCutoff      = 7.0
)

// Session is one mock interview. The question list is fixed at start; the
// only permitted mutation afterwards is answer submission, which appends to
// answers/scores and advances the pointer by exactly one. The invariant
// len(Answers) == len(Scores) == Current holds at all times.
type Session struct {
	mu sync.Mutex

	ID            string
	UserID        uint
	ResumeText    string
	Questions     []string
	QuestionTypes []string
	Difficulty    string
	Current       int
	Answers       []string
	Scores        []models.AnswerScore
	StartTime     time.Time
	MaxDuration   time.Duration
	Completed     bool
}

// InterviewService owns the in-process table of active interview sessions.
// Mutations on one session are serialized by its own lock; sessions are
// independent of each other.
type InterviewService interface {
	Start(userID uint, resumeText string, questions, questionTypes []string, difficulty string, maxDuration time.Duration) (*Session, error)
	SubmitAnswer(ctx context.Context, sessionID string, questionID int, answer string) (*models.AnswerScore, *int, error)
	Summarize(sessionID string) (*models.InterviewSummary, error)
	ValidateQuestionCount(count int) error
	// Sweep drops sessions whose advisory deadline (start + max duration +
	// retention) has passed, and returns how many were removed. Duration is
	// never enforced during the interview itself.
	Sweep(now time.Time) int
	Len() int
}

type interviewService struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	scorer       AnswerScorer
	maxQuestions int
	retention    time.Duration
}

func NewInterviewService(scorer AnswerScorer, maxQuestions int, retention time.Duration) InterviewService {
	return &interviewService{
		sessions:     make(map[string]*Session),
		scorer:       scorer,
		maxQuestions: maxQuestions,
		retention:    retention,
	}
}

// ValidateQuestionCount implements InterviewService.
func (s *interviewService) ValidateQuestionCount(count int) error {
	if count < 1 || count > s.maxQuestions {
		return fmt.Errorf("%w: num_questions must be between 1 and %d", ErrInvalidConfiguration, s.maxQuestions)
	}
	return nil
}

// Start implements InterviewService.
func (s *interviewService) Start(userID uint, resumeText string, questions, questionTypes []string, difficulty string, maxDuration time.Duration) (*Session, error) {
	if err := s.ValidateQuestionCount(len(questions)); err != nil {
		return nil, err
	}

	session := &Session{
		ID:            uuid.New().String(),
		UserID:        userID,
		ResumeText:    resumeText,
		Questions:     questions,
		QuestionTypes: questionTypes,
		Difficulty:    difficulty,
		Current:       0,
		StartTime:     time.Now().UTC(),
		MaxDuration:   maxDuration,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session, nil
}

func (s *interviewService) get(sessionID string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	return session, nil
}

// SubmitAnswer implements InterviewService. A rejected submission leaves the
// session untouched: validation happens before the scoring call, and
// nothing is appended until a score exists.
func (s *interviewService) SubmitAnswer(ctx context.Context, sessionID string, questionID int, answer string) (*models.AnswerScore, *int, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if questionID < 0 || questionID >= len(session.Questions) {
		return nil, nil, fmt.Errorf("%w: question %d of %d", ErrInvalidQuestionIndex, questionID, len(session.Questions))
	}
	if session.Completed {
		return nil, nil, fmt.Errorf("%w: all questions already answered", ErrInvalidQuestionIndex)
	}

	score, err := s.scorer.ScoreAnswer(ctx, session.UserID, session.Questions[questionID], answer)
	if err != nil {
		return nil, nil, err
	}

	session.Answers = append(session.Answers, answer)
	session.Scores = append(session.Scores, *score)
	session.Current = len(session.Answers)

	var nextQuestionID *int
	if session.Current < len(session.Questions) {
		next := session.Current
		nextQuestionID = &next
	} else {
		session.Completed = true
	}

	return score, nextQuestionID, nil
}

// Summarize implements InterviewService. Averages cover whatever has been
// submitted so far; the session need not be completed.
func (s *interviewService) Summarize(sessionID string) (*models.InterviewSummary, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if len(session.Scores) == 0 {
		return nil, fmt.Errorf("%w: session %s", ErrNoAnswersSubmitted, sessionID)
	}

	var sumComm, sumTech, sumProb, sumOverall float64
	for _, score := range session.Scores {
		sumComm += score.Communication
		sumTech += score.TechnicalKnowledge
		sumProb += score.ProblemSolving
		sumOverall += score.Overall
	}

	n := float64(len(session.Scores))
	avgComm := round2(sumComm / n)
	avgTech := round2(sumTech / n)
	avgProb := round2(sumProb / n)
	overall := round2(sumOverall / n)

	var decision string
	switch {
	case overall >= strongHireThreshold:
		decision = "Strong Hire"
	case overall >= hireThreshold:
		decision = "Hire"
	case overall >= maybeThreshold:
		decision = "Maybe"
	default:
		decision = "No Hire"
	}

	performance := "fair"
	if overall >= 8 {
		performance = "excellent"
	} else if overall >= 6 {
		performance = "good"
	}
	detailedFeedback := fmt.Sprintf(
		"You answered %d out of %d questions. Your overall performance was %s. Keep practicing to improve your interview skills!",
		len(session.Scores), len(session.Questions), performance,
	)

	var strengths, improvements []string
	if avgComm >= strengthCutoff {
		strengths = append(strengths, "Clear communication skills")
	} else {
		improvements = append(improvements, "Work on articulating your thoughts more clearly")
	}
	if avgTech >= strengthCutoff {
		strengths = append(strengths, "Strong technical knowledge")
	} else {
		improvements = append(improvements, "Deepen your technical knowledge in key areas")
	}
	if avgProb >= strengthCutoff {
		strengths = append(strengths, "Good problem-solving approach")
	} else {
		improvements = append(improvements, "Practice breaking down complex problems systematically")
	}

	return &models.InterviewSummary{
		TotalQuestions:        len(session.Questions),
		AnsweredQuestions:     len(session.Scores),
		AverageCommunication:  avgComm,
		AverageTechnical:      avgTech,
		AverageProblemSolving: avgProb,
		OverallScore:          overall,
		Decision:              decision,
		DetailedFeedback:      detailedFeedback,
		Strengths:             strengths,
		AreasForImprovement:   improvements,
	}, nil
}

// Sweep implements InterviewService.
func (s *interviewService) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		deadline := session.StartTime.Add(session.MaxDuration + s.retention)
		if now.After(deadline) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len implements InterviewService.
func (s *interviewService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
