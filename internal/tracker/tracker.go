// Package tracker holds the per-user session state machine: which topic
// catalog is loaded, which question is selected, and when to advance to
// the next topic. The document store stays the source of truth; a session
// is a write-through cache over it.
package tracker

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"dsaprep/internal/events"
	"dsaprep/internal/metrics"
	"dsaprep/internal/models"

	"go.uber.org/zap"
)

// Phase of a session with respect to its current topic selection.
type Phase string

const (
	PhaseLoadingTopics    Phase = "loading_topics"
	PhaseLoadingQuestions Phase = "loading_questions"
	PhaseReady            Phase = "ready"
)

var (
	ErrStatusRequired   = errors.New("status is required")
	ErrTopicNotFound    = errors.New("topic not found")
	ErrTopicNotCurrent  = errors.New("topic is not the current selection")
	ErrQuestionNotFound = errors.New("question not found")
	ErrQuestionsLoading = errors.New("questions are still loading")
	ErrProgressNotFound = errors.New("no progress record for question")
)

// Store is the document-store surface a session needs.
type Store interface {
	Catalog(ctx context.Context, goal models.Goal) ([]models.Topic, error)
	QuestionsByTopic(ctx context.Context, goal models.Goal, topicID string) ([]models.Question, error)
	ProgressByTopic(ctx context.Context, uid string, goal models.Goal, topicID string) (map[string]models.ProgressRecord, error)
	SaveProgress(ctx context.Context, uid string, goal models.Goal, topicID, questionID string, update models.ProgressUpdate) error
	ClearStatus(ctx context.Context, uid string, goal models.Goal, topicID, questionID string) error
	SetLastTopic(ctx context.Context, uid string, goal models.Goal, topicID string) error
	SetGoal(ctx context.Context, uid string, goal models.Goal) error
}

// QuestionView is a question merged with the user's saved progress.
type QuestionView struct {
	models.Question
	Status models.Status `json:"status,omitempty"`
	Codes  []string      `json:"codes,omitempty"`
	Notes  string        `json:"notes,omitempty"`
}

// Session is one user's tracker state. All methods are safe for
// concurrent use; operations on a session are serialized.
type Session struct {
	store   Store
	logger  *zap.Logger
	publish func(events.Event)

	mu                sync.Mutex
	uid               string
	goal              models.Goal
	lastTopic         map[models.Goal]string
	phase             Phase
	topics            []models.Topic
	questions         []models.Question // sorted by order
	progress          map[string]models.ProgressRecord
	selectedTopicID   string
	selectedQuestion  string // question id, "" = none
	selectingQuestion bool
	errMsg            string

	// single-slot token guarding the topic transition; a second
	// auto-advance attempted while one is in flight is dropped
	advancing atomic.Bool
}

// NewSession builds a session from the user's stored profile. Call
// LoadTopics before using it.
func NewSession(store Store, logger *zap.Logger, publish func(events.Event), profile *models.Profile) *Session {
	goal := profile.Goal
	if !goal.Valid() {
		goal = models.GoalLearn
	}
	lastTopic := make(map[models.Goal]string, len(profile.LastTopic))
	for g, id := range profile.LastTopic {
		lastTopic[g] = id
	}
	return &Session{
		store:     store,
		logger:    logger,
		publish:   publish,
		uid:       profile.UID,
		goal:      goal,
		lastTopic: lastTopic,
		phase:     PhaseLoadingTopics,
		progress:  map[string]models.ProgressRecord{},
	}
}

// LoadTopics fetches the catalog for the effective goal and selects the
// initial topic: the saved last topic if it still exists, else the
// lowest-order topic. On failure the session is left with no topics and
// a user-visible error.
func (s *Session) LoadTopics(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadTopicsLocked(ctx)
}

func (s *Session) loadTopicsLocked(ctx context.Context) error {
	s.phase = PhaseLoadingTopics
	s.topics = nil
	s.selectedTopicID = ""
	s.selectedQuestion = ""
	s.questions = nil
	s.progress = map[string]models.ProgressRecord{}

	topics, err := s.store.Catalog(ctx, s.goal)
	if err != nil {
		s.logger.Error("failed to fetch topics", zap.String("uid", s.uid), zap.Error(err))
		s.errMsg = err.Error()
		return err
	}
	if len(topics) == 0 {
		s.errMsg = "no topics available"
		return nil
	}
	sort.SliceStable(topics, func(i, j int) bool { return topics[i].Order < topics[j].Order })
	s.topics = topics

	initial := topics[0].ID
	if saved, ok := s.lastTopic[s.goal]; ok {
		for _, t := range topics {
			if t.ID == saved {
				initial = saved
				break
			}
		}
	}
	s.selectedTopicID = initial
	return s.loadQuestionsLocked(ctx)
}

// SelectTopic re-enters the question-loading phase for the given topic.
func (s *Session) SelectTopic(ctx context.Context, topicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.topicExistsLocked(topicID) {
		return ErrTopicNotFound
	}
	s.selectedTopicID = topicID
	return s.loadQuestionsLocked(ctx)
}

func (s *Session) loadQuestionsLocked(ctx context.Context) error {
	s.phase = PhaseLoadingQuestions
	s.selectingQuestion = true
	s.selectedQuestion = ""

	questions, err := s.store.QuestionsByTopic(ctx, s.goal, s.selectedTopicID)
	if err != nil {
		s.logger.Error("failed to fetch questions",
			zap.String("uid", s.uid), zap.String("topic", s.selectedTopicID), zap.Error(err))
		s.errMsg = err.Error()
		s.questions = nil
		s.progress = map[string]models.ProgressRecord{}
		s.selectingQuestion = false
		s.phase = PhaseReady
		return err
	}
	sort.SliceStable(questions, func(i, j int) bool { return questions[i].Order < questions[j].Order })
	s.questions = questions

	progress, err := s.store.ProgressByTopic(ctx, s.uid, s.goal, s.selectedTopicID)
	if err != nil {
		// progress falls back to empty rather than leaving stale data
		s.logger.Error("failed to fetch progress",
			zap.String("uid", s.uid), zap.String("topic", s.selectedTopicID), zap.Error(err))
		s.errMsg = err.Error()
		progress = map[string]models.ProgressRecord{}
	}
	s.progress = progress

	if next := s.nextQuestionLocked(); next != nil {
		s.selectedQuestion = next.ID
	}
	s.selectingQuestion = false
	s.phase = PhaseReady
	return nil
}

// SelectQuestion opens a question in the current topic. Rejected while
// the question list is still loading.
func (s *Session) SelectQuestion(questionID string) (*QuestionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectingQuestion {
		return nil, ErrQuestionsLoading
	}
	for _, q := range s.questions {
		if q.ID == questionID {
			s.selectedQuestion = questionID
			view := s.viewLocked(q)
			return &view, nil
		}
	}
	return nil, ErrQuestionNotFound
}

// NextQuestion returns the first question by ascending order whose status
// is unset or Unsolved; if every question is past that, the topic's first
// question is re-presented.
func (s *Session) NextQuestion() *QuestionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.nextQuestionLocked()
	if q == nil {
		return nil
	}
	view := s.viewLocked(*q)
	return &view
}

func (s *Session) nextQuestionLocked() *models.Question {
	if len(s.questions) == 0 {
		return nil
	}
	for i := range s.questions {
		status := s.progress[s.questions[i].ID].Status
		if status == "" || status == models.StatusUnsolved {
			return &s.questions[i]
		}
	}
	return &s.questions[0]
}

// RecordEdit persists status/codes/notes for a question of the current
// topic. The in-memory state is updated only after the write succeeds;
// on failure it is left unchanged and the error is surfaced. Completing
// the last open question of a topic advances to the next topic.
func (s *Session) RecordEdit(ctx context.Context, topicID, questionID string, update models.ProgressUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.Status == "" {
		return ErrStatusRequired
	}
	if !update.Status.Valid() {
		return ErrStatusRequired
	}
	if topicID != s.selectedTopicID {
		return ErrTopicNotCurrent
	}
	if !s.questionExistsLocked(questionID) {
		return ErrQuestionNotFound
	}

	if err := s.store.SaveProgress(ctx, s.uid, s.goal, topicID, questionID, update); err != nil {
		s.logger.Error("failed to save progress",
			zap.String("uid", s.uid), zap.String("question", questionID), zap.Error(err))
		s.errMsg = err.Error()
		return err
	}

	rec := s.progress[questionID]
	rec.UID, rec.Goal, rec.TopicID, rec.QuestionID = s.uid, s.goal, topicID, questionID
	rec.Status = update.Status
	rec.Codes = update.Codes
	rec.Notes = update.Notes
	s.progress[questionID] = rec

	if next := s.nextQuestionLocked(); next != nil {
		s.selectedQuestion = next.ID
	}

	s.publishEvent(events.Event{Type: events.TypeProgressUpdated, TopicID: topicID, QuestionID: questionID})
	s.maybeAdvanceLocked(ctx)
	return nil
}

// maybeAdvanceLocked moves to the next topic once every question in the
// current one has a terminal status.
func (s *Session) maybeAdvanceLocked(ctx context.Context) {
	if len(s.questions) == 0 {
		return
	}
	for _, q := range s.questions {
		if !s.progress[q.ID].Status.Terminal() {
			return
		}
	}

	if !s.advancing.CompareAndSwap(false, true) {
		// a transition is already in flight, drop this attempt
		return
	}
	defer s.advancing.Store(false)

	next := s.nextTopicLocked()
	if next == nil {
		// already on the last topic
		return
	}

	if err := s.store.SetLastTopic(ctx, s.uid, s.goal, next.ID); err != nil {
		s.logger.Error("failed to record topic advance",
			zap.String("uid", s.uid), zap.String("topic", next.ID), zap.Error(err))
		s.errMsg = err.Error()
		return
	}
	s.lastTopic[s.goal] = next.ID
	s.selectedTopicID = next.ID
	metrics.TopicAdvances.Inc()
	s.publishEvent(events.Event{Type: events.TypeTopicAdvanced, TopicID: next.ID})

	if err := s.loadQuestionsLocked(ctx); err != nil {
		s.logger.Error("failed to load questions after advance",
			zap.String("uid", s.uid), zap.String("topic", next.ID), zap.Error(err))
	}
}

func (s *Session) nextTopicLocked() *models.Topic {
	for i, t := range s.topics {
		if t.ID == s.selectedTopicID {
			if i+1 < len(s.topics) {
				return &s.topics[i+1]
			}
			return nil
		}
	}
	return nil
}

// ClearStatus removes only the status field of an existing record, so the
// question becomes eligible again. The current topic is re-recorded as the
// user's position so a cleared completion cannot strand the pointer on a
// future topic.
func (s *Session) ClearStatus(ctx context.Context, topicID, questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if topicID != s.selectedTopicID {
		return ErrTopicNotCurrent
	}
	rec, ok := s.progress[questionID]
	if !ok {
		return ErrProgressNotFound
	}

	if err := s.store.ClearStatus(ctx, s.uid, s.goal, topicID, questionID); err != nil {
		s.logger.Error("failed to clear status",
			zap.String("uid", s.uid), zap.String("question", questionID), zap.Error(err))
		s.errMsg = err.Error()
		return err
	}

	rec.Status = ""
	s.progress[questionID] = rec

	if next := s.nextQuestionLocked(); next != nil {
		s.selectedQuestion = next.ID
	}

	if err := s.store.SetLastTopic(ctx, s.uid, s.goal, topicID); err != nil {
		s.logger.Error("failed to record last topic",
			zap.String("uid", s.uid), zap.String("topic", topicID), zap.Error(err))
		s.errMsg = err.Error()
	} else {
		s.lastTopic[s.goal] = topicID
	}

	s.publishEvent(events.Event{Type: events.TypeStatusCleared, TopicID: topicID, QuestionID: questionID})
	return nil
}

// SetGoal switches the active goal and reloads the topic catalog.
func (s *Session) SetGoal(ctx context.Context, goal models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !goal.Valid() {
		return errors.New("invalid goal")
	}
	if err := s.store.SetGoal(ctx, s.uid, goal); err != nil {
		s.errMsg = err.Error()
		return err
	}
	s.goal = goal
	s.publishEvent(events.Event{Type: events.TypeGoalChanged})
	return s.loadTopicsLocked(ctx)
}

func (s *Session) topicExistsLocked(topicID string) bool {
	for _, t := range s.topics {
		if t.ID == topicID {
			return true
		}
	}
	return false
}

func (s *Session) questionExistsLocked(questionID string) bool {
	for _, q := range s.questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

func (s *Session) viewLocked(q models.Question) QuestionView {
	view := QuestionView{Question: q}
	if rec, ok := s.progress[q.ID]; ok {
		view.Status = rec.Status
		view.Codes = rec.Codes
		view.Notes = rec.Notes
	}
	return view
}

func (s *Session) publishEvent(event events.Event) {
	if s.publish == nil {
		return
	}
	event.UID = s.uid
	event.Goal = string(s.goal)
	s.publish(event)
}
