package tracker

import "dsaprep/internal/models"

// Snapshot is an immutable view of a session served to clients.
type Snapshot struct {
	Phase             Phase          `json:"phase"`
	Goal              models.Goal    `json:"goal"`
	Topics            []models.Topic `json:"topics"`
	SelectedTopicID   string         `json:"selectedTopicId,omitempty"`
	Questions         []QuestionView `json:"questions"`
	SelectedQuestion  *QuestionView  `json:"selectedQuestion,omitempty"`
	NextQuestion      *QuestionView  `json:"nextQuestion,omitempty"`
	SelectingQuestion bool           `json:"selectingQuestionLoading"`
	Error             string         `json:"error,omitempty"`
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:             s.phase,
		Goal:              s.goal,
		Topics:            append([]models.Topic(nil), s.topics...),
		SelectedTopicID:   s.selectedTopicID,
		Questions:         make([]QuestionView, 0, len(s.questions)),
		SelectingQuestion: s.selectingQuestion,
		Error:             s.errMsg,
	}
	for _, q := range s.questions {
		snap.Questions = append(snap.Questions, s.viewLocked(q))
	}
	if s.selectedQuestion != "" {
		for _, q := range s.questions {
			if q.ID == s.selectedQuestion {
				view := s.viewLocked(q)
				snap.SelectedQuestion = &view
				break
			}
		}
	}
	if next := s.nextQuestionLocked(); next != nil {
		view := s.viewLocked(*next)
		snap.NextQuestion = &view
	}
	return snap
}
