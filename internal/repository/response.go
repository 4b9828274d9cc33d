package repository

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/hadiajavedd/SaySoPrototype/internal/database"
	"github.com/hadiajavedd/SaySoPrototype/internal/models"
)

// SubmitResponse records one anonymous submission against a questionnaire.
// Questions are walked in display order and each answer is pulled from the
// form by the question's field name, defaulting to "" when absent, so every
// stored payload has an entry for every question that existed at submit time.
func SubmitResponse(ctx context.Context, questionnaireID uint, form url.Values) (*models.Response, error) {
	q, err := GetQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}

	answers := make(map[string]string, len(q.Questions))
	for _, ques := range q.Questions {
		answers[strconv.FormatUint(uint64(ques.ID), 10)] = form.Get(ques.FieldName())
	}

	r := &models.Response{
		QuestionnaireID: q.ID,
		SubmittedAt:     time.Now().UTC(),
	}
	if err := r.EncodeAnswers(answers); err != nil {
		return nil, err
	}
	if err := database.DB.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// ListResponses returns all responses for a questionnaire, most recent first.
func ListResponses(ctx context.Context, questionnaireID uint) ([]models.Response, error) {
	var responses []models.Response
	err := database.DB.WithContext(ctx).
		Where("questionnaire_id = ?", questionnaireID).
		Order("submitted_at DESC").
		Find(&responses).Error
	return responses, err
}

// AlignedResponse is one response projected onto a question list: Answers[i]
// is the answer to questions[i], "" when the response has none.
type AlignedResponse struct {
	SubmittedAt time.Time
	Answers     []string
	// Corrupt marks a response whose stored payload could not be parsed.
	// The row still renders, as blanks.
	Corrupt bool
}

// AlignResponses projects responses onto the CURRENT question list. Answers
// keyed by question ids that no longer exist are dropped; questions added
// after a response was stored read as empty. This is deliberate: rows are
// always shaped by the question set as it is now, not as it was at
// submission time.
func AlignResponses(questions []models.Question, responses []models.Response) []AlignedResponse {
	rows := make([]AlignedResponse, 0, len(responses))
	for _, r := range responses {
		answers, corrupt := r.DecodeAnswers()

		row := AlignedResponse{
			SubmittedAt: r.SubmittedAt,
			Answers:     make([]string, len(questions)),
			Corrupt:     corrupt,
		}
		for i, q := range questions {
			row.Answers[i] = answers[strconv.FormatUint(uint64(q.ID), 10)]
		}
		rows = append(rows, row)
	}
	return rows
}
