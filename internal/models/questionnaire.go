package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Questionnaire is a titled, owned set of questions plus the responses
// collected against it.
type Questionnaire struct {
	ID         uint   `gorm:"primaryKey"`
	Title      string `gorm:"size:200;not null"`
	UserID     uint   `gorm:"not null;index"`
	CreatedAt  time.Time
	LastOpened time.Time

	Questions []Question `gorm:"foreignKey:QuestionnaireID;constraint:OnDelete:CASCADE"`
	Responses []Response `gorm:"foreignKey:QuestionnaireID;constraint:OnDelete:CASCADE"`
}

// Question belongs to one questionnaire. Display order is ascending ID;
// there is no explicit position column.
type Question struct {
	ID              uint   `gorm:"primaryKey"`
	Text            string `gorm:"size:500;not null"`
	QType           string `gorm:"size:20;not null"`
	QuestionnaireID uint   `gorm:"not null;index"`
}

// FieldName is the form field key respondents submit this question under.
func (q Question) FieldName() string {
	return fmt.Sprintf("q%d", q.ID)
}

// Response is one anonymous submission. AnswersJSON maps question id (as a
// decimal string) to the submitted answer text; the storage layer treats it
// as opaque.
type Response struct {
	ID              uint `gorm:"primaryKey"`
	QuestionnaireID uint `gorm:"not null;index"`
	SubmittedAt     time.Time
	AnswersJSON     string `gorm:"type:text"`
}

// EncodeAnswers serializes an answers map onto the response.
func (r *Response) EncodeAnswers(answers map[string]string) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	r.AnswersJSON = string(data)
	return nil
}

// DecodeAnswers deserializes the stored payload. A blob that cannot be parsed
// yields an empty map with corrupt set, so callers can keep rendering while
// still seeing that the row is unreadable.
func (r *Response) DecodeAnswers() (answers map[string]string, corrupt bool) {
	if r.AnswersJSON == "" {
		return map[string]string{}, false
	}
	if err := json.Unmarshal([]byte(r.AnswersJSON), &answers); err != nil {
		return map[string]string{}, true
	}
	return answers, false
}
