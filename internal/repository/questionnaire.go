package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hadiajavedd/SaySoPrototype/internal/database"
	"github.com/hadiajavedd/SaySoPrototype/internal/models"

	"gorm.io/gorm"
)

// QuestionInput is one question as supplied by the create/edit forms.
type QuestionInput struct {
	Text  string `json:"text" binding:"required"`
	QType string `json:"qtype" binding:"required"`
}

// CreateQuestionnaire inserts the questionnaire, then its questions in the
// caller-supplied order. Question ids are assigned monotonically, which is
// what defines display order from then on.
func CreateQuestionnaire(ctx context.Context, userID uint, title string, questions []QuestionInput) (*models.Questionnaire, error) {
	now := time.Now().UTC()
	q := &models.Questionnaire{
		Title:      title,
		UserID:     userID,
		CreatedAt:  now,
		LastOpened: now,
	}
	if err := database.DB.WithContext(ctx).Create(q).Error; err != nil {
		return nil, err
	}
	if err := insertQuestions(ctx, q.ID, questions); err != nil {
		return nil, err
	}
	return q, nil
}

func insertQuestions(ctx context.Context, questionnaireID uint, questions []QuestionInput) error {
	if len(questions) == 0 {
		return nil
	}
	rows := make([]models.Question, len(questions))
	for i, in := range questions {
		rows[i] = models.Question{
			Text:            in.Text,
			QType:           in.QType,
			QuestionnaireID: questionnaireID,
		}
	}
	return database.DB.WithContext(ctx).Create(&rows).Error
}

// GetQuestionnaire loads a questionnaire and its questions in display order.
// No ownership check: the take flow is public.
func GetQuestionnaire(ctx context.Context, id uint) (*models.Questionnaire, error) {
	var q models.Questionnaire
	err := database.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetOwnedQuestionnaire loads a questionnaire only if it belongs to userID.
// A missing questionnaire and someone else's questionnaire are the same
// ErrNotFound.
func GetOwnedQuestionnaire(ctx context.Context, id, userID uint) (*models.Questionnaire, error) {
	q, err := GetQuestionnaire(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.UserID != userID {
		return nil, ErrNotFound
	}
	return q, nil
}

// ListQuestionnaires returns every questionnaire owned by userID.
func ListQuestionnaires(ctx context.Context, userID uint) ([]models.Questionnaire, error) {
	var qs []models.Questionnaire
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&qs).Error
	return qs, err
}

// UpdateQuestionnaire replaces the title and the full question set. Existing
// questions are deleted and the new list reinserted, so questions get fresh
// ids and stored responses re-align against the new set.
func UpdateQuestionnaire(ctx context.Context, id, userID uint, title string, questions []QuestionInput) error {
	q, err := GetOwnedQuestionnaire(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := database.DB.WithContext(ctx).Model(q).Update("title", title).Error; err != nil {
		return err
	}
	if err := database.DB.WithContext(ctx).
		Where("questionnaire_id = ?", q.ID).
		Delete(&models.Question{}).Error; err != nil {
		return err
	}
	return insertQuestions(ctx, q.ID, questions)
}

// DeleteQuestionnaire removes the questionnaire; questions and responses go
// with it via cascade.
func DeleteQuestionnaire(ctx context.Context, id, userID uint) error {
	q, err := GetOwnedQuestionnaire(ctx, id, userID)
	if err != nil {
		return err
	}
	return database.DB.WithContext(ctx).Delete(q).Error
}

// TouchLastOpened stamps the questionnaire as just accessed. Best-effort
// telemetry; callers log failures and move on.
func TouchLastOpened(ctx context.Context, id uint) error {
	return database.DB.WithContext(ctx).
		Model(&models.Questionnaire{}).
		Where("id = ?", id).
		Update("last_opened", time.Now().UTC()).Error
}
