package repository

import (
	"github.com/lshigami/kioku/internal/model"
	"gorm.io/gorm"
)

type QuizTagRepository interface {
	Create(tag *model.QuizTag) error
	FindByQuiz(quizID string) ([]model.QuizTag, error)
	FindByName(quizID, name string) (*model.QuizTag, error)
	Delete(id, quizID string) error
	AddToQuestion(questionID, tagID string) error
	RemoveFromQuestion(questionID, tagID string) error
	FindForQuestion(questionID string) ([]model.QuizTag, error)
}

type quizTagRepository struct {
	db *gorm.DB
}

func NewQuizTagRepository(db *gorm.DB) QuizTagRepository {
	return &quizTagRepository{db: db}
}

func (r *quizTagRepository) Create(tag *model.QuizTag) error {
	return r.db.Create(tag).Error
}

func (r *quizTagRepository) FindByQuiz(quizID string) ([]model.QuizTag, error) {
	var tags []model.QuizTag
	err := r.db.Where("quiz_id = ?", quizID).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *quizTagRepository) FindByName(quizID, name string) (*model.QuizTag, error) {
	var tag model.QuizTag
	if err := r.db.First(&tag, "quiz_id = ? AND name = ?", quizID, name).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *quizTagRepository) Delete(id, quizID string) error {
	return r.db.Delete(&model.QuizTag{}, "id = ? AND quiz_id = ?", id, quizID).Error
}

func (r *quizTagRepository) AddToQuestion(questionID, tagID string) error {
	return r.db.Exec(
		"INSERT OR IGNORE INTO question_tags (question_id, quiz_tag_id) VALUES (?, ?)",
		questionID, tagID,
	).Error
}

func (r *quizTagRepository) RemoveFromQuestion(questionID, tagID string) error {
	return r.db.Exec(
		"DELETE FROM question_tags WHERE question_id = ? AND quiz_tag_id = ?",
		questionID, tagID,
	).Error
}

func (r *quizTagRepository) FindForQuestion(questionID string) ([]model.QuizTag, error) {
	var tags []model.QuizTag
	err := r.db.
		Joins("INNER JOIN question_tags qt ON qt.quiz_tag_id = quiz_tags.id").
		Where("qt.question_id = ?", questionID).
		Order("quiz_tags.name ASC").
		Find(&tags).Error
	return tags, err
}
