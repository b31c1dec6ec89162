package repository

import (
	"github.com/lshigami/kioku/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id string) (*model.Question, error)
	FindByQuiz(quizID string) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id string) error
	CountByQuiz(quizID string) (int, error)
	// NextPosition yields COALESCE(MAX(position), -1) + 1 for a quiz.
	NextPosition(quizID string) (int, error)
	Reorder(quizID string, questionIDs []string) error
	ReplaceChoices(questionID string, choices []model.Choice) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func preloadQuestion(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.position ASC")
		}).
		Preload("Tags")
}

func (r *questionRepository) Create(question *model.Question) error {
	// Creates positioned choices along with the question when populated.
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	if err := preloadQuestion(r.db).First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByQuiz(quizID string) ([]model.Question, error) {
	var questions []model.Question
	err := preloadQuestion(r.db).
		Where("quiz_id = ?", quizID).
		Order("position ASC").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Omit("Choices", "Tags").Save(question).Error
}

func (r *questionRepository) Delete(id string) error {
	return r.db.Delete(&model.Question{}, "id = ?", id).Error
}

func (r *questionRepository) CountByQuiz(quizID string) (int, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return int(count), err
}

func (r *questionRepository) NextPosition(quizID string) (int, error) {
	var position int
	err := r.db.Model(&model.Question{}).
		Where("quiz_id = ?", quizID).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&position).Error
	return position, err
}

func (r *questionRepository) Reorder(quizID string, questionIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for idx, qid := range questionIDs {
			err := tx.Model(&model.Question{}).
				Where("id = ? AND quiz_id = ?", qid, quizID).
				Update("position", idx).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *questionRepository) ReplaceChoices(questionID string, choices []model.Choice) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Choice{}, "question_id = ?", questionID).Error; err != nil {
			return err
		}
		if len(choices) == 0 {
			return nil
		}
		return tx.Create(&choices).Error
	})
}
