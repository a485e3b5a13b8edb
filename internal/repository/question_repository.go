package repository

import (
	"exam_studio_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// Create 题目连同门控表达式与备选项在一个事务里落库
func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(q).Error
	})
}

func (r *QuestionRepository) FindByID(examID, id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.
		Preload("Expression").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("exam_id = ? AND id = ?", examID, id).
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) ListByExam(examID string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.
		Preload("Expression").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("exam_id = ?", examID).
		Order("position asc").
		Find(&qs).Error
	return qs, err
}

// Update 整体替换备选项，门控表达式原地更新
func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", q.ID).Delete(&model.AnswerOption{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(q).Error
	})
}

func (r *QuestionRepository) Delete(examID, id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var q model.Question
		if err := tx.Where("exam_id = ? AND id = ?", examID, id).First(&q).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.AnswerOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.Expression{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, "id = ?", id).Error
	})
}

func (r *QuestionRepository) NextPosition(examID string) (int, error) {
	var max int
	err := r.DB.Model(&model.Question{}).
		Where("exam_id = ?", examID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&max).Error
	return max + 1, err
}
