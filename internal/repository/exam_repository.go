package repository

import (
	"exam_studio_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

// FindByID 加载完整聚合：作者、试卷层表达式、题目（含门控表达式和备选项）
func (r *ExamRepository) FindByID(id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.
		Preload("Author").
		Preload("Expressions", func(db *gorm.DB) *gorm.DB {
			return db.Where("question_id = ''").Order("position asc")
		}).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("Questions.Expression").
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&exam, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

// List 返回某作者的全部试卷以及其他作者公开的试卷
func (r *ExamRepository) List(authorID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.
		Preload("Author").
		Preload("Expressions", func(db *gorm.DB) *gorm.DB {
			return db.Where("question_id = ''").Order("position asc")
		}).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("Questions.Expression").
		Preload("Questions.Answers").
		Where("author_id = ? OR public = ?", authorID, true).
		Order("created_at desc").
		Find(&exams).Error
	return exams, err
}

// UpdateProperties 只更新属性子集，表达式/题目走各自的保存操作
func (r *ExamRepository) UpdateProperties(id string, props map[string]interface{}) error {
	return r.DB.Model(&model.Exam{}).Where("id = ?", id).Updates(props).Error
}

func (r *ExamRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", id).Delete(&model.Expression{}).Error; err != nil {
			return err
		}
		var questionIDs []string
		if err := tx.Model(&model.Question{}).Where("exam_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.AnswerOption{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("exam_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Exam{}, "id = ?", id).Error
	})
}
