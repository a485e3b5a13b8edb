package repository

import (
	"exam_studio_backend/internal/model"

	"gorm.io/gorm"
)

type ExpressionRepository struct {
	DB *gorm.DB
}

func NewExpressionRepository(db *gorm.DB) *ExpressionRepository {
	return &ExpressionRepository{DB: db}
}

func (r *ExpressionRepository) Create(expr *model.Expression) error {
	return r.DB.Create(expr).Error
}

func (r *ExpressionRepository) FindByID(examID, id string) (*model.Expression, error) {
	var expr model.Expression
	err := r.DB.Where("exam_id = ? AND id = ?", examID, id).First(&expr).Error
	if err != nil {
		return nil, err
	}
	return &expr, nil
}

// ListByExam 只返回试卷层表达式，按插入顺序
func (r *ExpressionRepository) ListByExam(examID string) ([]model.Expression, error) {
	var exprs []model.Expression
	err := r.DB.
		Where("exam_id = ? AND question_id = ''", examID).
		Order("position asc").
		Find(&exprs).Error
	return exprs, err
}

func (r *ExpressionRepository) Update(expr *model.Expression) error {
	return r.DB.Save(expr).Error
}

func (r *ExpressionRepository) Delete(examID, id string) error {
	result := r.DB.Where("exam_id = ? AND id = ?", examID, id).Delete(&model.Expression{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NextPosition 下一个插入位置，保证展示顺序稳定
func (r *ExpressionRepository) NextPosition(examID string) (int, error) {
	var max int
	err := r.DB.Model(&model.Expression{}).
		Where("exam_id = ? AND question_id = ''", examID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&max).Error
	return max + 1, err
}
