package service

import (
	"errors"
	"exam_studio_backend/internal/model"
	"exam_studio_backend/internal/repository"
	"exam_studio_backend/internal/util"
	"exam_studio_backend/pkg/monitoring"
	"fmt"

	"gorm.io/gorm"
)

type ExpressionService struct {
	Repo     *repository.ExpressionRepository
	ExamRepo *repository.ExamRepository
}

func NewExpressionService(repo *repository.ExpressionRepository, examRepo *repository.ExamRepository) *ExpressionService {
	return &ExpressionService{Repo: repo, ExamRepo: examRepo}
}

// ExpressionRequest 表达式字段，id 由路径参数携带
type ExpressionRequest struct {
	ID        string         `json:"id"`
	Label     string         `json:"label" binding:"required"`
	Variable  string         `json:"variable" binding:"required"`
	Operator  model.Operator `json:"operator" binding:"required"`
	Value     model.Value    `json:"value"`
	Reference string         `json:"reference"`
}

func (req *ExpressionRequest) validate() error {
	if !req.Operator.Valid() {
		return fmt.Errorf("%w: unknown operator %q", util.ErrValidation, string(req.Operator))
	}
	if model.DisplayValue(req.Value) == "" {
		return fmt.Errorf("%w: value is required", util.ErrValidation)
	}
	return nil
}

// ExpressionListResult 创建/删除后的表达式全量快照，调用方按 id 前缀定位自己的记录
type ExpressionListResult struct {
	ID         string             `json:"id"`
	Expression []model.Expression `json:"expression"`
}

func (s *ExpressionService) authorize(examID string, authorID uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	if exam.AuthorID != authorID {
		return nil, util.ErrPermissionDenied
	}
	return exam, nil
}

// Create 持久化一条从未保存过的表达式。
// 服务端 id 形如 <客户端短ID>-<后缀>，客户端靠这个前缀做确认匹配。
func (s *ExpressionService) Create(examID, localID string, authorID uint, req ExpressionRequest) (*ExpressionListResult, error) {
	if _, err := s.authorize(examID, authorID); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		monitoring.ExpressionSaves.WithLabelValues("create", "invalid").Inc()
		return nil, err
	}

	position, err := s.Repo.NextPosition(examID)
	if err != nil {
		return nil, err
	}

	expr := &model.Expression{
		ID:        localID + "-" + util.LocalID(),
		ExamID:    examID,
		Label:     req.Label,
		Variable:  req.Variable,
		Operator:  req.Operator,
		Value:     req.Value,
		Reference: req.Reference,
		Position:  position,
	}

	if err := s.Repo.Create(expr); err != nil {
		monitoring.ExpressionSaves.WithLabelValues("create", "error").Inc()
		return nil, err
	}
	monitoring.ExpressionSaves.WithLabelValues("create", "ok").Inc()

	all, err := s.Repo.ListByExam(examID)
	if err != nil {
		return nil, err
	}
	return &ExpressionListResult{ID: examID, Expression: all}, nil
}

func (s *ExpressionService) Update(examID, id string, authorID uint, req ExpressionRequest) (*model.Expression, error) {
	if _, err := s.authorize(examID, authorID); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		monitoring.ExpressionSaves.WithLabelValues("update", "invalid").Inc()
		return nil, err
	}

	expr, err := s.Repo.FindByID(examID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExpressionNotFound
		}
		return nil, err
	}

	expr.Label = req.Label
	expr.Variable = req.Variable
	expr.Operator = req.Operator
	expr.Value = req.Value
	expr.Reference = req.Reference

	if err := s.Repo.Update(expr); err != nil {
		monitoring.ExpressionSaves.WithLabelValues("update", "error").Inc()
		return nil, err
	}
	monitoring.ExpressionSaves.WithLabelValues("update", "ok").Inc()
	return expr, nil
}

func (s *ExpressionService) Delete(examID, id string, authorID uint) (*ExpressionListResult, error) {
	if _, err := s.authorize(examID, authorID); err != nil {
		return nil, err
	}

	if err := s.Repo.Delete(examID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExpressionNotFound
		}
		return nil, err
	}

	remaining, err := s.Repo.ListByExam(examID)
	if err != nil {
		return nil, err
	}
	return &ExpressionListResult{ID: examID, Expression: remaining}, nil
}
