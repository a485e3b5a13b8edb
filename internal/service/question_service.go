package service

import (
	"errors"
	"exam_studio_backend/internal/model"
	"exam_studio_backend/internal/repository"
	"exam_studio_backend/internal/util"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type QuestionService struct {
	Repo     *repository.QuestionRepository
	ExamRepo *repository.ExamRepository
}

func NewQuestionService(repo *repository.QuestionRepository, examRepo *repository.ExamRepository) *QuestionService {
	return &QuestionService{Repo: repo, ExamRepo: examRepo}
}

type AnswerOptionRequest struct {
	ID      string `json:"id"`
	Value   string `json:"value" binding:"required"`
	Content string `json:"content"`
}

// QuestionRequest 题目字段，生命周期与表达式一致（本地短 ID → 服务端前缀 ID）
type QuestionRequest struct {
	ID         string                `json:"id"`
	Text       string                `json:"text" binding:"required"`
	Answer     model.AnswerType      `json:"answer" binding:"required"`
	Reference  string                `json:"reference"`
	Expression ExpressionRequest     `json:"expression"`
	Answers    []AnswerOptionRequest `json:"answers"`
}

type QuestionListResult struct {
	ID       string           `json:"id"`
	Question []model.Question `json:"question"`
}

// buildQuestion 由请求组装持久化模型，所有嵌套 id 都打上服务端后缀
func buildQuestion(req QuestionRequest, position int) model.Question {
	id := req.ID + "-" + util.LocalID()

	q := model.Question{
		ID:        id,
		Text:      req.Text,
		Answer:    req.Answer,
		Reference: req.Reference,
		Position:  position,
		Expression: model.Expression{
			ID:         req.Expression.ID + "-" + util.LocalID(),
			QuestionID: id,
			Label:      req.Expression.Label,
			Variable:   req.Expression.Variable,
			Operator:   req.Expression.Operator,
			Value:      req.Expression.Value,
			Reference:  req.Expression.Reference,
		},
	}

	for i, a := range req.Answers {
		q.Answers = append(q.Answers, model.AnswerOption{
			ID:         a.ID + "-" + util.LocalID(),
			QuestionID: id,
			Value:      a.Value,
			Content:    a.Content,
			Position:   i,
		})
	}

	return q
}

func (s *QuestionService) authorize(examID string, authorID uint) error {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrExamNotFound
		}
		return err
	}
	if exam.AuthorID != authorID {
		return util.ErrPermissionDenied
	}
	return nil
}

func (s *QuestionService) validate(req QuestionRequest) error {
	if !req.Answer.Valid() {
		return fmt.Errorf("%w: unknown answer type %q", util.ErrValidation, string(req.Answer))
	}
	if req.Expression.Label != "" || req.Expression.Variable != "" {
		if !req.Expression.Operator.Valid() {
			return fmt.Errorf("%w: unknown operator %q", util.ErrValidation, string(req.Expression.Operator))
		}
	}
	return nil
}

func (s *QuestionService) Create(examID, localID string, authorID uint, req QuestionRequest) (*QuestionListResult, error) {
	if err := s.authorize(examID, authorID); err != nil {
		return nil, err
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	position, err := s.Repo.NextPosition(examID)
	if err != nil {
		return nil, err
	}

	req.ID = localID
	q := buildQuestion(req, position)
	q.ExamID = examID
	q.Expression.ExamID = examID

	if err := s.Repo.Create(&q); err != nil {
		return nil, err
	}

	all, err := s.Repo.ListByExam(examID)
	if err != nil {
		return nil, err
	}
	return &QuestionListResult{ID: examID, Question: all}, nil
}

func (s *QuestionService) Update(examID, id string, authorID uint, req QuestionRequest) (*model.Question, error) {
	if err := s.authorize(examID, authorID); err != nil {
		return nil, err
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	q, err := s.Repo.FindByID(examID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	q.Text = req.Text
	q.Answer = req.Answer
	q.Reference = req.Reference

	q.Expression.Label = req.Expression.Label
	q.Expression.Variable = req.Expression.Variable
	q.Expression.Operator = req.Expression.Operator
	q.Expression.Value = req.Expression.Value
	q.Expression.Reference = req.Expression.Reference
	if q.Expression.ID == "" {
		q.Expression.ID = req.Expression.ID + "-" + util.LocalID()
		q.Expression.QuestionID = q.ID
		q.Expression.ExamID = examID
	}

	q.Answers = q.Answers[:0]
	for i, a := range req.Answers {
		optionID := a.ID
		if !strings.Contains(optionID, "-") {
			// 尚未持久化过的选项，补上服务端后缀
			optionID = a.ID + "-" + util.LocalID()
		}
		q.Answers = append(q.Answers, model.AnswerOption{
			ID:         optionID,
			QuestionID: q.ID,
			Value:      a.Value,
			Content:    a.Content,
			Position:   i,
		})
	}

	if err := s.Repo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(examID, id string, authorID uint) (*QuestionListResult, error) {
	if err := s.authorize(examID, authorID); err != nil {
		return nil, err
	}

	if err := s.Repo.Delete(examID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	remaining, err := s.Repo.ListByExam(examID)
	if err != nil {
		return nil, err
	}
	return &QuestionListResult{ID: examID, Question: remaining}, nil
}
