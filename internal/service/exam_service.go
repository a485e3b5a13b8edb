package service

import (
	"context"
	"encoding/json"
	"errors"
	"exam_studio_backend/internal/model"
	"exam_studio_backend/internal/repository"
	"exam_studio_backend/internal/util"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const examListCacheTTL = 60 * time.Second

type ExamService struct {
	Repo  *repository.ExamRepository
	Redis *redis.Client
}

func NewExamService(repo *repository.ExamRepository, rdb *redis.Client) *ExamService {
	return &ExamService{Repo: repo, Redis: rdb}
}

type CreateExamRequest struct {
	Title        string              `json:"title"`
	Subtitle     string              `json:"subtitle"`
	Instructions string              `json:"instructions"`
	Description  string              `json:"description"`
	Year         int                 `json:"year"`
	Public       bool                `json:"public"`
	Expression   []ExpressionRequest `json:"expression"`
	Questions    []QuestionRequest   `json:"questions"`
}

type UpdateExamPropertiesRequest struct {
	Title        *string `json:"title"`
	Subtitle     *string `json:"subtitle"`
	Instructions *string `json:"instructions"`
	Description  *string `json:"description"`
	Year         *int    `json:"year"`
	Public       *bool   `json:"public"`
}

// ExamProperties 属性更新后的返回子集
type ExamProperties struct {
	ID           string `json:"_id"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Instructions string `json:"instructions"`
	Description  string `json:"description"`
	Year         int    `json:"year"`
	Public       bool   `json:"public"`
}

func examListCacheKey(authorID uint) string {
	return fmt.Sprintf("exams:list:%d", authorID)
}

func (s *ExamService) invalidateListCache(ctx context.Context, authorID uint) {
	if s.Redis != nil {
		s.Redis.Del(ctx, examListCacheKey(authorID))
	}
}

// Create 建卷。创建表单只提交属性，表达式/题目通常为空，但接受初始内容。
func (s *ExamService) Create(ctx context.Context, authorID uint, req CreateExamRequest) (*model.Exam, error) {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Subtitle) == "" ||
		strings.TrimSpace(req.Instructions) == "" ||
		strings.TrimSpace(req.Description) == "" {
		return nil, util.ErrFieldsRequired
	}

	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	exam := &model.Exam{
		Title:        strings.TrimSpace(req.Title),
		Subtitle:     strings.TrimSpace(req.Subtitle),
		Instructions: strings.TrimSpace(req.Instructions),
		Description:  strings.TrimSpace(req.Description),
		Year:         year,
		Public:       req.Public,
		AuthorID:     authorID,
	}

	for i, e := range req.Expression {
		exam.Expressions = append(exam.Expressions, model.Expression{
			ID:        e.ID + "-" + util.LocalID(),
			Label:     e.Label,
			Variable:  e.Variable,
			Operator:  e.Operator,
			Value:     e.Value,
			Reference: e.Reference,
			Position:  i,
		})
	}

	for i, q := range req.Questions {
		exam.Questions = append(exam.Questions, buildQuestion(q, i))
	}

	if err := s.Repo.Create(exam); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx, authorID)
	return exam, nil
}

func (s *ExamService) Get(id string) (*model.Exam, error) {
	exam, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

// List 带 Redis 短缓存的试卷列表
func (s *ExamService) List(ctx context.Context, authorID uint) ([]model.Exam, error) {
	key := examListCacheKey(authorID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var exams []model.Exam
			if jsonErr := json.Unmarshal([]byte(cached), &exams); jsonErr == nil {
				return exams, nil
			}
		}
	}

	exams, err := s.Repo.List(authorID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, jsonErr := json.Marshal(exams); jsonErr == nil {
			s.Redis.Set(ctx, key, payload, examListCacheTTL)
		}
	}

	return exams, nil
}

func (s *ExamService) UpdateProperties(ctx context.Context, id string, authorID uint, req UpdateExamPropertiesRequest) (*ExamProperties, error) {
	exam, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if exam.AuthorID != authorID {
		return nil, util.ErrPermissionDenied
	}

	props := map[string]interface{}{}
	if req.Title != nil {
		props["title"] = *req.Title
	}
	if req.Subtitle != nil {
		props["subtitle"] = *req.Subtitle
	}
	if req.Instructions != nil {
		props["instructions"] = *req.Instructions
	}
	if req.Description != nil {
		props["description"] = *req.Description
	}
	if req.Year != nil {
		props["year"] = *req.Year
	}
	if req.Public != nil {
		props["public"] = *req.Public
	}

	if len(props) > 0 {
		if err := s.Repo.UpdateProperties(id, props); err != nil {
			return nil, err
		}
	}

	updated, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx, authorID)

	return &ExamProperties{
		ID:           updated.ID,
		Title:        updated.Title,
		Subtitle:     updated.Subtitle,
		Instructions: updated.Instructions,
		Description:  updated.Description,
		Year:         updated.Year,
		Public:       updated.Public,
	}, nil
}

func (s *ExamService) Delete(ctx context.Context, id string, authorID uint) error {
	exam, err := s.Get(id)
	if err != nil {
		return err
	}
	if exam.AuthorID != authorID {
		return util.ErrPermissionDenied
	}

	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidateListCache(ctx, authorID)
	return nil
}

// ForceDelete 管理端删除，不校验归属
func (s *ExamService) ForceDelete(ctx context.Context, id string) error {
	exam, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidateListCache(ctx, exam.AuthorID)
	return nil
}
