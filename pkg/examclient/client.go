package examclient

import (
	"bytes"
	"context"
	"encoding/json"
	"exam_studio_backend/internal/model"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ExpressionPayload 保存请求的表达式字段
type ExpressionPayload struct {
	ID        string      `json:"id"`
	Label     string      `json:"label"`
	Reference string      `json:"reference"`
	Variable  string      `json:"variable"`
	Operator  string      `json:"operator"`
	Value     model.Value `json:"value"`
}

// RemoteStore 远端持久化边界。创建返回表达式全量列表，
// 调用方按 id 前缀定位自己那条。
type RemoteStore interface {
	CreateExpression(ctx context.Context, examID, localID string, payload ExpressionPayload) ([]model.Expression, error)
	UpdateExpression(ctx context.Context, examID, id string, payload ExpressionPayload) error
	DeleteExpression(ctx context.Context, examID, id string) error
}

// Client RemoteStore 的 HTTP 实现。
// 默认不设超时，和页面内 fetch 的行为一致；需要超时就传带超时的 http.Client。
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{},
	}
}

type expressionEnvelope struct {
	Data struct {
		ID         string             `json:"id"`
		Expression []model.Expression `json:"expression"`
	} `json:"data"`
}

func (c *Client) CreateExpression(ctx context.Context, examID, localID string, payload ExpressionPayload) ([]model.Expression, error) {
	var envelope expressionEnvelope
	path := fmt.Sprintf("/api/exams/%s/expression/%s", examID, localID)
	if err := c.do(ctx, http.MethodPost, path, payload, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Expression, nil
}

func (c *Client) UpdateExpression(ctx context.Context, examID, id string, payload ExpressionPayload) error {
	path := fmt.Sprintf("/api/exams/%s/expression/%s", examID, id)
	return c.do(ctx, http.MethodPut, path, payload, nil)
}

func (c *Client) DeleteExpression(ctx context.Context, examID, id string) error {
	path := fmt.Sprintf("/api/exams/%s/expression/%s", examID, id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// CreateExamInput 建卷表单字段
type CreateExamInput struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Instructions string `json:"instructions"`
	Description  string `json:"description"`
	Year         int    `json:"year,omitempty"`
	Public       bool   `json:"public"`
}

// CreateExam 建卷，返回新试卷 ID
func (c *Client) CreateExam(ctx context.Context, input CreateExamInput) (string, error) {
	var out struct {
		ID string `json:"_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/exams", input, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// ExamPropertiesInput 属性更新字段，nil 表示不改
type ExamPropertiesInput struct {
	Title        *string `json:"title,omitempty"`
	Subtitle     *string `json:"subtitle,omitempty"`
	Instructions *string `json:"instructions,omitempty"`
	Description  *string `json:"description,omitempty"`
	Year         *int    `json:"year,omitempty"`
	Public       *bool   `json:"public,omitempty"`
}

// UpdateExamProperties 更新试卷属性子集
func (c *Client) UpdateExamProperties(ctx context.Context, examID string, input ExamPropertiesInput) error {
	return c.do(ctx, http.MethodPut, "/api/exams/"+examID, input, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &RemoteError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RemoteError{Status: resp.StatusCode, Message: extractError(raw)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &RemoteError{Status: resp.StatusCode, Message: err.Error()}
		}
	}
	return nil
}

// extractError 依次尝试 {error} 结构、原始文本，最后留给状态码兜底
func extractError(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}
