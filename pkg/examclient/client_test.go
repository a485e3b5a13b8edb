package examclient

import (
	"context"
	"encoding/json"
	"exam_studio_backend/internal/model"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCreateExpression(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var payload ExpressionPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"id": "exam-1",
				"expression": []map[string]interface{}{
					{
						"id":       payload.ID + "-xyz1234",
						"label":    payload.Label,
						"variable": payload.Variable,
						"operator": payload.Operator,
						"value":    payload.Value,
					},
				},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token-123")
	exprs, err := c.CreateExpression(context.Background(), "exam-1", "abc1234", ExpressionPayload{
		ID:       "abc1234",
		Label:    "l",
		Variable: "v",
		Operator: "EQ",
		Value:    model.NumberValue(5),
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/exams/exam-1/expression/abc1234", gotPath)
	assert.Equal(t, "Bearer token-123", gotAuth)
	require.Len(t, exprs, 1)
	assert.Equal(t, "abc1234-xyz1234", exprs[0].ID)
	assert.Equal(t, model.NumberValue(5), exprs[0].Value)
}

func TestClientUpdateUsesPut(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":{"id":"exam-1"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.UpdateExpression(context.Background(), "exam-1", "abc1234-xyz1234", ExpressionPayload{ID: "abc1234-xyz1234"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/exams/exam-1/expression/abc1234-xyz1234", gotPath)
}

func TestClientExtractsErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"Permission denied"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t")
	err := c.DeleteExpression(context.Background(), "exam-1", "abc1234-xyz1234")

	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusForbidden, rerr.Status)
	assert.Equal(t, "Permission denied", rerr.Message)
}

func TestClientCreateExam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/exams", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"b1946ac9-2a3b-4d5e-8f6a-7b8c9d0e1f2a"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t")
	id, err := c.CreateExam(context.Background(), CreateExamInput{
		Title:        "Final",
		Subtitle:     "Math",
		Instructions: "Answer everything",
		Description:  "End of year",
	})
	require.NoError(t, err)
	assert.Equal(t, "b1946ac9-2a3b-4d5e-8f6a-7b8c9d0e1f2a", id)
}
