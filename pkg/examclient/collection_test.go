package examclient

import (
	"context"
	"errors"
	"exam_studio_backend/internal/model"
	"exam_studio_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRemote 记录调用并按配置返回
type stubRemote struct {
	creates    int
	updates    int
	deletes    int
	createErr  error
	updateErr  error
	deleteErr  error
	createResp func(localID string, payload ExpressionPayload) []model.Expression
}

func (s *stubRemote) CreateExpression(ctx context.Context, examID, localID string, payload ExpressionPayload) ([]model.Expression, error) {
	s.creates++
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.createResp != nil {
		return s.createResp(localID, payload), nil
	}
	// 默认模拟服务端：本地 ID 拼上服务端后缀
	return []model.Expression{{
		ID:        localID + "-" + "001abcd",
		Label:     payload.Label,
		Variable:  payload.Variable,
		Operator:  model.Operator(payload.Operator),
		Value:     payload.Value,
		Reference: payload.Reference,
	}}, nil
}

func (s *stubRemote) UpdateExpression(ctx context.Context, examID, id string, payload ExpressionPayload) error {
	s.updates++
	return s.updateErr
}

func (s *stubRemote) DeleteExpression(ctx context.Context, examID, id string) error {
	s.deletes++
	return s.deleteErr
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func newTestCollection(remote RemoteStore) (*Collection, *recordingNotifier) {
	notify := &recordingNotifier{}
	return NewCollection("exam-1", remote, notify, DefaultMessages()), notify
}

func validPatch() Patch {
	label := "Score check"
	variable := "score"
	raw := "10"
	return Patch{Label: &label, Variable: &variable, RawValue: &raw}
}

func TestAddCreatesDraft(t *testing.T) {
	c, _ := newTestCollection(&stubRemote{})

	id := c.Add()
	require.Len(t, id, util.LocalIDLength)

	rec, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateDraft, rec.State)
	assert.Equal(t, model.OperatorEQ, rec.Operator)
	assert.Equal(t, model.StringValue(""), rec.Value)
}

func TestAddIDsAreUnique(t *testing.T) {
	c, _ := newTestCollection(&stubRemote{})
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := c.Add()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, c.Records(), 50)
}

func TestSaveValidationCollectsAllViolations(t *testing.T) {
	remote := &stubRemote{}
	c, notify := newTestCollection(remote)

	// 全空草稿：label、variable、value 一起违规
	id := c.Add()
	err := c.Save(context.Background(), id)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	msgs := DefaultMessages()
	assert.Contains(t, verr.Message, msgs.ValidLabel)
	assert.Contains(t, verr.Message, msgs.ValidVariable)
	assert.Contains(t, verr.Message, msgs.ValidValue)
	assert.NotContains(t, verr.Message, msgs.ValidID)
	assert.NotContains(t, verr.Message, msgs.ValidOperator)

	// 校验不过不发请求，状态不变
	assert.Zero(t, remote.creates)
	assert.Zero(t, remote.updates)
	rec, _ := c.Get(id)
	assert.Equal(t, StateDraft, rec.State)
	assert.NotEmpty(t, notify.errors)
}

func TestSaveValidationRejectsNaN(t *testing.T) {
	remote := &stubRemote{}
	c, _ := newTestCollection(remote)

	id := c.Add()
	c.Update(id, validPatch())

	// 把值切成数字类型再输入垃圾文本
	num := model.NumberValue(1)
	c.Update(id, Patch{Value: &num})
	bad := "abc"
	c.Update(id, Patch{RawValue: &bad})

	err := c.Save(context.Background(), id)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, DefaultMessages().ValidValue)
	assert.Zero(t, remote.creates)
}

func TestRemoveDraftIsLocalOnly(t *testing.T) {
	remote := &stubRemote{}
	c, _ := newTestCollection(remote)

	id := c.Add()
	require.NoError(t, c.Remove(context.Background(), id))

	_, ok := c.Get(id)
	assert.False(t, ok)
	assert.Zero(t, remote.deletes)
}

func TestRemovePersistedCallsRemote(t *testing.T) {
	remote := &stubRemote{}
	c, notify := newTestCollection(remote)
	c.Seed([]model.Expression{{ID: "abc1234-001abcd", Label: "l", Variable: "v", Operator: model.OperatorEQ, Value: model.StringValue("x")}})

	require.NoError(t, c.Remove(context.Background(), "abc1234-001abcd"))
	assert.Equal(t, 1, remote.deletes)
	assert.Contains(t, notify.successes, DefaultMessages().RemoveSuccess)
}

func TestRemovePersistedKeepsLocalRemovalOnFailure(t *testing.T) {
	remote := &stubRemote{deleteErr: errors.New("boom")}
	c, notify := newTestCollection(remote)
	c.Seed([]model.Expression{{ID: "abc1234-001abcd", Operator: model.OperatorEQ, Value: model.StringValue("x")}})

	err := c.Remove(context.Background(), "abc1234-001abcd")
	require.Error(t, err)

	// 远端失败不回滚，本地已经删掉
	_, ok := c.Get("abc1234-001abcd")
	assert.False(t, ok)
	assert.NotEmpty(t, notify.errors)
}

func TestSaveCreateReconcilesID(t *testing.T) {
	remote := &stubRemote{}
	c, notify := newTestCollection(remote)

	id := c.Add()
	c.Update(id, validPatch())

	require.NoError(t, c.Save(context.Background(), id))
	assert.Equal(t, 1, remote.creates)
	assert.Zero(t, remote.updates)

	// 本地 ID 被替换为服务端 ID（本地 ID 为前缀）
	_, ok := c.Get(id)
	assert.False(t, ok)
	rec, ok := c.Get(id + "-001abcd")
	require.True(t, ok)
	assert.Equal(t, StatePersisted, rec.State)
	assert.Contains(t, notify.successes, DefaultMessages().SaveSuccess)
}

func TestSaveCreateReconciliationMiss(t *testing.T) {
	remote := &stubRemote{
		createResp: func(localID string, payload ExpressionPayload) []model.Expression {
			return []model.Expression{{ID: "zzz9999-unrelated"}}
		},
	}
	c, notify := newTestCollection(remote)

	id := c.Add()
	c.Update(id, validPatch())

	err := c.Save(context.Background(), id)
	require.ErrorIs(t, err, ErrReconciliation)

	// 响应里找不到自己，本地 ID 不动，还是草稿
	rec, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateDraft, rec.State)
	assert.Contains(t, notify.errors, DefaultMessages().SaveError)
}

func TestSavePersistedUsesUpdate(t *testing.T) {
	remote := &stubRemote{}
	c, _ := newTestCollection(remote)

	id := c.Add()
	c.Update(id, validPatch())
	require.NoError(t, c.Save(context.Background(), id))

	serverID := id + "-001abcd"
	newLabel := "Renamed"
	c.Update(serverID, Patch{Label: &newLabel})
	require.NoError(t, c.Save(context.Background(), serverID))

	assert.Equal(t, 1, remote.creates)
	assert.Equal(t, 1, remote.updates)
	rec, _ := c.Get(serverID)
	assert.Equal(t, StatePersisted, rec.State)
	assert.Equal(t, "Renamed", rec.Label)
}

func TestSaveCreateFailureBackToDraft(t *testing.T) {
	remote := &stubRemote{createErr: &RemoteError{Status: 500, Message: "server error"}}
	c, notify := newTestCollection(remote)

	id := c.Add()
	c.Update(id, validPatch())

	err := c.Save(context.Background(), id)
	require.Error(t, err)

	rec, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateDraft, rec.State)
	assert.Contains(t, notify.errors, "server error")
}

func TestUpdateRawValueKeepsKind(t *testing.T) {
	c, _ := newTestCollection(&stubRemote{})

	id := c.Add()
	raw := "42"
	c.Update(id, Patch{RawValue: &raw})

	// 初始值是字符串类型，输入数字文本仍是字符串
	rec, _ := c.Get(id)
	assert.Equal(t, model.StringValue("42"), rec.Value)

	num := model.NumberValue(0)
	c.Update(id, Patch{Value: &num})
	c.Update(id, Patch{RawValue: &raw})
	rec, _ = c.Get(id)
	assert.Equal(t, model.NumberValue(42), rec.Value)
}

func TestSeedMarksPersisted(t *testing.T) {
	c, _ := newTestCollection(&stubRemote{})
	c.Seed([]model.Expression{
		{ID: "aaa0001-x", Operator: model.OperatorGT, Value: model.NumberValue(3)},
		{ID: "bbb0002-y", Operator: model.OperatorEQ, Value: model.BoolValue(true)},
	})

	recs := c.Records()
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, StatePersisted, r.State)
	}
	assert.Equal(t, "aaa0001-x", recs[0].ID)
}

func TestRemoveUnknownRecord(t *testing.T) {
	c, _ := newTestCollection(&stubRemote{})
	assert.ErrorIs(t, c.Remove(context.Background(), "missing"), ErrRecordNotFound)
	assert.ErrorIs(t, c.Save(context.Background(), "missing"), ErrRecordNotFound)
}
