package examclient

import (
	"context"
	"exam_studio_backend/internal/model"
	"exam_studio_backend/internal/util"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// State 记录的持久化状态。显式标签取代了旧前端按 id 长度判断的约定。
type State int

const (
	StateDraft State = iota
	StateSaving
	StatePersisted
)

// Record 集合中的一条表达式
type Record struct {
	ID        string
	State     State
	Label     string
	Variable  string
	Operator  model.Operator
	Value     model.Value
	Reference string
}

// Patch 局部更新。RawValue 是编辑框文本，按既有值类型解析后写入。
type Patch struct {
	Label     *string
	Variable  *string
	Reference *string
	Operator  *model.Operator
	Value     *model.Value
	RawValue  *string
}

// Collection 一张试卷的表达式集合，编辑即时生效（乐观更新），
// 显式 Save 才会联网。同一条记录的网络操作串行执行。
type Collection struct {
	examID   string
	remote   RemoteStore
	notify   Notifier
	msgs     Messages
	validate *validator.Validate

	mu      sync.Mutex
	records []*Record
	inUse   map[string]bool
	pending map[string]*sync.Mutex
}

func NewCollection(examID string, remote RemoteStore, notify Notifier, msgs Messages) *Collection {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Collection{
		examID:   examID,
		remote:   remote,
		notify:   notify,
		msgs:     msgs,
		validate: validator.New(),
		inUse:    make(map[string]bool),
		pending:  make(map[string]*sync.Mutex),
	}
}

// Seed 用服务端已有的记录初始化集合，全部标记为 Persisted
func (c *Collection) Seed(exprs []model.Expression) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range exprs {
		rec := &Record{
			ID:        e.ID,
			State:     StatePersisted,
			Label:     e.Label,
			Variable:  e.Variable,
			Operator:  e.Operator,
			Value:     e.Value,
			Reference: e.Reference,
		}
		c.records = append(c.records, rec)
		c.inUse[e.ID] = true
	}
}

// Add 追加一条草稿：新本地 ID、默认 EQ、空字段。不联网。
func (c *Collection) Add() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := util.LocalID()
	for c.inUse[id] {
		id = util.LocalID()
	}

	c.records = append(c.records, &Record{
		ID:       id,
		State:    StateDraft,
		Operator: model.OperatorEQ,
		Value:    model.StringValue(""),
	})
	c.inUse[id] = true
	return id
}

// Update 本地合并，不改变持久化状态，不联网
func (c *Collection) Update(id string, patch Patch) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := c.find(id)
	if rec == nil {
		return false
	}

	if patch.Label != nil {
		rec.Label = *patch.Label
	}
	if patch.Variable != nil {
		rec.Variable = *patch.Variable
	}
	if patch.Reference != nil {
		rec.Reference = *patch.Reference
	}
	if patch.Operator != nil {
		rec.Operator = *patch.Operator
	}
	if patch.Value != nil {
		rec.Value = *patch.Value
	}
	if patch.RawValue != nil {
		rec.Value = model.ParseValue(*patch.RawValue, rec.Value)
	}
	return true
}

// Remove 先删本地（乐观），草稿到此为止；已持久化的记录再发远端删除。
// 远端删除失败只上报，不把记录塞回来。
func (c *Collection) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	rec := c.find(id)
	if rec == nil {
		c.mu.Unlock()
		return ErrRecordNotFound
	}
	persisted := rec.State == StatePersisted
	c.drop(id)
	c.mu.Unlock()

	if !persisted {
		return nil
	}

	if err := c.remote.DeleteExpression(ctx, c.examID, id); err != nil {
		c.notify.Error(err.Error())
		return err
	}

	c.notify.Success(c.msgs.RemoveSuccess)
	return nil
}

// Save 校验通过后按持久化状态选择创建或更新。
// 创建成功时用响应里以本地 ID 为前缀的记录替换本地 ID。
func (c *Collection) Save(ctx context.Context, id string) error {
	c.mu.Lock()
	rec := c.find(id)
	if rec == nil {
		c.mu.Unlock()
		return ErrRecordNotFound
	}
	c.mu.Unlock()

	// 同一条记录的操作串行化，后到的保存等前一个结束
	lock := c.recordLock(id)
	lock.Lock()
	defer lock.Unlock()

	c.mu.Lock()
	rec = c.find(id)
	if rec == nil {
		c.mu.Unlock()
		return ErrRecordNotFound
	}
	payload := ExpressionPayload{
		ID:        rec.ID,
		Label:     rec.Label,
		Variable:  rec.Variable,
		Operator:  string(rec.Operator),
		Value:     rec.Value,
		Reference: rec.Reference,
	}
	prevState := rec.State
	c.mu.Unlock()

	if err := c.validatePayload(payload); err != nil {
		c.notify.Error(err.Error())
		return err
	}

	c.setState(id, StateSaving)

	if prevState == StatePersisted {
		if err := c.remote.UpdateExpression(ctx, c.examID, id, payload); err != nil {
			c.setState(id, StatePersisted)
			c.notify.Error(err.Error())
			return err
		}
		c.setState(id, StatePersisted)
		c.notify.Success(c.msgs.SaveSuccess)
		return nil
	}

	created, err := c.remote.CreateExpression(ctx, c.examID, id, payload)
	if err != nil {
		c.setState(id, StateDraft)
		c.notify.Error(err.Error())
		return err
	}

	for _, e := range created {
		if strings.HasPrefix(e.ID, id) {
			c.mu.Lock()
			if rec := c.find(id); rec != nil {
				delete(c.inUse, rec.ID)
				rec.ID = e.ID
				rec.State = StatePersisted
				c.inUse[e.ID] = true
			}
			c.mu.Unlock()
			c.notify.Success(c.msgs.SaveSuccess)
			return nil
		}
	}

	// 请求成功但没有匹配记录，本地 ID 不动，记录还停在草稿
	c.setState(id, StateDraft)
	c.notify.Error(c.msgs.SaveError)
	return ErrReconciliation
}

// Records 当前集合的快照，保持插入顺序
func (c *Collection) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Record, len(c.records))
	for i, r := range c.records {
		out[i] = *r
	}
	return out
}

func (c *Collection) Get(id string) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rec := c.find(id); rec != nil {
		return *rec, true
	}
	return Record{}, false
}

func (c *Collection) find(id string) *Record {
	for _, r := range c.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (c *Collection) drop(id string) {
	for i, r := range c.records {
		if r.ID == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			delete(c.inUse, id)
			return
		}
	}
}

func (c *Collection) setState(id string, s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rec := c.find(id); rec != nil {
		rec.State = s
	}
}

func (c *Collection) recordLock(id string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.pending[id]; ok {
		return l
	}
	l := &sync.Mutex{}
	c.pending[id] = l
	return l
}

// expressionSchema 保存前的校验结构，value 以字符串形式参与校验
type expressionSchema struct {
	ID       string `validate:"min=3"`
	Label    string `validate:"min=1"`
	Variable string `validate:"min=1"`
	Operator string `validate:"oneof=EQ NE LT GT LTE GTE"`
	Value    string `validate:"min=1"`
}

// validatePayload 汇总全部违规字段，拼成一条消息
func (c *Collection) validatePayload(p ExpressionPayload) error {
	value := model.DisplayValue(p.Value)
	if p.Value.Kind == model.ValueNumber && math.IsNaN(p.Value.Num) {
		// 数字解析失败留下的 NaN 在这里拦截
		value = ""
	}

	schema := expressionSchema{
		ID:       p.ID,
		Label:    p.Label,
		Variable: p.Variable,
		Operator: p.Operator,
		Value:    value,
	}

	err := c.validate.Struct(schema)
	if err == nil {
		return nil
	}

	fieldMessage := map[string]string{
		"ID":       c.msgs.ValidID,
		"Label":    c.msgs.ValidLabel,
		"Variable": c.msgs.ValidVariable,
		"Operator": c.msgs.ValidOperator,
		"Value":    c.msgs.ValidValue,
	}

	var parts []string
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			if msg, ok := fieldMessage[fe.Field()]; ok {
				parts = append(parts, msg)
			} else {
				parts = append(parts, fe.Error())
			}
		}
	} else {
		parts = append(parts, err.Error())
	}

	return &ValidationError{Message: strings.Join(parts, ". ")}
}
