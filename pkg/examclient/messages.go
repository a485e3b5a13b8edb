package examclient

// Notifier 接收保存/删除结果的即时提示，对应页面上的 toast
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier 丢弃全部提示
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// Messages 表达式编辑的界面文案，来自词典，缺失时用英文兜底
type Messages struct {
	ValidID       string
	ValidLabel    string
	ValidVariable string
	ValidOperator string
	ValidValue    string
	SaveSuccess   string
	SaveError     string
	RemoveSuccess string
}

func DefaultMessages() Messages {
	return Messages{
		ValidID:       "Id must be at least 3 characters",
		ValidLabel:    "Label is required",
		ValidVariable: "Variable is required",
		ValidOperator: "Operator is not valid",
		ValidValue:    "Value is required",
		SaveSuccess:   "Expression saved!",
		SaveError:     "Error saving expression",
		RemoveSuccess: "Expression removed!",
	}
}

// MessagesFromDictionary 从嵌套词典取文案，逐项防御式读取
func MessagesFromDictionary(dict map[string]interface{}) Messages {
	m := DefaultMessages()
	m.ValidID = lookupString(dict, []string{"exams", "editExam", "expression", "validId"}, m.ValidID)
	m.ValidLabel = lookupString(dict, []string{"exams", "editExam", "expression", "validLabel"}, m.ValidLabel)
	m.ValidVariable = lookupString(dict, []string{"exams", "editExam", "expression", "validVariable"}, m.ValidVariable)
	m.ValidOperator = lookupString(dict, []string{"exams", "editExam", "expression", "validOperator"}, m.ValidOperator)
	m.ValidValue = lookupString(dict, []string{"exams", "editExam", "expression", "validValue"}, m.ValidValue)
	m.SaveSuccess = lookupString(dict, []string{"exams", "editExam", "expression", "saveSuccess"}, m.SaveSuccess)
	m.SaveError = lookupString(dict, []string{"exams", "editExam", "expression", "saveError"}, m.SaveError)
	m.RemoveSuccess = lookupString(dict, []string{"exams", "editExam", "expression", "removeSuccess"}, m.RemoveSuccess)
	return m
}

func lookupString(dict map[string]interface{}, path []string, fallback string) string {
	cur := dict
	for i, seg := range path {
		v, ok := cur[seg]
		if !ok {
			return fallback
		}
		if i == len(path)-1 {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
			return fallback
		}
		next, ok := v.(map[string]interface{})
		if !ok {
			return fallback
		}
		cur = next
	}
	return fallback
}
