package model

// AnswerType 题目作答形式
type AnswerType string

const (
	AnswerRadio    AnswerType = "RADIO"
	AnswerCheckbox AnswerType = "CHECKBOX"
	AnswerText     AnswerType = "TEXT"
)

func (a AnswerType) Valid() bool {
	switch a {
	case AnswerRadio, AnswerCheckbox, AnswerText:
		return true
	}
	return false
}

// swagger:model Question
type Question struct {
	ID         string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ExamID     string         `gorm:"index;type:varchar(36)" json:"-"`
	Text       string         `gorm:"type:text;not null" json:"text"`
	Answer     AnswerType     `gorm:"size:20;not null;default:'RADIO'" json:"answer"`
	Reference  string         `gorm:"size:255" json:"reference,omitempty"`
	Expression Expression     `gorm:"foreignKey:QuestionID;references:ID" json:"expression"`
	Answers    []AnswerOption `gorm:"foreignKey:QuestionID;references:ID" json:"answers"`
	Position   int            `gorm:"default:0" json:"-"`
}

func (Question) TableName() string {
	return "exam_questions"
}

// AnswerOption 题目的备选项
type AnswerOption struct {
	ID         string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	QuestionID string `gorm:"index;type:varchar(64)" json:"-"`
	Value      string `gorm:"size:255;not null" json:"value"`
	Content    string `gorm:"type:text" json:"content"`
	Position   int    `gorm:"default:0" json:"-"`
}

func (AnswerOption) TableName() string {
	return "exam_answer_options"
}
