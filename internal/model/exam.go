package model

// swagger:model Exam
type Exam struct {
	UUIDBase
	Title        string       `gorm:"size:255;not null" json:"title"`
	Subtitle     string       `gorm:"size:255" json:"subtitle"`
	Instructions string       `gorm:"type:text" json:"instructions"`
	Description  string       `gorm:"type:text" json:"description"`
	Year         int          `gorm:"default:0" json:"year"`
	Public       bool         `gorm:"default:false" json:"public"`
	AuthorID     uint         `gorm:"index;type:bigint unsigned" json:"-"`
	Author       User         `gorm:"foreignKey:AuthorID" json:"author"`
	Expressions  []Expression `gorm:"foreignKey:ExamID;references:ID" json:"expression"`
	Questions    []Question   `gorm:"foreignKey:ExamID;references:ID" json:"questions"`
}

func (Exam) TableName() string {
	return "exams"
}

// Expression 试卷或题目上的条件表达式。
// ID 为服务端确认后的形式 <客户端短ID>-<后缀>；QuestionID 为空表示挂在试卷层。
type Expression struct {
	ID         string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ExamID     string `gorm:"index;type:varchar(36)" json:"-"`
	QuestionID string `gorm:"index;type:varchar(64);default:''" json:"-"`
	Label      string `gorm:"size:255;not null" json:"label"`
	Variable   string `gorm:"size:255;not null" json:"variable"`
	Operator   Operator `gorm:"size:10;not null;default:'EQ'" json:"operator"`
	Value      Value    `gorm:"type:varchar(255);serializer:json" json:"value"`
	Reference  string   `gorm:"size:255" json:"reference,omitempty"`
	Position   int      `gorm:"default:0" json:"-"`
}

func (Expression) TableName() string {
	return "exam_expressions"
}
