package model

type Question struct {
	BaseModel
	CategoryID uint     `gorm:"index;not null" json:"categoryId"`
	Text       string   `gorm:"size:500;not null" json:"question"`
	Choices    []Choice `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

type Choice struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:255;not null" json:"choice"`
	// Correct is exposed so the client can grade locally; the server only
	// receives the earned points per submission.
	Correct bool `gorm:"not null" json:"choiceStatus"`
}

func (Choice) TableName() string {
	return "choices"
}
