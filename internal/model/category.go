package model

// Category identifies one quiz topic. The name is unique; MySQL's default
// case-insensitive collation makes the index cover case variants too.
type Category struct {
	BaseModel
	Name        string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string         `gorm:"size:500" json:"description"`
	Scale       *CategoryScale `gorm:"foreignKey:CategoryID" json:"scale,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// DefaultScaleMarks is the denominator used when a category is created
// without an explicit scale.
const DefaultScaleMarks = 50

// CategoryScale is the one authoritative marks scale per category, created in
// the same transaction as the category.
type CategoryScale struct {
	BaseModel
	CategoryID uint `gorm:"uniqueIndex;not null" json:"categoryId"`
	TotalMarks int  `gorm:"not null;default:50" json:"totalMarks"`
}

func (CategoryScale) TableName() string {
	return "category_scales"
}
