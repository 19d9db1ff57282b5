package models

// Tag is immutable reference data used to categorize recipes.
// Name, color and slug are each unique across the table.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:50;unique;not null" json:"name"`
	Color string `gorm:"size:7;unique;not null" json:"color"`
	Slug  string `gorm:"unique;not null" json:"slug"`
}

// TableName specifies the table name for GORM
func (Tag) TableName() string {
	return "tags"
}
