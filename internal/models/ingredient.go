package models

// Ingredient is reference data loaded in bulk from a CSV fixture.
// An ingredient is identified by its (name, measure unit) pair; the bulk
// loader skips rows that already exist.
type Ingredient struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;uniqueIndex:idx_ingredient_identity" json:"name"`
	MeasureUnit string `gorm:"not null;uniqueIndex:idx_ingredient_identity" json:"measure_unit"`
}

// TableName specifies the table name for GORM
func (Ingredient) TableName() string {
	return "ingredients"
}
