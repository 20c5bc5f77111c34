package domain

// Category is a menu tab. DisplayOrder drives the tab ordering in the POS grid.
type Category struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"uniqueIndex;not null"`
	DisplayOrder int    `json:"display_order" gorm:"not null;default:0"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}
