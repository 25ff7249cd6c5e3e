package domain

// HabitCategory is one entry of the fixed reference list seeded by the
// migrations. It is globally readable and not user-owned.
type HabitCategory struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type CategoryRepository interface {
	FindAll() ([]HabitCategory, error)
	DoesCategoryExistByID(categoryID int) (bool, error)
}
