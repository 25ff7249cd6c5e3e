package infrastructure

import (
	"database/sql"

	"github.com/adomanski/TrackKit/internal/habit/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindAll() ([]domain.HabitCategory, error) {
	rows, err := r.db.Query(`SELECT id, name, icon, color FROM habit_categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.HabitCategory
	for rows.Next() {
		var category domain.HabitCategory
		if err := rows.Scan(&category.ID, &category.Name, &category.Icon, &category.Color); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) DoesCategoryExistByID(categoryID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM habit_categories WHERE id = $1)`, categoryID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
