package application

import "github.com/adomanski/TrackKit/internal/habit/domain"

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) DoesCategoryExist(categoryID int) (bool, error) {
	return s.repo.DoesCategoryExistByID(categoryID)
}

func (s *CategoryService) GetAllCategories() ([]domain.HabitCategory, error) {
	return s.repo.FindAll()
}
