package services

import (
	"github.com/mroshb/streetwars/internal/models"
	"github.com/mroshb/streetwars/internal/repositories"
)

// TerritoryService exposes the map. Control transfers only happen
// through war resolution and claims, both owned by WarService.
type TerritoryService struct {
	repo *repositories.TerritoryRepository
}

func NewTerritoryService(repo *repositories.TerritoryRepository) *TerritoryService {
	return &TerritoryService{repo: repo}
}

func (s *TerritoryService) ListTerritories() ([]models.Territory, error) {
	return s.repo.ListTerritories()
}

func (s *TerritoryService) GetTerritory(id uint) (*models.Territory, error) {
	return s.repo.GetTerritoryByID(id)
}
