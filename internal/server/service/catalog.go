package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/models"
)

type CatalogService struct {
	DB *gorm.DB
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.Order("reference").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) SaveProduct(ctx context.Context, p *models.Product) error {
	if p.Reference == "" {
		return fmt.Errorf("%w: reference required", ErrValidation)
	}
	var count int64
	q := s.DB.Model(&models.Product{}).Where("reference = ?", p.Reference)
	if p.ID != 0 {
		q = q.Where("id <> ?", p.ID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: product reference %s already exists", ErrConflict, p.Reference)
	}
	return s.DB.Save(p).Error
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	res := s.DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return nil
}

func (s *CatalogService) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := s.DB.Order("last_name").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *CatalogService) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	var client models.Client
	err := s.DB.First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: client %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *CatalogService) SaveClient(ctx context.Context, c *models.Client) error {
	if c.FirstName == "" && c.LastName == "" {
		return fmt.Errorf("%w: client needs a name", ErrValidation)
	}
	return s.DB.Save(c).Error
}

func (s *CatalogService) DeleteClient(ctx context.Context, id int64) error {
	res := s.DB.Delete(&models.Client{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: client %d", ErrNotFound, id)
	}
	return nil
}
