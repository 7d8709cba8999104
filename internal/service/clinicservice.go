package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/JavierAQR/backend-luaspets/internal/models"
)

type ClinicServiceInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents"`
	DurationMin *int    `json:"duration_min"`
	IsActive    *bool   `json:"is_active"`
}

type ClinicServiceCatalog struct {
	DB *gorm.DB
}

func (s *ClinicServiceCatalog) ListActive(ctx context.Context) ([]models.ClinicService, error) {
	var services []models.ClinicService
	err := s.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (s *ClinicServiceCatalog) GetByID(ctx context.Context, id uint) (*models.ClinicService, error) {
	var svc models.ClinicService
	if err := s.DB.WithContext(ctx).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: service not found", ErrNotFound)
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, fmt.Errorf("%w: service not found", ErrNotFound)
	}
	return &svc, nil
}

func (s *ClinicServiceCatalog) Create(ctx context.Context, in ClinicServiceInput) (*models.ClinicService, error) {
	if in.Name == nil || *in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.PriceCents == nil || *in.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}

	svc := models.ClinicService{
		Name:       *in.Name,
		PriceCents: *in.PriceCents,
		IsActive:   true,
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.DurationMin != nil {
		svc.DurationMin = *in.DurationMin
	}

	if err := s.DB.WithContext(ctx).Create(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *ClinicServiceCatalog) Update(ctx context.Context, id uint, in ClinicServiceInput) (*models.ClinicService, error) {
	var svc models.ClinicService
	if err := s.DB.WithContext(ctx).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: service not found", ErrNotFound)
		}
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		svc.Name = *in.Name
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.PriceCents != nil {
		if *in.PriceCents < 0 {
			return nil, fmt.Errorf("%w: price must be non-negative", ErrValidation)
		}
		svc.PriceCents = *in.PriceCents
	}
	if in.DurationMin != nil {
		svc.DurationMin = *in.DurationMin
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}

	if err := s.DB.WithContext(ctx).Save(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *ClinicServiceCatalog) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Delete(&models.ClinicService{}, id).Error
}
