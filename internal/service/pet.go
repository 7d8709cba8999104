package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/JavierAQR/backend-luaspets/internal/models"
)

type PetInput struct {
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed"`
	BirthDate *time.Time `json:"birth_date"`
	ImageURL  string     `json:"image_url"`
}

type PetService struct {
	DB *gorm.DB
}

func (s *PetService) Create(ctx context.Context, ownerID uint, in PetInput) (*models.Pet, error) {
	if in.Name == "" || in.Species == "" {
		return nil, fmt.Errorf("%w: name and species are required", ErrValidation)
	}

	pet := models.Pet{
		OwnerID:   ownerID,
		Name:      in.Name,
		Species:   in.Species,
		Breed:     in.Breed,
		BirthDate: in.BirthDate,
		ImageURL:  in.ImageURL,
	}
	if err := s.DB.WithContext(ctx).Create(&pet).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

func (s *PetService) ListMine(ctx context.Context, ownerID uint) ([]models.Pet, error) {
	var pets []models.Pet
	err := s.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}

// GetByID is owner-scoped; admins may read any pet.
func (s *PetService) GetByID(ctx context.Context, callerID uint, role string, petID uint) (*models.Pet, error) {
	var pet models.Pet
	if err := s.DB.WithContext(ctx).First(&pet, petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pet not found", ErrNotFound)
		}
		return nil, err
	}
	if role != models.RoleAdmin && pet.OwnerID != callerID {
		return nil, fmt.Errorf("%w: this pet does not belong to you", ErrForbidden)
	}
	return &pet, nil
}

func (s *PetService) Update(ctx context.Context, ownerID, petID uint, in PetInput) (*models.Pet, error) {
	var pet models.Pet
	if err := s.DB.WithContext(ctx).First(&pet, petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pet not found", ErrNotFound)
		}
		return nil, err
	}
	if pet.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: this pet does not belong to you", ErrForbidden)
	}

	if in.Name != "" {
		pet.Name = in.Name
	}
	if in.Species != "" {
		pet.Species = in.Species
	}
	if in.Breed != "" {
		pet.Breed = in.Breed
	}
	if in.BirthDate != nil {
		pet.BirthDate = in.BirthDate
	}
	if in.ImageURL != "" {
		pet.ImageURL = in.ImageURL
	}

	if err := s.DB.WithContext(ctx).Save(&pet).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

func (s *PetService) Delete(ctx context.Context, callerID uint, role string, petID uint) error {
	var pet models.Pet
	if err := s.DB.WithContext(ctx).First(&pet, petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: pet not found", ErrNotFound)
		}
		return err
	}
	if role != models.RoleAdmin && pet.OwnerID != callerID {
		return fmt.Errorf("%w: this pet does not belong to you", ErrForbidden)
	}
	return s.DB.WithContext(ctx).Delete(&pet).Error
}
