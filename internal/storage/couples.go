package storage

import (
	"errors"
	"log"
	"time"

	"duetchat/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// pairCodeTTL bounds how long a generated pairing code stays redeemable.
const pairCodeTTL = 24 * time.Hour

func (s *Service) GetCoupleByID(id string) (*models.Couple, error) {
	var couple models.Couple
	err := s.DB.Preload("Users").Preload("Theme").
		Where("id = ?", id).
		First(&couple).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get couple %s: %v", id, err)
		return nil, err
	}
	return &couple, nil
}

// CreateCoupleFor creates the couple row and attaches both members in one
// transaction, so a crash cannot leave a half-paired couple behind.
func (s *Service) CreateCoupleFor(userAID, userBID string) (*models.Couple, error) {
	couple := &models.Couple{}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(couple).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id IN ?", []string{userAID, userBID}).
			Update("couple_id", couple.ID).Error
	})
	if err != nil {
		log.Printf("ERROR: Failed to create couple for %s and %s: %v", userAID, userBID, err)
		return nil, err
	}
	return couple, nil
}

func (s *Service) SetCoupleTheme(coupleID string, themeID uint) error {
	return s.DB.Model(&models.Couple{}).
		Where("id = ?", coupleID).
		Update("theme_id", themeID).Error
}

// SavePairCode stores a pairing code in Redis with a TTL, keyed so a partner
// can redeem it once.
func (s *Service) SavePairCode(code, userID string) error {
	return s.Redis.Set(s.Ctx, "paircode:"+code, userID, pairCodeTTL).Err()
}

// LookupPairCode returns the user who generated the code, or "" if the code is
// unknown or expired.
func (s *Service) LookupPairCode(code string) (string, error) {
	userID, err := s.Redis.Get(s.Ctx, "paircode:"+code).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *Service) DeletePairCode(code string) error {
	return s.Redis.Del(s.Ctx, "paircode:"+code).Err()
}

func (s *Service) ListThemeTemplates() ([]models.ThemeTemplate, error) {
	var templates []models.ThemeTemplate
	if err := s.DB.Order("id asc").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *Service) GetThemeTemplate(id uint) (*models.ThemeTemplate, error) {
	var template models.ThemeTemplate
	err := s.DB.First(&template, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}
