package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"duetchat/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Store is the persistence boundary used by the gateway and the HTTP handlers.
// Lookups that miss return (nil, nil) rather than an error; callers treat a nil
// result as "not found".
type Store interface {
	// Message store
	CreateMessage(msg *models.Message) error
	TouchCouple(coupleID string, at time.Time) error
	FindMessageByID(id uint) (*models.Message, error)
	MarkMessagesRead(coupleID, excludeUserID string, upTo time.Time) (int64, error)
	GetChatHistory(coupleID string, skip, take int) ([]models.Message, error)
	GetMediaMessages(coupleID string, skip, take int) ([]models.Message, error)

	// Directory
	GetPartner(coupleID, excludeUserID string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	SaveUser(user *models.User) error

	// Couples
	GetCoupleByID(id string) (*models.Couple, error)
	CreateCoupleFor(userAID, userBID string) (*models.Couple, error)
	SetCoupleTheme(coupleID string, themeID uint) error

	// Pairing codes (ephemeral, Redis-backed)
	SavePairCode(code, userID string) error
	LookupPairCode(code string) (string, error)
	DeletePairCode(code string) error

	// Themes
	ListThemeTemplates() ([]models.ThemeTemplate, error)
	GetThemeTemplate(id uint) (*models.ThemeTemplate, error)
}

// Service implements Store on top of PostgreSQL (GORM) and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

var _ Store = (*Service)(nil)

// CreateMessage persists a new message. GORM fills ID and CreatedAt on the
// passed struct, which the gateway broadcasts afterwards.
func (s *Service) CreateMessage(msg *models.Message) error {
	if msg.Type == "" {
		msg.Type = models.MessageTypeText
	}
	if msg.Status == "" {
		msg.Status = models.MessageStatusSent
	}
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for couple %s: %v", msg.CoupleID, err)
		return err
	}
	return nil
}

// TouchCouple bumps the couple's last-activity timestamp.
func (s *Service) TouchCouple(coupleID string, at time.Time) error {
	return s.DB.Model(&models.Couple{}).
		Where("id = ?", coupleID).
		Update("last_message_at", at).Error
}

func (s *Service) FindMessageByID(id uint) (*models.Message, error) {
	var msg models.Message
	err := s.DB.First(&msg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkMessagesRead flips every not-yet-read message in the room authored by
// someone other than excludeUserID, up to and including upTo, to READ.
// Returns the number of rows changed; a repeat call changes nothing.
func (s *Service) MarkMessagesRead(coupleID, excludeUserID string, upTo time.Time) (int64, error) {
	res := s.DB.Model(&models.Message{}).
		Where("couple_id = ?", coupleID).
		Where("sender_id <> ?", excludeUserID).
		Where("status <> ?", models.MessageStatusRead).
		Where("created_at <= ?", upTo).
		Update("status", models.MessageStatusRead)
	return res.RowsAffected, res.Error
}

// GetChatHistory pages newest-first through the room's messages, then reverses
// the page so clients receive it oldest-first.
func (s *Service) GetChatHistory(coupleID string, skip, take int) ([]models.Message, error) {
	var history []models.Message
	err := s.DB.Where("couple_id = ?", coupleID).
		Order("created_at desc").
		Offset(skip).
		Limit(take).
		Find(&history).Error
	if err != nil {
		log.Printf("ERROR: Failed to get chat history for couple %s: %v", coupleID, err)
		return nil, err
	}
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history, nil
}

// GetMediaMessages pages newest-first through the room's images and videos.
func (s *Service) GetMediaMessages(coupleID string, skip, take int) ([]models.Message, error) {
	var media []models.Message
	err := s.DB.Where("couple_id = ?", coupleID).
		Where("type IN ?", []models.MessageType{models.MessageTypeImage, models.MessageTypeVideo}).
		Order("created_at desc").
		Offset(skip).
		Limit(take).
		Find(&media).Error
	if err != nil {
		log.Printf("ERROR: Failed to get media for couple %s: %v", coupleID, err)
		return nil, err
	}
	return media, nil
}

// GetPartner resolves the couple member other than excludeUserID.
func (s *Service) GetPartner(coupleID, excludeUserID string) (*models.User, error) {
	var partner models.User
	err := s.DB.Where("couple_id = ?", coupleID).
		Where("id <> ?", excludeUserID).
		First(&partner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}
