package handler

import (
	"mime/multipart"
	"time"

	"duetchat/backend/internal/media"
	"duetchat/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStore) TouchCouple(coupleID string, at time.Time) error {
	args := m.Called(coupleID, at)
	return args.Error(0)
}

func (m *MockStore) FindMessageByID(id uint) (*models.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStore) MarkMessagesRead(coupleID, excludeUserID string, upTo time.Time) (int64, error) {
	args := m.Called(coupleID, excludeUserID, upTo)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) GetChatHistory(coupleID string, skip, take int) ([]models.Message, error) {
	args := m.Called(coupleID, skip, take)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStore) GetMediaMessages(coupleID string, skip, take int) ([]models.Message, error) {
	args := m.Called(coupleID, skip, take)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStore) GetPartner(coupleID, excludeUserID string) (*models.User, error) {
	args := m.Called(coupleID, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStore) GetCoupleByID(id string) (*models.Couple, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Couple), args.Error(1)
}

func (m *MockStore) CreateCoupleFor(userAID, userBID string) (*models.Couple, error) {
	args := m.Called(userAID, userBID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Couple), args.Error(1)
}

func (m *MockStore) SetCoupleTheme(coupleID string, themeID uint) error {
	args := m.Called(coupleID, themeID)
	return args.Error(0)
}

func (m *MockStore) SavePairCode(code, userID string) error {
	args := m.Called(code, userID)
	return args.Error(0)
}

func (m *MockStore) LookupPairCode(code string) (string, error) {
	args := m.Called(code)
	return args.String(0), args.Error(1)
}

func (m *MockStore) DeletePairCode(code string) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockStore) ListThemeTemplates() ([]models.ThemeTemplate, error) {
	args := m.Called()
	return args.Get(0).([]models.ThemeTemplate), args.Error(1)
}

func (m *MockStore) GetThemeTemplate(id uint) (*models.ThemeTemplate, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ThemeTemplate), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(coupleID, senderID string, msgType models.MessageType, content string) {
	m.Called(coupleID, senderID, msgType, content)
}

// stubFileStore returns a canned result instead of touching disk.
type stubFileStore struct {
	saved *media.StoredFile
	err   error
}

func (s *stubFileStore) Save(file *multipart.FileHeader, scope string) (*media.StoredFile, error) {
	return s.saved, s.err
}
