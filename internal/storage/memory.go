package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nearhood/nearhood-backend/internal/apperr"
	"github.com/nearhood/nearhood-backend/internal/models"
)

// MemoryStore holds all data in memory for development and tests.
type MemoryStore struct {
	users    map[string]*models.User
	otps     map[string]*models.OtpVerification
	services map[string]*models.Service

	// Mutexes for thread safety
	userMu    sync.RWMutex
	otpMu     sync.RWMutex
	serviceMu sync.RWMutex
}

// NewMemoryStore creates a new in-memory storage.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		otps:     make(map[string]*models.OtpVerification),
		services: make(map[string]*models.Service),
	}
}

// User operations

func (m *MemoryStore) GetUser(id string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (m *MemoryStore) GetUserByPhone(phone string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	for _, user := range m.users {
		if user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user with phone %s: %w", phone, apperr.ErrNotFound)
}

func (m *MemoryStore) CreateUser(reg *models.UserRegistration, phone string) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	for _, existing := range m.users {
		if existing.Phone == phone {
			return nil, fmt.Errorf("phone %s already registered: %w", phone, apperr.ErrValidationError)
		}
	}

	now := time.Now()
	user := &models.User{
		ID:         uuid.NewString(),
		Name:       reg.Name,
		Phone:      phone,
		Flat:       reg.Flat,
		Floor:      reg.Floor,
		Block:      reg.Block,
		Role:       reg.Role,
		IsVerified: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	m.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (m *MemoryStore) UpdateUser(id string, update *models.UserUpdate) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	user, exists := m.users[id]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Flat != nil {
		user.Flat = *update.Flat
	}
	if update.Floor != nil {
		user.Floor = *update.Floor
	}
	if update.Block != nil {
		user.Block = *update.Block
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.IsVerified != nil {
		user.IsVerified = *update.IsVerified
	}
	user.UpdatedAt = time.Now()

	copied := *user
	return &copied, nil
}

// OTP operations

func (m *MemoryStore) CreateOTP(otp *models.OtpVerification) (*models.OtpVerification, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	stored := *otp
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.IsUsed = false
	stored.CreatedAt = time.Now()

	m.otps[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (m *MemoryStore) GetValidOTP(phone, code string) (*models.OtpVerification, error) {
	m.otpMu.RLock()
	defer m.otpMu.RUnlock()

	now := time.Now()
	// Map iteration order is arbitrary; when several valid records match
	// the same pair, any one of them may be returned.
	for _, otp := range m.otps {
		if otp.Phone == phone && otp.Code == code && otp.Valid(now) {
			copied := *otp
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("valid otp for phone %s: %w", phone, apperr.ErrNotFound)
}

func (m *MemoryStore) MarkOTPUsed(id string) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	otp, exists := m.otps[id]
	if !exists || otp.IsUsed {
		return fmt.Errorf("otp %s: %w", id, apperr.ErrInvalidOrExpiredOtp)
	}
	otp.IsUsed = true
	return nil
}

func (m *MemoryStore) DeleteExpiredOTPs() (int64, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	now := time.Now()
	var removed int64
	for id, otp := range m.otps {
		if !otp.ExpiresAt.After(now) {
			delete(m.otps, id)
			removed++
		}
	}
	return removed, nil
}

// Service operations

func (m *MemoryStore) CreateService(svc *models.Service) (*models.Service, error) {
	m.serviceMu.Lock()
	defer m.serviceMu.Unlock()

	stored := *svc
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = time.Now()

	m.services[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (m *MemoryStore) ListServices() ([]*models.Service, error) {
	m.serviceMu.RLock()
	defer m.serviceMu.RUnlock()

	services := make([]*models.Service, 0, len(m.services))
	for _, svc := range m.services {
		copied := *svc
		services = append(services, &copied)
	}
	return services, nil
}

func (m *MemoryStore) ListServicesByUser(userID string) ([]*models.Service, error) {
	m.serviceMu.RLock()
	defer m.serviceMu.RUnlock()

	services := []*models.Service{}
	for _, svc := range m.services {
		if svc.OfferedByUserID == userID {
			copied := *svc
			services = append(services, &copied)
		}
	}
	return services, nil
}
