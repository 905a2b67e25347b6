package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nearhood/nearhood-backend/internal/apperr"
	"github.com/nearhood/nearhood-backend/internal/models"
)

// DatabaseStore implements Store on top of a GORM connection.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a PostgreSQL-backed storage.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// User operations

func (d *DatabaseStore) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (d *DatabaseStore) GetUserByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := d.db.First(&user, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with phone %s: %w", phone, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (d *DatabaseStore) CreateUser(reg *models.UserRegistration, phone string) (*models.User, error) {
	user := &models.User{
		Name:       reg.Name,
		Phone:      phone,
		Flat:       reg.Flat,
		Floor:      reg.Floor,
		Block:      reg.Block,
		Role:       reg.Role,
		IsVerified: false,
	}
	if err := d.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("phone %s already registered: %w", phone, apperr.ErrValidationError)
		}
		return nil, err
	}
	return user, nil
}

func (d *DatabaseStore) UpdateUser(id string, update *models.UserUpdate) (*models.User, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Flat != nil {
		fields["flat"] = *update.Flat
	}
	if update.Floor != nil {
		fields["floor"] = *update.Floor
	}
	if update.Block != nil {
		fields["block"] = *update.Block
	}
	if update.Role != nil {
		fields["role"] = *update.Role
	}
	if update.IsVerified != nil {
		fields["is_verified"] = *update.IsVerified
	}

	if len(fields) > 0 {
		result := d.db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
		}
	}
	return d.GetUser(id)
}

// OTP operations

func (d *DatabaseStore) CreateOTP(otp *models.OtpVerification) (*models.OtpVerification, error) {
	otp.IsUsed = false
	if err := d.db.Create(otp).Error; err != nil {
		return nil, err
	}
	return otp, nil
}

func (d *DatabaseStore) GetValidOTP(phone, code string) (*models.OtpVerification, error) {
	var otp models.OtpVerification
	err := d.db.
		Where("phone = ? AND code = ? AND is_used = ? AND expires_at > ?",
			phone, code, false, time.Now()).
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("valid otp for phone %s: %w", phone, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &otp, nil
}

func (d *DatabaseStore) MarkOTPUsed(id string) error {
	// Conditional update; the affected-row count decides the winner when
	// two verifications race for the same record.
	result := d.db.Model(&models.OtpVerification{}).
		Where("id = ? AND is_used = ?", id, false).
		Update("is_used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("otp %s: %w", id, apperr.ErrInvalidOrExpiredOtp)
	}
	return nil
}

func (d *DatabaseStore) DeleteExpiredOTPs() (int64, error) {
	result := d.db.Where("expires_at <= ?", time.Now()).Delete(&models.OtpVerification{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Service operations

func (d *DatabaseStore) CreateService(svc *models.Service) (*models.Service, error) {
	if err := d.db.Create(svc).Error; err != nil {
		return nil, err
	}
	return svc, nil
}

func (d *DatabaseStore) ListServices() ([]*models.Service, error) {
	var services []*models.Service
	if err := d.db.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (d *DatabaseStore) ListServicesByUser(userID string) ([]*models.Service, error) {
	services := []*models.Service{}
	if err := d.db.Where("offered_by_user_id = ?", userID).Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}
