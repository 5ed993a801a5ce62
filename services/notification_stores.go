// services/notification_stores.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"groompro-backend/models"
)

// GORM-backed collaborator stores for the notification service.

type GormSettingsStore struct {
	db *gorm.DB
}

func NewGormSettingsStore(db *gorm.DB) *GormSettingsStore {
	return &GormSettingsStore{db: db}
}

func (s *GormSettingsStore) NotificationTypeEnabled(businessID uuid.UUID, notifType string) (bool, error) {
	var business models.Business
	if err := s.db.First(&business, "id = ?", businessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// unknown business keeps the default-enabled policy
			return true, nil
		}
		return false, err
	}
	return business.NotificationTypeEnabled(notifType), nil
}

type GormPreferenceStore struct {
	db *gorm.DB
}

func NewGormPreferenceStore(db *gorm.DB) *GormPreferenceStore {
	return &GormPreferenceStore{db: db}
}

func (s *GormPreferenceStore) GetPreference(customerID uuid.UUID) (*models.NotificationPreference, error) {
	var pref models.NotificationPreference
	if err := s.db.Where("customer_id = ?", customerID).First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}

type GormTemplateStore struct {
	db *gorm.DB
}

func NewGormTemplateStore(db *gorm.DB) *GormTemplateStore {
	return &GormTemplateStore{db: db}
}

func (s *GormTemplateStore) GetTemplate(businessID uuid.UUID, notifType, channel string) (*models.NotificationTemplate, error) {
	var tmpl models.NotificationTemplate
	err := s.db.Where("business_id = ? AND type = ? AND channel = ? AND is_active = true",
		businessID, notifType, channel).First(&tmpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tmpl, nil
}

type GormLogStore struct {
	db *gorm.DB
}

func NewGormLogStore(db *gorm.DB) *GormLogStore {
	return &GormLogStore{db: db}
}

func (s *GormLogStore) CreatePending(msg NotificationMessage, body string) (*models.NotificationLog, error) {
	entry := models.NotificationLog{
		BusinessID: msg.BusinessID,
		CustomerID: msg.CustomerID,
		Type:       msg.Type,
		Channel:    msg.Channel,
		Recipient:  msg.Recipient,
		Message:    body,
		Status:     models.NotificationPending,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *GormLogStore) MarkSent(id uuid.UUID, providerID string) error {
	now := time.Now()
	return s.db.Model(&models.NotificationLog{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      models.NotificationSent,
		"provider_id": providerID,
		"sent_at":     now,
	}).Error
}

func (s *GormLogStore) MarkFailed(id uuid.UUID, errMsg string) error {
	return s.db.Model(&models.NotificationLog{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        models.NotificationFailed,
		"error_message": errMsg,
	}).Error
}
