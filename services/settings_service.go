package services

import (
	"errors"
	"sync"
	"time"

	"journal-submission-api/models"

	"gorm.io/gorm"
)

// DefaultSettingsTTL bounds how stale cached system settings may get before
// the next read refetches them.
const DefaultSettingsTTL = 5 * time.Minute

// SettingsService reads journal-wide settings through an in-process TTL
// cache. The cache is owned by the service instance, not by package state,
// and Invalidate drops it explicitly after writes.
type SettingsService struct {
	db  *gorm.DB
	ttl time.Duration

	mu        sync.RWMutex
	cache     map[string]string
	fetchedAt time.Time
}

func NewSettingsService(db *gorm.DB, ttl time.Duration) *SettingsService {
	if ttl <= 0 {
		ttl = DefaultSettingsTTL
	}
	return &SettingsService{db: db, ttl: ttl}
}

func (s *SettingsService) load(force bool) (map[string]string, error) {
	s.mu.RLock()
	cached := s.cache
	fetchedAt := s.fetchedAt
	s.mu.RUnlock()

	if cached != nil && !force && time.Since(fetchedAt) < s.ttl {
		return cached, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil && !force && time.Since(s.fetchedAt) < s.ttl {
		return s.cache, nil
	}

	var rows []models.SystemSetting
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, storageUnavailable(err)
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.SettingKey] = row.SettingValue
	}
	s.cache = settings
	s.fetchedAt = time.Now()
	return settings, nil
}

// Get returns the setting value for key, or fallback when unset.
func (s *SettingsService) Get(key, fallback string) (string, error) {
	settings, err := s.load(false)
	if err != nil {
		return fallback, err
	}
	if value, ok := settings[key]; ok {
		return value, nil
	}
	return fallback, nil
}

// All returns every system setting.
func (s *SettingsService) All() (map[string]string, error) {
	settings, err := s.load(false)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for k, v := range settings {
		out[k] = v
	}
	return out, nil
}

// Set upserts a setting and invalidates the cache so the next read sees it.
func (s *SettingsService) Set(key, value string) error {
	var setting models.SystemSetting
	now := time.Now()

	err := s.db.Where("setting_key = ?", key).First(&setting).Error
	switch {
	case err == nil:
		if err := s.db.Model(&models.SystemSetting{}).
			Where("setting_id = ?", setting.SettingID).
			Updates(map[string]interface{}{
				"setting_value": value,
				"updated_at":    now,
			}).Error; err != nil {
			return storageUnavailable(err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.SystemSetting{
			SettingKey:   key,
			SettingValue: value,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.db.Create(&setting).Error; err != nil {
			return storageUnavailable(err)
		}
	default:
		return storageUnavailable(err)
	}

	s.Invalidate()
	return nil
}

// Invalidate drops the cached settings.
func (s *SettingsService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = nil
	s.fetchedAt = time.Time{}
}
