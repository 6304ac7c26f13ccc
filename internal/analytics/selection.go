package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"catalog-backend/internal/form"
	"catalog-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const SelectionName = "analyticsSelection"

// SelectionStore: istemci başına seçili kart listesi (client_settings tablosu).
type SelectionStore struct {
	db *gorm.DB
}

func NewSelectionStore(db *gorm.DB) *SelectionStore {
	return &SelectionStore{db: db}
}

func defaultSelection() []string {
	return append([]string(nil), DefaultSelection...)
}

// Load: kayıt yoksa ya da okunamıyorsa varsayılan seçim döner.
func (s *SelectionStore) Load(ctx context.Context, clientID string) ([]string, error) {
	var setting models.ClientSetting
	err := s.db.WithContext(ctx).
		Where("client_id = ? AND name = ?", clientID, SelectionName).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultSelection(), nil
	}
	if err != nil {
		return nil, err
	}

	var keys []string
	if err := json.Unmarshal([]byte(setting.Value), &keys); err != nil {
		log.Printf("[analytics] %s için kayıtlı seçim okunamadı: %v", clientID, err)
		return defaultSelection(), nil
	}
	return keys, nil
}

// Save: boş seçim kaydedilmez.
func (s *SelectionStore) Save(ctx context.Context, clientID string, keys []string) error {
	if len(keys) == 0 {
		return &form.ValidationError{
			Fields:  []string{"keys"},
			Message: "En az bir kart seçilmelidir",
		}
	}

	raw, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	setting := models.ClientSetting{ClientID: clientID, Name: SelectionName, Value: string(raw)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
}
