package models

import "time"

// ClientSetting: istemciye ait küçük kalıcı ayarlar (ör: analytics kart seçimi).
// Tarayıcıdaki localStorage anahtarının sunucu tarafı karşılığı.
type ClientSetting struct {
	ClientID  string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"` // JSON
	UpdatedAt time.Time
}
