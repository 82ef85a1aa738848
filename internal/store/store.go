// Package store provides the durable key-value space every storefront
// component persists into. Values are opaque strings, usually JSON; a
// missing or unparseable value always reads as absent so callers can
// treat "no prior state" as a normal case.
package store

import (
	"encoding/json"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Entry struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null"   json:"value"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

type Store struct {
	DB *gorm.DB
}

// Open opens (creating if needed) the sqlite-backed store at path.
// ":memory:" yields a store that lives for the process only.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	// One writer, one connection: sqlite serializes writes anyway, and
	// an in-memory database exists per connection, so the pool must not
	// fan out.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

func (s *Store) Get(key string) (string, bool) {
	var e Entry
	if err := s.DB.Where("key = ?", key).First(&e).Error; err != nil {
		return "", false
	}
	return e.Value, true
}

func (s *Store) Set(key, value string) error {
	e := Entry{Key: key, Value: value}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&e).Error
}

func (s *Store) Remove(key string) error {
	return s.DB.Where("key = ?", key).Delete(&Entry{}).Error
}

// GetJSON decodes the value at key into dst. A missing key or a value
// that does not decode reports false.
func (s *Store) GetJSON(key string, dst any) bool {
	raw, ok := s.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false
	}
	return true
}

func (s *Store) SetJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, string(data))
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
