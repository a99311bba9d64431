package storage

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// KV is the persisted key/value layer backing the session. Get returns
// ok=false for a missing key, never an error.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

type entry struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

func (entry) TableName() string { return "portal_state" }

// Store keeps entries in a local SQLite file so state survives a
// process restart.
type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate state store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(key string) (string, bool, error) {
	var e entry
	err := s.db.First(&e, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *Store) Set(key, value string) error {
	return s.db.Save(&entry{Key: key, Value: value}).Error
}

func (s *Store) Delete(key string) error {
	return s.db.Delete(&entry{}, "key = ?", key).Error
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Memory is the in-process KV used by tests.
type Memory struct {
	m map[string]string
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(key string) (string, bool, error) {
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(key, value string) error {
	s.m[key] = value
	return nil
}

func (s *Memory) Delete(key string) error {
	delete(s.m, key)
	return nil
}
