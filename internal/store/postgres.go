package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/transcript"
)

type profileRow struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string
	UpdatedAt time.Time
}

func (profileRow) TableName() string { return "profiles" }

type sessionRow struct {
	ID         uint   `gorm:"primaryKey"`
	Code       string `gorm:"index"`
	Transcript []byte // JSON-encoded []transcript.Entry
	CreatedAt  time.Time
}

func (sessionRow) TableName() string { return "sessions" }

// Postgres is the gorm-backed Store.
type Postgres struct {
	db *gorm.DB
}

// OpenPostgres connects and migrates the schema.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&profileRow{}, &sessionRow{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Put(ctx context.Context, key, value string) error {
	row := profileRow{Key: key, Value: value, UpdatedAt: time.Now()}
	return p.db.WithContext(ctx).Save(&row).Error
}

func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	var row profileRow
	err := p.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return row.Value, nil
}

func (p *Postgres) SaveSession(ctx context.Context, rec SessionRecord) error {
	raw, err := json.Marshal(rec.Entries)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	row := sessionRow{Code: rec.Code, Transcript: raw, CreatedAt: time.Now()}
	return p.db.WithContext(ctx).Create(&row).Error
}

func (p *Postgres) Recent(ctx context.Context, limit int) ([]SessionRecord, error) {
	var rows []sessionRow
	err := p.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]SessionRecord, 0, len(rows))
	for _, row := range rows {
		var entries []transcript.Entry
		if err := json.Unmarshal(row.Transcript, &entries); err != nil {
			// A corrupt row is skipped rather than failing the listing.
			continue
		}
		out = append(out, SessionRecord{Code: row.Code, Entries: entries})
	}
	return out, nil
}
