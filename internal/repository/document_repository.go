package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/baarcakatalan/daily-tasks-bot/internal/model"
)

// DocumentRepository persists whole per-user planner documents. Each save
// overwrites the serialized document for that user.
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// LoadAll reads every stored document, keyed by Telegram user id. Called
// once at startup to seed the in-memory store.
func (r *DocumentRepository) LoadAll(ctx context.Context) (map[int64]*model.UserDocument, error) {
	var records []model.UserRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	docs := make(map[int64]*model.UserDocument, len(records))
	for _, rec := range records {
		var doc model.UserDocument
		if err := json.Unmarshal([]byte(rec.Document), &doc); err != nil {
			return nil, fmt.Errorf("decode document for %d: %w", rec.TelegramID, err)
		}
		if doc.DatedTasks == nil {
			doc.DatedTasks = map[string][]model.Task{}
		}
		docs[rec.TelegramID] = &doc
	}
	return docs, nil
}

// Save upserts the serialized document for one user.
func (r *DocumentRepository) Save(ctx context.Context, telegramID int64, doc *model.UserDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document for %d: %w", telegramID, err)
	}

	db := r.db.WithContext(ctx)
	var record model.UserRecord
	err = db.Where("telegram_id = ?", telegramID).First(&record).Error
	switch {
	case err == nil:
		if err := db.Model(&record).Update("document", string(payload)).Error; err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		return nil
	case err == gorm.ErrRecordNotFound:
		record = model.UserRecord{TelegramID: telegramID, Document: string(payload)}
		if err := db.Create(&record).Error; err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("find document: %w", err)
	}
}
