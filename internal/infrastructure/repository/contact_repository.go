package repository

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/lmartinez/contact-upload/internal/domain/contact"
	"github.com/lmartinez/contact-upload/internal/infrastructure/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) BeginUpsert(ctx context.Context) (domain.UpsertSession, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin contact batch: %w", tx.Error)
	}
	return &upsertSession{db: r.db, tx: tx}, nil
}

func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Contact{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return count, nil
}

func (r *ContactRepository) ListAll(ctx context.Context) ([]domain.Contact, error) {
	var rows []models.Contact
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	contacts := make([]domain.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, domain.Contact{
			ID:        row.ID,
			Nombre:    row.Nombre,
			Direccion: row.Direccion,
			Telefono:  row.Telefono,
			Correo:    row.Correo,
		})
	}
	return contacts, nil
}

// upsertSession runs one batched save inside a transaction. Each row is
// guarded by a savepoint so a failed row never poisons the rows already
// added to the batch.
type upsertSession struct {
	db  *gorm.DB
	tx  *gorm.DB
	seq int
}

func (s *upsertSession) Upsert(ctx context.Context, c domain.Contact) error {
	if strings.TrimSpace(c.ID) == "" {
		return domain.ErrMissingContactID
	}

	row := models.Contact{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Direccion: c.Direccion,
		Telefono:  c.Telefono,
		Correo:    c.Correo,
	}

	s.seq++
	savepoint := fmt.Sprintf("contact_row_%d", s.seq)
	if err := s.tx.SavePoint(savepoint).Error; err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}

	err := s.tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		if rbErr := s.tx.RollbackTo(savepoint).Error; rbErr != nil {
			return fmt.Errorf("upsert contact %s: %v (savepoint rollback: %w)", c.ID, err, rbErr)
		}
		return fmt.Errorf("upsert contact %s: %w", c.ID, err)
	}
	return nil
}

// Commit flushes the current transaction and opens the next one, so the
// session stays usable for the following batch.
func (s *upsertSession) Commit(ctx context.Context) error {
	if err := s.tx.Commit().Error; err != nil {
		return fmt.Errorf("commit contact batch: %w", err)
	}

	next := s.db.WithContext(ctx).Begin()
	if next.Error != nil {
		return fmt.Errorf("begin next contact batch: %w", next.Error)
	}
	s.tx = next
	s.seq = 0
	return nil
}

// Close rolls back whatever transaction is still open. After a final
// Commit this discards an empty batch; after a failure it discards the
// uncommitted rows.
func (s *upsertSession) Close() {
	s.tx.Rollback()
}
