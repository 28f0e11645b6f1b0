package persistence

import (
	"context"
	"errors"

	"github.com/contractportal/backend/internal/domain/client"
	"github.com/contractportal/backend/internal/domain/shared"
	"github.com/contractportal/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements client.Repository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GORM client repository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	var model models.ClientModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return toDomainClient(&model), nil
}

func (r *GormClientRepository) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	var model models.ClientModel
	err := r.db.WithContext(ctx).First(&model, "email = ?", client.NormalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return toDomainClient(&model), nil
}

func (r *GormClientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("email = ?", client.NormalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormClientRepository) Save(ctx context.Context, c *client.Client) error {
	model := toClientModel(c)
	return r.db.WithContext(ctx).Save(model).Error
}

func toDomainClient(m *models.ClientModel) *client.Client {
	return &client.Client{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		Address:      m.Address,
		CompanyName:  m.CompanyName,
		TaxCode:      m.TaxCode,
		LastLoginAt:  m.LastLoginAt,
	}
}

func toClientModel(c *client.Client) *models.ClientModel {
	return &models.ClientModel{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Phone:        c.Phone,
		Address:      c.Address,
		CompanyName:  c.CompanyName,
		TaxCode:      c.TaxCode,
		LastLoginAt:  c.LastLoginAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

var _ client.Repository = (*GormClientRepository)(nil)
