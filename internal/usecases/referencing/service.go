// Package referencing mantém a tabela de preços de referência
package referencing

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/vfg2006/stock-insight-api/infrastructure/repository"
	"github.com/vfg2006/stock-insight-api/internal/domain"
	"github.com/vfg2006/stock-insight-api/internal/validation"
	"github.com/vfg2006/stock-insight-api/pkg/apiErrors"
	"github.com/vfg2006/stock-insight-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

type ReferenceService interface {
	List(ctx context.Context) ([]domain.ReferenceProduct, error)
	Import(ctx context.Context, products []domain.ReferenceProduct) (*domain.ReferenceImportResult, error)
	ValidatePassword(password string) error
}

type Service struct {
	repository     repository.ReferenceProductRepository
	uploadPassword string
}

func NewService(repository repository.ReferenceProductRepository, uploadPassword string) *Service {
	return &Service{
		repository:     repository,
		uploadPassword: uploadPassword,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.ReferenceProduct, error) {
	products, err := s.repository.Get(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("referencing: falha ao ler tabela de preços")
		return nil, NewReferenceError(ErrStoreOperation, apiErrors.ErrStoreOperation, "Falha ao ler a tabela de preços")
	}
	return products, nil
}

// Import substitui a tabela de preços pela nova lista, aplicando a mesma
// normalização usada na resolução dos itens vendidos
func (s *Service) Import(ctx context.Context, products []domain.ReferenceProduct) (*domain.ReferenceImportResult, error) {
	logger := log.ForContext(ctx)

	index, duplicates, skipped := NewIndex(products)
	if index.Len() == 0 {
		return nil, NewReferenceError(ErrEmptyTable, apiErrors.ErrMissingRequiredData, "A planilha não contém produtos com nome e preço")
	}

	if result := validation.ValidateReferenceProducts(index.Products()); !result.Valid {
		return nil, NewReferenceError(validation.ErrInvalidData, apiErrors.ErrInvalidData, result.Err().Error())
	}

	if len(duplicates) > 0 {
		logger.Warnf("referencing: %d produtos repetidos ignorados: %s", len(duplicates), strings.Join(duplicates, ", "))
	}

	if err := s.repository.Put(ctx, index.Products()); err != nil {
		logger.WithError(err).Error("referencing: falha ao gravar tabela de preços")
		return nil, NewReferenceError(ErrStoreOperation, apiErrors.ErrStoreOperation, "Falha ao gravar a tabela de preços")
	}

	logger.Infof("referencing: tabela de preços atualizada com %d produtos", index.Len())

	return &domain.ReferenceImportResult{
		Count:      index.Len(),
		Skipped:    skipped,
		Duplicates: duplicates,
	}, nil
}

// ValidatePassword confere a senha de confirmação do upload.
// A senha configurada pode ser um hash bcrypt ou texto puro.
func (s *Service) ValidatePassword(password string) error {
	if s.uploadPassword == "" {
		return NewReferenceError(ErrPasswordNotConfigured, apiErrors.ErrPasswordNotConfigured, "")
	}

	if isBcryptHash(s.uploadPassword) {
		if err := bcrypt.CompareHashAndPassword([]byte(s.uploadPassword), []byte(password)); err != nil {
			return NewReferenceError(ErrInvalidPassword, apiErrors.ErrInvalidPassword, "")
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(s.uploadPassword), []byte(password)) != 1 {
		return NewReferenceError(ErrInvalidPassword, apiErrors.ErrInvalidPassword, "")
	}
	return nil
}

func isBcryptHash(value string) bool {
	return strings.HasPrefix(value, "$2a$") || strings.HasPrefix(value, "$2b$") || strings.HasPrefix(value, "$2y$")
}
