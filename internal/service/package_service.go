package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/sefazor/crowdfunding-backend/internal/repository"
)

type PackageService struct {
	store repository.Store
}

func NewPackageService(store repository.Store) *PackageService {
	return &PackageService{
		store: store,
	}
}

func (s *PackageService) GetAllPackages(ctx context.Context) ([]models.Package, error) {
	return s.store.Read(ctx).ListPackages()
}

func (s *PackageService) GetPackageByID(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	pkg, err := s.store.Read(ctx).GetPackage(id)
	if err != nil {
		return nil, notFound(err, ErrPackageNotFound)
	}
	return pkg, nil
}
