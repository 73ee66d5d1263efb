package controller

import (
	"context"

	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/sefazor/crowdfunding-backend/internal/service"
)

type PackageController struct {
	packageService *service.PackageService
}

func NewPackageController(packageService *service.PackageService) *PackageController {
	return &PackageController{
		packageService: packageService,
	}
}

func (c *PackageController) GetAllPackages(ctx context.Context) ([]models.Package, error) {
	return c.packageService.GetAllPackages(ctx)
}

func (c *PackageController) GetPackageByID(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	return c.packageService.GetPackageByID(ctx, id)
}
