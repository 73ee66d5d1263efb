package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/controller"
	"github.com/sefazor/crowdfunding-backend/internal/middleware"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/sefazor/crowdfunding-backend/internal/service"
)

type PackageHandler struct {
	packageController *controller.PackageController
}

func NewPackageHandler(packageController *controller.PackageController) *PackageHandler {
	return &PackageHandler{
		packageController: packageController,
	}
}

func (h *PackageHandler) GetAllPackages(c *fiber.Ctx) error {
	rc := middleware.GetRequestContext(c)

	packages, err := h.packageController.GetAllPackages(c.UserContext())
	if err != nil {
		return respondError(c, rc, err)
	}

	return c.JSON(models.SuccessResponse(packages, ""))
}

func (h *PackageHandler) GetPackageByID(c *fiber.Ctx) error {
	rc := middleware.GetRequestContext(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, rc, service.ErrPackageNotFound)
	}

	pkg, err := h.packageController.GetPackageByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, rc, err)
	}

	return c.JSON(models.SuccessResponse(pkg, ""))
}
