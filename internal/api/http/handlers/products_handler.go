package handlers

import (
	"bytes"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/commodity-gate/internal/api/dto"
	"github.com/spec-kit/commodity-gate/internal/auth"
	"github.com/spec-kit/commodity-gate/internal/domain"
	"github.com/spec-kit/commodity-gate/internal/service"
	apperrors "github.com/spec-kit/commodity-gate/pkg/util/errorutil"
)

// ProductsHandler manages the commodity catalog endpoints.
type ProductsHandler struct {
	service *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{service: productService}
}

// ListProducts GET /api/products.
func (h *ProductsHandler) ListProducts(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), parseProductQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, dto.NewProductResponse(p))
	}
	return c.JSON(dto.ProductListResponse{
		Products: items,
		Pagination: dto.Pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages,
			HasNext:    page.HasNext(),
			HasPrev:    page.HasPrev(),
		},
	})
}

// GetProduct GET /api/products/:id.
func (h *ProductsHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), utils.CopyString(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(*product)})
}

// CreateProduct POST /api/products.
func (h *ProductsHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	product := req.ToDomain("")
	if err := h.service.Create(c.UserContext(), actor(c), product); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProductResponse(*product)})
}

// UpdateProduct PUT /api/products/:id.
func (h *ProductsHandler) UpdateProduct(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	// Params point into the request buffer; the repository keeps the id.
	product := req.ToDomain(utils.CopyString(c.Params("id")))
	if err := h.service.Update(c.UserContext(), actor(c), product); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProductResponse(*product)})
}

// DeleteProduct DELETE /api/products/:id.
func (h *ProductsHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), actor(c), utils.CopyString(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Stats GET /api/dashboard/stats.
func (h *ProductsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// Export GET /api/export/products.
func (h *ProductsHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.ExportCSV(c.UserContext(), &buf); err != nil {
		return err
	}
	c.Attachment("products.csv")
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

func parseProductQuery(c *fiber.Ctx) domain.ProductFilter {
	return domain.ProductFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 0),
	}
}

func actor(c *fiber.Ctx) domain.Identity {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.Identity
	}
	return domain.Identity{}
}
