package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/commodity-gate/internal/api/dto"
	"github.com/spec-kit/commodity-gate/internal/auth"
	"github.com/spec-kit/commodity-gate/internal/service"
	apperrors "github.com/spec-kit/commodity-gate/pkg/util/errorutil"
)

// PagesHandler returns view descriptors for the client shell.
type PagesHandler struct {
	products *service.ProductService
}

// NewPagesHandler constructs handler.
func NewPagesHandler(products *service.ProductService) *PagesHandler {
	return &PagesHandler{products: products}
}

// Home handles GET /, sending the caller to its landing page or to login.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return c.Redirect(auth.DefaultLanding(principal.Identity.Role), fiber.StatusTemporaryRedirect)
	}
	return c.Redirect(auth.LoginPath, fiber.StatusTemporaryRedirect)
}

// Login handles GET /login.
func (h *PagesHandler) Login(c *fiber.Ctx) error {
	return c.JSON(dto.PageView{
		View:  "login",
		Title: "Sign in",
		Data:  fiber.Map{"redirect": c.Query("redirect")},
	})
}

// Dashboard handles GET /dashboard.
func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.products.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, "dashboard", "Dashboard", stats)
}

// Analytics handles GET /analytics.
func (h *PagesHandler) Analytics(c *fiber.Ctx) error {
	return h.render(c, "analytics", "Analytics", nil)
}

// Users handles GET /users.
func (h *PagesHandler) Users(c *fiber.Ctx) error {
	return h.render(c, "users", "Users", nil)
}

// Products handles GET /products.
func (h *PagesHandler) Products(c *fiber.Ctx) error {
	return h.render(c, "products", "Products", nil)
}

// AddProduct handles GET /products/add.
func (h *PagesHandler) AddProduct(c *fiber.Ctx) error {
	return h.render(c, "product_add", "Add Product", nil)
}

// EditProduct handles GET /products/edit/:id.
func (h *PagesHandler) EditProduct(c *fiber.Ctx) error {
	product, err := h.products.Get(c.UserContext(), utils.CopyString(c.Params("id")))
	if err != nil {
		return err
	}
	return h.render(c, "product_edit", "Edit Product", dto.NewProductResponse(*product))
}

func (h *PagesHandler) render(c *fiber.Ctx, view, title string, data any) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	identity := principal.Identity
	return c.JSON(dto.PageView{
		View:  view,
		Title: title,
		User:  &identity,
		Menu:  auth.MenuFor(identity.Role),
		Data:  data,
	})
}
