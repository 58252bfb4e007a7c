package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"products-api/internal/service"
	"products-api/internal/transport/http/response"
)

type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// GET /api/products
func (h *ProductHandler) GetAll(c *gin.Context) {
	products, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		response.Internal(c, "An error occurred while fetching the products.", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /api/products/:productId
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := pathInt(c, "productId")
	if !ok {
		return
	}
	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "An error occurred while fetching the product.", err)
		return
	}
	if p == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	dto, ok := bindDto(c)
	if !ok {
		return
	}
	created, err := h.svc.Create(c.Request.Context(), dto)
	if err != nil {
		response.Internal(c, "An error occurred while creating the product.", err)
		return
	}
	if !created {
		response.BadRequest(c, "Something went wrong, please try again")
		return
	}
	response.OK(c, "Product created successfully!")
}

// PUT /api/products/:productId
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathInt(c, "productId")
	if !ok {
		return
	}
	dto, ok := bindDto(c)
	if !ok {
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), id, dto)
	if err != nil {
		response.Internal(c, "An error occurred while updating the product.", err)
		return
	}
	if !updated {
		response.BadRequest(c, "Product updation failed")
		return
	}
	response.OK(c, "Product updated successfully")
}

// DELETE /api/products/:productId
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathInt(c, "productId")
	if !ok {
		return
	}
	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "An error occurred while deleting the product.", err)
		return
	}
	if !deleted {
		response.BadRequest(c, "Product deletion failed")
		return
	}
	response.OK(c, "Product deleted successfully")
}

// PUT /api/products/add-to-stock/:productId/:quantity
func (h *ProductHandler) IncrementStock(c *gin.Context) {
	id, ok := pathInt(c, "productId")
	if !ok {
		return
	}
	qty, ok := pathInt(c, "quantity")
	if !ok {
		return
	}
	msg, err := h.svc.IncrementStock(c.Request.Context(), id, qty)
	if err != nil {
		response.Internal(c, "An error occurred while incrementing the stock of product.", err)
		return
	}
	response.OK(c, msg)
}

// PUT /api/products/decrement-stock/:productId/:quantity
func (h *ProductHandler) DecrementStock(c *gin.Context) {
	id, ok := pathInt(c, "productId")
	if !ok {
		return
	}
	qty, ok := pathInt(c, "quantity")
	if !ok {
		return
	}
	msg, err := h.svc.DecrementStock(c.Request.Context(), id, qty)
	if err != nil {
		response.Internal(c, "An error occurred while decrementing the stock of product.", err)
		return
	}
	response.OK(c, msg)
}
