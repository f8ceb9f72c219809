package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rubenhtun/luxora-store/internal/product"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List serves the catalog as a bare JSON array in insertion order,
// which the storefront treats as the "Featured" ordering.
func (h *ProductHandler) List(c *gin.Context) {
	opts := product.ListOptions{Category: c.Query("category")}

	products, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := productErrStatus(err)
		c.JSON(status, gin.H{"message": msg})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input product.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		status, msg := productErrStatus(err)
		c.JSON(status, gin.H{"message": msg})
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var input product.UpdateProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		status, msg := productErrStatus(err)
		c.JSON(status, gin.H{"message": msg})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		status, msg := productErrStatus(err)
		c.JSON(status, gin.H{"message": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func productErrStatus(err error) (int, string) {
	switch {
	case errors.Is(err, product.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, product.ErrInvalidID),
		errors.Is(err, product.ErrNameRequired),
		errors.Is(err, product.ErrCategoryRequired),
		errors.Is(err, product.ErrNegativePrice),
		errors.Is(err, product.ErrNoFieldsToUpdate),
		errors.Is(err, product.ErrPriceAboveOriginal):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
