package httpserver

import (
	"net/http"
	"strings"

	catalogsvc "storelib/internal/service/catalog"
	customersvc "storelib/internal/service/customer"

	"github.com/gin-gonic/gin"
)

func (h *handlers) registerCustomer(c *gin.Context) {
	var in customersvc.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	cust, err := h.deps.CustomerSvc.Register(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cust)
}

// customerByUserID looks a customer up by the external user id in ?userId=.
func (h *handlers) customerByUserID(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		badRequest(c, "userId query parameter required")
		return
	}
	cust, err := h.deps.CustomerSvc.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (h *handlers) getCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cust, err := h.deps.CustomerSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (h *handlers) deleteCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.CustomerSvc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) customerCarts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.deps.CustomerSvc.Get(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	carts, err := h.deps.CartSvc.ListForCustomer(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(carts), "results": carts})
}

func (h *handlers) listCategories(c *gin.Context) {
	cats, err := h.deps.CatalogSvc.ListCategories(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(cats), "results": cats})
}

func (h *handlers) createCategory(c *gin.Context) {
	var in catalogsvc.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	cat, err := h.deps.CatalogSvc.CreateCategory(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *handlers) deleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.CatalogSvc.DeleteCategory(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listProducts(c *gin.Context) {
	categoryID, ok := queryID(c, "categoryId")
	if !ok {
		return
	}
	products, err := h.deps.CatalogSvc.ListProducts(c.Request.Context(), categoryID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(products), "results": products})
}

func (h *handlers) createProduct(c *gin.Context) {
	var in catalogsvc.ProductInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.deps.CatalogSvc.CreateProduct(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) getProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.deps.CatalogSvc.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.CatalogSvc.DeleteProduct(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
