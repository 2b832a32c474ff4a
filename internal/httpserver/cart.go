package httpserver

import (
	"net/http"

	cartsvc "storelib/internal/service/cart"
	checkoutsvc "storelib/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type changeQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type chargesRequest struct {
	TotalTaxesCents    int64 `json:"totalTaxesCents"`
	ShippingCostsCents int64 `json:"shippingCostsCents"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *handlers) createCart(c *gin.Context) {
	var in cartsvc.CreateInput
	if !bindJSON(c, &in) {
		return
	}
	cart, err := h.deps.CartSvc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func (h *handlers) getCart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respondCart(c, id)
}

// updateCart applies a batch of cart actions.
func (h *handlers) updateCart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in cartsvc.UpdateInput
	if !bindJSON(c, &in) {
		return
	}
	cart, err := h.deps.CartSvc.Update(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handlers) cartSummary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	summary, err := h.deps.CartSvc.Summary(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handlers) addCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in addItemRequest
	if !bindJSON(c, &in) {
		return
	}
	if err := h.deps.CartSvc.AddItem(c.Request.Context(), id, in.ProductID, in.Quantity); err != nil {
		h.writeError(c, err)
		return
	}
	h.respondCart(c, id)
}

func (h *handlers) changeCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var in changeQuantityRequest
	if !bindJSON(c, &in) {
		return
	}
	if in.Quantity == nil {
		badRequest(c, "quantity required")
		return
	}
	if err := h.deps.CartSvc.ChangeQuantity(c.Request.Context(), id, itemID, *in.Quantity); err != nil {
		h.writeError(c, err)
		return
	}
	h.respondCart(c, id)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	if err := h.deps.CartSvc.RemoveItem(c.Request.Context(), id, itemID); err != nil {
		h.writeError(c, err)
		return
	}
	h.respondCart(c, id)
}

func (h *handlers) setCartCharges(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in chargesRequest
	if !bindJSON(c, &in) {
		return
	}
	if err := h.deps.CartSvc.SetCharges(c.Request.Context(), id, in.TotalTaxesCents, in.ShippingCostsCents); err != nil {
		h.writeError(c, err)
		return
	}
	h.respondCart(c, id)
}

func (h *handlers) respondCart(c *gin.Context, id string) {
	cart, err := h.deps.CartSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handlers) checkout(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in checkoutsvc.Input
	if !bindJSON(c, &in) {
		return
	}
	in.CartID = id
	res, err := h.deps.CheckoutSvc.Checkout(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.metrics.Event("checkout")
	c.JSON(http.StatusCreated, res)
}

func (h *handlers) getOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.deps.CheckoutSvc.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) orderCheckout(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.deps.CheckoutSvc.CheckoutDetail(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *handlers) orderHistory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entries, err := h.deps.CheckoutSvc.History(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "results": entries})
}

func (h *handlers) appendOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in statusRequest
	if !bindJSON(c, &in) {
		return
	}
	entry, err := h.deps.CheckoutSvc.AppendStatus(c.Request.Context(), id, in.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *handlers) completeOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.deps.CheckoutSvc.Complete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.metrics.Event("order_completed")
	c.JSON(http.StatusOK, order)
}
