package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
	"storefront/repositories"
)

type CartController struct {
	carts *repositories.CartRepository
}

func NewCartController(carts *repositories.CartRepository) *CartController {
	return &CartController{carts: carts}
}

type cartCountView struct {
	UserID string `json:"user_id"`
	Count  int    `json:"count"`
}

// @Summary Get cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.CartSnapshot
// @Failure 401 {object} models.ErrorResponse
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.carts.Snapshot(c.GetString(middleware.ContextUserID)))
}

// @Summary Add to cart
// @Description Adds a line or increases the quantity of an existing one
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddToCartRequest true "Item"
// @Success 200 {object} models.CartSnapshot
// @Failure 422 {object} models.ErrorResponse
// @Router /cart/add [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Detail: err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	snap, err := ctrl.carts.AddItem(c.GetString(middleware.ContextUserID), models.CartItem{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		UnitPrice:   req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Update quantity
// @Description Sets a line's quantity; 0 removes the line
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param product_id path string true "Product ID"
// @Param quantity query int true "New quantity"
// @Success 200 {object} models.CartSnapshot
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/update/{product_id} [put]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Detail: "quantity must be an integer"})
		return
	}

	snap, err := ctrl.carts.UpdateQuantity(c.GetString(middleware.ContextUserID), c.Param("product_id"), quantity)
	if err != nil {
		cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Remove from cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param product_id path string true "Product ID"
// @Success 200 {object} models.CartSnapshot
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/remove/{product_id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	snap, err := ctrl.carts.RemoveItem(c.GetString(middleware.ContextUserID), c.Param("product_id"))
	if err != nil {
		cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Clear cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.CartSnapshot
// @Router /cart/clear [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.carts.Clear(c.GetString(middleware.ContextUserID)))
}

// @Summary Cart count
// @Description Total quantity across all lines
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.CartCount
// @Router /cart/count [get]
func (ctrl *CartController) CountItems(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	c.JSON(http.StatusOK, cartCountView{UserID: userID, Count: ctrl.carts.Count(userID)})
}

func cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Detail: err.Error()})
	case errors.Is(err, repositories.ErrInvalidQuantity):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Detail: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: "Internal server error"})
	}
}
