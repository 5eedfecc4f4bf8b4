package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/repositories"
)

type ProductController struct {
	products *repositories.ProductRepository
}

func NewProductController(products *repositories.ProductRepository) *ProductController {
	return &ProductController{products: products}
}

// @Summary List products
// @Description List the catalog, ranked by default
// @Tags Products
// @Produce json
// @Param sort_by query string false "ranking, price, popularity or rating"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param min_rating query number false "Minimum rating"
// @Success 200 {array} models.Product
// @Failure 422 {object} models.ErrorResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	filter, err := models.ParseProductFilter(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ctrl.products.List(filter))
}

// @Summary Get product
// @Description Get one product with its ranking score
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctrl.products.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// @Summary Search products
// @Description Case-insensitive match on name and description
// @Tags Products
// @Produce json
// @Param term path string true "Search term"
// @Success 200 {array} models.Product
// @Router /products/search/{term} [get]
func (ctrl *ProductController) SearchProducts(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.products.Search(c.Param("term")))
}
