package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/controllers"
	_ "storefront/docs"
	"storefront/handler"
	"storefront/middleware"
	"storefront/utils"
)

type Dependencies struct {
	Auth     *controllers.AuthController
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Issuer   *utils.TokenIssuer
	Metrics  http.Handler
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/", gin.WrapF(handler.Handler))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "healthy"}) })
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	router.POST("/auth/login", deps.Auth.Login)
	router.GET("/auth/users", deps.Auth.DemoUsers)
	router.POST("/auth/verify", deps.Auth.Verify)

	router.GET("/products", deps.Products.GetAllProducts)
	router.GET("/products/:id", deps.Products.GetProductByID)
	router.GET("/products/search/:term", deps.Products.SearchProducts)

	cart := router.Group("/cart")
	cart.Use(middleware.AuthMiddleware(deps.Issuer))
	{
		cart.GET("", deps.Cart.GetCart)
		cart.POST("/add", deps.Cart.AddItem)
		cart.PUT("/update/:product_id", deps.Cart.UpdateItem)
		cart.DELETE("/remove/:product_id", deps.Cart.RemoveItem)
		cart.DELETE("/clear", deps.Cart.ClearCart)
		cart.GET("/count", deps.Cart.CountItems)
	}
}
