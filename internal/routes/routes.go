package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"tienda-api/internal/config"
	"tienda-api/internal/handlers"
	"tienda-api/internal/repository"
)

func RegisterRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	categories := db.Collection("categories")
	products := db.Collection("products")
	users := db.Collection("users")
	whitelists := db.Collection("whitelists")

	categoryRepo := repository.NewCategoryRepository(categories)
	productRepo := repository.NewProductRepository(products, categories)
	userRepo := repository.NewUserRepository(users, products)
	whitelistRepo := repository.NewWhitelistRepository(whitelists, users, products)

	ch := handlers.NewCategoryHandler(categoryRepo)
	ph := handlers.NewProductHandler(productRepo)
	uh := handlers.NewUserHandler(userRepo)
	wh := handlers.NewWhitelistHandler(whitelistRepo)
	ah := handlers.NewAuthHandler(userRepo, []byte(cfg.JWTSecret))

	v1 := router.Group("/v1")
	{
		v1.POST("/auth/login", ah.Login)

		v1.POST("/categories", ch.CreateCategory)
		v1.GET("/categories", ch.GetCategories)
		v1.GET("/categories/:id", ch.GetCategoryByID)
		v1.PATCH("/categories/:id", ch.UpdateCategory)

		v1.POST("/products", ph.CreateProduct)
		v1.GET("/products", ph.GetProducts)
		v1.GET("/products/category/:categoryId", ph.GetProductsByCategory)
		v1.GET("/products/:id", ph.GetProductByID)
		v1.PUT("/products/:id", ph.UpdateProduct)
		v1.PATCH("/products/:id/stock", ph.AdjustStock)

		v1.POST("/users", uh.CreateUser)
		v1.GET("/users", uh.GetUsers)
		v1.GET("/users/:id", uh.GetUserByID)
		v1.PATCH("/users/:id", uh.UpdateUser)
		v1.GET("/users/:id/wishlist", uh.GetWishlist)
		v1.POST("/users/:id/wishlist/:productId", uh.AddToWishlist)
		v1.DELETE("/users/:id/wishlist/:productId", uh.RemoveFromWishlist)

		v1.POST("/whitelists", wh.CreateWhitelist)
		v1.GET("/whitelists", wh.GetWhitelists)
		v1.GET("/whitelists/filter/user/:userId", wh.GetByUser)
		v1.GET("/whitelists/filter/product/:productId", wh.GetByProduct)
		v1.GET("/whitelists/filter/status/:status", wh.GetByStatus)
		v1.GET("/whitelists/filter/date", wh.GetByDateRange)
		v1.GET("/whitelists/:id", wh.GetWhitelistByID)
		v1.PUT("/whitelists/:id", wh.UpdateWhitelist)
		v1.POST("/whitelists/:id/products/:productId", wh.AddProduct)
		v1.DELETE("/whitelists/:id/products/:productId", wh.RemoveProduct)

		// Solo un admin autenticado puede borrar documentos
		admin := v1.Group("", handlers.AuthMiddleware([]byte(cfg.JWTSecret)), handlers.RequireAdmin())
		{
			admin.DELETE("/categories/:id", ch.DeleteCategory)
			admin.DELETE("/products/:id", ph.DeleteProduct)
			admin.DELETE("/users/:id", uh.DeleteUser)
			admin.DELETE("/whitelists/:id", wh.DeleteWhitelist)
		}
	}
}
