package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"widgetfactory/pkg/logger"
	"widgetfactory/pkg/metrics"
)

// SetupRoutes настраивает все маршруты сервиса с использованием Gin
// Каждый ресурс регистрируется явной таблицей коллекция/элемент,
// JWT middleware применяется только к админской смене статуса заказа
func SetupRoutes(
	catalogHandler *CatalogHandler,
	attributeHandler *AttributeHandler,
	skuHandler *SKUHandler,
	orderHandler *OrderHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("store-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "store-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	categories := api.Group("/categories")
	{
		categories.GET("/", catalogHandler.GetAllCategories)
		categories.POST("/", catalogHandler.CreateCategory)
		categories.GET("/:id", catalogHandler.GetCategory)
		categories.PUT("/:id", catalogHandler.ReplaceCategory)
		categories.PATCH("/:id", catalogHandler.UpdateCategory)
		categories.DELETE("/:id", catalogHandler.DeleteCategory)
	}

	products := api.Group("/products")
	{
		products.GET("/", catalogHandler.ListProducts)
		products.POST("/", catalogHandler.CreateProduct)
		products.GET("/:id", catalogHandler.GetProduct)
		products.PUT("/:id", catalogHandler.ReplaceProduct)
		products.PATCH("/:id", catalogHandler.UpdateProduct)
		products.DELETE("/:id", catalogHandler.DeleteProduct)
	}

	attributeTypes := api.Group("/product_attribute_types")
	{
		attributeTypes.GET("/", attributeHandler.ListAttributeTypes)
		attributeTypes.POST("/", attributeHandler.CreateAttributeType)
		attributeTypes.GET("/:id", attributeHandler.GetAttributeType)
		attributeTypes.PUT("/:id", attributeHandler.ReplaceAttributeType)
		attributeTypes.PATCH("/:id", attributeHandler.UpdateAttributeType)
		attributeTypes.DELETE("/:id", attributeHandler.DeleteAttributeType)
	}

	attributes := api.Group("/product_attributes")
	{
		attributes.GET("/", attributeHandler.ListAttributes)
		attributes.POST("/", attributeHandler.CreateAttribute)
		attributes.GET("/:id", attributeHandler.GetAttribute)
		attributes.PUT("/:id", attributeHandler.ReplaceAttribute)
		attributes.PATCH("/:id", attributeHandler.UpdateAttribute)
		attributes.DELETE("/:id", attributeHandler.DeleteAttribute)
	}

	skus := api.Group("/skus")
	{
		skus.GET("/", skuHandler.ListSKUs)
		skus.POST("/", skuHandler.CreateSKU)
		skus.GET("/:id", skuHandler.GetSKU)
		skus.PUT("/:id", skuHandler.ReplaceSKU)
		skus.PATCH("/:id", skuHandler.UpdateSKU)
		skus.DELETE("/:id", skuHandler.DeleteSKU)
	}

	orders := api.Group("/orders")
	{
		orders.GET("/", orderHandler.ListOrders)
		orders.POST("/", orderHandler.CreateOrder)
		orders.GET("/:id", orderHandler.GetOrder)

		// Смена статуса заказа - только для админов
		orders.PATCH("/:id",
			authMiddleware.Authenticate(),
			authMiddleware.RequireRole("admin"),
			orderHandler.UpdateOrderStatus,
		)
	}

	return router
}
