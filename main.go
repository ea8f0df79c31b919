package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shreeji-machinery/quotation-api/config"
	"github.com/shreeji-machinery/quotation-api/controllers"
	"github.com/shreeji-machinery/quotation-api/middleware"
	"github.com/shreeji-machinery/quotation-api/models"
	"github.com/shreeji-machinery/quotation-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Machinery Quotation API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Quotation{},
		&models.QuotationItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Select the file storage backend (local disk or S3)
	if _, err := services.InitFileStore(cfg); err != nil {
		log.Fatalf("Failed to initialize file store: %v", err)
	}

	router := setupRouter(cfg)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires all API routes. The Auth0 JWT guard is installed only
// when a tenant is configured.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		if cfg != nil && cfg.AuthEnabled() {
			v1.Use(middleware.EnsureValidToken(cfg))
		}

		customers := v1.Group("/customers")
		{
			customers.GET("", controllers.GetCustomers)
			customers.POST("", controllers.CreateCustomer)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		products := v1.Group("/products")
		{
			products.GET("", controllers.GetProducts)
			products.POST("", controllers.CreateProduct)
			products.GET("/:id", controllers.GetProduct)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		quotations := v1.Group("/quotations")
		{
			quotations.GET("", controllers.GetQuotations)
			quotations.POST("", controllers.CreateQuotation)
			quotations.GET("/calendar", controllers.GetQuotationCalendar)
			quotations.GET("/filters", controllers.GetQuotationFilters)
			quotations.GET("/:id", controllers.GetQuotation)
			quotations.PUT("/:id", controllers.UpdateQuotation)
			quotations.DELETE("/:id", controllers.DeleteQuotation)
		}

		v1.POST("/upload/product-image", controllers.UploadProductImage)
		v1.GET("/files/*filepath", controllers.GetFile)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Machinery Quotation API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
