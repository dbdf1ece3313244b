package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Akhileshkolipakula/soda-business-manager/internal/handler"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/middleware"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/migrations"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/repository"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/service"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/ws"
	"github.com/Akhileshkolipakula/soda-business-manager/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	if err := migrations.Run(db); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	flavorRepo := repository.NewFlavorRepo(db)
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	reportRepo := repository.NewReportRepo(db)
	userRepo := repository.NewUserRepo(db)

	ledgerService := service.NewLedgerService(flavorRepo, productRepo, customerRepo, db, wsHub)
	reportService := service.NewReportService(reportRepo)
	authService := service.NewAuthService(userRepo)

	// Seed the default admin on first run
	if err := authService.Bootstrap(); err != nil {
		log.Fatal("Failed to bootstrap admin user: ", err)
	}

	authHandler := handler.NewAuthHandler(authService)
	flavorHandler := handler.NewFlavorHandler(ledgerService)
	productHandler := handler.NewProductHandler(ledgerService)
	stockHandler := handler.NewStockHandler(ledgerService, reportService)
	saleHandler := handler.NewSaleHandler(ledgerService, reportService)
	customerHandler := handler.NewCustomerHandler(ledgerService)
	investmentHandler := handler.NewInvestmentHandler(ledgerService, reportService)
	reportHandler := handler.NewReportHandler(ledgerService, reportService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Soda Business Manager v1.0",
	})

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Dashboard (staff get a stock-only view, enforced in the handler)
	protected.Get("/dashboard", reportHandler.GetDashboard)

	// Sales and customers are open to both roles
	protected.Get("/sales", saleHandler.GetSalesHistory)
	protected.Post("/sales", saleHandler.RecordSale)
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Post("/customers", customerHandler.CreateCustomer)
	protected.Put("/customers/:id", customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", middleware.RequireAdmin(), customerHandler.DeleteCustomer)

	// Everything below is admin only
	admin := protected.Group("", middleware.RequireAdmin())

	admin.Get("/flavors", flavorHandler.GetFlavors)
	admin.Post("/flavors", flavorHandler.CreateFlavor)
	admin.Put("/flavors/:id", flavorHandler.UpdateFlavor)
	admin.Delete("/flavors/:id", flavorHandler.DeleteFlavor)

	admin.Get("/products", productHandler.GetProducts)
	admin.Post("/products", productHandler.CreateProduct)
	admin.Put("/products/:id", productHandler.UpdateProduct)
	admin.Delete("/products/:id", productHandler.DeleteProduct)

	admin.Get("/stock-additions", stockHandler.GetStockHistory)
	admin.Post("/stock-additions", stockHandler.AddStock)

	admin.Get("/investments", investmentHandler.GetInvestments)
	admin.Post("/investments", investmentHandler.AddInvestment)

	admin.Get("/reports/financial-summary", reportHandler.GetFinancialSummary)
	admin.Get("/reports/monthly", reportHandler.GetMonthlyRollup)
	admin.Get("/reports/top-flavors", reportHandler.GetTopFlavors)
	admin.Get("/reports/top-customers", reportHandler.GetTopCustomers)
	admin.Get("/reports/low-stock", reportHandler.GetLowStock)
	admin.Get("/activity-logs", reportHandler.GetActivityLogs)

	// WebSocket route: dashboards subscribe for live ledger updates
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
