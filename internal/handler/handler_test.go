package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Akhileshkolipakula/soda-business-manager/internal/middleware"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/migrations"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/repository"
	"github.com/Akhileshkolipakula/soda-business-manager/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupApp wires the routes the way the server does, against an in-memory
// store with the bootstrap admin and one staff account.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	flavorRepo := repository.NewFlavorRepo(db)
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	reportRepo := repository.NewReportRepo(db)
	userRepo := repository.NewUserRepo(db)

	ledgerService := service.NewLedgerService(flavorRepo, productRepo, customerRepo, db, nil)
	reportService := service.NewReportService(reportRepo)
	authService := service.NewAuthService(userRepo)

	if err := authService.Bootstrap(); err != nil {
		t.Fatalf("bootstrap admin: %v", err)
	}
	if _, err := authService.Register("ravi", "abcd"); err != nil {
		t.Fatalf("register staff: %v", err)
	}

	authHandler := NewAuthHandler(authService)
	flavorHandler := NewFlavorHandler(ledgerService)
	reportHandler := NewReportHandler(ledgerService, reportService)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("", middleware.RequireAuth(userRepo))
	protected.Get("/dashboard", reportHandler.GetDashboard)

	admin := protected.Group("", middleware.RequireAdmin())
	admin.Post("/flavors", flavorHandler.CreateFlavor)
	admin.Get("/reports/financial-summary", reportHandler.GetFinancialSummary)

	return app
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}

	var parsed struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if parsed.Token == "" {
		t.Fatalf("login %s: empty token", username)
	}
	return parsed.Token
}

func get(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func TestAdminRoutesRejectStaff(t *testing.T) {
	app := setupApp(t)
	staff := login(t, app, "ravi", "abcd")
	admin := login(t, app, "admin", "admin123")

	resp := get(t, app, "/api/v1/reports/financial-summary", staff)
	if resp.StatusCode != 403 {
		t.Fatalf("staff on admin report: want 403, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest("POST", "/api/v1/flavors", strings.NewReader(`{"name":"Cola"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+staff)
	postResp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("staff flavor create: %v", err)
	}
	if postResp.StatusCode != 403 {
		t.Fatalf("staff on admin mutation: want 403, got %d", postResp.StatusCode)
	}

	resp = get(t, app, "/api/v1/reports/financial-summary", admin)
	if resp.StatusCode != 200 {
		t.Fatalf("admin on admin report: want 200, got %d", resp.StatusCode)
	}
}

// Staff get the stock-only dashboard; the financial summary and low-stock
// alert are admin fields.
func TestDashboardRoleSplit(t *testing.T) {
	app := setupApp(t)
	staff := login(t, app, "ravi", "abcd")
	admin := login(t, app, "admin", "admin123")

	resp := get(t, app, "/api/v1/dashboard", staff)
	if resp.StatusCode != 200 {
		t.Fatalf("staff dashboard: status %d", resp.StatusCode)
	}
	var staffBody map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&staffBody); err != nil {
		t.Fatalf("decode staff dashboard: %v", err)
	}
	if _, ok := staffBody["total_stock"]; !ok {
		t.Fatalf("staff dashboard missing total_stock: %v", staffBody)
	}
	if _, ok := staffBody["summary"]; ok {
		t.Fatalf("staff dashboard leaks the financial summary: %v", staffBody)
	}
	if _, ok := staffBody["low_stock"]; ok {
		t.Fatalf("staff dashboard leaks the low-stock report: %v", staffBody)
	}

	resp = get(t, app, "/api/v1/dashboard", admin)
	if resp.StatusCode != 200 {
		t.Fatalf("admin dashboard: status %d", resp.StatusCode)
	}
	var adminBody map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&adminBody); err != nil {
		t.Fatalf("decode admin dashboard: %v", err)
	}
	if _, ok := adminBody["summary"]; !ok {
		t.Fatalf("admin dashboard missing summary: %v", adminBody)
	}
	if _, ok := adminBody["low_stock"]; !ok {
		t.Fatalf("admin dashboard missing low_stock: %v", adminBody)
	}
}

func TestAuthStatusCodes(t *testing.T) {
	app := setupApp(t)

	resp := get(t, app, "/api/v1/dashboard", "")
	if resp.StatusCode != 401 {
		t.Fatalf("no token: want 401, got %d", resp.StatusCode)
	}

	resp = get(t, app, "/api/v1/dashboard", "not-a-token")
	if resp.StatusCode != 401 {
		t.Fatalf("garbage token: want 401, got %d", resp.StatusCode)
	}

	body := `{"username":"admin","password":"wrong"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	loginResp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	if loginResp.StatusCode != 401 {
		t.Fatalf("wrong password: want 401, got %d", loginResp.StatusCode)
	}
}
