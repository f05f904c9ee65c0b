package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"quartermaster/internal/adapters/http/middleware"
	"quartermaster/internal/adapters/http/routes"
	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/config"
	"quartermaster/internal/core/domain"
	"quartermaster/internal/core/services"
	"quartermaster/internal/pkg/password"
	"quartermaster/internal/pkg/token"
)

const testSecret = "routes-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		Port:    "0",
		JWT:     config.JWTConfig{Secret: testSecret},
	}
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := config.SeedEquipmentTypes(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	routes.Setup(app, db, testConfig(), zap.NewNop())
	return app, db
}

func createBase(t *testing.T, db *gorm.DB, name string) *models.Base {
	t.Helper()
	base := &models.Base{Name: name, Location: name + " proving ground"}
	if err := db.Create(base).Error; err != nil {
		t.Fatalf("create base: %v", err)
	}
	return base
}

// createUser inserts a user directly and returns a signed session token
func createUser(t *testing.T, db *gorm.DB, username string, role domain.Role, baseID *uint) (*models.User, string) {
	t.Helper()

	hash, err := password.Hash("garrison1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		Email:        username + "@mil.example",
		PasswordHash: hash,
		Role:         role,
		BaseID:       baseID,
		FullName:     "Test " + username,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	signed, err := token.Generate(user.ID, user.Username, user.Role, user.BaseID, testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, signed
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doRequest(t *testing.T, app *fiber.App, method, target, bearer string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, target, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	resp.Body.Close()
	return resp, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestAuthFlow(t *testing.T) {
	app, db := setupApp(t)
	base := createBase(t, db, "Fort Bragg")

	signup := map[string]interface{}{
		"username": "commander1",
		"email":    "commander1@mil.example",
		"password": "garrison1",
		"fullName": "Cmdr One",
		"role":     "base_commander",
		"baseId":   base.ID,
	}

	resp, env := doRequest(t, app, http.MethodPost, "/api/auth/signup", "", signup)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status = %d, error = %q", resp.StatusCode, env.Error)
	}

	var result services.AuthResult
	decodeData(t, env, &result)
	if result.Token == "" {
		t.Fatal("signup returned no token")
	}
	if result.User.Role != domain.RoleBaseCommander {
		t.Fatalf("signup role = %q", result.User.Role)
	}

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("signup did not set the session cookie")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be http-only")
	}

	// Duplicate username conflicts
	resp, _ = doRequest(t, app, http.MethodPost, "/api/auth/signup", "", signup)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate signup status = %d", resp.StatusCode)
	}

	// Too-short password is rejected before any lookup
	short := map[string]interface{}{
		"username": "other", "email": "other@mil.example",
		"password": "abc", "fullName": "Other",
		"role": "logistics_officer", "baseId": base.ID,
	}
	resp, _ = doRequest(t, app, http.MethodPost, "/api/auth/signup", "", short)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("short password status = %d", resp.StatusCode)
	}

	resp, _ = doRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "commander1", "password": "wrong-pass",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", resp.StatusCode)
	}

	resp, env = doRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "commander1", "password": "garrison1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, error = %q", resp.StatusCode, env.Error)
	}
	decodeData(t, env, &result)

	resp, env = doRequest(t, app, http.MethodGet, "/api/auth/me", result.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d", resp.StatusCode)
	}
	var me models.UserResponse
	decodeData(t, env, &me)
	if me.Username != "commander1" {
		t.Fatalf("me username = %q", me.Username)
	}

	// No token at all
	resp, _ = doRequest(t, app, http.MethodGet, "/api/auth/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated me status = %d", resp.StatusCode)
	}
}

func TestTransferLifecycle(t *testing.T) {
	app, db := setupApp(t)
	alpha := createBase(t, db, "Fort Alpha")
	bravo := createBase(t, db, "Fort Bravo")

	_, adminToken := createUser(t, db, "admin", domain.RoleAdmin, nil)
	officer, officerToken := createUser(t, db, "log_alpha", domain.RoleLogisticsOfficer, &alpha.ID)
	_, bravoToken := createUser(t, db, "cmdr_bravo", domain.RoleBaseCommander, &bravo.ID)

	// Requesting out of a base the actor cannot access is forbidden
	resp, _ := doRequest(t, app, http.MethodPost, "/api/transfers", officerToken, map[string]interface{}{
		"from_base_id": bravo.ID, "to_base_id": alpha.ID,
		"equipment_type_id": 1, "quantity": 5,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign source status = %d", resp.StatusCode)
	}

	// Quantity must be positive
	resp, _ = doRequest(t, app, http.MethodPost, "/api/transfers", officerToken, map[string]interface{}{
		"from_base_id": alpha.ID, "to_base_id": bravo.ID,
		"equipment_type_id": 1, "quantity": 0,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("zero quantity status = %d", resp.StatusCode)
	}

	// Source and destination must differ
	resp, _ = doRequest(t, app, http.MethodPost, "/api/transfers", officerToken, map[string]interface{}{
		"from_base_id": alpha.ID, "to_base_id": alpha.ID,
		"equipment_type_id": 1, "quantity": 5,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("same base status = %d", resp.StatusCode)
	}

	resp, env := doRequest(t, app, http.MethodPost, "/api/transfers", officerToken, map[string]interface{}{
		"from_base_id": alpha.ID, "to_base_id": bravo.ID,
		"equipment_type_id": 1, "quantity": 5, "reason": "resupply",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create transfer status = %d, error = %q", resp.StatusCode, env.Error)
	}
	var transfer models.Transfer
	decodeData(t, env, &transfer)
	if transfer.Status != domain.TransferPending {
		t.Fatalf("new transfer status = %q", transfer.Status)
	}
	if transfer.RequestedBy != officer.ID {
		t.Fatalf("requested_by = %d, want %d", transfer.RequestedBy, officer.ID)
	}

	statusURL := fmt.Sprintf("/api/transfers/%d/status", transfer.ID)

	// An officer cannot advance a transfer
	resp, _ = doRequest(t, app, http.MethodPatch, statusURL, officerToken, map[string]string{"status": "in_transit"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("officer advance status = %d", resp.StatusCode)
	}

	// Skipping in_transit is an invalid transition
	resp, _ = doRequest(t, app, http.MethodPatch, statusURL, bravoToken, map[string]string{"status": "completed"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("skip transition status = %d", resp.StatusCode)
	}

	// Destination commander may advance it
	resp, env = doRequest(t, app, http.MethodPatch, statusURL, bravoToken, map[string]string{"status": "in_transit"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("advance status = %d, error = %q", resp.StatusCode, env.Error)
	}
	decodeData(t, env, &transfer)
	if transfer.ApprovedBy == nil {
		t.Fatal("advanced transfer has no approver")
	}

	resp, env = doRequest(t, app, http.MethodPatch, statusURL, adminToken, map[string]string{"status": "completed"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status = %d, error = %q", resp.StatusCode, env.Error)
	}
	decodeData(t, env, &transfer)
	if transfer.CompletedAt == nil {
		t.Fatal("completed transfer has no completion time")
	}

	// Terminal states accept no further transition
	resp, _ = doRequest(t, app, http.MethodPatch, statusURL, adminToken, map[string]string{"status": "cancelled"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("terminal transition status = %d", resp.StatusCode)
	}
}

func TestTransferCancelAuthority(t *testing.T) {
	app, db := setupApp(t)
	alpha := createBase(t, db, "Fort Alpha")
	bravo := createBase(t, db, "Fort Bravo")

	officer, officerToken := createUser(t, db, "log_alpha", domain.RoleLogisticsOfficer, &alpha.ID)
	_, otherToken := createUser(t, db, "log_alpha2", domain.RoleLogisticsOfficer, &alpha.ID)

	resp, env := doRequest(t, app, http.MethodPost, "/api/transfers", officerToken, map[string]interface{}{
		"from_base_id": alpha.ID, "to_base_id": bravo.ID,
		"equipment_type_id": 2, "quantity": 100,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create transfer status = %d, error = %q", resp.StatusCode, env.Error)
	}
	var transfer models.Transfer
	decodeData(t, env, &transfer)
	if transfer.RequestedBy != officer.ID {
		t.Fatalf("requested_by = %d", transfer.RequestedBy)
	}

	statusURL := fmt.Sprintf("/api/transfers/%d/status", transfer.ID)

	// Only the requester or an admin may cancel
	resp, _ = doRequest(t, app, http.MethodPatch, statusURL, otherToken, map[string]string{"status": "cancelled"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-requester cancel status = %d", resp.StatusCode)
	}

	resp, env = doRequest(t, app, http.MethodPatch, statusURL, officerToken, map[string]string{"status": "cancelled"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("requester cancel status = %d, error = %q", resp.StatusCode, env.Error)
	}
	decodeData(t, env, &transfer)
	if transfer.Status != domain.TransferCancelled {
		t.Fatalf("cancelled transfer status = %q", transfer.Status)
	}
}

func TestTransferScoping(t *testing.T) {
	app, db := setupApp(t)
	alpha := createBase(t, db, "Fort Alpha")
	bravo := createBase(t, db, "Fort Bravo")
	charlie := createBase(t, db, "Fort Charlie")

	_, adminToken := createUser(t, db, "admin", domain.RoleAdmin, nil)
	_, alphaToken := createUser(t, db, "cmdr_alpha", domain.RoleBaseCommander, &alpha.ID)
	_, charlieToken := createUser(t, db, "cmdr_charlie", domain.RoleBaseCommander, &charlie.ID)

	for _, tc := range []struct{ from, to uint }{
		{alpha.ID, bravo.ID},
		{bravo.ID, alpha.ID},
		{bravo.ID, charlie.ID},
	} {
		fromToken := adminToken
		resp, env := doRequest(t, app, http.MethodPost, "/api/transfers", fromToken, map[string]interface{}{
			"from_base_id": tc.from, "to_base_id": tc.to,
			"equipment_type_id": 1, "quantity": 1,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed transfer status = %d, error = %q", resp.StatusCode, env.Error)
		}
	}

	var transfers []models.Transfer

	_, env := doRequest(t, app, http.MethodGet, "/api/transfers", adminToken, nil)
	decodeData(t, env, &transfers)
	if len(transfers) != 3 {
		t.Fatalf("admin sees %d transfers, want 3", len(transfers))
	}

	// Commanders see only movements touching their own base
	_, env = doRequest(t, app, http.MethodGet, "/api/transfers", alphaToken, nil)
	decodeData(t, env, &transfers)
	if len(transfers) != 2 {
		t.Fatalf("alpha commander sees %d transfers, want 2", len(transfers))
	}
	for _, tr := range transfers {
		if tr.FromBaseID != alpha.ID && tr.ToBaseID != alpha.ID {
			t.Fatalf("transfer %d does not touch base %d", tr.ID, alpha.ID)
		}
	}

	_, env = doRequest(t, app, http.MethodGet, "/api/transfers", charlieToken, nil)
	decodeData(t, env, &transfers)
	if len(transfers) != 1 {
		t.Fatalf("charlie commander sees %d transfers, want 1", len(transfers))
	}

	// A base_id filter cannot widen a non-admin's scope
	target := fmt.Sprintf("/api/transfers?base_id=%d", bravo.ID)
	_, env = doRequest(t, app, http.MethodGet, target, charlieToken, nil)
	decodeData(t, env, &transfers)
	for _, tr := range transfers {
		if tr.FromBaseID != charlie.ID && tr.ToBaseID != charlie.ID {
			t.Fatalf("scope widened: transfer %d", tr.ID)
		}
	}
}

func TestAssignmentLifecycle(t *testing.T) {
	app, db := setupApp(t)
	alpha := createBase(t, db, "Fort Alpha")

	_, cmdrToken := createUser(t, db, "cmdr_alpha", domain.RoleBaseCommander, &alpha.ID)
	_, officerToken := createUser(t, db, "log_alpha", domain.RoleLogisticsOfficer, &alpha.ID)

	resp, env := doRequest(t, app, http.MethodPost, "/api/assets", cmdrToken, map[string]interface{}{
		"equipment_type_id": 1, "base_id": alpha.ID,
		"serial_number": "M4-0001", "condition": "good",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create asset status = %d, error = %q", resp.StatusCode, env.Error)
	}
	var asset models.Asset
	decodeData(t, env, &asset)

	// Officers cannot assign
	resp, _ = doRequest(t, app, http.MethodPost, "/api/assignments", officerToken, map[string]interface{}{
		"asset_id": asset.ID, "assigned_to": "Sgt. Miller",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("officer assign status = %d", resp.StatusCode)
	}

	resp, env = doRequest(t, app, http.MethodPost, "/api/assignments", cmdrToken, map[string]interface{}{
		"asset_id": asset.ID, "assigned_to": "Sgt. Miller", "purpose": "patrol",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("assign status = %d, error = %q", resp.StatusCode, env.Error)
	}
	var assignment models.Assignment
	decodeData(t, env, &assignment)

	// The asset flipped to assigned in the same transaction
	var stored models.Asset
	if err := db.First(&stored, asset.ID).Error; err != nil {
		t.Fatalf("load asset: %v", err)
	}
	if stored.Status != domain.AssetAssigned {
		t.Fatalf("asset status = %q, want assigned", stored.Status)
	}

	// An assigned asset cannot be lent twice
	resp, _ = doRequest(t, app, http.MethodPost, "/api/assignments", cmdrToken, map[string]interface{}{
		"asset_id": asset.ID, "assigned_to": "Pvt. Doe",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("double assign status = %d", resp.StatusCode)
	}

	statusURL := fmt.Sprintf("/api/assignments/%d/status", assignment.ID)
	resp, env = doRequest(t, app, http.MethodPatch, statusURL, cmdrToken, map[string]string{"status": "returned"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("return status = %d, error = %q", resp.StatusCode, env.Error)
	}
	decodeData(t, env, &assignment)
	if assignment.ReturnDate == nil {
		t.Fatal("returned assignment has no return date")
	}

	if err := db.First(&stored, asset.ID).Error; err != nil {
		t.Fatalf("reload asset: %v", err)
	}
	if stored.Status != domain.AssetAvailable {
		t.Fatalf("asset status = %q, want available", stored.Status)
	}

	// A closed assignment accepts no further transition
	resp, _ = doRequest(t, app, http.MethodPatch, statusURL, cmdrToken, map[string]string{"status": "lost"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("closed assignment status = %d", resp.StatusCode)
	}
}

func TestDashboardMetrics(t *testing.T) {
	app, db := setupApp(t)
	alpha := createBase(t, db, "Fort Alpha")
	bravo := createBase(t, db, "Fort Bravo")

	_, adminToken := createUser(t, db, "admin", domain.RoleAdmin, nil)
	_, officerToken := createUser(t, db, "log_alpha", domain.RoleLogisticsOfficer, &alpha.ID)

	// Nothing recorded yet: every figure is zero
	_, env := doRequest(t, app, http.MethodGet, "/api/dashboard/metrics", officerToken, nil)
	var metrics services.DashboardMetrics
	decodeData(t, env, &metrics)
	if metrics.NetMovement != 0 || metrics.Purchases != 0 || metrics.Expenditures != 0 {
		t.Fatalf("empty metrics = %+v", metrics)
	}

	resp, env := doRequest(t, app, http.MethodPost, "/api/purchases", officerToken, map[string]interface{}{
		"base_id": alpha.ID, "equipment_type_id": 1,
		"quantity": 50, "unit_cost": 1200.0, "supplier": "Colt",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("purchase status = %d, error = %q", resp.StatusCode, env.Error)
	}

	// A pending transfer out must not move the needle
	resp, env = doRequest(t, app, http.MethodPost, "/api/transfers", officerToken, map[string]interface{}{
		"from_base_id": alpha.ID, "to_base_id": bravo.ID,
		"equipment_type_id": 1, "quantity": 10,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("transfer status = %d, error = %q", resp.StatusCode, env.Error)
	}
	var transfer models.Transfer
	decodeData(t, env, &transfer)

	_, env = doRequest(t, app, http.MethodGet, "/api/dashboard/metrics", officerToken, nil)
	decodeData(t, env, &metrics)
	if metrics.Purchases != 50 {
		t.Fatalf("purchases = %d, want 50", metrics.Purchases)
	}
	if metrics.TransfersOut != 0 {
		t.Fatalf("pending transfer counted: transfersOut = %d", metrics.TransfersOut)
	}
	if metrics.NetMovement != 50 {
		t.Fatalf("netMovement = %d, want 50", metrics.NetMovement)
	}

	statusURL := fmt.Sprintf("/api/transfers/%d/status", transfer.ID)
	for _, next := range []string{"in_transit", "completed"} {
		resp, env = doRequest(t, app, http.MethodPatch, statusURL, adminToken, map[string]string{"status": next})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("advance to %s status = %d, error = %q", next, resp.StatusCode, env.Error)
		}
	}

	_, env = doRequest(t, app, http.MethodGet, "/api/dashboard/metrics", officerToken, nil)
	decodeData(t, env, &metrics)
	if metrics.TransfersOut != 10 {
		t.Fatalf("transfersOut = %d, want 10", metrics.TransfersOut)
	}
	if metrics.NetMovement != 40 {
		t.Fatalf("netMovement = %d, want 40", metrics.NetMovement)
	}
	if len(metrics.Breakdown.TransfersOut) != 1 || metrics.Breakdown.TransfersOut[0].Quantity != 10 {
		t.Fatalf("transfersOut breakdown = %+v", metrics.Breakdown.TransfersOut)
	}

	// The receiving side sees the same movement as inbound
	_, env = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/dashboard/metrics?base_id=%d", bravo.ID), adminToken, nil)
	decodeData(t, env, &metrics)
	if metrics.TransfersIn != 10 || metrics.NetMovement != 10 {
		t.Fatalf("bravo metrics = %+v", metrics)
	}
}

func TestAdminConsole(t *testing.T) {
	app, db := setupApp(t)
	alpha := createBase(t, db, "Fort Alpha")

	_, adminToken := createUser(t, db, "admin", domain.RoleAdmin, nil)
	_, officerToken := createUser(t, db, "log_alpha", domain.RoleLogisticsOfficer, &alpha.ID)

	// Non-admins are rejected at the group boundary
	for _, target := range []string{"/api/admin/users", "/api/admin/stats", "/api/admin/audit-logs"} {
		resp, _ := doRequest(t, app, http.MethodGet, target, officerToken, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("GET %s as officer status = %d", target, resp.StatusCode)
		}
	}

	// Admins must not carry a home base
	resp, _ := doRequest(t, app, http.MethodPost, "/api/admin/users", adminToken, map[string]interface{}{
		"username": "admin2", "email": "admin2@mil.example",
		"password": "garrison1", "fullName": "Second Admin",
		"role": "admin", "baseId": alpha.ID,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("admin with base status = %d", resp.StatusCode)
	}

	resp, env := doRequest(t, app, http.MethodPost, "/api/admin/users", adminToken, map[string]interface{}{
		"username": "log_alpha2", "email": "log_alpha2@mil.example",
		"password": "garrison1", "fullName": "Officer Two",
		"role": "logistics_officer", "baseId": alpha.ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user status = %d, error = %q", resp.StatusCode, env.Error)
	}

	resp, env = doRequest(t, app, http.MethodGet, "/api/admin/stats", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats status = %d", resp.StatusCode)
	}
	var stats services.AdminStats
	decodeData(t, env, &stats)
	if stats.TotalUsers != 3 {
		t.Fatalf("totalUsers = %d, want 3", stats.TotalUsers)
	}
	if stats.TotalBases != 1 {
		t.Fatalf("totalBases = %d, want 1", stats.TotalBases)
	}

	// The user creation above must have left exactly one audit entry
	var auditCount int64
	if err := db.Model(&models.AuditLog{}).Where("record_kind = ?", "user").Count(&auditCount).Error; err != nil {
		t.Fatalf("count audit logs: %v", err)
	}
	if auditCount != 1 {
		t.Fatalf("user audit entries = %d, want 1", auditCount)
	}

	resp, env = doRequest(t, app, http.MethodGet, "/api/admin/audit-logs?page=1&limit=10", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("audit logs status = %d", resp.StatusCode)
	}
	var page struct {
		Data []models.AuditLog `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	decodeData(t, env, &page)
	if page.Meta.Total != stats.RecentActivity {
		t.Fatalf("audit total = %d, recentActivity = %d", page.Meta.Total, stats.RecentActivity)
	}
}

func TestExpenditureLedger(t *testing.T) {
	app, db := setupApp(t)
	alpha := createBase(t, db, "Fort Alpha")
	bravo := createBase(t, db, "Fort Bravo")

	_, adminToken := createUser(t, db, "admin", domain.RoleAdmin, nil)
	_, alphaToken := createUser(t, db, "log_alpha", domain.RoleLogisticsOfficer, &alpha.ID)
	_, bravoToken := createUser(t, db, "log_bravo", domain.RoleLogisticsOfficer, &bravo.ID)

	// Recording against a base the actor cannot access is forbidden
	resp, _ := doRequest(t, app, http.MethodPost, "/api/expenditures", alphaToken, map[string]interface{}{
		"base_id": bravo.ID, "equipment_type_id": 2,
		"quantity": 100, "expenditure_type": "training",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign base status = %d", resp.StatusCode)
	}

	resp, _ = doRequest(t, app, http.MethodPost, "/api/expenditures", alphaToken, map[string]interface{}{
		"base_id": alpha.ID, "equipment_type_id": 2,
		"quantity": 0, "expenditure_type": "training",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("zero quantity status = %d", resp.StatusCode)
	}

	resp, _ = doRequest(t, app, http.MethodPost, "/api/expenditures", alphaToken, map[string]interface{}{
		"base_id": alpha.ID, "equipment_type_id": 2,
		"quantity": 100, "expenditure_type": "celebration",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown type status = %d", resp.StatusCode)
	}

	resp, env := doRequest(t, app, http.MethodPost, "/api/expenditures", alphaToken, map[string]interface{}{
		"base_id": alpha.ID, "equipment_type_id": 2,
		"quantity": 100, "expenditure_type": "training",
		"reason": "range day", "operation_name": "Steel Rain",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expenditure status = %d, error = %q", resp.StatusCode, env.Error)
	}
	var expenditure models.Expenditure
	decodeData(t, env, &expenditure)
	if expenditure.ExpenditureType != domain.ExpenditureTraining {
		t.Fatalf("expenditure type = %q", expenditure.ExpenditureType)
	}

	// Exactly one audit entry for the successful create
	var auditCount int64
	if err := db.Model(&models.AuditLog{}).Where("record_kind = ?", "expenditure").Count(&auditCount).Error; err != nil {
		t.Fatalf("count audit logs: %v", err)
	}
	if auditCount != 1 {
		t.Fatalf("expenditure audit entries = %d, want 1", auditCount)
	}

	// Lists are scoped to the actor's home base
	var expenditures []models.Expenditure
	_, env = doRequest(t, app, http.MethodGet, "/api/expenditures", alphaToken, nil)
	decodeData(t, env, &expenditures)
	if len(expenditures) != 1 {
		t.Fatalf("alpha officer sees %d expenditures, want 1", len(expenditures))
	}

	_, env = doRequest(t, app, http.MethodGet, "/api/expenditures", bravoToken, nil)
	decodeData(t, env, &expenditures)
	if len(expenditures) != 0 {
		t.Fatalf("bravo officer sees %d expenditures, want 0", len(expenditures))
	}

	_, env = doRequest(t, app, http.MethodGet, "/api/expenditures", adminToken, nil)
	decodeData(t, env, &expenditures)
	if len(expenditures) != 1 {
		t.Fatalf("admin sees %d expenditures, want 1", len(expenditures))
	}

	// The expenditure subtracts from the effective balance
	var metrics services.DashboardMetrics
	_, env = doRequest(t, app, http.MethodGet, "/api/dashboard/metrics", alphaToken, nil)
	decodeData(t, env, &metrics)
	if metrics.Expenditures != 100 {
		t.Fatalf("expenditures = %d, want 100", metrics.Expenditures)
	}
}

func TestDashboardMetricsFilters(t *testing.T) {
	app, db := setupApp(t)
	alpha := createBase(t, db, "Fort Alpha")

	_, adminToken := createUser(t, db, "admin", domain.RoleAdmin, nil)

	for _, p := range []struct {
		equipmentTypeID uint
		quantity        int
	}{{1, 50}, {2, 100}} {
		resp, env := doRequest(t, app, http.MethodPost, "/api/purchases", adminToken, map[string]interface{}{
			"base_id": alpha.ID, "equipment_type_id": p.equipmentTypeID, "quantity": p.quantity,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("purchase status = %d, error = %q", resp.StatusCode, env.Error)
		}
	}

	resp, env := doRequest(t, app, http.MethodPost, "/api/assets", adminToken, map[string]interface{}{
		"equipment_type_id": 1, "base_id": alpha.ID, "serial_number": "M4-0002",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create asset status = %d, error = %q", resp.StatusCode, env.Error)
	}
	var asset models.Asset
	decodeData(t, env, &asset)
	resp, env = doRequest(t, app, http.MethodPost, "/api/assignments", adminToken, map[string]interface{}{
		"asset_id": asset.ID, "assigned_to": "Sgt. Miller",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("assign status = %d, error = %q", resp.StatusCode, env.Error)
	}

	day := "2006-01-02"
	yesterday := time.Now().AddDate(0, 0, -1).Format(day)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(day)

	// A date range spanning today includes everything, breakdowns included
	target := fmt.Sprintf("/api/dashboard/metrics?base_id=%d&start_date=%s&end_date=%s", alpha.ID, yesterday, tomorrow)
	resp, env = doRequest(t, app, http.MethodGet, target, adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("date-ranged metrics status = %d, error = %q", resp.StatusCode, env.Error)
	}
	var metrics services.DashboardMetrics
	decodeData(t, env, &metrics)
	if metrics.Purchases != 150 {
		t.Fatalf("purchases = %d, want 150", metrics.Purchases)
	}
	if metrics.Assignments != 1 {
		t.Fatalf("assignments = %d, want 1", metrics.Assignments)
	}
	if len(metrics.Breakdown.Purchases) != 2 {
		t.Fatalf("purchase breakdown = %+v", metrics.Breakdown.Purchases)
	}

	// A range entirely in the past matches nothing
	target = fmt.Sprintf("/api/dashboard/metrics?base_id=%d&start_date=2020-01-01&end_date=2020-01-02", alpha.ID)
	resp, env = doRequest(t, app, http.MethodGet, target, adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("past-range metrics status = %d, error = %q", resp.StatusCode, env.Error)
	}
	decodeData(t, env, &metrics)
	if metrics.Purchases != 0 || metrics.Assignments != 0 || metrics.NetMovement != 0 {
		t.Fatalf("past-range metrics = %+v", metrics)
	}

	// Narrowing to one equipment type drops the other's quantities
	target = fmt.Sprintf("/api/dashboard/metrics?base_id=%d&equipment_type_id=1", alpha.ID)
	_, env = doRequest(t, app, http.MethodGet, target, adminToken, nil)
	decodeData(t, env, &metrics)
	if metrics.Purchases != 50 {
		t.Fatalf("filtered purchases = %d, want 50", metrics.Purchases)
	}
	if len(metrics.Breakdown.Purchases) != 1 || metrics.Breakdown.Purchases[0].Quantity != 50 {
		t.Fatalf("filtered breakdown = %+v", metrics.Breakdown.Purchases)
	}
}

func TestScopedListsForUnassignedActor(t *testing.T) {
	app, db := setupApp(t)
	alpha := createBase(t, db, "Fort Alpha")

	_, adminToken := createUser(t, db, "admin", domain.RoleAdmin, nil)
	_, officerToken := createUser(t, db, "log_alpha", domain.RoleLogisticsOfficer, &alpha.ID)

	resp, env := doRequest(t, app, http.MethodPost, "/api/purchases", officerToken, map[string]interface{}{
		"base_id": alpha.ID, "equipment_type_id": 2, "quantity": 1000,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("purchase status = %d, error = %q", resp.StatusCode, env.Error)
	}

	// A commander whose home base was cleared sees empty lists, not errors
	commander, _ := createUser(t, db, "cmdr_floating", domain.RoleBaseCommander, &alpha.ID)
	if err := db.Model(&models.User{}).Where("id = ?", commander.ID).Update("base_id", nil).Error; err != nil {
		t.Fatalf("clear home base: %v", err)
	}
	floatingToken, err := token.Generate(commander.ID, commander.Username, commander.Role, nil, testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var purchases []models.Purchase
	resp, env = doRequest(t, app, http.MethodGet, "/api/purchases", floatingToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("floating list status = %d", resp.StatusCode)
	}
	decodeData(t, env, &purchases)
	if len(purchases) != 0 {
		t.Fatalf("floating commander sees %d purchases, want 0", len(purchases))
	}

	// Admin still sees everything
	resp, env = doRequest(t, app, http.MethodGet, "/api/purchases", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin list status = %d", resp.StatusCode)
	}
	decodeData(t, env, &purchases)
	if len(purchases) != 1 {
		t.Fatalf("admin sees %d purchases, want 1", len(purchases))
	}
}
