package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/app/repository"
	"github.com/brewlogic/BrewLogic/internal/pkg/account"
	"github.com/brewlogic/BrewLogic/internal/pkg/statistics"
)

var adminNow = time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

type memUserRepo struct {
	users map[uint]*models.User
}

func (r *memUserRepo) Create(u *models.User) error {
	u.ID = uint(len(r.users) + 1)
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByUsernameOrEmail(identifier string) (*models.User, error) {
	return r.GetByUsername(identifier)
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) Save(u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) Delete(id uint) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List() ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) Count() (int64, error)                      { return int64(len(r.users)), nil }
func (r *memUserRepo) CountActiveMembers(time.Time) (int64, error) { return 0, nil }
func (r *memUserRepo) CountPendingMembers() (int64, error)         { return 0, nil }

type memTxRepo struct {
	txs map[string]*models.Transaction
}

func (r *memTxRepo) Create(tx *models.Transaction) error { r.txs[tx.ID] = tx; return nil }

func (r *memTxRepo) GetByID(id string) (*models.Transaction, error) {
	if tx, ok := r.txs[id]; ok {
		return tx, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memTxRepo) List() ([]models.Transaction, error) {
	out := []models.Transaction{}
	for _, tx := range r.txs {
		out = append(out, *tx)
	}
	return out, nil
}

func (r *memTxRepo) UpdateStatus(id, status string) error {
	tx, err := r.GetByID(id)
	if err != nil {
		return err
	}
	tx.Status = status
	return nil
}

func (r *memTxRepo) Delete(id string) error {
	if _, ok := r.txs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.txs, id)
	return nil
}

func (r *memTxRepo) SumAmountByStatus([]string) (int64, error) { return 0, nil }

type memSiteConfig struct {
	rows map[string]*models.SiteConfig
}

func (m *memSiteConfig) GetSiteConfig(key string) (*models.SiteConfig, error) {
	if row, ok := m.rows[key]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memSiteConfig) SaveSiteConfig(cfg *models.SiteConfig) error {
	m.rows[cfg.Key] = cfg
	return nil
}

type adminRegistrar struct {
	users *memUserRepo
}

func (a adminRegistrar) Register(_ context.Context, req account.RegisterRequest) (*models.User, error) {
	u := &models.User{Username: req.Username, Name: req.Name, Email: req.Email, Phone: req.Phone, Role: models.ROLE_MEMBER}
	u.SetPlan(req.Plan)
	return u, a.users.Create(u)
}

type fakeAdminBilling struct {
	grants    []string
	verified  []uint
	confirmed []string
}

func (f *fakeAdminBilling) VerifyPendingUser(_ context.Context, id uint) (*models.User, error) {
	f.verified = append(f.verified, id)
	return &models.User{ID: id, Username: "ana"}, nil
}

func (f *fakeAdminBilling) ConfirmTransaction(_ context.Context, id string) (*models.Transaction, *models.User, error) {
	f.confirmed = append(f.confirmed, id)
	return &models.Transaction{ID: id, Status: models.TxStatusSuccess}, nil, nil
}

func (f *fakeAdminBilling) RecordManualGrant(_ context.Context, u *models.User, plan string, amount int64) (*models.Transaction, error) {
	f.grants = append(f.grants, u.Username+":"+plan)
	return &models.Transaction{}, nil
}

type fakeDashboard struct{ invalidations int }

func (f *fakeDashboard) GetDashboard(context.Context) (*statistics.Dashboard, error) {
	return &statistics.Dashboard{TotalUsers: 4, Revenue: 250000}, nil
}

func (f *fakeDashboard) Invalidate(context.Context) { f.invalidations++ }

type adminFixture struct {
	app     *fiber.App
	users   *memUserRepo
	txs     *memTxRepo
	config  *memSiteConfig
	billing *fakeAdminBilling
	stats   *fakeDashboard
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		users:   &memUserRepo{users: map[uint]*models.User{}},
		txs:     &memTxRepo{txs: map[string]*models.Transaction{}},
		config:  &memSiteConfig{rows: map[string]*models.SiteConfig{}},
		billing: &fakeAdminBilling{},
		stats:   &fakeDashboard{},
	}
	repos := &repository.Repositories{User: f.users, Transaction: f.txs, SiteConfig: f.config}
	ac := NewAdminController(repos, adminRegistrar{users: f.users}, f.billing, f.stats)
	ac.now = func() time.Time { return adminNow }

	app := fiber.New()
	app.Get("/api/admin/dashboard", ac.HandleDashboard)
	app.Get("/api/admin/users", ac.HandleListUsers)
	app.Post("/api/admin/users", ac.HandleCreateUser)
	app.Put("/api/admin/users/:id", ac.HandleUpdateUser)
	app.Delete("/api/admin/users/:id", ac.HandleDeleteUser)
	app.Post("/api/admin/users/:id/verify", ac.HandleVerifyUser)
	app.Get("/api/admin/transactions", ac.HandleListTransactions)
	app.Post("/api/admin/transactions/:id/confirm", ac.HandleConfirmTransaction)
	app.Delete("/api/admin/transactions/:id", ac.HandleDeleteTransaction)
	app.Get("/api/admin/settings/payment", ac.HandleGetPaymentSettings)
	app.Put("/api/admin/settings/payment", ac.HandleUpdatePaymentSettings)
	f.app = app
	return f
}

func TestAdminDashboard(t *testing.T) {
	f := newAdminFixture()
	resp, body := doJSON(t, f.app, "GET", "/api/admin/dashboard", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(4), body["total_users"])
	assert.Equal(t, float64(250000), body["revenue"])
}

func TestAdminCreateUserRecordsGrant(t *testing.T) {
	f := newAdminFixture()

	resp, body := doJSON(t, f.app, "POST", "/api/admin/users", fiber.Map{
		"username": "ana@brew.id", "password": "pw", "name": "Ana", "plan": "Pro Plan", "amount": 150000,
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "ana@brew.id", body["user"].(map[string]any)["username"])
	assert.Equal(t, []string{"ana@brew.id:Pro Plan"}, f.billing.grants)
	assert.Equal(t, 1, f.stats.invalidations)

	// Pending plans and users without a plan get no transaction.
	doJSON(t, f.app, "POST", "/api/admin/users", fiber.Map{"username": "budi", "password": "pw", "plan": "PENDING_Pro Plan"}, nil)
	doJSON(t, f.app, "POST", "/api/admin/users", fiber.Map{"username": "cici", "password": "pw"}, nil)
	assert.Len(t, f.billing.grants, 1)

	resp, _ = doJSON(t, f.app, "POST", "/api/admin/users", fiber.Map{"username": "dodi", "password": "pw", "amount": -5}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminUpdateUser(t *testing.T) {
	f := newAdminFixture()
	plan := "Starter Plan"
	f.users.users[1] = &models.User{ID: 1, Username: "ana", Name: "Ana", Role: models.ROLE_MEMBER, Plan: &plan}

	resp, body := doJSON(t, f.app, "PUT", "/api/admin/users/1", fiber.Map{"plan": "Pro Plan"}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	saved := f.users.users[1]
	assert.Equal(t, "Pro Plan", saved.PlanName())
	require.NotNil(t, saved.SubscriptionStart)
	assert.Equal(t, adminNow, *saved.SubscriptionStart)
	assert.Equal(t, "Ana", saved.Name)
	assert.Equal(t, "active", body["user"].(map[string]any)["membership"].(map[string]any)["status"])

	resp, _ = doJSON(t, f.app, "PUT", "/api/admin/users/1", fiber.Map{"plan": "", "role": "admin"}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, f.users.users[1].Plan)
	assert.Equal(t, models.ROLE_ADMIN, f.users.users[1].Role)

	resp, _ = doJSON(t, f.app, "PUT", "/api/admin/users/1", fiber.Map{"role": "owner"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, f.app, "PUT", "/api/admin/users/99", fiber.Map{"name": "x"}, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminDeleteAndVerifyUser(t *testing.T) {
	f := newAdminFixture()
	f.users.users[1] = &models.User{ID: 1, Username: "ana"}

	resp, _ := doJSON(t, f.app, "POST", "/api/admin/users/1/verify", nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []uint{1}, f.billing.verified)

	resp, _ = doJSON(t, f.app, "DELETE", "/api/admin/users/1", nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, f.users.users)

	resp, _ = doJSON(t, f.app, "DELETE", "/api/admin/users/1", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, f.app, "DELETE", "/api/admin/users/abc", nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminTransactions(t *testing.T) {
	f := newAdminFixture()
	f.txs.txs["ORDER-1"] = &models.Transaction{ID: "ORDER-1", Status: models.TxStatusPending}

	resp, body := doJSON(t, f.app, "GET", "/api/admin/transactions", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["transactions"], 1)

	resp, body = doJSON(t, f.app, "POST", "/api/admin/transactions/ORDER-1/confirm", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"ORDER-1"}, f.billing.confirmed)
	assert.NotContains(t, body, "user")

	resp, _ = doJSON(t, f.app, "DELETE", "/api/admin/transactions/ORDER-1", nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, f.app, "DELETE", "/api/admin/transactions/ORDER-1", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminPaymentSettingsMerge(t *testing.T) {
	f := newAdminFixture()

	resp, body := doJSON(t, f.app, "PUT", "/api/admin/settings/payment", fiber.Map{
		"isProduction": true,
		"sandbox":      fiber.Map{"xendit": fiber.Map{"secretKey": "xnd_dev"}},
		"ignored":      "value",
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	settings := body["settings"].(map[string]any)
	assert.Equal(t, true, settings["isProduction"])
	assert.NotContains(t, settings, "ignored")
	require.Contains(t, f.config.rows, models.SiteConfigPaymentSettings)

	resp, body = doJSON(t, f.app, "GET", "/api/admin/settings/payment", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["isProduction"])
	sandbox := body["sandbox"].(map[string]any)
	assert.Equal(t, "xnd_dev", sandbox["xendit"].(map[string]any)["secretKey"])
}
