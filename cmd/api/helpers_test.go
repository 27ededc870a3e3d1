package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/snackschicken/delivery-api/internal/auth"
	"github.com/snackschicken/delivery-api/internal/config"
	"github.com/snackschicken/delivery-api/internal/order"
	"github.com/snackschicken/delivery-api/internal/product"
	"github.com/snackschicken/delivery-api/internal/stats"
	"github.com/snackschicken/delivery-api/internal/user"
)

const testAdminPassword = "secret123"

var testAdminHash = func() string {
	h, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		panic(err)
	}
	return h
}()

//
// ===== IN-MEMORY STUBS (implement the repository interfaces) =====
//

type stubUserRepo struct {
	users map[string]*user.User
}

func newStubUserRepo() *stubUserRepo { return &stubUserRepo{users: map[string]*user.User{}} }

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) Upsert(ctx context.Context, u *user.User) error {
	cp := *u
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	s.users[u.ID] = &cp
	return nil
}

type stubStatsRepo struct {
	products int
	count    int
	sum      string
	avg      string
}

func (s *stubStatsRepo) CountProducts(ctx context.Context) (int, error) { return s.products, nil }

func (s *stubStatsRepo) OrderTotalsBetween(ctx context.Context, from, to time.Time) (int, string, string, error) {
	return s.count, s.sum, s.avg, nil
}

//
// ===== TEST ROUTER over newRouter, same wiring as main =====
//

type testEnv struct {
	products  *stubProductRepo
	orders    *stubOrderRepo
	statsRepo *stubStatsRepo
	users     *stubUserRepo
	tokens    *auth.JWT
}

func newTestEnv() *testEnv {
	return &testEnv{
		products:  newStubProductRepo(),
		orders:    newStubOrderRepo(),
		statsRepo: &stubStatsRepo{sum: "0", avg: "0"},
		users:     newStubUserRepo(),
		tokens:    auth.NewJWT("test-secret", time.Hour),
	}
}

func buildRouter(env *testEnv, authn auth.Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		AdminEmail:      "admin@snackschicken.com",
		AdminPassHash:   testAdminHash,
		PixKey:          "+5511999990000",
		PixMerchantName: "SNACKS CHICKEN DELIVERY",
		PixMerchantCity: "SAO PAULO",
	}
	d := deps{
		cfg:      cfg,
		products: product.NewService(env.products),
		orders: order.NewService(env.orders, order.PixConfig{
			Key:          cfg.PixKey,
			MerchantName: cfg.PixMerchantName,
			MerchantCity: cfg.PixMerchantCity,
		}),
		stats:  stats.NewService(env.statsRepo),
		users:  env.users,
		tokens: env.tokens,
		authn:  authn,
	}
	return newRouter(d)
}

func newTestRouter(authn auth.Authenticator) (*gin.Engine, *testEnv) {
	env := newTestEnv()
	return buildRouter(env, authn), env
}

// newTestRouterJWT wires the JWT authenticator itself as the access gate, so
// tokens issued by /auth/login are the only accepted credential.
func newTestRouterJWT() (*gin.Engine, *testEnv) {
	env := newTestEnv()
	return buildRouter(env, env.tokens), env
}

func allowAll() auth.Authenticator {
	return auth.Static{Identity: &auth.Identity{Subject: "admin-1", Email: "admin@snackschicken.com"}}
}

func denyAll() auth.Authenticator { return auth.Static{} }
