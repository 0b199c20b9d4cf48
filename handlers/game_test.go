package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/georgewhite997/noot-slide-sub001/models"
	"github.com/georgewhite997/noot-slide-sub001/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type RoutesSuite struct {
	suite.Suite
	app *fiber.App
	db  *gorm.DB
}

func TestRoutesSuite(t *testing.T) {
	suite.Run(t, new(RoutesSuite))
}

func (s *RoutesSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.Upgrade{},
		&models.UpgradeLevel{},
		&models.UserUpgrade{},
	))

	tokenService := services.NewTokenService("test-secret")
	userService := services.NewUserService(db)
	upgradeService := services.NewUpgradeService(db)
	leaderboardService := services.NewLeaderboardService(db)

	s.Require().NoError(upgradeService.SeedCatalog())

	app := fiber.New()
	SetupAuthRoutes(app, userService, tokenService)
	SetupGameRoutes(app, tokenService, userService, upgradeService, leaderboardService)

	s.app = app
	s.db = db
}

func (s *RoutesSuite) request(method, path, token string, body interface{}) *http.Response {
	s.T().Helper()

	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	s.Require().NoError(err)
	return resp
}

func (s *RoutesSuite) decode(resp *http.Response, out interface{}) {
	s.T().Helper()
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}

func (s *RoutesSuite) login(wallet string) string {
	s.T().Helper()

	resp := s.request("POST", "/auth/login", "", fiber.Map{"wallet": wallet})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	s.decode(resp, &body)
	s.Require().NotEmpty(body.Token)
	return body.Token
}

func (s *RoutesSuite) TestLoginCreatesFreshUser() {
	resp := s.request("POST", "/auth/login", "", fiber.Map{"wallet": "0xABC"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	s.decode(resp, &body)

	s.NotEmpty(body.Token)
	s.Equal("0xABC", body.User.Wallet)
	s.Equal(int64(0), body.User.Fishes)
	s.Equal(int64(0), body.User.HighestScore)
}

func (s *RoutesSuite) TestLoginRejectsMissingWallet() {
	resp := s.request("POST", "/auth/login", "", fiber.Map{})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *RoutesSuite) TestSecuredRoutesRequireToken() {
	for _, path := range []string{"/user/me", "/leaderboard", "/upgrades"} {
		resp := s.request("GET", path, "", nil)
		s.Equal(http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp := s.request("GET", "/user/me", "garbage-token", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *RoutesSuite) TestCurrentUser() {
	token := s.login("0xABC")

	resp := s.request("GET", "/user/me", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var user models.User
	s.decode(resp, &user)
	s.Equal("0xABC", user.Wallet)
}

func (s *RoutesSuite) TestRunResultUpdatesTotals() {
	token := s.login("0xABC")

	resp := s.request("POST", "/user/run-result", token, fiber.Map{"fishDelta": 100, "score": 50})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var result services.RunResult
	s.decode(resp, &result)
	s.Equal(int64(100), result.NewFishes)
	s.Equal(int64(50), result.NewHighScore)

	// lower score leaves the high score alone
	resp = s.request("POST", "/user/run-result", token, fiber.Map{"fishDelta": 0, "score": 20})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &result)
	s.Equal(int64(50), result.NewHighScore)
}

func (s *RoutesSuite) TestRunResultRejectsMissingFields() {
	token := s.login("0xABC")

	resp := s.request("POST", "/user/run-result", token, fiber.Map{"fishDelta": 5})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *RoutesSuite) TestCatalogListing() {
	token := s.login("0xABC")

	resp := s.request("GET", "/upgrades", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var catalog []models.Upgrade
	s.decode(resp, &catalog)
	s.Require().Len(catalog, 4)
	for _, up := range catalog {
		s.Len(up.Levels, 5)
		s.Nil(up.Levels[4].UpgradePrice)
	}
}

func (s *RoutesSuite) TestPurchaseFlow() {
	token := s.login("0xABC")

	resp := s.request("POST", "/user/run-result", token, fiber.Map{"fishDelta": 100, "score": 10})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var catalog []models.Upgrade
	listResp := s.request("GET", "/upgrades", token, nil)
	s.Require().Equal(http.StatusOK, listResp.StatusCode)
	s.decode(listResp, &catalog)
	target := catalog[0]
	firstPrice := *target.Levels[0].UpgradePrice

	resp = s.request("POST", "/upgrades/purchase", token, fiber.Map{"upgradeId": target.ID})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		User     models.User          `json:"user"`
		Upgrades []models.UserUpgrade `json:"upgrades"`
		Position int                  `json:"position"`
	}
	s.decode(resp, &body)

	s.Equal(100-firstPrice, body.User.Fishes)
	s.Require().Len(body.Upgrades, 1)
	s.Equal(2, body.Upgrades[0].Level)
	s.Equal(1, body.Position)
}

func (s *RoutesSuite) TestPurchaseFailureStatuses() {
	token := s.login("0xABC")

	// no fishes at all → payment required
	resp := s.request("POST", "/upgrades/purchase", token, fiber.Map{"upgradeId": 1})
	s.Equal(http.StatusPaymentRequired, resp.StatusCode)

	// unknown upgrade → not found
	resp = s.request("POST", "/upgrades/purchase", token, fiber.Map{"upgradeId": 9999})
	s.Equal(http.StatusNotFound, resp.StatusCode)

	// missing body → bad request
	resp = s.request("POST", "/upgrades/purchase", token, fiber.Map{})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *RoutesSuite) TestLeaderboardVanishedUserIsNotFound() {
	// a valid token for a since-removed user must surface an error, never a
	// fabricated position of 0
	token := s.login("0xABC")
	s.Require().NoError(s.db.Unscoped().Where("wallet = ?", "0xABC").Delete(&models.User{}).Error)

	resp := s.request("GET", "/leaderboard", token, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *RoutesSuite) TestLeaderboard() {
	tokenA := s.login("0xAAA")
	tokenB := s.login("0xBBB")

	resp := s.request("POST", "/user/run-result", tokenA, fiber.Map{"fishDelta": 0, "score": 100})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp = s.request("POST", "/user/run-result", tokenB, fiber.Map{"fishDelta": 0, "score": 200})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.request("GET", "/leaderboard", tokenA, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Entries  []services.LeaderboardEntry `json:"entries"`
		Position int                         `json:"position"`
	}
	s.decode(resp, &body)

	s.Require().Len(body.Entries, 2)
	s.Equal("0xBBB", body.Entries[0].Wallet)
	s.Equal(1, body.Entries[0].Position)
	s.Equal("0xAAA", body.Entries[1].Wallet)
	s.Equal(2, body.Position)
}
