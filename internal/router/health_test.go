package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"nutriscan/internal/auth"
	"nutriscan/internal/history"
	"nutriscan/internal/meallog"
	"nutriscan/internal/product"
	"nutriscan/internal/profile"
	"nutriscan/internal/scan"
	"nutriscan/internal/vision"
)

type stubLookup struct{}

func (stubLookup) GetByBarcode(ctx context.Context, barcode string) (*product.Product, error) {
	return &product.Product{
		Barcode:   barcode,
		Name:      "Test Crackers",
		Category:  "snacks",
		Nutrition: product.Nutrition{Calories: 450, Protein: 8, Carbs: 70, Fat: 14},
	}, nil
}

type stubVision struct{}

func (stubVision) DescribeImage(ctx context.Context, prompt string, imageData []byte) (string, error) {
	return "{}", nil
}

type stubSearcher struct{}

func (stubSearcher) SearchByName(ctx context.Context, query string, page int) []product.Product {
	return []product.Product{}
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	products := product.NewInMemoryRepository()
	meals := meallog.NewInMemoryRepository()
	profiles := profile.NewService(profile.NewInMemoryRepository())

	authHandler := auth.NewHandler(auth.NewService(auth.NewInMemoryUserRepository()))
	mealService := meallog.NewService(meals)
	scanService := scan.NewService(
		product.NewResolver(products, stubLookup{}),
		vision.NewExtractor(stubVision{}),
		stubSearcher{},
		products,
		profiles,
	)

	return NewRouter(Handlers{
		Auth:    authHandler,
		Scan:    scan.NewHandler(scanService),
		History: history.NewHandler(history.NewAggregator(products, meals)),
		MealLog: meallog.NewHandler(mealService, products, profiles),
		Profile: profile.NewHandler(profiles),
	})
}

func TestHealthCheck(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestRegisterThenScanBarcode(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	r := testRouter()

	// register
	body, _ := json.Marshal(map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "Password@123",
	})
	regReq := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
	regReq.Header.Set("Content-Type", "application/json")
	regW := httptest.NewRecorder()
	r.ServeHTTP(regW, regReq)

	if regW.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", regW.Code, regW.Body.String())
	}

	var regResp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(regW.Body.Bytes(), &regResp)
	if regResp.Token == "" {
		t.Fatal("register response missing token")
	}

	// scan
	scanBody, _ := json.Marshal(map[string]string{"barcode": "7290000000001"})
	scanReq := httptest.NewRequest(http.MethodPost, "/scan/barcode", bytes.NewBuffer(scanBody))
	scanReq.Header.Set("Content-Type", "application/json")
	scanReq.Header.Set("Authorization", "Bearer "+regResp.Token)
	scanW := httptest.NewRecorder()
	r.ServeHTTP(scanW, scanReq)

	if scanW.Code != http.StatusOK {
		t.Fatalf("scan failed: %d %s", scanW.Code, scanW.Body.String())
	}

	var scanResp struct {
		Product struct {
			Name string `json:"name"`
		} `json:"product"`
		Analysis struct {
			CompatibilityScore int `json:"compatibility_score"`
		} `json:"analysis"`
	}
	_ = json.Unmarshal(scanW.Body.Bytes(), &scanResp)

	if scanResp.Product.Name != "Test Crackers" {
		t.Fatalf("unexpected product %q", scanResp.Product.Name)
	}
	if scanResp.Analysis.CompatibilityScore != 70 {
		t.Fatalf("expected baseline 70 for empty profile, got %d", scanResp.Analysis.CompatibilityScore)
	}
}
