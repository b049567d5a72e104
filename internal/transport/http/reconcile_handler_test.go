package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"affrecon/internal/config"
	apierrors "affrecon/internal/errors"
	"affrecon/internal/services"
)

const campaignCSV = "Campaign Name,Referred Users,FTD,Total Deposits,Commission Rate,Overall Commission (USD)\n" +
	"Spring Promo,500,100,250,30%,1500\n"

const ledgerCSV = "Username,Value (USD)\n" +
	"alice,100\n" +
	"alice,50\n" +
	"bob,25\n"

func newTestRouter(t *testing.T) (chi.Router, *services.ReconciliationService) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewReconciliationService(config.Default(), logger)
	errorHandler := apierrors.NewErrorHandler(logger, false)
	handler := NewReconcileHandler(svc, logger, errorHandler, 32<<20)

	r := chi.NewRouter()
	r.Mount("/api", handler.Routes())
	return r, svc
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func uploadReport(t *testing.T, router chi.Router, path, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartUpload(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadCampaign(t *testing.T) {
	router, _ := newTestRouter(t)

	w := uploadReport(t, router, "/api/campaign", "campaign.csv", campaignCSV)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Status   string `json:"status"`
		Campaign struct {
			CampaignName   string  `json:"campaign_name"`
			ReferredUsers  int64   `json:"referred_users"`
			CommissionRate float64 `json:"commission_rate"`
		} `json:"campaign"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "loaded", resp.Status)
	assert.Equal(t, "Spring Promo", resp.Campaign.CampaignName)
	assert.Equal(t, int64(500), resp.Campaign.ReferredUsers)
	assert.Equal(t, 0.30, resp.Campaign.CommissionRate)
}

func TestUploadLedger(t *testing.T) {
	router, _ := newTestRouter(t)

	w := uploadReport(t, router, "/api/ledger", "ledger.csv", ledgerCSV)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["total_users"])
	assert.Equal(t, float64(175), resp["total_value"])
}

func TestUploadValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("missing file field", func(t *testing.T) {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/campaign", &body)
		req.Header.Set("Content-Type", w.FormDataContentType())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		w := uploadReport(t, router, "/api/campaign", "report.txt", "nope")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not multipart at all", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/ledger", bytes.NewBufferString("raw"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetCampaignMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("404 before upload", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	uploadReport(t, router, "/api/campaign", "campaign.csv", campaignCSV)

	t.Run("snapshot after upload", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Spring Promo")
	})
}

func TestGetKPIs(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/kpis", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	uploadReport(t, router, "/api/campaign", "campaign.csv", campaignCSV)
	uploadReport(t, router, "/api/ledger", "ledger.csv", ledgerCSV)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/kpis", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var kpis map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &kpis))
	assert.Equal(t, 0.20, kpis["conversion"])
}

func TestGetTopUsers(t *testing.T) {
	router, _ := newTestRouter(t)
	uploadReport(t, router, "/api/ledger", "ledger.csv", ledgerCSV)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/top", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TopUsers []struct {
			Username   string  `json:"username"`
			TotalValue float64 `json:"total_value"`
		} `json:"top_users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.TopUsers, 2)
	assert.Equal(t, "alice", resp.TopUsers[0].Username)
	assert.Equal(t, 150.0, resp.TopUsers[0].TotalValue)
}

func TestInspectUser(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("404 before ledger load", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/alice", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	uploadReport(t, router, "/api/campaign", "campaign.csv", campaignCSV)
	uploadReport(t, router, "/api/ledger", "ledger.csv", ledgerCSV)

	t.Run("known user", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/alice", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var result struct {
			User struct {
				TotalValue float64 `json:"total_value"`
			} `json:"user"`
			EstimatedCommission float64  `json:"estimated_commission"`
			ObservedCommission  *float64 `json:"observed_commission"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, 150.0, result.User.TotalValue)
		assert.InDelta(t, 45.0, result.EstimatedCommission, 1e-9)
		assert.Nil(t, result.ObservedCommission)
	})

	t.Run("observed override yields variance", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/alice?observed=50", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var result struct {
			Variance *float64 `json:"variance"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		require.NotNil(t, result.Variance)
		assert.InDelta(t, 5.0, *result.Variance, 1e-9)
	})

	t.Run("unknown user is 200 with zero aggregate", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/ghost", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var result struct {
			User struct {
				Username   string  `json:"username"`
				TotalValue float64 `json:"total_value"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "ghost", result.User.Username)
		assert.Zero(t, result.User.TotalValue)
	})
}

func TestExportHeadline(t *testing.T) {
	router, _ := newTestRouter(t)
	uploadReport(t, router, "/api/campaign", "campaign.csv", campaignCSV)
	uploadReport(t, router, "/api/ledger", "ledger.csv", ledgerCSV)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/export", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "headline.csv")

	body := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}), "UTF-8 BOM expected")
	assert.Contains(t, string(body), "metric,value\n")
	assert.Contains(t, string(body), "Campaign,Spring Promo\n")
	assert.Contains(t, string(body), "Conversion,20.00%\n")
}

func TestHealthHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHealthHandler(logger, "1.0.0")

	r := chi.NewRouter()
	r.Mount("/healthz", handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "1.0.0", resp["version"])
}
