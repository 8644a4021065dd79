package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manasa.shop/internal/admin"
	"manasa.shop/internal/counter"
	"manasa.shop/internal/dist"
	"manasa.shop/internal/handover"
	"manasa.shop/internal/stock"
)

type apiClient struct {
	baseURL string
	client  *http.Client
	token   string
	t       *testing.T
}

type wireEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()

	adminSvc, err := admin.NewService(admin.NewMemoryStore(), []byte("test-secret"))
	require.NoError(t, err)
	counterSvc, err := counter.NewService(counter.NewMemoryStore())
	require.NoError(t, err)
	stockSvc, err := stock.NewService(stock.NewMemoryStore())
	require.NoError(t, err)
	distSvc, err := dist.NewService(dist.NewMemoryStore())
	require.NoError(t, err)
	handoverSvc, err := handover.NewService(handover.NewMemoryStore())
	require.NoError(t, err)

	api := New(ReadyProbe{}, Services{
		Admin:    adminSvc,
		Counter:  counterSvc,
		Stock:    stockSvc,
		Dist:     distSvc,
		Handover: handoverSvc,
	}, Config{Version: "test", RateBurst: 1000, RatePerSecond: 1000})

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	return &apiClient{baseURL: srv.URL, client: srv.Client(), t: t}
}

func (c *apiClient) login(t *testing.T) {
	t.Helper()
	resp := c.do(http.MethodPost, "/api/v1/admin/signin", map[string]any{
		"name": "Manasa", "email": "owner@manasa.shop", "password": "secret123",
	})
	env := c.read(resp, http.StatusCreated)
	var sess struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	require.NotEmpty(t, sess.Token)
	c.token = sess.Token
}

func (c *apiClient) do(method, path string, body any) *http.Response {
	c.t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(c.t, err)
	}
	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(payload))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	return resp
}

func (c *apiClient) get(path string, params url.Values) *http.Response {
	c.t.Helper()
	u, err := url.Parse(c.baseURL + path)
	require.NoError(c.t, err)
	if params != nil {
		u.RawQuery = params.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	require.NoError(c.t, err)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	return resp
}

func (c *apiClient) read(resp *http.Response, wantStatus int) wireEnvelope {
	c.t.Helper()
	defer resp.Body.Close()
	var env wireEnvelope
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(c.t, wantStatus, resp.StatusCode, "message: %s", env.Message)
	return env
}

func TestHealthzIsPublic(t *testing.T) {
	c := newTestAPI(t)

	resp := c.get("/healthz", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	c := newTestAPI(t)

	resp := c.get("/api/v1/stock/allStocks", nil)
	env := c.read(resp, http.StatusUnauthorized)
	assert.False(t, env.Success)

	resp = c.do(http.MethodPost, "/api/v1/counter/initialCount", map[string]any{
		"date": "2025-06-01", "amount": 100,
	})
	c.read(resp, http.StatusUnauthorized)
}

func TestSignupLoginFlow(t *testing.T) {
	c := newTestAPI(t)
	c.login(t)

	// A second account with the same email conflicts.
	resp := c.do(http.MethodPost, "/api/v1/admin/signin", map[string]any{
		"name": "Other", "email": "owner@manasa.shop", "password": "secret456",
	})
	c.read(resp, http.StatusConflict)

	resp = c.do(http.MethodPost, "/api/v1/admin/login", map[string]any{
		"email": "owner@manasa.shop", "password": "secret123",
	})
	env := c.read(resp, http.StatusOK)
	assert.True(t, env.Success)

	resp = c.do(http.MethodPost, "/api/v1/admin/login", map[string]any{
		"email": "owner@manasa.shop", "password": "wrong",
	})
	c.read(resp, http.StatusUnauthorized)
}

func TestPasswordResetOverHTTP(t *testing.T) {
	c := newTestAPI(t)
	c.login(t)

	resp := c.do(http.MethodPost, "/api/v1/admin/resetPasswordRequest", map[string]any{
		"email": "owner@manasa.shop",
	})
	env := c.read(resp, http.StatusOK)
	var data struct {
		ResetToken string `json:"resetToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.ResetToken)

	resp = c.do(http.MethodPost, "/api/v1/admin/resetPassword", map[string]any{
		"token": data.ResetToken, "password": "newsecret", "confirmPassword": "different",
	})
	c.read(resp, http.StatusBadRequest)

	resp = c.do(http.MethodPost, "/api/v1/admin/resetPassword", map[string]any{
		"token": data.ResetToken, "password": "newsecret", "confirmPassword": "newsecret",
	})
	c.read(resp, http.StatusOK)

	resp = c.do(http.MethodPost, "/api/v1/admin/login", map[string]any{
		"email": "owner@manasa.shop", "password": "newsecret",
	})
	c.read(resp, http.StatusOK)
}

func TestCounterRoundTripOverHTTP(t *testing.T) {
	c := newTestAPI(t)
	c.login(t)

	resp := c.do(http.MethodPost, "/api/v1/counter/initialCount", map[string]any{
		"date": "2025-06-01", "amount": 200,
	})
	c.read(resp, http.StatusOK)

	// Coerced inputs: empty strings and quoted numbers are fine on the wire.
	resp = c.do(http.MethodPost, "/api/v1/counter/remCash", map[string]any{
		"date":  "2025-06-01",
		"notes": []map[string]any{{"denomination": 500, "count": 1}},
		"coins": []map[string]any{{"denomination": 5, "count": "2"}},
		"companies": []map[string]any{
			{"name": "Amul", "amount": 100},
			{"name": "", "amount": ""},
		},
		"card":                  50,
		"paytm":                 "20",
		"additional":            nil,
		"openingBalance":        200,
		"possibleOfflineAmount": 480,
	})
	env := c.read(resp, http.StatusOK)
	var saved struct {
		Totals struct {
			CashTotal           json.Number `json:"cashTotal"`
			FinalRemainingTotal json.Number `json:"finalRemainingTotal"`
			Outcome             string      `json:"outcome"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.Equal(t, "510", saved.Totals.CashTotal.String())
	assert.Equal(t, "480", saved.Totals.FinalRemainingTotal.String())
	assert.Equal(t, "neutral", saved.Totals.Outcome)

	resp = c.get("/api/v1/counter/getRemainingCash", url.Values{"date": {"2025-06-01"}})
	env = c.read(resp, http.StatusOK)
	var fetched struct {
		Notes []struct {
			Denomination int64 `json:"denomination"`
			Count        int64 `json:"count"`
		} `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	require.Len(t, fetched.Notes, 6, "canonical note rows")
	assert.Equal(t, int64(500), fetched.Notes[0].Denomination)
	assert.Equal(t, int64(1), fetched.Notes[0].Count)

	resp = c.get("/api/v1/counter/monthly-summary", url.Values{"month": {"6"}, "year": {"2025"}})
	env = c.read(resp, http.StatusOK)
	var summary struct {
		EntriesCount int `json:"entriesCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 1, summary.EntriesCount)

	resp = c.get("/api/v1/counter/monthly-summary", url.Values{"month": {"x"}, "year": {"2025"}})
	c.read(resp, http.StatusBadRequest)
}

func TestStockFlowOverHTTP(t *testing.T) {
	c := newTestAPI(t)
	c.login(t)

	resp := c.do(http.MethodPost, "/api/v1/stock/stockEntry", map[string]any{
		"date": "2025-06-01",
		"distributors": []map[string]any{
			{"name": "Amul", "totalPaid": 500},
			{"name": "Parle", "totalPaid": 300},
		},
	})
	env := c.read(resp, http.StatusCreated)
	var entry struct {
		ID           string `json:"id"`
		Distributors []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"distributors"`
		TotalStockExpenses json.Number `json:"totalStockExpenses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entry))
	require.Len(t, entry.Distributors, 2)
	assert.Equal(t, "800", entry.TotalStockExpenses.String())

	resp = c.do(http.MethodPut, "/api/v1/stock/updateStock/"+entry.ID+"/"+entry.Distributors[0].ID, map[string]any{
		"name": "Amul Dairy", "totalPaid": 650,
	})
	env = c.read(resp, http.StatusOK)
	require.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.Equal(t, "950", entry.TotalStockExpenses.String())

	resp = c.do(http.MethodPost, "/api/v1/stock/remAmount", map[string]any{
		"stockEntryId": entry.ID, "amountHave": 2000, "paytm": 100,
	})
	env = c.read(resp, http.StatusOK)
	var rem struct {
		Remaining  json.Number `json:"remaining"`
		FinalTotal json.Number `json:"finalTotal"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rem))
	assert.Equal(t, "1050", rem.Remaining.String())
	assert.Equal(t, "1150", rem.FinalTotal.String())

	resp = c.get("/api/v1/stock/getRemAmount/"+entry.ID, nil)
	c.read(resp, http.StatusOK)

	// Delete one of two lines: record stays.
	resp = c.do(http.MethodDelete, "/api/v1/stock/deleteDist/"+entry.ID+"/"+entry.Distributors[1].ID, nil)
	env = c.read(resp, http.StatusOK)
	require.NoError(t, json.Unmarshal(env.Data, &entry))
	require.Len(t, entry.Distributors, 1)

	// Delete the sole remaining line: whole record goes.
	resp = c.do(http.MethodDelete, "/api/v1/stock/deleteDist/"+entry.ID+"/"+entry.Distributors[0].ID, nil)
	env = c.read(resp, http.StatusOK)
	assert.Equal(t, "stock entry removed", env.Message)

	resp = c.get("/api/v1/stock/allStocks", nil)
	env = c.read(resp, http.StatusOK)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}

func TestDistDirectoryOverHTTP(t *testing.T) {
	c := newTestAPI(t)
	c.login(t)

	resp := c.do(http.MethodPost, "/api/v1/dist/createDist", map[string]any{"name": "Amul"})
	env := c.read(resp, http.StatusCreated)
	var created struct {
		IsNew bool `json:"isNew"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, created.IsNew)

	resp = c.do(http.MethodPost, "/api/v1/dist/createDist", map[string]any{"name": "amul"})
	env = c.read(resp, http.StatusCreated)
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.False(t, created.IsNew, "duplicate names are not an error")

	resp = c.get("/api/v1/dist/searchDist", url.Values{"query": {"am"}})
	env = c.read(resp, http.StatusOK)
	var names []string
	require.NoError(t, json.Unmarshal(env.Data, &names))
	assert.Equal(t, []string{"Amul"}, names)
}

func TestHandoverOverHTTP(t *testing.T) {
	c := newTestAPI(t)
	c.login(t)

	resp := c.do(http.MethodPost, "/api/v1/speech/createHandover", map[string]any{
		"rawSpeech": "gave 500 to ramesh for milk change returned 50",
	})
	env := c.read(resp, http.StatusCreated)
	var rec struct {
		ID        string `json:"id"`
		NetAmount int64  `json:"netAmount"`
		GivenTo   string `json:"givenTo"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, int64(450), rec.NetAmount)
	assert.Equal(t, "ramesh", rec.GivenTo)

	resp = c.get("/api/v1/speech/getHandover", nil)
	env = c.read(resp, http.StatusOK)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	resp = c.do(http.MethodDelete, "/api/v1/speech/deleteHand/"+rec.ID, nil)
	c.read(resp, http.StatusOK)

	resp = c.do(http.MethodDelete, "/api/v1/speech/deleteHand/"+rec.ID, nil)
	c.read(resp, http.StatusNotFound)
}

func TestMethodNotAllowed(t *testing.T) {
	c := newTestAPI(t)
	c.login(t)

	resp := c.get("/api/v1/counter/initialCount", nil)
	env := c.read(resp, http.StatusMethodNotAllowed)
	assert.False(t, env.Success)
}
