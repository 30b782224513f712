package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type actionResp struct {
	Applied bool      `json:"applied"`
	Round   roundView `json:"round"`
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestRoundLifecycle(t *testing.T) {
	h := Router(nil, 1)

	var created roundView
	rec := doJSON(t, h, http.MethodPost, "/api/rounds", "", &created)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Continuing", created.Status)
	assert.Empty(t, created.Hand)
	assert.Equal(t, []int{0}, created.PossibleTotals)
	assert.Equal(t, 52, created.CardsRemaining)

	// Readable while live.
	var fetched roundView
	rec = doJSON(t, h, http.MethodGet, "/api/rounds/"+created.ID, "", &fetched)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, fetched)

	// Unrecognized input leaves the round untouched.
	var noop actionResp
	rec = doJSON(t, h, http.MethodPost, "/api/rounds/"+created.ID+"/actions", `{"action":"fold"}`, &noop)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, noop.Applied)
	assert.Equal(t, created, noop.Round)

	// Hit draws one card.
	var hit actionResp
	rec = doJSON(t, h, http.MethodPost, "/api/rounds/"+created.ID+"/actions", `{"action":"hit"}`, &hit)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, hit.Applied)
	assert.Len(t, hit.Round.Hand, 1)
	assert.Equal(t, 51, hit.Round.CardsRemaining)

	// Surrender finishes the round and evicts it from the table.
	var done actionResp
	rec = doJSON(t, h, http.MethodPost, "/api/rounds/"+created.ID+"/actions", `{"action":"surrender"}`, &done)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, done.Applied)
	assert.Equal(t, "Lost", done.Round.Status)

	rec = doJSON(t, h, http.MethodGet, "/api/rounds/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterRejectsBadIDs(t *testing.T) {
	h := Router(nil, 0)

	rec := doJSON(t, h, http.MethodGet, "/api/rounds/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/rounds/not-a-uuid/actions", `{"action":"hit"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Valid id, no such round.
	rec = doJSON(t, h, http.MethodPost, "/api/rounds/00000000-0000-0000-0000-000000000000/actions", `{"action":"hit"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistoryWithoutDB(t *testing.T) {
	h := Router(nil, 0)

	rec := doJSON(t, h, http.MethodGet, "/api/rounds/00000000-0000-0000-0000-000000000000/history", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecentRoundsWithoutDB(t *testing.T) {
	h := Router(nil, 0)

	var out struct {
		Rows []any `json:"rows"`
	}
	rec := doJSON(t, h, http.MethodGet, "/api/rounds", "", &out)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, out.Rows)
}

func TestHealth(t *testing.T) {
	h := Router(nil, 0)

	var out map[string]any
	rec := doJSON(t, h, http.MethodGet, "/api/health", "", &out)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])
}
