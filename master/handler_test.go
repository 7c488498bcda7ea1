package master

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlers_RegisterHeartbeatList(t *testing.T) {
	reg := NewRegistry(time.Minute)
	mux := NewMux(reg)

	rec := post(t, mux, "/servers/register",
		`{"name":"Friday Five","address":"10.0.0.2:7373","maxPlayers":2,"pitch":"five","matchId":"m-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var reg1 registerResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reg1))
	require.NotEmpty(t, reg1.ID)

	rec = post(t, mux, "/servers/heartbeat",
		`{"id":"`+reg1.ID+`","players":1,"blueScore":2,"purpleScore":1}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/servers", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var list []ServerInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Friday Five", list[0].Name)
	assert.Equal(t, "five", list[0].Pitch)
	assert.Equal(t, "m-1", list[0].MatchID)
	assert.Equal(t, 1, list[0].Players)
	assert.Equal(t, 2, list[0].BlueScore)
	assert.Equal(t, 1, list[0].PurpleScore)
}

func TestHandlers_RegisterRejectsBadInput(t *testing.T) {
	mux := NewMux(NewRegistry(time.Minute))

	assert.Equal(t, http.StatusBadRequest, post(t, mux, "/servers/register", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, mux, "/servers/register", `{"name":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest,
		post(t, mux, "/servers/register", `{"name":"x","address":"y","players":-1}`).Code)
}

func TestHandlers_HeartbeatUnknownServer(t *testing.T) {
	mux := NewMux(NewRegistry(time.Minute))
	rec := post(t, mux, "/servers/heartbeat", `{"id":"missing","players":0}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlers_Health(t *testing.T) {
	mux := NewMux(NewRegistry(time.Minute))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandlers_ListFilterQuery(t *testing.T) {
	reg := NewRegistry(time.Minute)
	reg.Register(ServerInfo{Name: "eu", Address: "e:1", Region: "eu", MaxPlayers: 2})
	reg.Register(ServerInfo{Name: "us", Address: "u:1", Region: "us", MaxPlayers: 2})
	mux := NewMux(reg)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/servers?region=us", nil))

	var list []ServerInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "us", list[0].Name)
}
