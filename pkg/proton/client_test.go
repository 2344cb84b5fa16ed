package proton

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetVoterInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chain/get_table_rows", r.URL.Path)

		var req tableRowsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "eosio", req.Code)
		assert.Equal(t, "votersxpr", req.Table)
		assert.Equal(t, "alice", req.LowerBound)
		assert.Equal(t, "alice", req.UpperBound)
		assert.Equal(t, 1, req.Limit)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rows":[{"owner":"alice","lastclaim":1700000000}],"more":false}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	info, err := c.GetVoterInfo(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Owner)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), info.LastClaimTime())
}

func TestClient_GetVoterInfo_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rows":[],"more":false}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetVoterInfo(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrVoterNotFound)
}

func TestClient_GetVoterInfo_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal service error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetVoterInfo(context.Background(), "alice")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrVoterNotFound)
}
