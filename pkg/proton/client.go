package proton

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// ErrVoterNotFound means the account has no row in the voters table, so no
// claim history exists for it.
var ErrVoterNotFound = errors.New("proton: voter not found")

// Client reads the Proton chain's voters table over the standard chain API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// VoterInfo is the subset of an eosio votersxpr row the poller needs.
type VoterInfo struct {
	Owner     string `json:"owner"`
	LastClaim int64  `json:"lastclaim"`
}

// LastClaimTime converts the on-chain epoch seconds to UTC.
func (v *VoterInfo) LastClaimTime() time.Time {
	return time.Unix(v.LastClaim, 0).UTC()
}

type tableRowsRequest struct {
	JSON       bool   `json:"json"`
	Code       string `json:"code"`
	Scope      string `json:"scope"`
	Table      string `json:"table"`
	LowerBound string `json:"lower_bound"`
	UpperBound string `json:"upper_bound"`
	Limit      int    `json:"limit"`
}

type voterRowsResponse struct {
	Rows []VoterInfo `json:"rows"`
}

func (c *Client) doRequest(ctx context.Context, path string, body interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("chain API error %d: %s", resp.StatusCode, string(data))
	}

	return data, nil
}

// GetVoterInfo returns the voters-table row for an account.
func (c *Client) GetVoterInfo(ctx context.Context, account string) (*VoterInfo, error) {
	body := tableRowsRequest{
		JSON:       true,
		Code:       "eosio",
		Scope:      "eosio",
		Table:      "votersxpr",
		LowerBound: account,
		UpperBound: account,
		Limit:      1,
	}

	data, err := c.doRequest(ctx, "/v1/chain/get_table_rows", body)
	if err != nil {
		return nil, err
	}

	var resp voterRowsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if len(resp.Rows) == 0 {
		return nil, ErrVoterNotFound
	}

	return &resp.Rows[0], nil
}
