package transmission

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/atp-media/rear-differential/internal/logger"
	"github.com/go-resty/resty/v2"
)

const sessionHeader = "X-Transmission-Session-Id"

// Config holds connection settings for the Transmission daemon.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// Client is a thin gateway over the Transmission RPC endpoint. Operational
// failures (connection refused, timeouts, daemon errors) are never returned
// as errors past this boundary; every operation reports a structured result
// so callers cannot accidentally let a daemon failure abort their own writes.
type Client struct {
	http *resty.Client
	url  string

	mu        sync.Mutex
	sessionID string
}

// RemoveResult reports the outcome of a torrent removal. Found=false with
// Success=true means the torrent was already gone, which is not an error.
type RemoveResult struct {
	Success bool   `json:"success"`
	Found   bool   `json:"found"`
	Name    string `json:"torrent_name,omitempty"`
	Message string `json:"message"`
}

// AddResult reports the outcome of a torrent add. A daemon-side duplicate is
// downgraded to Success=true, AlreadyExists=true.
type AddResult struct {
	Success       bool   `json:"success"`
	AlreadyExists bool   `json:"already_exists"`
	Name          string `json:"torrent_name,omitempty"`
	Message       string `json:"message"`
}

// NewClient creates a new Transmission RPC client.
// Parameters:
//   - cfg: daemon host, port, credentials, and request timeout.
// Returns:
//   - *Client: initialized client; no connection is made until first use.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	http := resty.New()
	http.SetTimeout(timeout)
	if cfg.Username != "" {
		http.SetBasicAuth(cfg.Username, cfg.Password)
	}

	return &Client{
		http: http,
		url:  fmt.Sprintf("http://%s:%d/transmission/rpc", cfg.Host, cfg.Port),
	}
}

type rpcRequest struct {
	Method    string      `json:"method"`
	Arguments interface{} `json:"arguments,omitempty"`
}

type rpcResponse struct {
	Result    string          `json:"result"`
	Arguments json.RawMessage `json:"arguments"`
}

type torrentInfo struct {
	Name       string `json:"name"`
	HashString string `json:"hashString"`
}

// call performs one RPC round trip, transparently handling the daemon's
// session-id handshake (a 409 carries the id to retry with).
func (c *Client) call(ctx context.Context, method string, args interface{}) (*rpcResponse, error) {
	body := rpcRequest{Method: method, Arguments: args}

	c.mu.Lock()
	session := c.sessionID
	c.mu.Unlock()

	req := func(sessionID string) (*resty.Response, error) {
		r := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(body)
		if sessionID != "" {
			r.SetHeader(sessionHeader, sessionID)
		}
		return r.Post(c.url)
	}

	resp, err := req(session)
	if err != nil {
		return nil, fmt.Errorf("transmission rpc %s: %w", method, err)
	}
	if resp.StatusCode() == http.StatusConflict {
		session = resp.Header().Get(sessionHeader)
		c.mu.Lock()
		c.sessionID = session
		c.mu.Unlock()
		resp, err = req(session)
		if err != nil {
			return nil, fmt.Errorf("transmission rpc %s: %w", method, err)
		}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("transmission rpc %s: unexpected status %d", method, resp.StatusCode())
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(resp.Body(), &rpcResp); err != nil {
		return nil, fmt.Errorf("transmission rpc %s: decode response: %w", method, err)
	}
	return &rpcResp, nil
}

// getTorrent looks up a torrent by hash.
func (c *Client) getTorrent(ctx context.Context, hash string) (*torrentInfo, error) {
	resp, err := c.call(ctx, "torrent-get", map[string]interface{}{
		"ids":    []string{hash},
		"fields": []string{"name", "hashString"},
	})
	if err != nil {
		return nil, err
	}
	if resp.Result != "success" {
		return nil, fmt.Errorf("transmission rpc torrent-get: %s", resp.Result)
	}

	var args struct {
		Torrents []torrentInfo `json:"torrents"`
	}
	if err := json.Unmarshal(resp.Arguments, &args); err != nil {
		return nil, fmt.Errorf("transmission rpc torrent-get: decode arguments: %w", err)
	}
	if len(args.Torrents) == 0 {
		return nil, nil
	}
	return &args.Torrents[0], nil
}

// Exists checks whether a torrent with the given hash is present in the
// daemon. Connectivity failures report false.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - hash: torrent infohash.
// Returns:
//   - bool: true if the daemon knows the torrent.
func (c *Client) Exists(ctx context.Context, hash string) bool {
	torrent, err := c.getTorrent(ctx, hash)
	if err != nil {
		logger.CtxWarn(ctx, "Transmission lookup failed for %s: %v", hash, err)
		return false
	}
	return torrent != nil
}

// Remove removes a torrent by hash. Absence is reported as Success=true,
// Found=false; every failure mode comes back inside the result.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - hash: torrent infohash.
//   - deleteData: whether the daemon should also delete downloaded data.
// Returns:
//   - RemoveResult: structured outcome, never an error.
func (c *Client) Remove(ctx context.Context, hash string, deleteData bool) RemoveResult {
	torrent, err := c.getTorrent(ctx, hash)
	if err != nil {
		return RemoveResult{
			Success: false,
			Message: fmt.Sprintf("Transmission connection error: %v", err),
		}
	}
	if torrent == nil {
		return RemoveResult{
			Success: true,
			Found:   false,
			Message: fmt.Sprintf("Torrent not found in Transmission: %s", hash),
		}
	}

	resp, err := c.call(ctx, "torrent-remove", map[string]interface{}{
		"ids":               []string{hash},
		"delete-local-data": deleteData,
	})
	if err != nil {
		return RemoveResult{
			Success: false,
			Found:   true,
			Name:    torrent.Name,
			Message: fmt.Sprintf("Transmission connection error: %v", err),
		}
	}
	if resp.Result != "success" {
		return RemoveResult{
			Success: false,
			Found:   true,
			Name:    torrent.Name,
			Message: fmt.Sprintf("Transmission error removing torrent: %s", resp.Result),
		}
	}

	logger.CtxInfo(ctx, "Removed torrent from Transmission: %s (hash: %s)", torrent.Name, hash)
	return RemoveResult{
		Success: true,
		Found:   true,
		Name:    torrent.Name,
		Message: fmt.Sprintf("Torrent removed from Transmission: %s", torrent.Name),
	}
}

// Add submits a magnet link or torrent URL to the daemon. A known hash is
// checked first so the add is idempotent; a daemon-reported duplicate (either
// the torrent-duplicate response field or its duplicate error text) is also
// downgraded to AlreadyExists.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - link: magnet link or torrent URL.
//   - hash: optional known infohash used for the pre-add existence check.
// Returns:
//   - AddResult: structured outcome, never an error.
func (c *Client) Add(ctx context.Context, link, hash string) AddResult {
	if hash != "" {
		torrent, err := c.getTorrent(ctx, hash)
		if err == nil && torrent != nil {
			return AddResult{
				Success:       true,
				AlreadyExists: true,
				Name:          torrent.Name,
				Message:       fmt.Sprintf("Torrent already exists in Transmission: %s", torrent.Name),
			}
		}
	}

	resp, err := c.call(ctx, "torrent-add", map[string]interface{}{
		"filename": link,
	})
	if err != nil {
		return AddResult{
			Success: false,
			Message: fmt.Sprintf("Transmission connection error: %v", err),
		}
	}
	if resp.Result != "success" {
		if strings.Contains(strings.ToLower(resp.Result), "duplicate") {
			return AddResult{
				Success:       true,
				AlreadyExists: true,
				Message:       "Torrent already exists in Transmission",
			}
		}
		return AddResult{
			Success: false,
			Message: fmt.Sprintf("Transmission error adding torrent: %s", resp.Result),
		}
	}

	var args struct {
		Added     *torrentInfo `json:"torrent-added"`
		Duplicate *torrentInfo `json:"torrent-duplicate"`
	}
	if err := json.Unmarshal(resp.Arguments, &args); err != nil {
		return AddResult{
			Success: true,
			Message: "Torrent added to Transmission",
		}
	}
	if args.Duplicate != nil {
		return AddResult{
			Success:       true,
			AlreadyExists: true,
			Name:          args.Duplicate.Name,
			Message:       fmt.Sprintf("Torrent already exists in Transmission: %s", args.Duplicate.Name),
		}
	}

	name := ""
	if args.Added != nil {
		name = args.Added.Name
	}
	logger.CtxInfo(ctx, "Added torrent to Transmission: %s", name)
	return AddResult{
		Success: true,
		Name:    name,
		Message: fmt.Sprintf("Torrent added to Transmission: %s", name),
	}
}
