package lms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tonraum/tonraum-core/internal/site"
)

// requestTimeout bounds one RPC round trip. The server lives on the local
// network; anything slower counts as unreachable.
const requestTimeout = 5 * time.Second

// serverScope is the player field of server-level (non-player) requests.
const serverScope = "-"

// Config contains the media server connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Server is the JSON-RPC client for one Logitech Media Server.
//
// All methods are safe for concurrent use. No connection state is kept;
// Connected performs a live probe.
type Server struct {
	cfg  Config
	url  string
	http *http.Client
	id   atomic.Uint64
}

// NewServer creates a client for the given server address.
func NewServer(cfg Config) *Server {
	return &Server{
		cfg: cfg,
		url: fmt.Sprintf("http://%s:%d/jsonrpc.js", cfg.Host, cfg.Port),
		http: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Host returns the configured server host, as handed to squeezelite
// service-start requests.
func (s *Server) Host() string {
	return s.cfg.Host
}

// Result is a decoded JSON-RPC result object.
type Result map[string]any

// Int returns the integer value of a key. LMS encodes counts both as JSON
// numbers and as strings depending on the command; both are handled.
func (r Result) Int(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// Str returns the string value of a key, converting numbers when needed.
func (r Result) Str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Loop returns the repeated result objects under a loop key
// (e.g. "albums_loop", "loop_loop").
func (r Result) Loop(key string) []Result {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	loop := make([]Result, 0, len(raw))
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			loop = append(loop, Result(m))
		}
	}
	return loop
}

// Request performs one RPC call. player is a player MAC, or "-" for
// server-level commands. cmd is the command token list.
func (s *Server) Request(player string, cmd ...string) (Result, error) {
	body, err := json.Marshal(map[string]any{
		"id":     s.id.Add(1),
		"method": "slim.request",
		"params": []any{player, cmd},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %w", ErrBadResponse, err)
	}

	req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.Username != "" {
		req.SetBasicAuth(s.cfg.Username, s.cfg.Password)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}

	var envelope struct {
		Result map[string]any `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	return Result(envelope.Result), nil
}

// Connected reports whether the media server answers requests. Never
// returns an error; a failed probe is simply false.
func (s *Server) Connected() bool {
	_, err := s.Request(serverScope, "version", "?")
	return err == nil
}

// Players returns the players currently visible on the server.
func (s *Server) Players() ([]site.PlayerInfo, error) {
	res, err := s.Request(serverScope, "players", "0", "100")
	if err != nil {
		return nil, err
	}
	var players []site.PlayerInfo
	for _, entry := range res.Loop("players_loop") {
		players = append(players, site.PlayerInfo{
			MAC:  entry.Str("playerid"),
			Name: entry.Str("name"),
		})
	}
	return players, nil
}

// FindPlayer looks up a visible player by its server-side name.
func (s *Server) FindPlayer(name string) (site.PlayerInfo, bool) {
	players, err := s.Players()
	if err != nil {
		return site.PlayerInfo{}, false
	}
	for _, p := range players {
		if p.Name == name {
			return p, true
		}
	}
	return site.PlayerInfo{}, false
}
