package lms

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// call is one recorded slim.request.
type call struct {
	player string
	cmd    []string
}

// fakeLMS emulates the JSON-RPC endpoint. Results are keyed by the joined
// command tokens; unknown commands answer with an empty result.
type fakeLMS struct {
	mu      sync.Mutex
	calls   []call
	results map[string]map[string]any
	ts      *httptest.Server
}

func newFakeLMS(t *testing.T) *fakeLMS {
	t.Helper()
	f := &fakeLMS{results: make(map[string]map[string]any)}
	f.ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Params) != 2 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		var player string
		var cmd []string
		_ = json.Unmarshal(req.Params[0], &player)
		_ = json.Unmarshal(req.Params[1], &cmd)

		f.mu.Lock()
		f.calls = append(f.calls, call{player: player, cmd: cmd})
		result := f.results[strings.Join(cmd, " ")]
		f.mu.Unlock()

		if result == nil {
			result = map[string]any{}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result": result})
	}))
	t.Cleanup(f.ts.Close)
	return f
}

// server returns a client pointed at the fake.
func (f *fakeLMS) server(t *testing.T) *Server {
	t.Helper()
	u, err := url.Parse(f.ts.URL)
	if err != nil {
		t.Fatalf("parsing test server URL: %v", err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("splitting test server address: %v", err)
	}
	port, _ := strconv.Atoi(portStr)
	return NewServer(Config{Host: host, Port: port})
}

func (f *fakeLMS) on(cmd string, result map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[cmd] = result
}

func (f *fakeLMS) lastCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return call{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeLMS) allCalls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func TestRequest(t *testing.T) {
	fake := newFakeLMS(t)
	fake.on("version ?", map[string]any{"_version": "8.3.1"})
	srv := fake.server(t)

	res, err := srv.Request("-", "version", "?")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if got := res.Str("_version"); got != "8.3.1" {
		t.Errorf("version = %q, want 8.3.1", got)
	}

	last := fake.lastCall()
	if last.player != "-" || strings.Join(last.cmd, " ") != "version ?" {
		t.Errorf("request = %+v", last)
	}
}

func TestRequest_Unreachable(t *testing.T) {
	srv := NewServer(Config{Host: "127.0.0.1", Port: 1})

	_, err := srv.Request("-", "version", "?")
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("Request() error = %v, want ErrUnreachable", err)
	}
	if srv.Connected() {
		t.Error("Connected() should be false for an unreachable server")
	}
}

func TestConnected(t *testing.T) {
	fake := newFakeLMS(t)
	fake.on("version ?", map[string]any{"_version": "8.3.1"})
	srv := fake.server(t)

	if !srv.Connected() {
		t.Error("Connected() should be true when the server answers")
	}
}

func TestResult_Accessors(t *testing.T) {
	res := Result{
		"count_num": float64(7),
		"count_str": "12",
		"name":      "Jazz",
		"loop_loop": []any{
			map[string]any{"id": "1"},
			"not an object",
			map[string]any{"id": "2"},
		},
	}

	if got := res.Int("count_num"); got != 7 {
		t.Errorf("Int(count_num) = %d, want 7", got)
	}
	if got := res.Int("count_str"); got != 12 {
		t.Errorf("Int(count_str) = %d, want 12", got)
	}
	if got := res.Int("missing"); got != 0 {
		t.Errorf("Int(missing) = %d, want 0", got)
	}
	if got := res.Str("name"); got != "Jazz" {
		t.Errorf("Str(name) = %q, want Jazz", got)
	}
	if got := res.Str("count_num"); got != "7" {
		t.Errorf("Str(count_num) = %q, want 7", got)
	}
	loop := res.Loop("loop_loop")
	if len(loop) != 2 || loop[0].Str("id") != "1" || loop[1].Str("id") != "2" {
		t.Errorf("Loop() = %v", loop)
	}
}

func TestPlayersAndFindPlayer(t *testing.T) {
	fake := newFakeLMS(t)
	fake.on("players 0 100", map[string]any{
		"count": float64(2),
		"players_loop": []any{
			map[string]any{"playerid": "aa:bb:cc:00:00:01", "name": "Küche"},
			map[string]any{"playerid": "aa:bb:cc:00:00:02", "name": "Bad"},
		},
	})
	srv := fake.server(t)

	players, err := srv.Players()
	if err != nil {
		t.Fatalf("Players() error = %v", err)
	}
	if len(players) != 2 || players[0].Name != "Küche" {
		t.Errorf("Players() = %v", players)
	}

	p, ok := srv.FindPlayer("Bad")
	if !ok || p.MAC != "aa:bb:cc:00:00:02" {
		t.Errorf("FindPlayer(Bad) = %v/%v", p, ok)
	}
	if _, ok := srv.FindPlayer("Keller"); ok {
		t.Error("FindPlayer(Keller) should not match")
	}
}
