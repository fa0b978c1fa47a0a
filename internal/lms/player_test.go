package lms

import (
	"strings"
	"testing"
)

func TestPlayerCommands(t *testing.T) {
	tests := []struct {
		name string
		run  func(p *Player)
		want string
	}{
		{"play with fade", func(p *Player) { p.Play(2.5) }, "play 2.5"},
		{"pause", func(p *Player) { p.Pause() }, "pause 1"},
		{"next", func(p *Player) { p.Next() }, "playlist index +1"},
		{"previous", func(p *Player) { p.Previous() }, "playlist index -1"},
		{"restart playlist", func(p *Player) { p.RestartPlaylist() }, "playlist index 0"},
		{"set volume", func(p *Player) { p.SetVolume(40) }, "mixer volume 40"},
		{"set volume clamps low", func(p *Player) { p.SetVolume(-5) }, "mixer volume 0"},
		{"set volume clamps high", func(p *Player) { p.SetVolume(150) }, "mixer volume 100"},
		{"raise volume", func(p *Player) { p.AdjustVolume(10) }, "mixer volume +10"},
		{"lower volume", func(p *Player) { p.AdjustVolume(-10) }, "mixer volume -10"},
		{"unsync", func(p *Player) { p.Unsync() }, "unsync"},
		{"play favorite", func(p *Player) { p.PlayFavorite("7.3") }, "podcast playlist play item_id:7.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeLMS(t)
			p := fake.server(t).Player("aa:bb:cc:00:00:01", "Küche")

			tt.run(p)

			last := fake.lastCall()
			if last.player != "aa:bb:cc:00:00:01" {
				t.Errorf("player scope = %q, want the player MAC", last.player)
			}
			if got := strings.Join(last.cmd, " "); got != tt.want {
				t.Errorf("command = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAdjustVolume_ZeroIsNoop(t *testing.T) {
	fake := newFakeLMS(t)
	p := fake.server(t).Player("aa:bb:cc:00:00:01", "Küche")

	p.AdjustVolume(0)

	if calls := fake.allCalls(); len(calls) != 0 {
		t.Errorf("AdjustVolume(0) issued %d requests, want none", len(calls))
	}
}

func TestSyncTo(t *testing.T) {
	fake := newFakeLMS(t)
	srv := fake.server(t)
	master := srv.Player("aa:bb:cc:00:00:01", "Küche")
	slave := srv.Player("aa:bb:cc:00:00:02", "Bad")

	master.SyncTo(slave)

	last := fake.lastCall()
	if last.player != "aa:bb:cc:00:00:01" || strings.Join(last.cmd, " ") != "sync aa:bb:cc:00:00:02" {
		t.Errorf("sync request = %+v", last)
	}
}

func TestConnectedAndMode(t *testing.T) {
	fake := newFakeLMS(t)
	fake.on("connected ?", map[string]any{"_connected": float64(1)})
	fake.on("mode ?", map[string]any{"_mode": "play"})
	p := fake.server(t).Player("aa:bb:cc:00:00:01", "Küche")

	if !p.Connected() {
		t.Error("Connected() should be true")
	}
	if got := p.Mode(); got != "play" {
		t.Errorf("Mode() = %q, want play", got)
	}
}

func TestConnected_UnreachableServer(t *testing.T) {
	srv := NewServer(Config{Host: "127.0.0.1", Port: 1})
	p := srv.Player("aa:bb:cc:00:00:01", "Küche")

	if p.Connected() {
		t.Error("Connected() should be false when the server is unreachable")
	}
	if got := p.Mode(); got != "" {
		t.Errorf("Mode() = %q, want empty", got)
	}
}

func TestCurrentTrack(t *testing.T) {
	fake := newFakeLMS(t)
	fake.on("artist ?", map[string]any{"_artist": "Miles Davis"})
	fake.on("album ?", map[string]any{"_album": "Kind of Blue"})
	fake.on("title ?", map[string]any{"_title": "So What"})
	p := fake.server(t).Player("aa:bb:cc:00:00:01", "Küche")

	track := p.CurrentTrack()
	if track.Artist != "Miles Davis" || track.Album != "Kind of Blue" || track.Title != "So What" {
		t.Errorf("CurrentTrack() = %+v", track)
	}
}

func TestLoadTracks(t *testing.T) {
	fake := newFakeLMS(t)
	p := fake.server(t).Player("aa:bb:cc:00:00:01", "Küche")

	p.LoadTracks([]string{"album.titlesearch=kind+of+blue", "contributor.namesearch=miles+davis"}, true)

	calls := fake.allCalls()
	if len(calls) != 2 {
		t.Fatalf("LoadTracks issued %d requests, want 2", len(calls))
	}
	if got := strings.Join(calls[0].cmd, " "); got != "playlist shuffle 1" {
		t.Errorf("first command = %q, want shuffle on", got)
	}
	want := "playlist loadtracks album.titlesearch=kind+of+blue&contributor.namesearch=miles+davis"
	if got := strings.Join(calls[1].cmd, " "); got != want {
		t.Errorf("second command = %q, want %q", got, want)
	}
}

func TestRandomPlay(t *testing.T) {
	fake := newFakeLMS(t)
	p := fake.server(t).Player("aa:bb:cc:00:00:01", "Küche")

	p.RandomPlayGenre("Jazz")
	calls := fake.allCalls()
	if len(calls) != 3 {
		t.Fatalf("RandomPlayGenre issued %d requests, want 3", len(calls))
	}
	if got := strings.Join(calls[1].cmd, " "); got != "randomplaychoosegenre Jazz 1" {
		t.Errorf("genre command = %q", got)
	}

	fake.mu.Lock()
	fake.calls = nil
	fake.mu.Unlock()

	p.RandomPlayAll()
	calls = fake.allCalls()
	if len(calls) != 2 || strings.Join(calls[0].cmd, " ") != "randomplaygenreselectall 1" {
		t.Errorf("RandomPlayAll requests = %v", calls)
	}
}

func TestSearch(t *testing.T) {
	fake := newFakeLMS(t)
	fake.on("search items 0 10 search:so+what", map[string]any{
		"count": float64(2),
		"loop_loop": []any{
			map[string]any{"id": "7.0", "name": "So What Podcast", "hasitems": float64(1), "isaudio": float64(0)},
			map[string]any{"id": "7.1", "name": "So What", "hasitems": float64(0), "isaudio": float64(1)},
		},
	})
	p := fake.server(t).Player("aa:bb:cc:00:00:01", "Küche")

	items := p.Search("so what", 10)
	if len(items) != 2 {
		t.Fatalf("Search() = %v, want 2 items", items)
	}
	if !items[0].HasItems || items[0].IsAudio {
		t.Errorf("container item = %+v", items[0])
	}
	if items[1].HasItems || !items[1].IsAudio {
		t.Errorf("leaf item = %+v", items[1])
	}
}

func TestSearch_NoResults(t *testing.T) {
	fake := newFakeLMS(t)
	fake.on("search items 0 10 search:nichts", map[string]any{"count": float64(0)})
	p := fake.server(t).Player("aa:bb:cc:00:00:01", "Küche")

	if items := p.Search("nichts", 10); len(items) != 0 {
		t.Errorf("Search() = %v, want none", items)
	}
}

func TestBrowseItem(t *testing.T) {
	fake := newFakeLMS(t)
	fake.on("search items 0 5 item_id:7.0.0", map[string]any{
		"count": float64(1),
		"loop_loop": []any{
			map[string]any{"id": "7.0.0", "name": "Folge 1", "isaudio": float64(1)},
		},
	})
	p := fake.server(t).Player("aa:bb:cc:00:00:01", "Küche")

	items := p.BrowseItem("7.0", 5)
	if len(items) != 1 || items[0].Name != "Folge 1" {
		t.Errorf("BrowseItem() = %v", items)
	}
}

func TestSearchTerm(t *testing.T) {
	if got := SearchTerm("kind of blue"); got != "kind+of+blue" {
		t.Errorf("SearchTerm() = %q, want kind+of+blue", got)
	}
	if got := SearchTerm("jazz"); got != "jazz" {
		t.Errorf("SearchTerm() = %q, want jazz", got)
	}
}
