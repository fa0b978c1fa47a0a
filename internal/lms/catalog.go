package lms

import (
	"regexp"
	"strconv"
)

// Multi-value fields come back as single strings; the voice model needs the
// individual names. Artists are separated by semicolons or commas, genres
// additionally by slashes.
var (
	artistSeparators = regexp.MustCompile(`; |;|, |,`)
	genreSeparators  = regexp.MustCompile(`; |;|, |,|/| / `)
)

// MusicAlbums returns the distinct album titles of the music library.
func (s *Server) MusicAlbums() ([]string, error) {
	return s.listNames("albums", "album")
}

// MusicTitles returns the distinct track titles of the music library.
func (s *Server) MusicTitles() ([]string, error) {
	return s.listNames("titles", "title")
}

// MusicPlaylists returns the distinct playlist names of the music library.
func (s *Server) MusicPlaylists() ([]string, error) {
	return s.listNames("playlists", "playlist")
}

// MusicArtists returns the distinct artist names, splitting multi-artist
// fields into individual names.
func (s *Server) MusicArtists() ([]string, error) {
	return s.listSplitNames("artists", "artist", artistSeparators)
}

// MusicGenres returns the distinct genre names, splitting combined genre
// fields into individual names.
func (s *Server) MusicGenres() ([]string, error) {
	return s.listSplitNames("genres", "genre", genreSeparators)
}

// RadioStations returns the favorites that are playable leaf audio items
// and not music titles — the radio stations.
func (s *Server) RadioStations() ([]string, error) {
	favorites, err := s.favoriteItems()
	if err != nil {
		return nil, err
	}
	titles, err := s.MusicTitles()
	if err != nil {
		return nil, err
	}
	known := toSet(titles)

	var stations []string
	seen := make(map[string]bool)
	for _, fav := range favorites {
		name := fav.Str("name")
		if fav.Int("isaudio") > 0 && !known[name] && !seen[name] {
			seen[name] = true
			stations = append(stations, name)
		}
	}
	return stations, nil
}

// PodcastTitles returns the favorites that have sub-items and are neither
// albums nor artists — the podcasts.
func (s *Server) PodcastTitles() ([]string, error) {
	favorites, err := s.favoriteItems()
	if err != nil {
		return nil, err
	}
	albums, err := s.MusicAlbums()
	if err != nil {
		return nil, err
	}
	artists, err := s.MusicArtists()
	if err != nil {
		return nil, err
	}
	known := toSet(albums)
	for _, artist := range artists {
		known[artist] = true
	}

	var podcasts []string
	seen := make(map[string]bool)
	for _, fav := range favorites {
		name := fav.Str("name")
		if fav.Int("hasitems") > 0 && !known[name] && !seen[name] {
			seen[name] = true
			podcasts = append(podcasts, name)
		}
	}
	return podcasts, nil
}

// listNames runs a "<kind> list" query and collects the distinct values of
// field from "<kind>_loop".
func (s *Server) listNames(kind, field string) ([]string, error) {
	res, err := s.Request(serverScope, kind, "list")
	if err != nil {
		return nil, err
	}
	if res.Int("count") < 1 {
		return nil, nil
	}
	var names []string
	seen := make(map[string]bool)
	for _, entry := range res.Loop(kind + "_loop") {
		name := entry.Str(field)
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

// listSplitNames is listNames with separator splitting of each value.
func (s *Server) listSplitNames(kind, field string, separators *regexp.Regexp) ([]string, error) {
	res, err := s.Request(serverScope, kind, "list")
	if err != nil {
		return nil, err
	}
	if res.Int("count") < 1 {
		return nil, nil
	}
	var names []string
	seen := make(map[string]bool)
	for _, entry := range res.Loop(kind + "_loop") {
		for _, name := range separators.Split(entry.Str(field), -1) {
			if name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// favoriteItems returns all favorites entries.
func (s *Server) favoriteItems() ([]Result, error) {
	res, err := s.Request(serverScope, "favorites", "items")
	if err != nil {
		return nil, err
	}
	count := res.Int("count")
	if count < 1 {
		return nil, nil
	}
	res, err = s.Request(serverScope, "favorites", "items", "0", strconv.Itoa(count))
	if err != nil {
		return nil, err
	}
	return res.Loop("loop_loop"), nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
