// AngelaMos | 2026
// entity.go

package matches

import (
	"encoding/json"
	"time"
)

// liveStatuses are the API-Football short codes that mean a fixture is in
// progress right now.
var liveStatuses = map[string]bool{
	"1H":   true,
	"HT":   true,
	"2H":   true,
	"ET":   true,
	"BT":   true,
	"P":    true,
	"SUSP": true,
	"INT":  true,
	"LIVE": true,
}

// finishedStatuses cover fixtures that will not change again.
var finishedStatuses = map[string]bool{
	"FT":  true,
	"AET": true,
	"PEN": true,
	"AWD": true,
	"WO":  true,
}

// CacheEntry is a row in match_cache: the raw upstream fixture payload plus
// its freshness window. api_football_id is unique; refreshes upsert in place.
type CacheEntry struct {
	ID            string          `db:"id"`
	APIFootballID int64           `db:"api_football_id"`
	Payload       json.RawMessage `db:"payload"`
	FetchedAt     time.Time       `db:"fetched_at"`
	ExpiresAt     time.Time       `db:"expires_at"`
}

// Match is the projection served to clients, decoded from a cached or
// freshly fetched fixture payload. Stale marks payloads served past their
// freshness window because the upstream was unreachable.
type Match struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	Elapsed   *int      `json:"elapsed"`
	Round     string    `json:"round"`
	Venue     string    `json:"venue"`
	Home      Team      `json:"home"`
	Away      Team      `json:"away"`
	HomeGoals *int      `json:"home_goals"`
	AwayGoals *int      `json:"away_goals"`
	Stale     bool      `json:"stale,omitempty"`
}

type Team struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Winner *bool  `json:"winner"`
}

func (m Match) Live() bool {
	return liveStatuses[m.Status]
}

func (m Match) Finished() bool {
	return finishedStatuses[m.Status]
}

func (m Match) Upcoming() bool {
	return m.Status == "NS" || m.Status == "TBD"
}

// fixturePayload mirrors the relevant slice of an API-Football fixture
// object. Fields the projection does not need are left undeclared.
type fixturePayload struct {
	Fixture struct {
		ID   int64     `json:"id"`
		Date time.Time `json:"date"`
		Status struct {
			Short   string `json:"short"`
			Elapsed *int   `json:"elapsed"`
		} `json:"status"`
		Venue struct {
			Name string `json:"name"`
		} `json:"venue"`
	} `json:"fixture"`
	League struct {
		Round string `json:"round"`
	} `json:"league"`
	Teams struct {
		Home teamPayload `json:"home"`
		Away teamPayload `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type teamPayload struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Winner *bool  `json:"winner"`
}

func projectFixture(raw json.RawMessage) (*Match, error) {
	var p fixturePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}

	return &Match{
		ID:      p.Fixture.ID,
		Date:    p.Fixture.Date,
		Status:  p.Fixture.Status.Short,
		Elapsed: p.Fixture.Status.Elapsed,
		Round:   p.League.Round,
		Venue:   p.Fixture.Venue.Name,
		Home: Team{
			ID:     p.Teams.Home.ID,
			Name:   p.Teams.Home.Name,
			Logo:   p.Teams.Home.Logo,
			Winner: p.Teams.Home.Winner,
		},
		Away: Team{
			ID:     p.Teams.Away.ID,
			Name:   p.Teams.Away.Name,
			Logo:   p.Teams.Away.Logo,
			Winner: p.Teams.Away.Winner,
		},
		HomeGoals: p.Goals.Home,
		AwayGoals: p.Goals.Away,
	}, nil
}

func projectFixtures(raws []json.RawMessage) ([]Match, error) {
	out := make([]Match, 0, len(raws))
	for _, raw := range raws {
		m, err := projectFixture(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, nil
}
