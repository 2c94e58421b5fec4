package config

import "testing"

const sampleYAML = `
app:
  searchRadiusMeters: 800
urls:
  subwayAce: "https://example.com/feeds/ace"
  subwayG: "https://example.com/feeds/g"
  busObaBase: "https://bus.example.com/api/where"
  busSiriBase: "https://bus.example.com/api/siri"
  busEndpoints:
    vehicleMonitoring: "/vehicle-monitoring.json"
    stopMonitoring: "/stop-monitoring.json"
    routesForAgency: "/routes-for-agency/MTA%20NYCT.json"
    stopsForRoute: "/stops-for-route/{route_id}.json"
    stopsNearLocation: "/stops-for-location.json"
apiKeys:
  mtaApiKey: "file-key"
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.App.SearchRadiusMeters != 800 {
		t.Errorf("SearchRadiusMeters = %d, want 800", cfg.App.SearchRadiusMeters)
	}
	if cfg.App.HTTPTimeoutMS != 15000 {
		t.Errorf("HTTPTimeoutMS default = %d, want 15000", cfg.App.HTTPTimeoutMS)
	}
	if cfg.App.NearbyMaxResults != 20 {
		t.Errorf("NearbyMaxResults default = %d, want 20", cfg.App.NearbyMaxResults)
	}
	if cfg.App.PerFeedArrivals != 5 {
		t.Errorf("PerFeedArrivals default = %d, want 5", cfg.App.PerFeedArrivals)
	}
	if cfg.Keys.MTAAPIKey != "file-key" {
		t.Errorf("MTAAPIKey = %q, want file-key", cfg.Keys.MTAAPIKey)
	}
}

func TestParseEnvOverridesKeys(t *testing.T) {
	t.Setenv("TRACK_MTA_API_KEY", "env-key")
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Keys.MTAAPIKey != "env-key" {
		t.Errorf("MTAAPIKey = %q, want env override", cfg.Keys.MTAAPIKey)
	}
}

func TestParseRejectsBadURL(t *testing.T) {
	_, err := Parse([]byte("urls:\n  subwayAce: \"not a url\"\n"))
	if err == nil {
		t.Fatal("expected validation error for malformed URL")
	}
}

func TestFeedURLGroupsLines(t *testing.T) {
	old := Config
	defer func() { Config = old }()
	Config.URLs.SubwayACE = "https://example.com/feeds/ace"
	Config.URLs.Subway123456 = "https://example.com/feeds/123456"

	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"A", "https://example.com/feeds/ace", true},
		{"C", "https://example.com/feeds/ace", true},
		{"E", "https://example.com/feeds/ace", true},
		{"4", "https://example.com/feeds/123456", true},
		{"a", "https://example.com/feeds/ace", true},
		{"X", "", false},
		{"x", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := FeedURL(tt.line)
			if ok != tt.ok || got != tt.want {
				t.Errorf("FeedURL(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRepresentativeLinesCoverEveryGroup(t *testing.T) {
	covered := map[string]bool{}
	for _, line := range RepresentativeLines {
		group, ok := LineToFeedGroup[line]
		if !ok {
			t.Fatalf("representative line %q has no feed-group", line)
		}
		if covered[group] {
			t.Errorf("feed-group %q covered twice", group)
		}
		covered[group] = true
	}
	for line, group := range LineToFeedGroup {
		if group != "si" && !covered[group] {
			t.Errorf("feed-group %q (line %q) not covered", group, line)
		}
	}
}
