package config

// AppSettings contains tunables for the aggregation core.
type AppSettings struct {
	SearchRadiusMeters int    `yaml:"searchRadiusMeters" validate:"gte=0"`
	HTTPTimeoutMS      int    `yaml:"httpTimeoutMS" validate:"gte=0"`
	HTTPConnectMS      int    `yaml:"httpConnectTimeoutMS" validate:"gte=0"`
	RetryAttempts      int    `yaml:"retryAttempts" validate:"gte=0"`
	RetryDelayMS       int    `yaml:"retryDelayMS" validate:"gte=0"`
	NearbyMaxResults   int    `yaml:"nearbyMaxResults" validate:"gte=0"`
	NearbyStopQueries  int    `yaml:"nearbyStopQueries" validate:"gte=0"`
	PerFeedArrivals    int    `yaml:"perFeedArrivals" validate:"gte=0"`
	StaticDataDir      string `yaml:"staticDataDir"`
}

// APIKeys contains upstream credentials. Both keys are optional; feeds that
// require one reject requests with 401/403, which the clients classify as
// an auth failure rather than transient unavailability.
type APIKeys struct {
	MTAAPIKey string `yaml:"mtaApiKey"`
	MTABusKey string `yaml:"mtaBusKey"`
}

// BusEndpoints contains the path templates for the two bus API families.
type BusEndpoints struct {
	VehicleMonitoring string `yaml:"vehicleMonitoring" validate:"required"`
	StopMonitoring    string `yaml:"stopMonitoring" validate:"required"`
	RoutesForAgency   string `yaml:"routesForAgency" validate:"required"`
	StopsForRoute     string `yaml:"stopsForRoute" validate:"required"`
	StopsNearLocation string `yaml:"stopsNearLocation" validate:"required"`
}

// URLs contains every upstream feed location. Subway feeds are keyed by
// feed-group: one physical GTFS-RT feed serves a family of lines.
type URLs struct {
	SubwayACE     string `yaml:"subwayAce" validate:"omitempty,url"`
	SubwayG       string `yaml:"subwayG" validate:"omitempty,url"`
	SubwayNQRW    string `yaml:"subwayNqrw" validate:"omitempty,url"`
	Subway123456  string `yaml:"subway123456" validate:"omitempty,url"`
	SubwayBDFM    string `yaml:"subwayBdfm" validate:"omitempty,url"`
	SubwayJZ      string `yaml:"subwayJz" validate:"omitempty,url"`
	SubwayL       string `yaml:"subwayL" validate:"omitempty,url"`
	SubwaySI      string `yaml:"subwaySi" validate:"omitempty,url"`
	LIRR          string `yaml:"lirr" validate:"omitempty,url"`
	AlertsJSON    string `yaml:"alertsJson" validate:"omitempty,url"`
	ElevatorsJSON string `yaml:"elevatorsJson" validate:"omitempty,url"`

	BusSiriBase  string        `yaml:"busSiriBase" validate:"omitempty,url"`
	BusOBABase   string        `yaml:"busObaBase" validate:"omitempty,url"`
	BusEndpoints *BusEndpoints `yaml:"busEndpoints"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	App  AppSettings `yaml:"app"`
	Keys APIKeys     `yaml:"apiKeys"`
	URLs URLs        `yaml:"urls"`
}
