package gtfsrt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/wiggapony0925/track/errs"
	"github.com/wiggapony0925/track/gtfs"
)

// Decoder fetches and decodes the real-time feeds. It is safe for
// concurrent use.
type Decoder struct {
	httpClient *http.Client
	apiKey     string
	stops      *gtfs.Static
	now        func() time.Time
}

// NewDecoder creates a decoder. The stop index is used to resolve trip
// destinations; apiKey is sent as x-api-key when non-empty.
func NewDecoder(httpClient *http.Client, apiKey string, stops *gtfs.Static) *Decoder {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Decoder{
		httpClient: httpClient,
		apiKey:     apiKey,
		stops:      stops,
		now:        time.Now,
	}
}

func (d *Decoder) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &errs.UpstreamError{URL: url, Err: err}
	}
	if d.apiKey != "" {
		req.Header.Set("x-api-key", d.apiKey)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, &errs.UpstreamError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &errs.UpstreamError{URL: url, StatusCode: resp.StatusCode}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.UpstreamError{URL: url, Err: err}
	}
	return b, nil
}

func (d *Decoder) fetchFeed(ctx context.Context, url string) (*gtfsrtpb.FeedMessage, error) {
	b, err := d.get(ctx, url)
	if err != nil {
		return nil, err
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, &errs.UpstreamError{URL: url, Err: err}
	}
	return &fm, nil
}

func (d *Decoder) fetchJSON(ctx context.Context, url string, v any) error {
	b, err := d.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return &errs.UpstreamError{URL: url, Err: err}
	}
	return nil
}

// minutesUntil converts an arrival epoch to whole minutes from now,
// clamped to zero.
func minutesUntil(epoch, now int64) int {
	diff := epoch - now
	if diff <= 0 {
		return 0
	}
	return int(diff / 60)
}
