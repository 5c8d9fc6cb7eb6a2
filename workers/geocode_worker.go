// workers/geocode_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"boulder-session-system/models"
	"boulder-session-system/utils"

	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// GeocodeCandidate is one search hit from a Nominatim-compatible geocoder.
type GeocodeCandidate struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Coordinates parses the candidate; ok is false for unparseable or non-finite values.
func (c GeocodeCandidate) Coordinates() (lat, lng float64, ok bool) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(c.Lat), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(c.Lon), 64)
	if errLat != nil || errLng != nil {
		return 0, 0, false
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, false
	}
	return lat, lng, true
}

// GeocodeWorker fills in coordinates for gyms that have none.
type GeocodeWorker struct {
	db         *gorm.DB
	interval   time.Duration
	baseURL    string // e.g., "https://nominatim.openstreetmap.org"
	userAgent  string
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewGeocodeWorker builds a worker allowed rps requests per second.
func NewGeocodeWorker(db *gorm.DB, baseURL string, rps float64) *GeocodeWorker {
	if rps <= 0 {
		rps = 1
	}
	return &GeocodeWorker{
		db:         db,
		interval:   10 * time.Minute,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "boulder-session-system/1.0",
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		httpClient: utils.HTTPClient,
	}
}

func (w *GeocodeWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Gym Geocode Worker…")
	go w.run(ctx)
}

func (w *GeocodeWorker) run(ctx context.Context) {
	if err := w.syncBatch(ctx); err != nil {
		log.Printf("⚠️ Initial geocode batch failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.syncBatch(ctx); err != nil {
				log.Printf("❌ Geocode batch failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Gym Geocode Worker stopped")
			return
		}
	}
}

// syncBatch geocodes every gym missing coordinates. A gym with no candidates
// keeps absent coordinates and is retried next round.
func (w *GeocodeWorker) syncBatch(ctx context.Context) error {
	var gyms []models.Gym
	if err := w.db.WithContext(ctx).Where("lat IS NULL OR lng IS NULL").Find(&gyms).Error; err != nil {
		return fmt.Errorf("load gyms without coordinates: %w", err)
	}
	if len(gyms) == 0 {
		return nil
	}
	log.Printf("[GEOCODE] 📡 %d gyms without coordinates", len(gyms))

	updated := 0
	for _, gym := range gyms {
		if err := w.limiter.Wait(ctx); err != nil {
			return err
		}
		candidates, err := w.Lookup(ctx, gym.GymName)
		if err != nil {
			log.Printf("⚠️ [GEOCODE] lookup failed for %s: %v", gym.GymName, err)
			continue
		}
		lat, lng, ok := FirstUsableCandidate(candidates)
		if !ok {
			log.Printf("[GEOCODE] no candidates for %s", gym.GymName)
			continue
		}
		err = w.db.WithContext(ctx).Model(&models.Gym{}).
			Where("gym_name = ?", gym.GymName).
			Updates(map[string]interface{}{"lat": lat, "lng": lng}).Error
		if err != nil {
			log.Printf("❌ [GEOCODE] failed to save coordinates for %s: %v", gym.GymName, err)
			continue
		}
		updated++
	}

	log.Printf("[GEOCODE] ✅ updated %d/%d gyms", updated, len(gyms))
	return nil
}

// Lookup queries the geocoder for a free-text place name.
func (w *GeocodeWorker) Lookup(ctx context.Context, query string) ([]GeocodeCandidate, error) {
	u, err := url.Parse(w.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("invalid geocoder URL '%s': %w", w.baseURL, err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "5")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", w.userAgent)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("geocoder returned status %d: %s", resp.StatusCode, string(body))
	}

	var candidates []GeocodeCandidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	return candidates, nil
}

// FirstUsableCandidate returns the first candidate with valid coordinates.
func FirstUsableCandidate(candidates []GeocodeCandidate) (lat, lng float64, ok bool) {
	for _, c := range candidates {
		if lat, lng, ok := c.Coordinates(); ok {
			return lat, lng, true
		}
	}
	return 0, 0, false
}
