package voterreach

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrInvalidHour is returned for hours outside 0-23.
	ErrInvalidHour = errors.New("hour must be between 0 and 23")
	// ErrInvalidTopN is returned for rankings outside 1-100 stations.
	ErrInvalidTopN = errors.New("top_n must be between 1 and 100")
)

// Ranking defaults and limits.
const (
	DefaultTopN = 10
	MaxTopN     = 100

	defaultTurnout = 0.7

	highTrafficRiders     = 8000
	moderateTrafficRiders = 5000
)

// Recommendation reasons by ridership tier.
const (
	ReasonHighTraffic     = "High traffic station during target hour"
	ReasonModerateTraffic = "Moderate-high traffic with good voter engagement potential"
	ReasonStrategic       = "Strategic location for targeted outreach"
)

// Service answers voter-reach queries over a dataset. The dataset can be
// swapped while queries run.
type Service struct {
	mu   sync.RWMutex
	data *Dataset
}

// NewService creates a service over ds.
func NewService(ds *Dataset) *Service {
	return &Service{data: ds}
}

// Replace swaps in a freshly loaded dataset.
func (s *Service) Replace(ds *Dataset) {
	s.mu.Lock()
	s.data = ds
	s.mu.Unlock()
}

func (s *Service) dataset() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Districts lists the administrative districts.
func (s *Service) Districts() []District {
	return s.dataset().Districts
}

// Stations lists all stations.
func (s *Service) Stations() []Station {
	return s.dataset().Stations
}

// Ridership filters hourly ridership by hour and station id. A nil hour or
// empty station id matches everything. Missing totals are filled in.
func (s *Service) Ridership(hour *int, stationID string) ([]Ridership, error) {
	ds := s.dataset()
	if hour != nil {
		if err := validateHour(*hour); err != nil {
			return nil, err
		}
	}

	out := []Ridership{}
	for _, r := range ds.Ridership {
		if hour != nil && r.Hour != *hour {
			continue
		}
		if stationID != "" && r.StationID != stationID {
			continue
		}
		if r.Total == nil {
			total := r.Volume()
			r.Total = &total
		}
		out = append(out, r)
	}
	return out, nil
}

// Election filters turnout records by a case-insensitive district substring.
func (s *Service) Election(district string) []Election {
	ds := s.dataset()
	if district == "" {
		return ds.Elections
	}
	needle := strings.ToLower(district)
	out := []Election{}
	for _, e := range ds.Elections {
		if strings.Contains(strings.ToLower(e.District), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Optimize ranks stations at the target hour by ridership times turnout.
//
// The turnout of a station is, in order of preference: the selected electoral
// district, the average of its gu's electoral districts, or the average over
// all districts.
func (s *Service) Optimize(req OptimizeRequest) (*OptimizeResponse, error) {
	ds := s.dataset()
	if err := validateHour(req.TargetHour); err != nil {
		return nil, err
	}
	if req.TopN < 1 || req.TopN > MaxTopN {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, req.TopN)
	}

	turnoutByDistrict := make(map[string]float64, len(ds.Elections))
	for _, e := range ds.Elections {
		turnoutByDistrict[e.District] = e.TurnoutRate
	}
	avgTurnout := averageTurnout(ds.Elections)

	guToElectoral := map[string][]string{}
	if ds.DistrictsLoaded {
		for _, d := range ds.Districts {
			guToElectoral[d.Gu] = d.ElectoralDistricts
		}
	}

	stations := make(map[string]Station, len(ds.Stations))
	for _, st := range ds.Stations {
		if req.Gu != "" && (st.Gu == nil || *st.Gu != req.Gu) {
			continue
		}
		stations[st.ID] = st
	}

	lookup := func(district string) float64 {
		if rate, ok := turnoutByDistrict[district]; ok {
			return rate
		}
		return avgTurnout
	}

	recs := []Recommendation{}
	for _, r := range ds.Ridership {
		if r.Hour != req.TargetHour {
			continue
		}
		st, ok := stations[r.StationID]
		if !ok {
			continue
		}

		turnout := avgTurnout
		switch {
		case req.ElectoralDistrict != "":
			turnout = lookup(req.ElectoralDistrict)
		case st.Gu != nil:
			if eds := guToElectoral[*st.Gu]; len(eds) > 0 {
				sum := 0.0
				for _, ed := range eds {
					sum += lookup(ed)
				}
				turnout = sum / float64(len(eds))
			}
		}

		volume := r.Volume()
		name := r.StationName
		if name == "" {
			name = st.Name
		}
		if name == "" {
			name = "Unknown"
		}

		recs = append(recs, Recommendation{
			StationID:   r.StationID,
			StationName: name,
			Lat:         st.Lat,
			Lng:         st.Lng,
			Hour:        req.TargetHour,
			Score:       round(volume*turnout, 2),
			Ridership:   volume,
			Reason:      reason(volume),
			Gu:          st.Gu,
			TurnoutRate: round(turnout, 4),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > req.TopN {
		recs = recs[:req.TopN]
	}
	return &OptimizeResponse{Recommendations: recs}, nil
}

// Heatmap weights each station's ridership at hour by the busiest station.
func (s *Service) Heatmap(hour int) ([]HeatmapPoint, error) {
	ds := s.dataset()
	if err := validateHour(hour); err != nil {
		return nil, err
	}

	stations := make(map[string]Station, len(ds.Stations))
	for _, st := range ds.Stations {
		stations[st.ID] = st
	}

	var hourly []Ridership
	maxVolume := 0.0
	for _, r := range ds.Ridership {
		if r.Hour != hour {
			continue
		}
		hourly = append(hourly, r)
		maxVolume = math.Max(maxVolume, r.Volume())
	}

	points := []HeatmapPoint{}
	for _, r := range hourly {
		st, ok := stations[r.StationID]
		if !ok {
			continue
		}
		weight := 0.0
		if maxVolume > 0 {
			weight = r.Volume() / maxVolume
		}
		points = append(points, HeatmapPoint{Lat: st.Lat, Lng: st.Lng, Weight: round(weight, 4)})
	}
	return points, nil
}

func averageTurnout(elections []Election) float64 {
	if len(elections) == 0 {
		return defaultTurnout
	}
	sum := 0.0
	for _, e := range elections {
		sum += e.TurnoutRate
	}
	return sum / float64(len(elections))
}

func reason(volume float64) string {
	switch {
	case volume > highTrafficRiders:
		return ReasonHighTraffic
	case volume > moderateTrafficRiders:
		return ReasonModerateTraffic
	default:
		return ReasonStrategic
	}
}

func validateHour(hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: got %d", ErrInvalidHour, hour)
	}
	return nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
