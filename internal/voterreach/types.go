package voterreach

// Station is a subway station.
type Station struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Line string  `json:"line"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Gu   *string `json:"gu,omitempty"`
}

// Ridership is the average hourly ridership of one station.
type Ridership struct {
	StationID    string   `json:"station_id"`
	StationName  string   `json:"station_name"`
	Hour         int      `json:"hour"`
	AvgBoarding  float64  `json:"avg_boarding"`
	AvgAlighting float64  `json:"avg_alighting"`
	Total        *float64 `json:"total"`
}

// Volume is boarding plus alighting.
func (r Ridership) Volume() float64 {
	return r.AvgBoarding + r.AvgAlighting
}

// Election holds turnout of one electoral or administrative district.
type Election struct {
	District    string  `json:"district"`
	TotalVoters int     `json:"total_voters"`
	TotalVotes  int     `json:"total_votes"`
	TurnoutRate float64 `json:"turnout_rate"`
}

// LatLng is a map coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is a bounding box.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// District is an administrative district (gu) and its electoral districts.
type District struct {
	Gu                 string   `json:"gu"`
	ElectoralDistricts []string `json:"electoral_districts"`
	Center             LatLng   `json:"center"`
	Bounds             Bounds   `json:"bounds"`
}

// OptimizeRequest selects the hour and filters of a station ranking.
type OptimizeRequest struct {
	TargetHour        int    `json:"target_hour"`
	TopN              int    `json:"top_n"`
	Gu                string `json:"gu,omitempty"`
	ElectoralDistrict string `json:"electoral_district,omitempty"`
}

// Recommendation is one ranked station.
type Recommendation struct {
	StationID   string  `json:"station_id"`
	StationName string  `json:"station_name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Hour        int     `json:"hour"`
	Score       float64 `json:"score"`
	Ridership   float64 `json:"ridership"`
	Reason      string  `json:"reason"`
	Gu          *string `json:"gu"`
	TurnoutRate float64 `json:"turnout_rate"`
}

// OptimizeResponse wraps the ranked stations.
type OptimizeResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// HeatmapPoint is a weighted map point.
type HeatmapPoint struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Weight float64 `json:"weight"`
}
