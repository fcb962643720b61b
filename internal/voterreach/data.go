package voterreach

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// Dataset file names inside the data directory.
const (
	StationsFile  = "stations.json"
	RidershipFile = "ridership_hourly.json"
	ElectionFile  = "election_by_district.json"
	DistrictsFile = "seoul_districts.json"
)

// Dataset is the static input of the voter-reach scoring. Files missing from
// the data directory are replaced by built-in sample data.
type Dataset struct {
	Stations  []Station
	Ridership []Ridership
	Elections []Election
	Districts []District

	// DistrictsLoaded reports whether districts came from a file. Sample
	// districts are listed but never used to map stations to turnout.
	DistrictsLoaded bool
}

// LoadDataset reads the dataset files from dir. An empty dir yields sample data.
func LoadDataset(dir string) (*Dataset, error) {
	ds := &Dataset{}

	found, err := loadJSONFile(dir, StationsFile, &ds.Stations)
	if err != nil {
		return nil, err
	}
	if !found {
		ds.Stations = mockStations()
	}

	if found, err = loadJSONFile(dir, RidershipFile, &ds.Ridership); err != nil {
		return nil, err
	}
	if !found {
		ds.Ridership = mockRidership()
	}

	if found, err = loadJSONFile(dir, ElectionFile, &ds.Elections); err != nil {
		return nil, err
	}
	if !found {
		ds.Elections = mockElections()
	}

	if found, err = loadJSONFile(dir, DistrictsFile, &ds.Districts); err != nil {
		return nil, err
	}
	ds.DistrictsLoaded = found
	if !found {
		ds.Districts = mockDistricts()
	}

	return ds, nil
}

// loadJSONFile decodes dir/name into target. A missing file is not an error.
func loadJSONFile(dir, name string, target any) (bool, error) {
	if dir == "" {
		return false, nil
	}
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return true, nil
}

func mockStations() []Station {
	return []Station{
		{ID: "1001", Name: "Gangnam", Line: "Line 2", Lat: 37.4979, Lng: 127.0276},
		{ID: "1002", Name: "Jamsil", Line: "Line 2", Lat: 37.5133, Lng: 127.1001},
		{ID: "1003", Name: "Hongdae", Line: "Line 2", Lat: 37.5571, Lng: 126.9244},
		{ID: "1004", Name: "Seoul Station", Line: "Line 1", Lat: 37.5547, Lng: 126.9706},
		{ID: "1005", Name: "Yeouido", Line: "Line 5", Lat: 37.5219, Lng: 126.9243},
	}
}

// mockRidership simulates morning and evening rush hour peaks.
func mockRidership() []Ridership {
	var out []Ridership
	for _, s := range mockStations() {
		for hour := 0; hour < 24; hour++ {
			var boarding, alighting float64
			if (hour >= 7 && hour <= 9) || (hour >= 18 && hour <= 20) {
				boarding = 5000 + float64(hour%3)*500
				alighting = 4500 + float64(hour%3)*400
			} else {
				boarding = 1500 + float64(hour%5)*100
				alighting = 1400 + float64(hour%5)*80
			}
			total := boarding + alighting
			out = append(out, Ridership{
				StationID:    s.ID,
				StationName:  s.Name,
				Hour:         hour,
				AvgBoarding:  boarding,
				AvgAlighting: alighting,
				Total:        &total,
			})
		}
	}
	return out
}

func mockElections() []Election {
	return []Election{
		{District: "Gangnam-gu", TotalVoters: 450000, TotalVotes: 315000, TurnoutRate: 0.70},
		{District: "Songpa-gu", TotalVoters: 520000, TotalVotes: 374400, TurnoutRate: 0.72},
		{District: "Mapo-gu", TotalVoters: 320000, TotalVotes: 236800, TurnoutRate: 0.74},
		{District: "Jung-gu", TotalVoters: 110000, TotalVotes: 74800, TurnoutRate: 0.68},
		{District: "Yeongdeungpo-gu", TotalVoters: 350000, TotalVotes: 245000, TurnoutRate: 0.70},
	}
}

func mockDistricts() []District {
	return []District{
		{
			Gu:                 "강남구",
			ElectoralDistricts: []string{"강남구갑", "강남구을", "강남구병"},
			Center:             LatLng{Lat: 37.5172, Lng: 127.0473},
			Bounds:             Bounds{North: 37.5350, South: 37.4640, East: 127.0900, West: 127.0100},
		},
	}
}
