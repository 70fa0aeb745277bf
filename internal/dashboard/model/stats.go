package model

// ProductCount is one entry of the stats top-products ranking.
type ProductCount struct {
	Product string `json:"product"`
	Count   int    `json:"count"`
}

// LocationCount is one entry of the stats top-locations ranking.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// StatsSnapshot is the aggregate view computed by the backend. The
// dashboard never recomputes these numbers, it only renders them and
// derives quick-filter shortcuts from the rankings.
type StatsSnapshot struct {
	Total        int             `json:"total"`
	Checked      int             `json:"checked"`
	Unchecked    int             `json:"unchecked"`
	Today        int             `json:"today"`
	TopProducts  []ProductCount  `json:"topProducts,omitempty"`
	TopLocations []LocationCount `json:"topLocations,omitempty"`
}

// ScrapeStatus is the backend's answer to a job status poll.
type ScrapeStatus struct {
	Running bool   `json:"running"`
	Message string `json:"message"`
}
