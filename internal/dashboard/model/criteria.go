package model

// Status values for FilterCriteria.
const (
	StatusAll       = "all"
	StatusChecked   = "checked"
	StatusUnchecked = "unchecked"
)

// FilterCriteria is the combined set of active filter field values.
// The zero value means "no constraint": empty strings and the literal
// "all" both match every record.
type FilterCriteria struct {
	Search   string `json:"search" form:"search"`
	Type     string `json:"type" form:"type"`
	Location string `json:"location" form:"location"`
	Product  string `json:"product" form:"product"`
	Status   string `json:"status" form:"status"` // all|checked|unchecked
	DateFrom string `json:"dateFrom" form:"dateFrom"`
	DateTo   string `json:"dateTo" form:"dateTo"`
	Company  string `json:"company" form:"company"`
}
