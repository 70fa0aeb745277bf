package engine

import (
	"strings"

	"github.com/eXemoumen/datascrapfront/internal/dashboard/model"
)

// FacetSet holds the distinct filterable values derived from a record
// snapshot, each list in first-occurrence order.
type FacetSet struct {
	Types     []string `json:"types"`
	Locations []string `json:"locations"`
	Products  []string `json:"products"`
}

// Facets walks the snapshot once and collects the distinct announcement
// types, locations, and product tokens. Product tokens come from
// splitting every record's comma-separated products string and trimming
// each segment; empty values are skipped everywhere.
func Facets(records []model.Announcement) FacetSet {
	f := FacetSet{
		Types:     []string{},
		Locations: []string{},
		Products:  []string{},
	}
	seenTypes := make(map[string]struct{})
	seenLocations := make(map[string]struct{})
	seenProducts := make(map[string]struct{})

	for _, r := range records {
		if r.AnnouncementType != "" {
			if _, ok := seenTypes[r.AnnouncementType]; !ok {
				seenTypes[r.AnnouncementType] = struct{}{}
				f.Types = append(f.Types, r.AnnouncementType)
			}
		}
		if r.Location != "" {
			if _, ok := seenLocations[r.Location]; !ok {
				seenLocations[r.Location] = struct{}{}
				f.Locations = append(f.Locations, r.Location)
			}
		}
		for _, token := range SplitProducts(r.Products) {
			if _, ok := seenProducts[token]; !ok {
				seenProducts[token] = struct{}{}
				f.Products = append(f.Products, token)
			}
		}
	}
	return f
}

// SplitProducts splits a raw products string on commas, trims each
// token, and drops empty ones.
func SplitProducts(products string) []string {
	if products == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(products, ",") {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
