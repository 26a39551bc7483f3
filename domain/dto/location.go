package dto

// LocationResolution is the result of resolving a coordinate pair to a
// place name. City is set only when the resolution is unambiguous;
// otherwise CityCandidates carries the sorted choices for the caller to
// pick from.
type LocationResolution struct {
	City           string   `json:"city,omitempty"`
	Country        string   `json:"country"`
	CityCandidates []string `json:"cityCandidates,omitempty"`
}
