package workflow

import (
	"net/url"
	"strconv"
	"strings"
)

// FilterSpec is the one filter value shared by every screen; each screen
// exposes only the keys that apply to it. Filters combine under AND
// semantics on the server.
type FilterSpec struct {
	Sort          string
	DateFrom      string
	DateTo        string
	SourceCountry []string
	Garden        string
	Seller        int
	Buyer         int
	Receiver      int
	Search        string
}

// Values encodes only the keys that are set. An unset filter key is absent
// from the request entirely, never sent as null or empty string.
func (f FilterSpec) Values() url.Values {
	v := url.Values{}
	if f.Sort != "" {
		v.Set("sort", f.Sort)
	}
	if f.DateFrom != "" {
		v.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		v.Set("date_to", f.DateTo)
	}
	if len(f.SourceCountry) > 0 {
		v.Set("source_country", strings.Join(f.SourceCountry, ","))
	}
	if f.Garden != "" {
		v.Set("garden", f.Garden)
	}
	if f.Seller > 0 {
		v.Set("seller", strconv.Itoa(f.Seller))
	}
	if f.Buyer > 0 {
		v.Set("buyer", strconv.Itoa(f.Buyer))
	}
	if f.Receiver > 0 {
		v.Set("receiver", strconv.Itoa(f.Receiver))
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	return v
}
