package workflow

import "testing"

func TestFilterValuesOmitUnsetKeys(t *testing.T) {
	v := FilterSpec{}.Values()
	if len(v) != 0 {
		t.Fatalf("empty FilterSpec should encode to no keys, got %v", v)
	}

	v = FilterSpec{Sort: "flight_date", Seller: 7}.Values()
	if got := v.Get("sort"); got != "flight_date" {
		t.Errorf("sort = %q", got)
	}
	if got := v.Get("seller"); got != "7" {
		t.Errorf("seller = %q", got)
	}
	for _, absent := range []string{"date_from", "date_to", "source_country", "garden", "buyer", "receiver", "search"} {
		if _, ok := v[absent]; ok {
			t.Errorf("unset key %q must be absent from the request, not empty", absent)
		}
	}
}

func TestFilterValuesJoinCountries(t *testing.T) {
	v := FilterSpec{SourceCountry: []string{"TH", "EC"}}.Values()
	if got := v.Get("source_country"); got != "TH,EC" {
		t.Errorf("source_country = %q, want %q", got, "TH,EC")
	}
}

func TestFilterZeroIntsAreOmitted(t *testing.T) {
	v := FilterSpec{Seller: 0, Buyer: 0, Receiver: 0}.Values()
	for _, key := range []string{"seller", "buyer", "receiver"} {
		if _, ok := v[key]; ok {
			t.Errorf("zero-valued %q must be omitted", key)
		}
	}
}
