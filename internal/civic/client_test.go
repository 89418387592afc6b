package civic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRepresentatives_ParsesResponse(t *testing.T) {
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"normalizedInput": {"city": "Beverly Hills", "state": "CA", "zip": "90210"},
			"offices": [
				{
					"name": "United States Senate",
					"divisionId": "ocd-division/country:us/state:ca",
					"officialIndices": [0, 1]
				},
				{
					"name": "United States House of Representatives CA-30",
					"divisionId": "ocd-division/country:us/state:ca/cd:30",
					"officialIndices": [2]
				}
			],
			"officials": [
				{"name": "Alex Padilla", "party": "Democratic Party", "emails": ["senator@padilla.senate.gov"]},
				{"name": "Adam Schiff", "party": "Democratic Party"},
				{"name": "Laura Friedman", "party": "Democratic Party", "phones": ["(202) 225-5911"]}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")

	resp, err := client.Representatives(context.Background(), "90210")
	if err != nil {
		t.Fatalf("Representatives() error = %v", err)
	}

	if resp.NormalizedInput == nil || resp.NormalizedInput.State != "CA" {
		t.Errorf("NormalizedInput.State = %v, want CA", resp.NormalizedInput)
	}
	if len(resp.Offices) != 2 {
		t.Fatalf("len(Offices) = %d, want 2", len(resp.Offices))
	}
	if len(resp.Officials) != 3 {
		t.Fatalf("len(Officials) = %d, want 3", len(resp.Officials))
	}
	if got := resp.Offices[1].DivisionID; got != "ocd-division/country:us/state:ca/cd:30" {
		t.Errorf("DivisionID = %q", got)
	}
	if got := resp.Officials[0].Emails[0]; got != "senator@padilla.senate.gov" {
		t.Errorf("Emails[0] = %q", got)
	}

	// Query must scope to national legislators only.
	if got := gotQuery["address"]; len(got) != 1 || got[0] != "90210" {
		t.Errorf("address query = %v", got)
	}
	if got := gotQuery["levels"]; len(got) != 1 || got[0] != "country" {
		t.Errorf("levels query = %v", got)
	}
	if got := gotQuery["roles"]; len(got) != 2 {
		t.Errorf("roles query = %v, want both chambers", got)
	}
	if got := gotQuery["key"]; len(got) != 1 || got[0] != "test-key" {
		t.Errorf("key query = %v", got)
	}
}

func TestRepresentatives_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "Failed to parse address"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")

	_, err := client.Representatives(context.Background(), "00000")
	if err == nil {
		t.Fatal("Representatives() should fail on a 400 response")
	}
}

func TestRepresentatives_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")

	_, err := client.Representatives(context.Background(), "90210")
	if err == nil {
		t.Fatal("Representatives() should fail on a non-JSON body")
	}
}
