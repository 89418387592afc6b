package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dontbanhemp/action-server/internal/apperror"
	"github.com/dontbanhemp/action-server/internal/civic"
	"github.com/dontbanhemp/action-server/internal/model"
	"github.com/dontbanhemp/action-server/internal/repository"
)

func curationUpdate(stance *model.Stance, quote *string) repository.CurationUpdate {
	return repository.CurationUpdate{HempStance: stance, KeyQuote: quote}
}

// caResponse is a typical provider payload for a California zip: two
// senate seats and one house district.
func caResponse() *civic.Response {
	return &civic.Response{
		NormalizedInput: &civic.NormalizedInput{City: "Los Angeles", State: "CA", Zip: "90210"},
		Offices: []civic.Office{
			{
				Name:            "United States Senate",
				DivisionID:      "ocd-division/country:us/state:ca",
				OfficialIndices: []int{0, 1},
			},
			{
				Name:            "United States House of Representatives CA-30",
				DivisionID:      "ocd-division/country:us/state:ca/cd:30",
				OfficialIndices: []int{2},
			},
		},
		Officials: []civic.Official{
			{Name: "Alex Padilla", Party: "Democratic Party", Emails: []string{"senator@padilla.senate.gov"}},
			{Name: "Adam Schiff", Party: "Democratic Party"},
			{Name: "Laura Friedman", Party: "Democratic Party", Phones: []string{"(202) 225-4176"}},
		},
	}
}

func newTestLookupService(t *testing.T, api *mockCivicAPI) (*LookupService, *mockLawmakerRepo) {
	t.Helper()
	repo := newMockLawmakerRepo()
	svc := NewLookupService(api, repo, quietLogger(t))
	return svc, repo
}

func TestLookup_InvalidZip(t *testing.T) {
	api := &mockCivicAPI{response: caResponse()}
	svc, _ := newTestLookupService(t, api)

	for _, zip := range []string{"", "1234", "123456", "abcde", "12 45"} {
		_, err := svc.Lookup(context.Background(), zip)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Lookup(%q) error = %v, want ErrValidation", zip, err)
		}
	}

	// Validation must fail before any provider traffic.
	if api.calls != 0 {
		t.Errorf("provider was called %d times for invalid zips, want 0", api.calls)
	}
}

func TestLookup_Success(t *testing.T) {
	svc, repo := newTestLookupService(t, &mockCivicAPI{response: caResponse()})

	result, err := svc.Lookup(context.Background(), "90210")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if len(result.Senators) != 2 {
		t.Fatalf("got %d senators, want 2", len(result.Senators))
	}
	if result.Representative == nil {
		t.Fatal("expected a representative")
	}
	if result.Representative.Name != "Laura Friedman" {
		t.Errorf("Representative.Name = %q, want %q", result.Representative.Name, "Laura Friedman")
	}
	if result.Representative.District != "30" {
		t.Errorf("Representative.District = %q, want %q", result.Representative.District, "30")
	}
	for _, s := range result.Senators {
		if s.State != "CA" {
			t.Errorf("senator %s state = %q, want CA", s.Name, s.State)
		}
		if s.Chamber != model.ChamberSenate {
			t.Errorf("senator %s chamber = %q", s.Name, s.Chamber)
		}
		if s.HempStance != model.StanceUnknown {
			t.Errorf("new lawmaker stance = %q, want unknown", s.HempStance)
		}
	}

	// Contact details from the provider carry through on first sighting.
	padilla, err := repo.GetByExternalID(context.Background(), ExternalID("CA", model.ChamberSenate, "Alex Padilla"))
	if err != nil {
		t.Fatalf("GetByExternalID() error = %v", err)
	}
	if padilla.Email != "senator@padilla.senate.gov" {
		t.Errorf("Email = %q, want provider value", padilla.Email)
	}
}

func TestLookup_RepeatSightingTouchesNotInserts(t *testing.T) {
	svc, repo := newTestLookupService(t, &mockCivicAPI{response: caResponse()})

	first, err := svc.Lookup(context.Background(), "90210")
	if err != nil {
		t.Fatalf("first Lookup() error = %v", err)
	}
	insertsAfterFirst := repo.insertCalls

	second, err := svc.Lookup(context.Background(), "90210")
	if err != nil {
		t.Fatalf("second Lookup() error = %v", err)
	}

	if repo.insertCalls != insertsAfterFirst {
		t.Errorf("second lookup inserted %d new rows, want 0", repo.insertCalls-insertsAfterFirst)
	}
	if first.Representative.ID != second.Representative.ID {
		t.Errorf("same person got two IDs: %q and %q", first.Representative.ID, second.Representative.ID)
	}
	if repo.touchCalls[second.Representative.ID] != 1 {
		t.Errorf("repeat sighting should bump last_synced_at exactly once, got %d", repo.touchCalls[second.Representative.ID])
	}
}

func TestLookup_RepeatSightingPreservesCuration(t *testing.T) {
	svc, repo := newTestLookupService(t, &mockCivicAPI{response: caResponse()})

	first, err := svc.Lookup(context.Background(), "90210")
	if err != nil {
		t.Fatalf("first Lookup() error = %v", err)
	}

	// Staff curates the representative between two lookups.
	stance := model.StanceChampion
	quote := "Hemp prohibition is bad policy."
	err = repo.UpdateCuration(context.Background(), first.Representative.ID, curationUpdate(&stance, &quote))
	if err != nil {
		t.Fatalf("UpdateCuration() error = %v", err)
	}

	second, err := svc.Lookup(context.Background(), "90210")
	if err != nil {
		t.Fatalf("second Lookup() error = %v", err)
	}
	if second.Representative.HempStance != model.StanceChampion {
		t.Errorf("re-sync overwrote curated stance: got %q", second.Representative.HempStance)
	}
	if second.Representative.KeyQuote != quote {
		t.Errorf("re-sync overwrote curated quote: got %q", second.Representative.KeyQuote)
	}
}

func TestLookup_SkipsUnrecognizedOffices(t *testing.T) {
	resp := caResponse()
	resp.Offices = append(resp.Offices, civic.Office{
		Name:            "Governor of California",
		DivisionID:      "ocd-division/country:us/state:ca",
		OfficialIndices: []int{3},
	})
	resp.Officials = append(resp.Officials, civic.Official{Name: "Gavin Newsom"})

	svc, repo := newTestLookupService(t, &mockCivicAPI{response: resp})

	result, err := svc.Lookup(context.Background(), "90210")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(result.Senators) != 2 || result.Representative == nil {
		t.Error("unrecognized office should not disturb the congressional results")
	}
	if _, err := repo.GetByExternalID(context.Background(), ExternalID("CA", model.ChamberHouse, "Gavin Newsom")); err == nil {
		t.Error("official from an unrecognized office must not be stored")
	}
}

func TestLookup_NoOfficesIsNotAnError(t *testing.T) {
	resp := &civic.Response{
		NormalizedInput: &civic.NormalizedInput{State: "WY", Zip: "82001"},
	}
	svc, _ := newTestLookupService(t, &mockCivicAPI{response: resp})

	result, err := svc.Lookup(context.Background(), "82001")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if result.Senators == nil {
		t.Error("Senators must be an empty slice, not nil")
	}
	if len(result.Senators) != 0 || result.Representative != nil {
		t.Error("expected an empty delegation")
	}
}

func TestLookup_UnresolvableState(t *testing.T) {
	// No normalized state and no state token in any division ID.
	resp := &civic.Response{
		Offices: []civic.Office{{
			Name:            "United States Senate",
			DivisionID:      "ocd-division/country:us",
			OfficialIndices: []int{0},
		}},
		Officials: []civic.Official{{Name: "Somebody"}},
	}
	svc, _ := newTestLookupService(t, &mockCivicAPI{response: resp})

	_, err := svc.Lookup(context.Background(), "00000")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestLookup_StateFallsBackToDivisionID(t *testing.T) {
	resp := caResponse()
	resp.NormalizedInput = nil

	svc, _ := newTestLookupService(t, &mockCivicAPI{response: resp})

	result, err := svc.Lookup(context.Background(), "90210")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(result.Senators) == 0 || result.Senators[0].State != "CA" {
		t.Error("state should be recovered from the office division IDs")
	}
}

func TestLookup_ProviderFailure(t *testing.T) {
	svc, _ := newTestLookupService(t, &mockCivicAPI{err: errors.New("connection refused")})

	_, err := svc.Lookup(context.Background(), "90210")
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}

func TestLookup_OneBadRecordDoesNotBlockTheRest(t *testing.T) {
	api := &mockCivicAPI{response: caResponse()}
	repo := newMockLawmakerRepo()
	svc := NewLookupService(api, repo, quietLogger(t))

	// The representative is already known; both senator inserts fail.
	repo.seed(model.Lawmaker{
		ExternalID: ExternalID("CA", model.ChamberHouse, "Laura Friedman"),
		Name:       "Laura Friedman",
		Chamber:    model.ChamberHouse,
		State:      "CA",
		District:   "30",
		HempStance: model.StanceUnknown,
	})
	repo.insertErr = errors.New("disk I/O error")

	result, err := svc.Lookup(context.Background(), "90210")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(result.Senators) != 0 {
		t.Errorf("failed inserts should yield no senators, got %d", len(result.Senators))
	}
	if result.Representative == nil {
		t.Fatal("the already-stored representative should survive sibling failures")
	}
}

func TestLookup_InsertRaceRecoversExistingRow(t *testing.T) {
	api := &mockCivicAPI{response: caResponse()}
	repo := newMockLawmakerRepo()
	svc := NewLookupService(api, repo, quietLogger(t))

	// Simulate a concurrent request landing each row between our existence
	// check and our insert: the hook stores the row itself, then fails the
	// insert with a conflict.
	repo.insertHook = func(l *model.Lawmaker) error {
		stored := *l
		repo.seed(stored)
		return apperror.Conflict("lawmaker", l.ExternalID)
	}

	result, err := svc.Lookup(context.Background(), "90210")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(result.Senators) != 2 || result.Representative == nil {
		t.Error("conflicted inserts should recover the concurrently-created rows")
	}
}

func TestExternalID(t *testing.T) {
	tests := []struct {
		state   string
		chamber model.Chamber
		name    string
		want    string
	}{
		{"CA", model.ChamberSenate, "Alex Padilla", "ca-senate-alex-padilla"},
		{"tx", model.ChamberHouse, "  Dan  Crenshaw ", "tx-house-dan-crenshaw"},
		{"NY", model.ChamberHouse, "Alexandria Ocasio-Cortez", "ny-house-alexandria-ocasio-cortez"},
	}

	for _, tt := range tests {
		if got := ExternalID(tt.state, tt.chamber, tt.name); got != tt.want {
			t.Errorf("ExternalID(%q, %q, %q) = %q, want %q", tt.state, tt.chamber, tt.name, got, tt.want)
		}
	}
}

func TestChamberForOffice(t *testing.T) {
	tests := []struct {
		office string
		want   model.Chamber
		ok     bool
	}{
		{"United States Senate", model.ChamberSenate, true},
		{"U.S. Senator", model.ChamberSenate, true},
		{"United States House of Representatives CA-30", model.ChamberHouse, true},
		{"U.S. Representative", model.ChamberHouse, true},
		{"Governor of California", "", false},
	}

	for _, tt := range tests {
		got, ok := chamberForOffice(tt.office)
		if got != tt.want || ok != tt.ok {
			t.Errorf("chamberForOffice(%q) = (%q, %v), want (%q, %v)", tt.office, got, ok, tt.want, tt.ok)
		}
	}
}
