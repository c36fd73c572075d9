package repository

import (
	"strings"
	"testing"
)

func TestRouteIndexMatchesSearchPredicate(t *testing.T) {
	schema, err := migrationFiles.ReadFile("migrations/001_init.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}

	var index string
	for _, stmt := range strings.Split(string(schema), ";") {
		if strings.Contains(stmt, "CREATE INDEX IF NOT EXISTS idx_flights_route_trimmed_day") {
			index = stmt
		}
	}
	if index == "" {
		t.Fatal("route index not found in schema")
	}

	want := "ON flights (" + departureCityKey + ", " + arrivalCityKey + ", " + departureDayKey + ")"
	if !strings.Contains(index, want) {
		t.Fatalf("index %q does not cover %q", strings.TrimSpace(index), want)
	}
	for _, key := range []string{departureCityKey, arrivalCityKey, departureDayKey} {
		if !strings.Contains(findFlightsQuery, key+" = ") {
			t.Errorf("search query does not filter on %s", key)
		}
	}
	if !strings.Contains(string(schema), "DROP INDEX IF EXISTS idx_flights_route_day;") {
		t.Error("stale untrimmed index is not dropped")
	}
}
