package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestAdminJSONNeverExposesSecrets(t *testing.T) {
	locked := time.Now().Add(10 * time.Minute)
	admin := Admin{
		ID:                  1,
		Email:               "admin@portfolio.com",
		PasswordHash:        "$2a$10$abcdefghijklmnopqrstuv",
		Name:                "Admin",
		Role:                RoleAdmin,
		IsActive:            true,
		FailedLoginAttempts: 3,
		LockedUntil:         &locked,
	}

	data, err := json.Marshal(admin)
	if err != nil {
		t.Fatalf("marshal admin: %v", err)
	}
	out := string(data)

	for _, forbidden := range []string{"$2a$10$", "password", "failed_login", "locked_until"} {
		if strings.Contains(out, forbidden) {
			t.Errorf("admin JSON leaked %q: %s", forbidden, out)
		}
	}
}

func TestAdminPublicProjection(t *testing.T) {
	admin := Admin{
		ID:           7,
		Email:        "admin@portfolio.com",
		PasswordHash: "hash",
		Name:         "Jordan",
		Role:         RoleAdmin,
	}

	pub := admin.Public()
	if pub.ID != 7 || pub.Email != "admin@portfolio.com" || pub.Name != "Jordan" || pub.Role != RoleAdmin {
		t.Errorf("unexpected public projection: %+v", pub)
	}

	data, err := json.Marshal(pub)
	if err != nil {
		t.Fatalf("marshal public admin: %v", err)
	}
	if strings.Contains(string(data), "hash") {
		t.Errorf("public projection leaked hash: %s", data)
	}
}

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"Go", "PostgreSQL", "React"}

	val, err := list.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var scanned StringList
	if err := scanned.Scan(val); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(scanned) != 3 || scanned[0] != "Go" || scanned[2] != "React" {
		t.Errorf("round trip mismatch: %v", scanned)
	}
}

func TestStringListScanNilAndBytes(t *testing.T) {
	var l StringList
	if err := l.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if l != nil {
		t.Errorf("expected nil list, got %v", l)
	}

	if err := l.Scan([]byte(`["a","b"]`)); err != nil {
		t.Fatalf("Scan(bytes): %v", err)
	}
	if len(l) != 2 {
		t.Errorf("expected 2 entries, got %v", l)
	}

	if err := l.Scan(42); err == nil {
		t.Error("expected error scanning int into StringList")
	}
}

func TestStringListNilValue(t *testing.T) {
	var l StringList
	val, err := l.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if val != "[]" {
		t.Errorf("nil list should serialize as empty array, got %v", val)
	}
}
