package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "config.toml"))
}

func TestLoadMissingFile(t *testing.T) {
	store := testStore(t)
	file, exists, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Error("missing file reported as existing")
	}
	if file.Profiles == nil {
		t.Error("Profiles map not initialized")
	}
}

func TestSetAPIKeyRoundTrip(t *testing.T) {
	store := testStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := store.SetAPIKey("work", "lin_api_abc", now); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}

	file, exists, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("file not created")
	}
	if file.Current != "work" {
		t.Errorf("current = %q, want work (first profile becomes current)", file.Current)
	}
	if file.Profiles["work"].APIKey != "lin_api_abc" {
		t.Errorf("profile = %+v", file.Profiles["work"])
	}

	info, err := os.Stat(store.Path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}

func TestSetAPIKeyEmptyRejected(t *testing.T) {
	store := testStore(t)
	if err := store.SetAPIKey("work", "", time.Now()); err == nil {
		t.Fatal("empty key accepted")
	}
}

func TestAPIKeyPrecedence(t *testing.T) {
	store := testStore(t)
	now := time.Now()
	if err := store.SetAPIKey("default", "key-default", now); err != nil {
		t.Fatal(err)
	}
	if err := store.SetAPIKey("work", "key-work", now); err != nil {
		t.Fatal(err)
	}

	// Env profile overrides the file's current field.
	key, profile, ok, err := store.APIKey("work")
	if err != nil || !ok {
		t.Fatalf("APIKey: ok=%v err=%v", ok, err)
	}
	if key != "key-work" || profile != "work" {
		t.Errorf("got %q from %q", key, profile)
	}

	// Without an env profile the current field wins.
	key, profile, ok, err = store.APIKey("")
	if err != nil || !ok {
		t.Fatalf("APIKey: ok=%v err=%v", ok, err)
	}
	if profile != "default" || key != "key-default" {
		t.Errorf("got %q from %q, want the current profile", key, profile)
	}
}

func TestAPIKeyMissingProfile(t *testing.T) {
	store := testStore(t)
	_, profile, ok, err := store.APIKey("ghost")
	if err != nil {
		t.Fatalf("APIKey: %v", err)
	}
	if ok {
		t.Error("missing profile reported ok")
	}
	if profile != "ghost" {
		t.Errorf("profile = %q, want ghost", profile)
	}
}

func TestSwitchProfile(t *testing.T) {
	store := testStore(t)
	now := time.Now()
	_ = store.SetAPIKey("a", "ka", now)
	_ = store.SetAPIKey("b", "kb", now)

	if err := store.SwitchProfile("b"); err != nil {
		t.Fatalf("SwitchProfile: %v", err)
	}
	file, _, _ := store.Load()
	if file.Current != "b" {
		t.Errorf("current = %q, want b", file.Current)
	}

	if err := store.SwitchProfile("nope"); err == nil {
		t.Error("switching to a missing profile succeeded")
	}
}

func TestRemoveProfileClearsCurrent(t *testing.T) {
	store := testStore(t)
	_ = store.SetAPIKey("only", "k", time.Now())

	if err := store.RemoveProfile("only"); err != nil {
		t.Fatalf("RemoveProfile: %v", err)
	}
	file, _, _ := store.Load()
	if file.Current != "" {
		t.Errorf("current = %q, want empty", file.Current)
	}
	if _, found := file.Profiles["only"]; found {
		t.Error("profile still present")
	}

	if err := store.RemoveProfile("only"); err == nil {
		t.Error("removing a missing profile succeeded")
	}
}

func TestActiveProfile(t *testing.T) {
	tests := []struct {
		name string
		file File
		env  string
		want string
	}{
		{"env wins", File{Current: "file"}, "env", "env"},
		{"current next", File{Current: "file"}, "", "file"},
		{"default last", File{}, "", DefaultProfile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActiveProfile(tt.file, tt.env); got != tt.want {
				t.Errorf("ActiveProfile = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSaveAtomicOverwrite(t *testing.T) {
	store := testStore(t)
	now := time.Now()
	_ = store.SetAPIKey("a", "k1", now)
	_ = store.SetAPIKey("a", "k2", now)

	file, _, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if file.Profiles["a"].APIKey != "k2" {
		t.Errorf("key = %q, want k2", file.Profiles["a"].APIKey)
	}
	if _, err := os.Stat(store.Path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}
