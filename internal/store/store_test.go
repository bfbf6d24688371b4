package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "kcaltank.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func ptr(v float64) *float64 { return &v }

var base = time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local)

func TestAddLog_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	in := model.RawLog{
		Timestamp: base,
		Kcal:      ptr(-98),
		Name:      "Yona Yona",
		Style:     "pale_ale",
		Size:      "can350",
		Count:     1,
		ABV:       5.5,
		Brewery:   "Yo-Ho",
		Rating:    4,
		Memo:      "after work",
	}
	id, err := s.AddLog(in)
	if err != nil {
		t.Fatalf("AddLog: %v", err)
	}
	if id == "" {
		t.Fatal("AddLog returned empty id")
	}

	got, err := s.GetLog(id)
	if err != nil {
		t.Fatalf("GetLog: %v", err)
	}
	if got.Kcal == nil || *got.Kcal != -98 || got.Minutes != nil {
		t.Fatalf("kcal/minutes = %v/%v", got.Kcal, got.Minutes)
	}
	if !got.Timestamp.Equal(base) || got.Brewery != "Yo-Ho" || got.Rating != 4 {
		t.Fatalf("got %+v", got)
	}
}

func TestLegacyMinutesPreserved(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.AddLog(model.RawLog{ID: "legacy", Timestamp: base, Minutes: ptr(-15)}); err != nil {
		t.Fatalf("AddLog: %v", err)
	}
	logs, err := s.LoadAllLogs()
	if err != nil {
		t.Fatalf("LoadAllLogs: %v", err)
	}
	if len(logs) != 1 || logs[0].Kcal != nil || logs[0].Minutes == nil || *logs[0].Minutes != -15 {
		t.Fatalf("legacy log = %+v", logs)
	}
}

func TestReplaceLog(t *testing.T) {
	s := openTestStore(t)

	id, err := s.AddLog(model.RawLog{Timestamp: base, Kcal: ptr(-98), Name: "Sapporo"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ReplaceLog(model.RawLog{ID: id, Timestamp: base, Kcal: ptr(-196), Name: "Sapporo x2"}); err != nil {
		t.Fatalf("ReplaceLog: %v", err)
	}
	got, err := s.GetLog(id)
	if err != nil {
		t.Fatal(err)
	}
	if *got.Kcal != -196 || got.Name != "Sapporo x2" {
		t.Fatalf("replaced log = %+v", got)
	}

	err = s.ReplaceLog(model.RawLog{ID: "missing", Timestamp: base})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ReplaceLog(missing) = %v, want ErrNotFound", err)
	}
}

func TestGetLog_NotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetLog("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetLog = %v, want ErrNotFound", err)
	}
}

func TestListLogs_Pagination(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 25; i++ {
		if _, err := s.AddLog(model.RawLog{Timestamp: base.Add(time.Duration(i) * time.Hour), Kcal: ptr(float64(i))}); err != nil {
			t.Fatal(err)
		}
	}

	count, err := s.LogCount()
	if err != nil || count != 25 {
		t.Fatalf("LogCount = %d, %v", count, err)
	}

	page, err := s.ListLogs(0, 10)
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(page) != 10 || *page[0].Kcal != 24 {
		t.Fatalf("first page starts at %v, want newest (24)", *page[0].Kcal)
	}

	last, err := s.ListLogs(20, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(last) != 5 || *last[4].Kcal != 0 {
		t.Fatalf("last page = %d entries", len(last))
	}

	if empty, _ := s.ListLogs(0, 0); empty != nil {
		t.Fatalf("zero limit returned %d entries", len(empty))
	}
}

func TestDeleteLogs(t *testing.T) {
	s := openTestStore(t)

	a, _ := s.AddLog(model.RawLog{Timestamp: base, Kcal: ptr(1)})
	b, _ := s.AddLog(model.RawLog{Timestamp: base, Kcal: ptr(2)})
	c, _ := s.AddLog(model.RawLog{Timestamp: base, Kcal: ptr(3)})

	n, err := s.DeleteLogs(a, c, "missing")
	if err != nil {
		t.Fatalf("DeleteLogs: %v", err)
	}
	if n != 2 {
		t.Fatalf("deleted %d, want 2", n)
	}
	logs, _ := s.LoadAllLogs()
	if len(logs) != 1 || logs[0].ID != b {
		t.Fatalf("remaining logs = %+v", logs)
	}
}

func TestChecks(t *testing.T) {
	s := openTestStore(t)

	w := 68.2
	morning := model.CheckEntry{Timestamp: base.Add(-4 * time.Hour), IsDryDay: true, WaterOk: true}
	evening := model.CheckEntry{Timestamp: base.Add(6 * time.Hour), IsDryDay: true, Exercised: true, Weight: &w}
	yesterday := model.CheckEntry{Timestamp: base.AddDate(0, 0, -1)}

	for _, c := range []model.CheckEntry{evening, morning, yesterday} {
		if _, err := s.SaveCheck(c); err != nil {
			t.Fatalf("SaveCheck: %v", err)
		}
	}

	got, err := s.CheckForDay(base)
	if err != nil {
		t.Fatalf("CheckForDay: %v", err)
	}
	if !got.Exercised || got.Weight == nil || *got.Weight != 68.2 {
		t.Fatalf("CheckForDay = %+v, want the evening check", got)
	}

	got.WaistEase = true
	if _, err := s.SaveCheck(got); err != nil {
		t.Fatalf("SaveCheck upsert: %v", err)
	}
	all, err := s.LoadAllChecks()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("LoadAllChecks = %d entries, want 3 after upsert", len(all))
	}
	if !all[0].Timestamp.Before(all[1].Timestamp) {
		t.Fatal("checks not oldest first")
	}
	if !all[2].WaistEase {
		t.Fatal("upsert did not update the check")
	}

	if _, err := s.CheckForDay(base.AddDate(0, 0, 3)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("CheckForDay(empty day) = %v, want ErrNotFound", err)
	}
	if err := s.DeleteCheck(got.ID); err != nil {
		t.Fatalf("DeleteCheck: %v", err)
	}
	if err := s.DeleteCheck(got.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second DeleteCheck = %v, want ErrNotFound", err)
	}
}

func TestImport(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.AddLog(model.RawLog{ID: "keep", Timestamp: base, Kcal: ptr(10)}); err != nil {
		t.Fatal(err)
	}

	logs := []model.RawLog{
		{ID: "keep", Timestamp: base, Kcal: ptr(20)},
		{Timestamp: base, Minutes: ptr(5)},
	}
	checks := []model.CheckEntry{{ID: "c1", Timestamp: base, IsDryDay: true}}

	if err := s.Import(logs, checks, false); err != nil {
		t.Fatalf("Import merge: %v", err)
	}
	got, _ := s.GetLog("keep")
	if *got.Kcal != 20 {
		t.Fatalf("merge did not replace same id: %v", *got.Kcal)
	}
	if n, _ := s.LogCount(); n != 2 {
		t.Fatalf("LogCount after merge = %d, want 2", n)
	}

	if err := s.Import(logs[:1], nil, true); err != nil {
		t.Fatalf("Import replace: %v", err)
	}
	if n, _ := s.LogCount(); n != 1 {
		t.Fatalf("LogCount after replace = %d, want 1", n)
	}
	if all, _ := s.LoadAllChecks(); len(all) != 0 {
		t.Fatalf("replace kept %d checks", len(all))
	}
}
