package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

// writeBackup creates a temp backup file with the given name and returns its path.
func writeBackup(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func ptr(v float64) *float64 { return &v }

func TestParseBackup_Document(t *testing.T) {
	doc := `{
		"version": 1,
		"exportedAt": 1760000000000,
		"logs": [
			{"id": 12, "timestamp": 1760000000000, "minutes": -15, "name": "Pilsner", "style": "pilsner", "size": "can350", "count": 1},
			{"id": "a-b-c", "timestamp": 1760003600000, "kcal": 180.5, "name": "Stepper", "exerciseKey": "stepper"},
			{"id": "broken", "kcal": -98}
		],
		"checks": [
			{"id": 3, "timestamp": 1760000000000, "isDryDay": true, "waistEase": true, "weight": "68.4"},
			{"id": 4, "timestamp": 1760086400000, "isDryDay": false, "weight": ""}
		]
	}`

	res := ParseBackup(strings.NewReader(doc))
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Logs) != 2 || res.ParseErrors != 1 {
		t.Fatalf("logs=%d parseErrors=%d, want 2/1", len(res.Logs), res.ParseErrors)
	}

	legacy := res.Logs[0]
	if legacy.ID != "12" || legacy.Kcal != nil || legacy.Minutes == nil || *legacy.Minutes != -15 {
		t.Errorf("legacy log = %+v", legacy)
	}
	if !legacy.Timestamp.Equal(time.UnixMilli(1760000000000)) {
		t.Errorf("Timestamp = %v", legacy.Timestamp)
	}
	if res.Logs[1].Kcal == nil || *res.Logs[1].Kcal != 180.5 {
		t.Errorf("kcal log = %+v", res.Logs[1])
	}

	if len(res.Checks) != 2 {
		t.Fatalf("checks = %d, want 2", len(res.Checks))
	}
	if res.Checks[0].Weight == nil || *res.Checks[0].Weight != 68.4 {
		t.Errorf("weight from string = %v, want 68.4", res.Checks[0].Weight)
	}
	if res.Checks[1].Weight != nil {
		t.Errorf("empty weight = %v, want nil", *res.Checks[1].Weight)
	}
}

func TestParseBackup_Malformed(t *testing.T) {
	if res := ParseBackup(strings.NewReader(`{"logs": [`)); res.Err == nil {
		t.Fatal("expected error for truncated document")
	}
	if res := ParseBackup(strings.NewReader(`{"version": 99}`)); res.Err == nil {
		t.Fatal("expected error for future version")
	}
}

func TestParseLines(t *testing.T) {
	dir := t.TempDir()
	path := writeBackup(t, dir, "backup.jsonl",
		`{"type":"log","id":"l1","timestamp":1760000000000,"kcal":-98}`,
		``,
		`{"type":"check","id":"c1","timestamp":1760000000000,"isDryDay":true,"exercised":true}`,
		`{"type":"mystery","id":"x"}`,
		`not json at all`,
		`{"type":"log","id":"l2","timestamp":0}`,
	)

	res := ParseFile(path)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Logs) != 1 || len(res.Checks) != 1 {
		t.Fatalf("logs=%d checks=%d, want 1/1", len(res.Logs), len(res.Checks))
	}
	if res.ParseErrors != 3 {
		t.Errorf("ParseErrors = %d, want 3", res.ParseErrors)
	}
	if !res.Checks[0].Exercised {
		t.Error("exercised flag lost")
	}
	if res.Path != path {
		t.Errorf("Path = %q, want %q", res.Path, path)
	}
}

func TestParseFile_Missing(t *testing.T) {
	res := ParseFile(filepath.Join(t.TempDir(), "nope.json"))
	if res.Err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteBackup_ReadsBack(t *testing.T) {
	ts := time.UnixMilli(1760000000000)
	w := 70.1
	logs := []model.RawLog{
		{ID: "l1", Timestamp: ts, Kcal: ptr(-98), Style: "pilsner", Brewery: "Asahi", Rating: 3},
		{ID: "l2", Timestamp: ts, Minutes: ptr(20)},
	}
	checks := []model.CheckEntry{
		{ID: "c1", Timestamp: ts, IsDryDay: true, Weight: &w},
		{ID: "c2", Timestamp: ts},
	}

	var buf bytes.Buffer
	if err := WriteBackup(&buf, logs, checks, ts); err != nil {
		t.Fatalf("WriteBackup: %v", err)
	}
	if strings.Contains(buf.String(), `"weight": null`) {
		t.Error("absent weight should be omitted")
	}

	res := ParseBackup(&buf)
	if res.Err != nil || res.ParseErrors != 0 {
		t.Fatalf("ParseBackup: %v (%d errors)", res.Err, res.ParseErrors)
	}
	if len(res.Logs) != 2 || res.Logs[1].Kcal != nil || *res.Logs[1].Minutes != 20 {
		t.Fatalf("logs = %+v", res.Logs)
	}
	if res.Logs[0].Brewery != "Asahi" || res.Logs[0].Rating != 3 {
		t.Fatalf("log fields lost: %+v", res.Logs[0])
	}
	if res.Checks[0].Weight == nil || *res.Checks[0].Weight != 70.1 || res.Checks[1].Weight != nil {
		t.Fatalf("check weights = %v / %v", res.Checks[0].Weight, res.Checks[1].Weight)
	}
}

func TestWriteLines_ReadsBack(t *testing.T) {
	ts := time.UnixMilli(1760000000000)
	logs := []model.RawLog{{ID: "l1", Timestamp: ts, Kcal: ptr(50)}}
	checks := []model.CheckEntry{{ID: "c1", Timestamp: ts, FiberOk: true}}

	var buf bytes.Buffer
	if err := WriteLines(&buf, logs, checks); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Fatalf("wrote %d lines, want 2", n)
	}
	res := ParseLines(&buf)
	if res.ParseErrors != 0 || len(res.Logs) != 1 || len(res.Checks) != 1 || !res.Checks[0].FiberOk {
		t.Fatalf("ParseLines = %+v", res)
	}
}

func TestScanPaths(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "old")
	if err := os.MkdirAll(sub, 0o750); err != nil {
		t.Fatal(err)
	}
	a := writeBackup(t, dir, "a.json", `{}`)
	b := writeBackup(t, sub, "b.jsonl", ``)
	writeBackup(t, dir, "notes.txt", `hi`)
	explicit := writeBackup(t, t.TempDir(), "export.bak", `{}`)

	files, err := ScanPaths([]string{dir, explicit, a})
	if err != nil {
		t.Fatalf("ScanPaths: %v", err)
	}
	want := map[string]bool{a: true, b: true, explicit: true}
	if len(files) != len(want) {
		t.Fatalf("ScanPaths = %v, want %d files", files, len(want))
	}
	for _, f := range files {
		if !want[f] {
			t.Errorf("unexpected file %s", f)
		}
	}

	if _, err := ScanPaths([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestParseFiles_KeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, name := range []string{"1.jsonl", "2.jsonl", "3.jsonl", "4.jsonl"} {
		line := `{"type":"log","id":"` + name + `","timestamp":176000000000` + string(rune('0'+i)) + `,"kcal":1}`
		paths = append(paths, writeBackup(t, dir, name, line))
	}

	var calls atomic.Int32
	results := ParseFiles(paths, func(current, total int) {
		calls.Add(1)
		if total != len(paths) {
			t.Errorf("total = %d, want %d", total, len(paths))
		}
	})
	if int(calls.Load()) != len(paths) {
		t.Fatalf("progress called %d times, want %d", calls.Load(), len(paths))
	}
	for i, r := range results {
		if r.Path != paths[i] || len(r.Logs) != 1 {
			t.Fatalf("result %d = %+v", i, r)
		}
	}
}
