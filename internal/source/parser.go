// Package source reads and writes kcaltank backups: a single JSON document
// or JSON Lines with one typed record per line.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

// ParseResult holds the records read from one backup.
type ParseResult struct {
	Path        string
	Logs        []model.RawLog
	Checks      []model.CheckEntry
	ParseErrors int // records skipped as unreadable
	Err         error
}

var errNoTimestamp = errors.New("missing timestamp")

// ParseFile reads a backup file, choosing the format by extension.
func ParseFile(path string) ParseResult {
	f, err := os.Open(path) //nolint:gosec // user-supplied backup path
	if err != nil {
		return ParseResult{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	var res ParseResult
	if IsLinesFile(path) {
		res = ParseLines(f)
	} else {
		res = ParseBackup(f)
	}
	res.Path = path
	return res
}

// IsLinesFile reports whether path names a JSON Lines backup.
func IsLinesFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".jsonl" || ext == ".ndjson"
}

// ParseBackup decodes a whole-document backup. A malformed document is an
// error; individual unusable records are skipped and counted.
func ParseBackup(r io.Reader) ParseResult {
	var doc BackupFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return ParseResult{Err: fmt.Errorf("decoding backup: %w", err)}
	}
	if doc.Version > BackupVersion {
		return ParseResult{Err: fmt.Errorf("backup version %d is newer than supported %d", doc.Version, BackupVersion)}
	}

	var res ParseResult
	for _, bl := range doc.Logs {
		l, err := bl.toModel()
		if err != nil {
			res.ParseErrors++
			continue
		}
		res.Logs = append(res.Logs, l)
	}
	for _, bc := range doc.Checks {
		c, err := bc.toModel()
		if err != nil {
			res.ParseErrors++
			continue
		}
		res.Checks = append(res.Checks, c)
	}
	return res
}

// ParseLines decodes a JSON Lines backup. Blank lines are ignored; lines that
// fail to decode or have an unknown type are counted as parse errors.
func ParseLines(r io.Reader) ParseResult {
	var res ParseResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(line, &head); err != nil {
			res.ParseErrors++
			continue
		}

		switch head.Type {
		case TypeLog:
			var bl BackupLog
			if err := json.Unmarshal(line, &bl); err != nil {
				res.ParseErrors++
				continue
			}
			l, err := bl.toModel()
			if err != nil {
				res.ParseErrors++
				continue
			}
			res.Logs = append(res.Logs, l)
		case TypeCheck:
			var bc BackupCheck
			if err := json.Unmarshal(line, &bc); err != nil {
				res.ParseErrors++
				continue
			}
			c, err := bc.toModel()
			if err != nil {
				res.ParseErrors++
				continue
			}
			res.Checks = append(res.Checks, c)
		default:
			res.ParseErrors++
		}
	}
	if err := scanner.Err(); err != nil {
		res.Err = fmt.Errorf("reading lines: %w", err)
	}
	return res
}

func (bl BackupLog) toModel() (model.RawLog, error) {
	if bl.Timestamp <= 0 {
		return model.RawLog{}, errNoTimestamp
	}
	return model.RawLog{
		ID:          string(bl.ID),
		Timestamp:   time.UnixMilli(bl.Timestamp),
		Kcal:        finitePtr(bl.Kcal),
		Minutes:     finitePtr(bl.Minutes),
		Name:        bl.Name,
		ExerciseKey: bl.ExerciseKey,
		Style:       bl.Style,
		Size:        bl.Size,
		Count:       bl.Count,
		ABV:         bl.ABV,
		Brewery:     bl.Brewery,
		Brand:       bl.Brand,
		Rating:      bl.Rating,
		Memo:        bl.Memo,
	}, nil
}

func (bc BackupCheck) toModel() (model.CheckEntry, error) {
	if bc.Timestamp <= 0 {
		return model.CheckEntry{}, errNoTimestamp
	}
	return model.CheckEntry{
		ID:            string(bc.ID),
		Timestamp:     time.UnixMilli(bc.Timestamp),
		IsDryDay:      bc.IsDryDay,
		WaistEase:     bc.WaistEase,
		FootLightness: bc.FootLightness,
		WaterOk:       bc.WaterOk,
		FiberOk:       bc.FiberOk,
		Exercised:     bc.Exercised,
		Weight:        finitePtr(bc.Weight.ptr()),
	}, nil
}

func finitePtr(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}
