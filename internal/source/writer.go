package source

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/theirongolddev/kcaltank/internal/model"
)

// WriteBackup writes logs and checks as one indented JSON document.
// Records keep their stored shape, so legacy minute-based logs stay legacy.
func WriteBackup(w io.Writer, logs []model.RawLog, checks []model.CheckEntry, exportedAt time.Time) error {
	doc := BackupFile{
		Version:    BackupVersion,
		ExportedAt: exportedAt.UnixMilli(),
		Logs:       make([]BackupLog, 0, len(logs)),
		Checks:     make([]BackupCheck, 0, len(checks)),
	}
	for _, l := range logs {
		doc.Logs = append(doc.Logs, fromLog(l))
	}
	for _, c := range checks {
		doc.Checks = append(doc.Checks, fromCheck(c))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	return nil
}

// WriteLines writes one typed JSON record per line, logs first.
func WriteLines(w io.Writer, logs []model.RawLog, checks []model.CheckEntry) error {
	enc := json.NewEncoder(w)
	for _, l := range logs {
		bl := fromLog(l)
		bl.Type = TypeLog
		if err := enc.Encode(bl); err != nil {
			return fmt.Errorf("encoding log %s: %w", l.ID, err)
		}
	}
	for _, c := range checks {
		bc := fromCheck(c)
		bc.Type = TypeCheck
		if err := enc.Encode(bc); err != nil {
			return fmt.Errorf("encoding check %s: %w", c.ID, err)
		}
	}
	return nil
}

func fromLog(l model.RawLog) BackupLog {
	return BackupLog{
		ID:          flexID(l.ID),
		Timestamp:   l.Timestamp.UnixMilli(),
		Kcal:        finitePtr(l.Kcal),
		Minutes:     finitePtr(l.Minutes),
		Name:        l.Name,
		ExerciseKey: l.ExerciseKey,
		Style:       l.Style,
		Size:        l.Size,
		Count:       l.Count,
		ABV:         l.ABV,
		Brewery:     l.Brewery,
		Brand:       l.Brand,
		Rating:      l.Rating,
		Memo:        l.Memo,
	}
}

func fromCheck(c model.CheckEntry) BackupCheck {
	return BackupCheck{
		ID:            flexID(c.ID),
		Timestamp:     c.Timestamp.UnixMilli(),
		IsDryDay:      c.IsDryDay,
		WaistEase:     c.WaistEase,
		FootLightness: c.FootLightness,
		WaterOk:       c.WaterOk,
		FiberOk:       c.FiberOk,
		Exercised:     c.Exercised,
		Weight:        someFloat(finitePtr(c.Weight)),
	}
}
