package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// BackupVersion is written into every backup document.
const BackupVersion = 1

// Record types used on each line of a JSON Lines backup.
const (
	TypeLog   = "log"
	TypeCheck = "check"
)

// BackupFile is a whole-document backup.
type BackupFile struct {
	Version    int           `json:"version"`
	ExportedAt int64         `json:"exportedAt,omitempty"` // unix ms
	Logs       []BackupLog   `json:"logs"`
	Checks     []BackupCheck `json:"checks"`
}

// BackupLog is a log record as exported. Timestamps are unix milliseconds.
// Older exports carry Minutes (of the stepper) instead of Kcal.
type BackupLog struct {
	Type        string   `json:"type,omitempty"`
	ID          flexID   `json:"id"`
	Timestamp   int64    `json:"timestamp"`
	Kcal        *float64 `json:"kcal,omitempty"`
	Minutes     *float64 `json:"minutes,omitempty"`
	Name        string   `json:"name,omitempty"`
	ExerciseKey string   `json:"exerciseKey,omitempty"`
	Style       string   `json:"style,omitempty"`
	Size        string   `json:"size,omitempty"`
	Count       float64  `json:"count,omitempty"`
	ABV         float64  `json:"abv,omitempty"`
	Brewery     string   `json:"brewery,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Rating      int      `json:"rating,omitempty"`
	Memo        string   `json:"memo,omitempty"`
}

// BackupCheck is a check record as exported.
type BackupCheck struct {
	Type          string   `json:"type,omitempty"`
	ID            flexID   `json:"id"`
	Timestamp     int64    `json:"timestamp"`
	IsDryDay      bool     `json:"isDryDay"`
	WaistEase     bool     `json:"waistEase"`
	FootLightness bool     `json:"footLightness"`
	WaterOk       bool     `json:"waterOk"`
	FiberOk       bool     `json:"fiberOk"`
	Exercised     bool     `json:"exercised,omitempty"`
	Weight        optFloat `json:"weight,omitzero"`
}

// flexID accepts both string and numeric ids; older exports used
// auto-increment integers.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = flexID(n.String())
	return nil
}

// optFloat is an optional number that also accepts numeric strings;
// empty strings and null mean absent.
type optFloat struct {
	val float64
	ok  bool
}

func someFloat(v *float64) optFloat {
	if v == nil {
		return optFloat{}
	}
	return optFloat{val: *v, ok: true}
}

func (o optFloat) IsZero() bool { return !o.ok }

func (o optFloat) ptr() *float64 {
	if !o.ok {
		return nil
	}
	v := o.val
	return &v
}

func (o optFloat) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.val)
}

func (o *optFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*o = optFloat{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("number %q: %w", s, err)
		}
		*o = optFloat{val: v, ok: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = optFloat{val: v, ok: true}
	return nil
}
