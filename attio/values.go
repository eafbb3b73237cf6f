package attio

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Mode selects which part of a value entry is read.
type Mode string

const (
	Plain  Mode = "plain"
	Option Mode = "option"
	Status Mode = "status"
	Domain Mode = "domain"
)

// Reason explains why an extraction did or did not produce a value.
type Reason int

const (
	ReasonOK Reason = iota
	ReasonMissing
	ReasonEmpty
	ReasonNull
	ReasonMalformed
	ReasonWrongType
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonMissing:
		return "missing"
	case ReasonEmpty:
		return "empty"
	case ReasonNull:
		return "null"
	case ReasonMalformed:
		return "malformed"
	case ReasonWrongType:
		return "wrong_type"
	}
	return "unknown"
}

// Values is the attribute container Attio returns for records and list
// entries. Every attribute, scalar or not, is a list of value entries.
type Values map[string]json.RawMessage

// entries splits the value-list stored under key. Entries are decoded one at
// a time by the caller so a bad entry only affects itself.
func (v Values) entries(key string) ([]json.RawMessage, Reason) {
	raw, ok := v[key]
	if !ok {
		return nil, ReasonMissing
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ReasonEmpty
	}

	var list []json.RawMessage
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, ReasonMalformed
	}
	if len(list) == 0 {
		return nil, ReasonEmpty
	}
	return list, ReasonOK
}

func decodeEntry(item json.RawMessage) (map[string]any, bool) {
	var entry map[string]any
	dec := json.NewDecoder(bytes.NewReader(item))
	dec.UseNumber()
	if err := dec.Decode(&entry); err != nil {
		return nil, false
	}
	return entry, true
}

// Extract returns the first entry of key read according to mode. Later
// entries are never looked at.
// It never fails: anything unexpected comes back as a nil value and a
// Reason other than ReasonOK.
func (v Values) Extract(key string, mode Mode) (any, Reason) {
	list, reason := v.entries(key)
	if reason != ReasonOK {
		return nil, reason
	}
	entry, ok := decodeEntry(list[0])
	if !ok {
		return nil, ReasonMalformed
	}
	return fromEntry(entry, mode)
}

func fromEntry(entry map[string]any, mode Mode) (any, Reason) {
	if entry == nil {
		return nil, ReasonNull
	}
	switch mode {
	case Option, Status:
		nested, ok := entry[string(mode)]
		if !ok || nested == nil {
			return nil, ReasonNull
		}
		obj, ok := nested.(map[string]any)
		if !ok {
			return nil, ReasonMalformed
		}
		title, ok := obj["title"]
		if !ok || title == nil {
			return nil, ReasonNull
		}
		return title, ReasonOK
	case Domain:
		d, ok := entry["domain"]
		if !ok || d == nil {
			return nil, ReasonNull
		}
		return d, ReasonOK
	default:
		val, ok := entry["value"]
		if !ok || val == nil {
			return nil, ReasonNull
		}
		return val, ReasonOK
	}
}

// OptionTitles collects the option title of every entry under key.
// Entries without an option, or that are not objects, are skipped; an empty
// result is nil.
func (v Values) OptionTitles(key string) ([]string, Reason) {
	list, reason := v.entries(key)
	if reason != ReasonOK {
		return nil, reason
	}

	var titles []string
	for _, item := range list {
		entry, ok := decodeEntry(item)
		if !ok {
			continue
		}
		title, r := fromEntry(entry, Option)
		if r != ReasonOK {
			continue
		}
		s, ok := title.(string)
		if !ok {
			continue
		}
		titles = append(titles, s)
	}
	if len(titles) == 0 {
		return nil, ReasonEmpty
	}
	return titles, ReasonOK
}

// String extracts a text value.
func (v Values) String(key string, mode Mode) (*string, Reason) {
	val, reason := v.Extract(key, mode)
	if reason != ReasonOK {
		return nil, reason
	}
	switch t := val.(type) {
	case string:
		return &t, ReasonOK
	case json.Number:
		s := t.String()
		return &s, ReasonOK
	}
	return nil, ReasonWrongType
}

// Int extracts an integer. Whole floats and numeric strings are accepted;
// fractions and values outside the int64 range are ReasonWrongType.
func (v Values) Int(key string) (*int64, Reason) {
	val, reason := v.Extract(key, Plain)
	if reason != ReasonOK {
		return nil, reason
	}

	var s string
	switch t := val.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return nil, ReasonWrongType
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n, ReasonOK
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return nil, ReasonWrongType
	}
	// math.MaxInt64 rounds up to 2^63 as a float64.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, ReasonWrongType
	}
	n := int64(f)
	return &n, ReasonOK
}

// Bool extracts a checkbox value.
func (v Values) Bool(key string) (*bool, Reason) {
	val, reason := v.Extract(key, Plain)
	if reason != ReasonOK {
		return nil, reason
	}
	b, ok := val.(bool)
	if !ok {
		return nil, ReasonWrongType
	}
	return &b, ReasonOK
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time extracts a timestamp or a calendar date.
func (v Values) Time(key string) (*time.Time, Reason) {
	val, reason := v.Extract(key, Plain)
	if reason != ReasonOK {
		return nil, reason
	}
	s, ok := val.(string)
	if !ok {
		return nil, ReasonWrongType
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			ts = ts.UTC()
			return &ts, ReasonOK
		}
	}
	return nil, ReasonWrongType
}

// JSON re-encodes an arbitrary value. Empty objects, empty arrays and
// blank strings count as no value.
func (v Values) JSON(key string) (json.RawMessage, Reason) {
	val, reason := v.Extract(key, Plain)
	if reason != ReasonOK {
		return nil, reason
	}
	switch t := val.(type) {
	case map[string]any:
		if len(t) == 0 {
			return nil, ReasonEmpty
		}
	case []any:
		if len(t) == 0 {
			return nil, ReasonEmpty
		}
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, ReasonEmpty
		}
	}
	b, err := json.Marshal(val)
	if err != nil {
		return nil, ReasonMalformed
	}
	return b, ReasonOK
}
