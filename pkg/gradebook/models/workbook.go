package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TimestampLayout is the format of Payload.LastUpdated.
const TimestampLayout = "2006-01-02 15:04:05"

// RecordSet maps identifier to record. Identifiers keep the order in which
// they were first inserted; overwriting a record does not move it.
type RecordSet struct {
	ids     []string
	records map[string]*Record
}

// NewRecordSet creates an empty record set.
func NewRecordSet() *RecordSet {
	return &RecordSet{records: make(map[string]*Record)}
}

// Put stores rec under id and reports whether a previous record was replaced.
func (s *RecordSet) Put(id string, rec *Record) bool {
	if s.records == nil {
		s.records = make(map[string]*Record)
	}
	_, replaced := s.records[id]
	if !replaced {
		s.ids = append(s.ids, id)
	}
	s.records[id] = rec
	return replaced
}

// Get returns the record stored under id.
func (s *RecordSet) Get(id string) (*Record, bool) {
	if s == nil {
		return nil, false
	}
	rec, ok := s.records[id]
	return rec, ok
}

// IDs returns identifiers in first-insertion order.
func (s *RecordSet) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of distinct identifiers.
func (s *RecordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// MarshalJSON encodes the set as an object keyed by identifier.
func (s *RecordSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range s.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, id); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		b, err := s.records[id].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", id, err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by identifier.
func (s *RecordSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	*s = RecordSet{records: make(map[string]*Record)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("records: expected identifier, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("record %q: %w", id, err)
		}
		rec := NewRecord()
		if err := rec.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("record %q: %w", id, err)
		}
		s.Put(id, rec)
	}
	return expectDelim(dec, '}')
}

// Payload is the converter output document.
type Payload struct {
	// LastUpdated is the generation time formatted with TimestampLayout.
	LastUpdated string `json:"last_updated"`
	// Records maps identifier to record.
	Records *RecordSet `json:"records"`
}
