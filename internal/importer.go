package internal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ParseEvidenceExport reads an upstream evidence export. Three shapes are
// accepted: JSON Lines, a JSON array of records, and an object keyed by
// collection name ("emails", "sms", ...) whose values are record arrays.
// fallback supplies the category for records that carry no type.
func ParseEvidenceExport(r io.Reader, source string, fallback Category) ([]EvidenceRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Source: "import", Key: source, Err: err}
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var raw []map[string]any
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, &ParseError{Source: "import", Key: source, Err: err}
		}
		return recordsFromMaps(raw, source, fallback)
	case '{':
		if records, ok, err := parseCollectionObject(trimmed, source); ok {
			return records, err
		}
	}
	return parseJSONLines(trimmed, source, fallback)
}

// parseCollectionObject handles the keyed-by-collection shape. ok is false
// when the object is a single record rather than a collection.
func parseCollectionObject(data []byte, source string) ([]EvidenceRecord, bool, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, nil
	}

	var records []EvidenceRecord
	matched := false
	for _, cat := range Categories {
		var items []map[string]any
		for _, key := range []string{cat.CollectionKey(), string(cat)} {
			body, ok := raw[key]
			if !ok {
				continue
			}
			if err := json.Unmarshal(body, &items); err != nil {
				return nil, true, &ParseError{Source: "import", Key: source, Err: fmt.Errorf("%s: %w", key, err)}
			}
			matched = true
			break
		}
		parsed, err := recordsFromMaps(items, source, cat)
		if err != nil {
			return nil, true, err
		}
		records = append(records, parsed...)
	}
	return records, matched, nil
}

func parseJSONLines(data []byte, source string, fallback Category) ([]EvidenceRecord, error) {
	var records []EvidenceRecord
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		rec, err := ParseEvidenceRecord(text, fallback)
		if err != nil {
			return nil, &ParseError{Source: "import", Key: fmt.Sprintf("%s:%d", source, line), Err: err}
		}
		records = append(records, *rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Source: "import", Key: source, Err: err}
	}
	return records, nil
}

func recordsFromMaps(raw []map[string]any, source string, fallback Category) ([]EvidenceRecord, error) {
	records := make([]EvidenceRecord, 0, len(raw))
	for i, m := range raw {
		rec, err := RecordFromMap(m, fallback)
		if err != nil {
			return nil, &ParseError{Source: "import", Key: fmt.Sprintf("%s[%d]", source, i), Err: err}
		}
		records = append(records, *rec)
	}
	return records, nil
}
