package sqlite

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mesh-intelligence/math3d-scenes/pkg/types"
)

// ErrMalformedDump is returned when a dump record cannot be decoded.
var ErrMalformedDump = errors.New("malformed dump record")

// dumpRow is one row of a legacy graphs export. Exports from the old
// database name the key url_key and store dehydrated as a JSON string;
// exports from this tool use key and a nested object.
type dumpRow struct {
	URLKey        string          `json:"url_key"`
	Key           string          `json:"key"`
	Dehydrated    json.RawMessage `json:"dehydrated"`
	TimesAccessed int             `json:"times_accessed"`
	LastAccessed  *string         `json:"last_accessed"`
	MigrationNote string          `json:"migration_note"`
}

// ReadLegacyDump reads legacy scenes from a dump file. The file is either a
// JSON array of rows or one row per line. Unlike table files, a malformed
// dump record is an error, reported with its position.
func ReadLegacyDump(path string) ([]types.LegacyScene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dump %s: %w", path, err)
	}

	var raws []json.RawMessage
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDump, path, err)
		}
	} else {
		scanner := bufio.NewScanner(bytes.NewReader(data))
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			if line := bytes.TrimSpace(scanner.Bytes()); len(line) > 0 {
				raws = append(raws, append(json.RawMessage(nil), line...))
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("scanning dump %s: %w", path, err)
		}
	}

	scenes := make([]types.LegacyScene, 0, len(raws))
	for i, raw := range raws {
		scene, err := decodeDumpRow(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s record %d: %v", ErrMalformedDump, path, i+1, err)
		}
		scenes = append(scenes, scene)
	}
	return scenes, nil
}

func decodeDumpRow(raw json.RawMessage) (types.LegacyScene, error) {
	var row dumpRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return types.LegacyScene{}, err
	}
	scene := types.LegacyScene{
		Key:           row.Key,
		TimesAccessed: row.TimesAccessed,
		MigrationNote: row.MigrationNote,
	}
	if scene.Key == "" {
		scene.Key = row.URLKey
	}
	if scene.Key == "" {
		return types.LegacyScene{}, errors.New("missing key")
	}

	dehydrated := bytes.TrimSpace(row.Dehydrated)
	if len(dehydrated) > 0 && dehydrated[0] == '"' {
		var text string
		if err := json.Unmarshal(dehydrated, &text); err != nil {
			return types.LegacyScene{}, fmt.Errorf("dehydrated: %w", err)
		}
		dehydrated = []byte(text)
	}
	if len(dehydrated) > 0 && !bytes.Equal(dehydrated, []byte("null")) {
		if err := json.Unmarshal(dehydrated, &scene.Dehydrated); err != nil {
			return types.LegacyScene{}, fmt.Errorf("dehydrated: %w", err)
		}
	}

	if row.LastAccessed != nil && *row.LastAccessed != "" {
		t, err := parseTimestamp(*row.LastAccessed)
		if err != nil {
			return types.LegacyScene{}, fmt.Errorf("last_accessed: %w", err)
		}
		scene.LastAccessed = &t
	}
	return scene, nil
}

// WriteSceneDump writes scenes to path as JSONL, one scene per line,
// replacing the file atomically.
func WriteSceneDump(path string, scenes []types.Scene) error {
	records := make([]json.RawMessage, 0, len(scenes))
	for i := range scenes {
		data, err := json.Marshal(&scenes[i])
		if err != nil {
			return fmt.Errorf("marshaling scene %s: %w", scenes[i].Key, err)
		}
		records = append(records, data)
	}
	return writeJSONL(path, records)
}

// timestampLayouts covers RFC 3339 and the text forms PostgreSQL prints for
// timestamp and timestamptz columns.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
