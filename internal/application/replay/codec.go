package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format is a replay file encoding
type Format int

const (
	FormatJSON Format = iota
	FormatMsgpack
)

// FormatFor picks the encoding from a file extension; anything but .msgpack
// or .mp is JSON
func FormatFor(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".msgpack", ".mp":
		return FormatMsgpack
	default:
		return FormatJSON
	}
}

// Encode writes data to w in the given format
func Encode(w io.Writer, format Format, data ReplayData) error {
	switch format {
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(&data); err != nil {
			return fmt.Errorf("failed to encode replay: %w", err)
		}
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode replay: %w", err)
		}
	}
	return nil
}

// Decode reads replay data from r in the given format
func Decode(r io.Reader, format Format) (*ReplayData, error) {
	var data ReplayData
	switch format {
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&data); err != nil {
			return nil, fmt.Errorf("failed to decode replay: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&data); err != nil {
			return nil, fmt.Errorf("failed to decode replay: %w", err)
		}
	}
	return &data, nil
}

// SaveReplay writes data to filename, encoded by extension
func SaveReplay(filename string, data ReplayData) error {
	if len(data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Encode(file, FormatFor(filename), data)
}

// LoadReplay loads replay data from a file, decoded by extension
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file, FormatFor(filename))
}
