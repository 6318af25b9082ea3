package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText    Format = "text"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// FormatFromPath picks the format by file extension, defaulting to text.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".msgpack", ".mp":
		return FormatMsgpack
	default:
		return FormatText
	}
}

// Encode writes snapshots in the given format.
func Encode(w io.Writer, snaps []Snapshot, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snaps); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(snaps)
	case FormatText:
		for _, s := range snaps {
			if _, err := fmt.Fprintln(w, s.Repr); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown export format %q", format)
}

// Decode reads snapshots written by Encode in YAML or msgpack.
func Decode(r io.Reader, format Format) ([]Snapshot, error) {
	var snaps []Snapshot
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&snaps)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&snaps)
	default:
		return nil, fmt.Errorf("cannot decode format %q", format)
	}
	return snaps, err
}

// MarshalSnapshot encodes one snapshot as msgpack bytes.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return msgpack.Marshal(s)
}

// UnmarshalSnapshot decodes bytes produced by MarshalSnapshot.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	err := msgpack.Unmarshal(data, &s)
	return s, err
}
