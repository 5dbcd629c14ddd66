// Package persist encodes whole game sessions to bytes and back. Observers and undo
// history are never part of a snapshot.
package persist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/qydan/unoflip/internal/models"
)

// Version is written into every snapshot; Decode rejects any other value.
const Version = 1

var (
	// ErrIOFailure wraps failures reading or writing the underlying stream or file.
	ErrIOFailure = errors.New("persistence i/o failure")
	// ErrCorruptData wraps snapshots that cannot be decoded or fail validation.
	ErrCorruptData = errors.New("corrupt save data")
)

// Snapshot is the persisted form of a game session.
type Snapshot struct {
	Version int               `cbor:"1,keyasint"`
	GameID  uuid.UUID         `cbor:"2,keyasint"`
	Rules   models.HouseRules `cbor:"3,keyasint"`
	State   models.GameState  `cbor:"4,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	// Core deterministic encoding keeps equal snapshots byte-identical.
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{MaxArrayElements: 4096}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal encodes a snapshot.
func Marshal(snap Snapshot) ([]byte, error) {
	snap.Version = Version
	if err := Validate(snap); err != nil {
		return nil, err
	}
	data, err := encMode.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates a snapshot.
func Unmarshal(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := decMode.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	if err := Validate(snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Encode writes a snapshot to w.
func Encode(w io.Writer, snap Snapshot) error {
	data, err := Marshal(snap)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// Decode reads one snapshot from r.
func Decode(r io.Reader) (Snapshot, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return Unmarshal(buf.Bytes())
}

// SaveFile writes the snapshot to path via a temporary file and rename, so an existing
// save is never left half-written.
func SaveFile(path string, snap Snapshot) error {
	data, err := Marshal(snap)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".unoflip-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %w", ErrIOFailure, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIOFailure, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// LoadFile reads a snapshot written by SaveFile.
func LoadFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	defer f.Close()
	return Decode(f)
}
