package game

import (
	"context"
	"fmt"
	"io"

	"github.com/qydan/unoflip/internal/persist"
)

func (g *UnoGame) persistSnapshot() persist.Snapshot {
	return persist.Snapshot{
		GameID: g.ID,
		Rules:  g.Rules,
		State:  g.state.Clone(),
	}
}

// MarshalBinary encodes the session as a save snapshot.
func (g *UnoGame) MarshalBinary() ([]byte, error) {
	return persist.Marshal(g.persistSnapshot())
}

// SaveGame writes the session to w. Views and history are not saved.
func (g *UnoGame) SaveGame(w io.Writer) error {
	return persist.Encode(w, g.persistSnapshot())
}

// SaveFile writes the session to path.
func (g *UnoGame) SaveFile(path string) error {
	if err := persist.SaveFile(path, g.persistSnapshot()); err != nil {
		return err
	}
	g.logger.WithField("path", path).Info("game saved")
	return nil
}

// SaveSlot stores the session under slot in store.
func (g *UnoGame) SaveSlot(ctx context.Context, store persist.SlotStore, slot string) error {
	data, err := g.MarshalBinary()
	if err != nil {
		return err
	}
	if err := store.PutSlot(ctx, slot, data); err != nil {
		return fmt.Errorf("%w: save slot %q: %w", persist.ErrIOFailure, slot, err)
	}
	g.logger.WithField("slot", slot).Info("game saved")
	return nil
}

// LoadGame restores a session written by SaveGame. The returned game has no views and an
// empty history; opts apply as in NewUnoGame, except that the saved id is kept unless
// overridden with WithID.
func LoadGame(r io.Reader, opts ...Option) (*UnoGame, error) {
	snap, err := persist.Decode(r)
	if err != nil {
		return nil, err
	}
	return fromSnapshot(snap, opts...), nil
}

// LoadFile restores a session written by SaveFile.
func LoadFile(path string, opts ...Option) (*UnoGame, error) {
	snap, err := persist.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return fromSnapshot(snap, opts...), nil
}

// LoadSlot restores the session saved under slot. Store failures, a missing slot
// included, wrap persist.ErrIOFailure; a missing slot also matches persist.ErrSlotNotFound.
func LoadSlot(ctx context.Context, store persist.SlotStore, slot string, opts ...Option) (*UnoGame, error) {
	data, err := store.GetSlot(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("%w: load slot %q: %w", persist.ErrIOFailure, slot, err)
	}
	snap, err := persist.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return fromSnapshot(snap, opts...), nil
}

func fromSnapshot(snap persist.Snapshot, opts ...Option) *UnoGame {
	all := append([]Option{WithID(snap.GameID)}, opts...)
	g := newGame(snap.Rules.WithDefaults(), all...)
	g.state = snap.State
	g.logger.WithField("round", g.state.Round).Info("game loaded")
	return g
}
