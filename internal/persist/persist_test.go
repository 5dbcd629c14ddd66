package persist

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/qydan/unoflip/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// without returns the deck minus one copy of each given card.
func without(deck []models.Card, cards ...models.Card) []models.Card {
	out := append([]models.Card(nil), deck...)
	for _, c := range cards {
		for i, d := range out {
			if d == c {
				out = append(out[:i], out[i+1:]...)
				break
			}
		}
	}
	return out
}

func sampleSnapshot() Snapshot {
	red := models.NewCard(models.ColorRed, models.RankFive, models.ColorOrange, models.RankFive)
	flip := models.NewCard(models.ColorBlue, models.RankFlip, models.ColorPink, models.RankFlip)
	wild := models.NewCard(models.ColorWild, models.RankWild, models.ColorWild, models.RankWildDrawColor)
	teal := models.NewCard(models.ColorGreen, models.RankTwo, models.ColorTeal, models.RankTwo)

	ann := models.NewPlayer("Ann", false)
	ann.Hand = []models.Card{red, wild}
	ann.Score = 42
	bot := models.NewPlayer("Bot", true)
	bot.Hand = []models.Card{teal}

	return Snapshot{
		GameID: uuid.New(),
		Rules:  models.HouseRules{HandSize: 5}.WithDefaults(),
		State: models.GameState{
			Players:     []models.Player{ann, bot},
			DrawPile:    without(models.FlipDeck(), red, wild, teal, flip, red),
			Discard:     []models.Card{flip, red},
			Current:     1,
			Direction:   -1,
			MustAdvance: true,
			ActiveColor: models.ColorOrange,
			NextSteps:   2,
			Side:        models.SideDark,
			Info:        "Ann played something.",
			Round:       3,
		},
	}
}

func TestRoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))
	got, err := Decode(&buf)
	require.NoError(t, err)

	snap.Version = Version
	assert.Equal(t, snap, got)
}

func TestMarshalIsDeterministic(t *testing.T) {
	snap := sampleSnapshot()
	a, err := Marshal(snap)
	require.NoError(t, err)
	b, err := Marshal(snap)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "save.unoflip")
	snap := sampleSnapshot()

	require.NoError(t, SaveFile(path, snap))
	// overwriting keeps a single file and no temp leftovers
	snap.State.Round = 4
	require.NoError(t, SaveFile(path, snap))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, got.State.Round)

	_, err = LoadFile(filepath.Join(dir, "absent"))
	assert.ErrorIs(t, err, ErrIOFailure)

	err = SaveFile(filepath.Join(dir, "no", "such", "dir", "x"), snap)
	assert.ErrorIs(t, err, ErrIOFailure)
}

func TestCorruptBytes(t *testing.T) {
	for _, data := range [][]byte{nil, {0xff}, []byte("not cbor at all"), {0xa1, 0x01}} {
		_, err := Unmarshal(data)
		assert.ErrorIs(t, err, ErrCorruptData, "%x", data)
	}

	good, err := Marshal(sampleSnapshot())
	require.NoError(t, err)
	_, err = Unmarshal(good[:len(good)/2])
	assert.ErrorIs(t, err, ErrCorruptData)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"version", func(s *Snapshot) { s.Version = 99 }},
		{"one player", func(s *Snapshot) { s.State.Players = s.State.Players[:1] }},
		{"current", func(s *Snapshot) { s.State.Current = 2 }},
		{"direction", func(s *Snapshot) { s.State.Direction = 0 }},
		{"next steps", func(s *Snapshot) { s.State.NextSteps = 3 }},
		{"wild active color", func(s *Snapshot) { s.State.ActiveColor = models.ColorWild }},
		{"unknown color", func(s *Snapshot) { s.State.ActiveColor = models.Color(42) }},
		{"side", func(s *Snapshot) { s.State.Side = models.Side(7) }},
		{"color without discard", func(s *Snapshot) { s.State.Discard = nil }},
		{"bad card", func(s *Snapshot) { s.State.DrawPile[0].DarkRank = models.Rank(200) }},
		{"nameless", func(s *Snapshot) { s.State.Players[0].Name = "" }},
		{"lost card", func(s *Snapshot) { s.State.DrawPile = s.State.DrawPile[1:] }},
		{"duplicated card", func(s *Snapshot) { s.State.DrawPile = append(s.State.DrawPile, s.State.Discard[0]) }},
		{"swapped card", func(s *Snapshot) { s.State.Players[1].Hand[0] = s.State.Players[0].Hand[1] }},
		{"no cards", func(s *Snapshot) {
			s.State.DrawPile, s.State.Discard = nil, nil
			s.State.ActiveColor = models.ColorNone
			for i := range s.State.Players {
				s.State.Players[i].Hand = nil
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := sampleSnapshot()
			snap.Version = Version
			tt.mutate(&snap)
			err := Validate(snap)
			assert.ErrorIs(t, err, ErrCorruptData)
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeWriteFailure(t *testing.T) {
	err := Encode(failingWriter{}, sampleSnapshot())
	assert.ErrorIs(t, err, ErrIOFailure)
	assert.NotErrorIs(t, err, ErrCorruptData)
}
