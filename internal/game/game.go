// internal/game/game.go
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/qydan/unoflip/internal/bot"
	"github.com/qydan/unoflip/internal/cache"
	"github.com/qydan/unoflip/internal/models"
	"github.com/sirupsen/logrus"
)

// ActionPublisher receives one record per engine action, e.g. the Redis historian queue.
type ActionPublisher interface {
	PublishGameAction(ctx context.Context, record cache.GameActionRecord) error
}

// UnoGame owns the state of one Uno Flip session and is the only thing that mutates it.
// It is not safe for concurrent use; see GameStore for serialized access.
type UnoGame struct {
	ID    uuid.UUID
	Rules models.HouseRules

	state   models.GameState
	history *History
	views   []View

	rng         *rand.Rand
	strategy    bot.Strategy
	logger      *logrus.Entry
	publisher   ActionPublisher
	actionIndex int // increments for each published action
}

// Option customizes a game at construction or load time.
type Option func(*UnoGame)

// WithRand sets the random source used for shuffles and bot color choices.
func WithRand(r *rand.Rand) Option { return func(g *UnoGame) { g.rng = r } }

// WithSeed is WithRand with a fresh source seeded by seed.
func WithSeed(seed int64) Option { return WithRand(rand.New(rand.NewSource(seed))) }

// WithLogger sets the base log entry; a "game" field is added to it.
func WithLogger(l *logrus.Entry) Option { return func(g *UnoGame) { g.logger = l } }

// WithPublisher sends every action record to p.
func WithPublisher(p ActionPublisher) Option { return func(g *UnoGame) { g.publisher = p } }

// WithStrategy replaces the heuristic used for AI players.
func WithStrategy(s bot.Strategy) Option { return func(g *UnoGame) { g.strategy = s } }

// WithID fixes the game id instead of generating one.
func WithID(id uuid.UUID) Option { return func(g *UnoGame) { g.ID = id } }

func newGame(rules models.HouseRules, opts ...Option) *UnoGame {
	g := &UnoGame{
		ID:       uuid.New(),
		Rules:    rules,
		history:  NewHistory(rules.UndoLimit),
		strategy: bot.Heuristic{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.logger == nil {
		g.logger = logrus.NewEntry(logrus.StandardLogger())
	}
	g.logger = g.logger.WithField("game", g.ID)
	return g
}

// NewUnoGame seats players (only Name and IsAI are used) and deals the first round.
func NewUnoGame(players []models.Player, rules models.HouseRules, opts ...Option) (*UnoGame, error) {
	rules = rules.WithDefaults()
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("house rules: %w", err)
	}
	if len(players) < rules.MinPlayers || len(players) > rules.MaxPlayers {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", ErrPlayerCount, len(players), rules.MinPlayers, rules.MaxPlayers)
	}

	g := newGame(rules, opts...)
	g.state = models.GameState{
		Players:   make([]models.Player, len(players)),
		Direction: 1,
		NextSteps: 1,
		Info:      "Welcome to Uno!",
	}
	for i, p := range players {
		if p.Name == "" {
			return nil, fmt.Errorf("player %d has no name", i)
		}
		g.state.Players[i] = models.NewPlayer(p.Name, p.IsAI)
	}
	g.logger.WithField("players", len(players)).Info("new game")
	g.initializeRound()
	return g, nil
}

// initializeRound deals a fresh shuffled deck, flips the first discard and clears history.
// Scores and the current seat carry over, so a round winner leads the next round.
func (g *UnoGame) initializeRound() {
	st := &g.state
	deck := BuildFlipDeck()
	shuffleCards(g.rng, deck)
	st.DrawPile = deck
	st.Discard = []models.Card{}

	for i := range st.Players {
		st.Players[i].ResetHand()
	}
	for k := 0; k < g.Rules.HandSize; k++ {
		for i := range st.Players {
			g.dealTo(i, 1)
		}
	}

	st.Side = models.SideLight
	st.Direction = 1
	st.NextSteps = 1
	st.MustAdvance = false
	st.Round++

	first, _ := g.drawOrRecycle()
	st.Discard = append(st.Discard, first)
	st.ActiveColor = first.Color(st.Side)
	// a wild turned up has no color of its own
	if first.IsWild(st.Side) {
		st.ActiveColor = st.Side.SafeColor()
	}

	g.history.Clear()
	st.Info = fmt.Sprintf("Round Start! Target: %d pts.", g.Rules.WinningScore)
	g.logger.WithFields(logrus.Fields{"round": st.Round, "top": first.Text(st.Side)}).Info("round started")
	g.logAction("", "round_start", map[string]interface{}{"round": st.Round, "top": first.Text(st.Side)})
	g.notifyViews()
}

// State returns a deep copy of the live state.
func (g *UnoGame) State() models.GameState { return g.state.Clone() }

// IsOver reports whether a player has reached the winning score.
func (g *UnoGame) IsOver() bool { return g.state.Over }

// CurrentPlayerIsAI reports whether the seat to act is computer-controlled.
func (g *UnoGame) CurrentPlayerIsAI() bool { return g.state.CurrentPlayer().IsAI }

func (g *UnoGame) CanUndo() bool { return g.history.CanUndo() }
func (g *UnoGame) CanRedo() bool { return g.history.CanRedo() }

func (g *UnoGame) ensureAwaitingAction() error {
	if g.state.Over {
		return ErrGameOver
	}
	if g.state.MustAdvance {
		return ErrMustAdvance
	}
	return nil
}

func (g *UnoGame) handCard(idx int) (models.Card, error) {
	hand := g.state.CurrentPlayer().Hand
	if idx < 0 || idx >= len(hand) {
		return models.Card{}, fmt.Errorf("%w: %d (hand has %d cards)", ErrInvalidIndex, idx, len(hand))
	}
	return hand[idx], nil
}

// record snapshots the state before a mutating move.
func (g *UnoGame) record() {
	g.history.Record(g.state)
}

// Play plays the current player's card at handIndex. A wild card needs a color, which is
// requested from the registered views.
func (g *UnoGame) Play(handIndex int) error {
	if err := g.ensureAwaitingAction(); err != nil {
		return err
	}
	chosen, err := g.handCard(handIndex)
	if err != nil {
		return err
	}
	st := &g.state
	if chosen.IsWild(st.Side) {
		return g.PlayWild(handIndex, g.promptWildColor())
	}

	top, _ := st.TopDiscard()
	if !chosen.Matches(top, st.ActiveColor, st.Side) {
		return fmt.Errorf("%w: %s on %s [%s]", ErrIllegalMove, chosen.Text(st.Side), top.Text(st.Side), st.ActiveColor)
	}

	g.record()
	g.discardFromHand(handIndex)
	st.ActiveColor = chosen.Color(st.Side)
	g.resolveEffect(chosen)
	return nil
}

// PlayWild plays the wild card at handIndex and makes color the active color. color must be
// one of the four colors of the side currently up; any other card is an illegal move.
func (g *UnoGame) PlayWild(handIndex int, color models.Color) error {
	if err := g.ensureAwaitingAction(); err != nil {
		return err
	}
	chosen, err := g.handCard(handIndex)
	if err != nil {
		return err
	}
	st := &g.state
	if !chosen.IsWild(st.Side) {
		return fmt.Errorf("%w: %s is not a wild card", ErrIllegalMove, chosen.Text(st.Side))
	}
	if !st.Side.HasColor(color) {
		return fmt.Errorf("%w: %s is not a %s side color", ErrInvalidColor, color, st.Side)
	}

	g.record()
	g.discardFromHand(handIndex)
	st.ActiveColor = color
	g.resolveEffect(chosen)
	return nil
}

func (g *UnoGame) discardFromHand(idx int) {
	st := &g.state
	c := st.CurrentPlayer().RemoveCard(idx)
	st.Discard = append(st.Discard, c)
}

// Draw gives the current player one card and ends their action.
func (g *UnoGame) Draw() error {
	if err := g.ensureAwaitingAction(); err != nil {
		return err
	}
	if !g.canDraw() {
		return ErrDeckExhausted
	}

	g.record()
	st := &g.state
	p := st.CurrentPlayer()
	c, _ := g.drawOrRecycle()
	p.Hand = append(p.Hand, c)
	st.MustAdvance = true
	st.Info = p.Name + " drew 1 card."

	g.logger.WithField("player", p.Name).Debug("drew a card")
	g.logAction(p.Name, "draw", map[string]interface{}{"handSize": len(p.Hand)})
	g.notifyViews()
	return nil
}

// AdvanceTurn passes play to the next seat, applying any pending skips.
func (g *UnoGame) AdvanceTurn() error {
	st := &g.state
	if st.Over {
		return ErrGameOver
	}
	if !st.MustAdvance {
		return ErrNotYetActed
	}

	st.Current = st.PlayerIndex(st.Current + st.Direction*st.NextSteps)
	st.MustAdvance = false
	st.NextSteps = 1
	name := st.CurrentPlayer().Name
	st.Info = name + "'s turn."

	g.logAction(name, "next_turn", map[string]interface{}{"current": st.Current})
	g.notifyViews()
	return nil
}

// Undo restores the state from before the last play or draw.
func (g *UnoGame) Undo() error {
	prev, ok := g.history.Undo(g.state)
	if !ok {
		return ErrNothingToUndo
	}
	g.state = prev
	g.state.Info = "Undid last move."
	g.logger.Debug("undo")
	g.logAction("", "undo", nil)
	g.notifyViews()
	return nil
}

// Redo re-applies the last undone move.
func (g *UnoGame) Redo() error {
	next, ok := g.history.Redo(g.state)
	if !ok {
		return ErrNothingToRedo
	}
	g.state = next
	g.state.Info = "Redid move."
	g.logger.Debug("redo")
	g.logAction("", "redo", nil)
	g.notifyViews()
	return nil
}

// logAction publishes an action record without blocking the engine.
func (g *UnoGame) logAction(actor, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	if g.publisher == nil {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	record := cache.GameActionRecord{
		GameID:        g.ID,
		ActionIndex:   g.actionIndex,
		Actor:         actor,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}
	pub, logger := g.publisher, g.logger
	go func(rec cache.GameActionRecord) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := pub.PublishGameAction(ctx, rec); err != nil {
			logger.WithError(err).Warnf("failed to publish action %d (%s)", rec.ActionIndex, rec.ActionType)
		}
	}(record)
}
