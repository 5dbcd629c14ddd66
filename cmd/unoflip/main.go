// cmd/unoflip/main.go is a hot-seat terminal client for local Uno Flip games.
package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/qydan/unoflip/internal/config"
	"github.com/qydan/unoflip/internal/game"
	"github.com/qydan/unoflip/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	optDraw = "Draw a card"
	optNext = "End turn"
	optUndo = "Undo"
	optRedo = "Redo"
	optSave = "Save"
	optLoad = "Load"
	optQuit = "Quit"
)

func main() {
	playersFlag := flag.String("players", "Player 1", "comma separated human player names")
	botsFlag := flag.Int("bots", 1, "number of AI opponents")
	seedFlag := flag.Int64("seed", 0, "shuffle seed, 0 for time based")
	loadFlag := flag.String("load", "", "resume the game saved at this path")
	delayFlag := flag.Duration("ai-delay", 700*time.Millisecond, "pause between AI moves")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		pterm.Fatal.Println(err)
	}
	logger := cfg.NewLogger()
	// the panels own the terminal; engine logs only matter when something breaks
	if logger.GetLevel() > logrus.WarnLevel {
		logger.SetLevel(logrus.WarnLevel)
	}
	rules, _ := cfg.HouseRules()

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := []game.Option{game.WithSeed(seed), game.WithLogger(logrus.NewEntry(logger))}

	var g *game.UnoGame
	if *loadFlag != "" {
		g, err = game.LoadFile(*loadFlag, opts...)
	} else {
		g, err = game.NewUnoGame(seats(*playersFlag, *botsFlag), rules, opts...)
	}
	if err != nil {
		pterm.Fatal.Println(err)
	}

	view := &terminalView{}
	g.AddView(view)
	for {
		next, quit := turn(g, view, *delayFlag, opts)
		if quit {
			return
		}
		if next != nil {
			g.RemoveView(view)
			g = next
			g.AddView(view)
		}
	}
}

func seats(names string, bots int) []models.Player {
	var players []models.Player
	for _, name := range strings.Split(names, ",") {
		if name = strings.TrimSpace(name); name != "" {
			players = append(players, models.NewPlayer(name, false))
		}
	}
	for i := 1; i <= bots; i++ {
		players = append(players, models.NewPlayer(fmt.Sprintf("Bot %d", i), true))
	}
	return players
}

// turn runs one step of the loop. It returns a replacement game after a load.
func turn(g *game.UnoGame, view *terminalView, delay time.Duration, opts []game.Option) (*game.UnoGame, bool) {
	if !g.IsOver() && g.CurrentPlayerIsAI() {
		time.Sleep(delay)
		if err := g.RunAITurn(); err != nil {
			pterm.Error.Println(err)
		}
		return nil, false
	}

	ev := view.last
	var options []string
	if !ev.Over {
		if ev.MustAdvance {
			options = append(options, optNext)
		} else {
			for i, c := range ev.Hand {
				options = append(options, fmt.Sprintf("Play %d: %s", i, c.Text(ev.Side)))
			}
			options = append(options, optDraw)
		}
	}
	if ev.CanUndo {
		options = append(options, optUndo)
	}
	if ev.CanRedo {
		options = append(options, optRedo)
	}
	options = append(options, optSave, optLoad, optQuit)

	choice, err := pterm.DefaultInteractiveSelect.WithDefaultText("Select your next action").WithOptions(options).Show()
	if err != nil {
		return nil, true
	}

	switch choice {
	case optDraw:
		err = g.Draw()
	case optNext:
		err = g.AdvanceTurn()
	case optUndo:
		err = g.Undo()
	case optRedo:
		err = g.Redo()
	case optSave:
		path, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Save to").WithDefaultValue("unoflip.save").Show()
		if err = g.SaveFile(path); err == nil {
			pterm.Success.Printfln("Saved to %s", path)
		}
	case optLoad:
		path, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Load from").WithDefaultValue("unoflip.save").Show()
		loaded, lerr := game.LoadFile(path, opts...)
		if lerr == nil {
			pterm.Success.Printfln("Loaded %s", path)
			return loaded, false
		}
		err = lerr
	case optQuit:
		if ok, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Quit the game?").WithDefaultValue(false).Show(); ok {
			return nil, true
		}
	default:
		var idx int
		if _, serr := fmt.Sscanf(choice, "Play %d:", &idx); serr != nil {
			err = serr
			break
		}
		err = g.Play(idx)
	}

	if errors.Is(err, game.ErrInvalidColor) {
		pterm.Warning.Println("No color chosen, card stays in hand.")
	} else if err != nil {
		pterm.Error.Println(err)
	}
	return nil, false
}
