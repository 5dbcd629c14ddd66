package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/qydan/unoflip/internal/game"
	"github.com/qydan/unoflip/internal/models"
)

// terminalView renders engine events with pterm panels and asks for wild colors
// through an interactive select.
type terminalView struct {
	last game.Event
}

func (v *terminalView) HandleUpdate(ev game.Event) {
	v.last = ev
	printState(ev)
}

func (v *terminalView) HandleRoundEnd(summary string) {
	pterm.DefaultBox.WithTitle(pterm.LightYellow("|ROUND OVER|")).WithTitleTopCenter().Println(summary)
}

func (v *terminalView) HandleGameEnd(summary string) {
	pterm.DefaultBox.WithTitle(pterm.LightGreen("|GAME OVER|")).WithTitleTopCenter().Println(summary)
}

func (v *terminalView) PromptForWildColor() models.Color {
	colors := v.last.Side.Colors()
	options := make([]string, len(colors))
	for i, c := range colors {
		options[i] = c.String()
	}
	choice, err := pterm.DefaultInteractiveSelect.WithDefaultText("Choose a color").WithOptions(options).Show()
	if err != nil {
		return models.ColorNone
	}
	c, err := models.ParseColor(choice)
	if err != nil {
		return models.ColorNone
	}
	return c
}

func printState(ev game.Event) {
	var seats []pterm.Panel
	for _, p := range ev.Players {
		seats = append(seats, pterm.Panel{Data: playerInfo(p, p.Name == ev.CurrentPlayerName)})
	}

	table := pterm.DefaultBox.WithHorizontalPadding(4).WithTitle(pterm.LightYellow("|TABLE|")).WithTitleTopCenter().
		Sprintf("Round %d, %s side\nTop: %s\nDraw pile: %d\n\n%s", ev.Round, ev.Side, colorize(ev.TopCardText, ev.ActiveColor), ev.DrawPileSize, ev.Info)

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		seats,
		{{Data: table}},
		{{Data: handInfo(ev)}},
	}).Render()
}

func playerInfo(p game.PlayerSummary, current bool) string {
	name := p.Name
	if p.IsAI {
		name += " (AI)"
	}
	status := pterm.Gray("Waiting")
	if current {
		status = pterm.LightGreen("To play")
	}
	return pterm.DefaultBox.WithHorizontalPadding(2).WithTitle(name).WithTitleTopLeft().
		Sprintf("%s\nCards: %d\nScore: %d", status, p.HandSize, p.Score)
}

func handInfo(ev game.Event) string {
	var b strings.Builder
	for i, c := range ev.Hand {
		fmt.Fprintf(&b, "%2d  %s\n", i, colorize(c.Text(ev.Side), c.Color(ev.Side)))
	}
	if len(ev.Hand) == 0 {
		b.WriteString("(empty)\n")
	}
	return pterm.DefaultBox.WithHorizontalPadding(4).WithTitle(ev.CurrentPlayerName + "'s hand").WithTitleTopLeft().
		Sprint(strings.TrimRight(b.String(), "\n"))
}

var colorStyles = map[models.Color]pterm.Color{
	models.ColorRed:    pterm.FgRed,
	models.ColorGreen:  pterm.FgGreen,
	models.ColorBlue:   pterm.FgBlue,
	models.ColorYellow: pterm.FgYellow,
	models.ColorPink:   pterm.FgLightMagenta,
	models.ColorTeal:   pterm.FgCyan,
	models.ColorPurple: pterm.FgMagenta,
	models.ColorOrange: pterm.FgLightRed,
}

func colorize(text string, c models.Color) string {
	if style, ok := colorStyles[c]; ok {
		return style.Sprint(text)
	}
	return pterm.Bold.Sprint(text)
}
