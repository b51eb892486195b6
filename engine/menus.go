package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Progxy/phalsophobia-multiplayer/game"
	"github.com/Progxy/phalsophobia-multiplayer/term"
)

const exchangeMenu = "\n1) Buy the TRANQUILLIZER;" +
	"\n2) Buy the SALT;" +
	"\n3) Exit the menu.\nChoose from the option above: "

func parseChoice(answer string) (int, bool) {
	choice, err := strconv.Atoi(strings.TrimSpace(answer))
	return choice, err == nil
}

// useObjectMenu lets the player pick a usable item from the backpack.
// Using an item keeps the turn open.
func (e *Engine) useObjectMenu(ctx context.Context, seat int) error {
	io := e.ios[seat]

	if player := e.sess.Player(seat); !player.HoldsUsable() {
		io.Show(term.Colored(term.Yellow, "\nThere aren't object that can be used!"))
		return nil
	}

	for {
		player := e.sess.Player(seat)

		var b strings.Builder
		for i, held := range player.Backpack {
			if held.IsUsable() {
				fmt.Fprintf(&b, "\n%d) Use the %s;", i+1, held)
			}
		}
		b.WriteString("\n5) Print all the effects of the objects availables;\n6) Exit the menu.\nChoose from the option above: ")

		answer, err := io.Ask(ctx, b.String())
		if err != nil {
			return err
		}

		choice, ok := parseChoice(answer)
		if !ok {
			io.Show(term.Colored(term.Red, invalidInput))
			continue
		}

		switch {
		case choice >= 1 && choice <= game.BackpackSize:
			slot := choice - 1
			item := player.Backpack[slot]

			if item == game.HundredDollar {
				return e.hundredDollarMenu(ctx, seat, slot)
			}

			msgs, actionErr := e.sess.UseItem(seat, slot)
			if actionErr != nil {
				io.Show(term.Colored(term.Yellow, "\n"+upperFirst(actionErr.Error())+"!"))
				continue
			}
			if item == game.Knife {
				// Kills concern everyone in the house.
				for _, msg := range msgs {
					e.showAll(term.Colored(term.Magenta, "\n"+msg))
				}
			} else {
				e.showMessages(io, msgs)
			}
			return nil

		case choice == 5:
			io.Show(game.EffectsString())

		case choice == 6:
			return nil

		default:
			io.Show(term.Colored(term.Red, invalidInput))
		}
	}
}

// hundredDollarMenu runs the purchase choice for a held HUNDRED_DOLLAR.
func (e *Engine) hundredDollarMenu(ctx context.Context, seat, slot int) error {
	io := e.ios[seat]

	for {
		answer, err := io.Ask(ctx, exchangeMenu)
		if err != nil {
			return err
		}

		choice, ok := parseChoice(answer)
		if !ok {
			io.Show(term.Colored(term.Red, invalidInput))
			continue
		}

		var purchase game.Item
		switch choice {
		case 1:
			purchase = game.Tranquillizer
		case 2:
			purchase = game.Salt
		case 3:
			return nil
		default:
			io.Show(term.Colored(term.Red, invalidInput))
			continue
		}

		msg, actionErr := e.sess.ExchangeHundredDollar(seat, slot, purchase)
		if actionErr != nil {
			io.Show(term.Colored(term.Yellow, "\n"+upperFirst(actionErr.Error())+"!"))
			continue
		}
		io.Show(term.Colored(term.Magenta, "\n"+msg))
		return nil
	}
}

// giveMenu hands one item to a co-located player.
func (e *Engine) giveMenu(ctx context.Context, seat int) error {
	io := e.ios[seat]
	player := e.sess.Player(seat)

	hasItem := false
	for _, held := range player.Backpack {
		if held != game.NoItem {
			hasItem = true
			break
		}
	}
	if !hasItem {
		io.Show(term.Colored(term.Yellow, "\nThe backpack is empty, there's nothing to give!"))
		return nil
	}

	for {
		player = e.sess.Player(seat)

		var b strings.Builder
		for i, held := range player.Backpack {
			if held != game.NoItem {
				fmt.Fprintf(&b, "\n%d) Give the %s", i+1, held)
			}
		}
		b.WriteString("\n5) Exit the menu.\nChoose from the option above: ")

		answer, err := io.Ask(ctx, b.String())
		if err != nil {
			return err
		}

		choice, ok := parseChoice(answer)
		if !ok || choice < 1 || choice > game.BackpackSize+1 {
			io.Show(term.Colored(term.Red, invalidInput))
			continue
		}
		if choice == game.BackpackSize+1 {
			return nil
		}
		slot := choice - 1
		if player.Backpack[slot] == game.NoItem {
			io.Show(term.Colored(term.Yellow, "\nThe selected slot is empty!"))
			continue
		}

		var recipients strings.Builder
		found := false
		for i := 0; i < e.sess.PlayerCount(); i++ {
			other := e.sess.Player(i)
			if i == seat || other == nil || other.Position.Kind != player.Position.Kind {
				continue
			}
			fmt.Fprintf(&recipients, "\n%d) Give the %s to %s;", i+1, player.Backpack[slot], other.Name)
			found = true
		}
		if !found {
			io.Show(term.Colored(term.Yellow, "\nThere's no player in your zone to trade with!"))
			return nil
		}
		recipients.WriteString("\n5) Exit the menu.\nChoose from the option above: ")

		answer, err = io.Ask(ctx, recipients.String())
		if err != nil {
			return err
		}

		choice, ok = parseChoice(answer)
		if !ok {
			io.Show(term.Colored(term.Red, invalidInput))
			continue
		}
		if choice == 5 {
			return nil
		}

		msg, actionErr := e.sess.GiveItem(seat, choice-1, slot)
		if actionErr != nil {
			io.Show(term.Colored(term.Yellow, "\n"+upperFirst(actionErr.Error())+"!"))
			continue
		}
		io.Show(term.Colored(term.Magenta, "\n"+msg))
		e.ios[choice-1].Show(term.Colored(term.Magenta, fmt.Sprintf("\n%s gave you an object!", e.names[seat])))
		return nil
	}
}

// removeMenu discards one item from the backpack.
func (e *Engine) removeMenu(ctx context.Context, seat int) error {
	io := e.ios[seat]

	for {
		player := e.sess.Player(seat)

		hasItem := false
		var b strings.Builder
		for i, held := range player.Backpack {
			if held != game.NoItem {
				fmt.Fprintf(&b, "\n%d) Remove the %s", i+1, held)
				hasItem = true
			}
		}
		if !hasItem {
			io.Show(term.Colored(term.Yellow, "\nThe backpack is empty, there's nothing to remove!"))
			return nil
		}
		b.WriteString("\n5) Exit the menu.\nChoose from the option above: ")

		answer, err := io.Ask(ctx, b.String())
		if err != nil {
			return err
		}

		choice, ok := parseChoice(answer)
		if !ok {
			io.Show(term.Colored(term.Red, invalidInput))
			continue
		}
		if choice == game.BackpackSize+1 {
			return nil
		}

		msg, actionErr := e.sess.RemoveItem(seat, choice-1)
		if actionErr != nil {
			io.Show(term.Colored(term.Yellow, "\n"+upperFirst(actionErr.Error())+"!"))
			continue
		}
		io.Show(term.Colored(term.Magenta, "\n"+msg))
		return nil
	}
}

// reorganizeMenu swaps the contents of two backpack slots.
func (e *Engine) reorganizeMenu(ctx context.Context, seat int) error {
	io := e.ios[seat]

	for {
		player := e.sess.Player(seat)

		var b strings.Builder
		for i, held := range player.Backpack {
			fmt.Fprintf(&b, "\n%d) Swap the %s;", i+1, held)
		}
		slotList := b.String()

		answer, err := io.Ask(ctx, slotList+"\n5) Exit the menu.\nInsert the number of the slot to swap: ")
		if err != nil {
			return err
		}

		first, ok := parseChoice(answer)
		if !ok || first < 1 || first > game.BackpackSize+1 {
			io.Show(term.Colored(term.Red, invalidInput))
			continue
		}
		if first == game.BackpackSize+1 {
			return nil
		}

		prompt := fmt.Sprintf("%s\n5) Exit the menu.\nInsert the number of the slot to swap with the %s: ", slotList, player.Backpack[first-1])
		answer, err = io.Ask(ctx, prompt)
		if err != nil {
			return err
		}

		second, ok := parseChoice(answer)
		if !ok || second < 1 || second > game.BackpackSize+1 {
			io.Show(term.Colored(term.Red, invalidInput))
			continue
		}
		if second == game.BackpackSize+1 {
			return nil
		}

		msg, actionErr := e.sess.Reorganize(seat, first-1, second-1)
		if actionErr != nil {
			io.Show(term.Colored(term.Yellow, "\n"+upperFirst(actionErr.Error())+"!"))
			continue
		}
		io.Show(term.Colored(term.Magenta, "\n"+msg))
		return nil
	}
}
