package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/Progxy/phalsophobia-multiplayer/network"
	"github.com/Progxy/phalsophobia-multiplayer/term"
)

// The client is deliberately thin: it renders whatever the server sends and
// only reacts to the protocol tokens.
func main() {
	stdin := bufio.NewScanner(os.Stdin)

	term.ClearScreen(os.Stdout)
	fmt.Print("\nInsert the ip address: ")
	addr := "localhost:8080"
	if stdin.Scan() {
		if entered := strings.TrimSpace(stdin.Text()); entered != "" {
			addr = entered
			if !strings.Contains(addr, ":") {
				addr += ":8080"
			}
		}
	}

	fmt.Printf("\nTrying to connect to the server at: %s!\n", addr)
	raw, err := net.Dial("tcp", addr)
	if err != nil {
		fmt.Println("\nFailed connecting to the server!")
		os.Exit(1)
	}
	conn := network.NewTCPConnection(raw)
	defer conn.Close()

	term.ClearScreen(os.Stdout)
	fmt.Println("\nWaiting the game master to select the game settings!")

	for {
		payload, err := conn.ReadFrame()
		if err != nil {
			fmt.Println("\nLost the connection to the server!")
			os.Exit(1)
		}

		switch payload {
		case network.TokenSendPlayerInfo:
			if err := conn.SendText(profileFrame(stdin)); err != nil {
				fmt.Println("\nError while sending the data to the server!")
				os.Exit(1)
			}

		case network.TokenUserInput:
			line := ""
			if stdin.Scan() {
				line = stdin.Text()
			}
			if err := conn.SendText(line); err != nil {
				fmt.Println("\nError while sending the data to the server!")
				os.Exit(1)
			}

		case network.TokenGameTerminated:
			fmt.Println("\nThe game has ended!")
			return

		case network.TokenIsYourTurn, network.TokenNotYourTurn,
			network.TokenTurnTerminated, network.TokenNoAdvice:
			// Turn markers carry no text to render.

		default:
			fmt.Print(payload)
		}
	}
}

// profileFrame runs the local profile dialogue and encodes it for the
// server.
func profileFrame(stdin *bufio.Scanner) string {
	term.ClearScreen(os.Stdout)
	fmt.Println(term.Colored(term.Magenta, "\n------------- PLAYER INFO -------------\n"))

	var name string
	for {
		fmt.Print("\nInsert the name to use in game " + term.Colored(term.Yellow, "(MAX 225 characters)") + ": ")
		if !stdin.Scan() {
			os.Exit(1)
		}
		name = strings.TrimSpace(stdin.Text())
		if name != "" && !strings.Contains(name, network.ProfileSeparator) {
			break
		}
		fmt.Println(term.Colored(term.Red, "\nError: please insert a valid input!"))
	}

	useAdvice := "N"
	for {
		fmt.Print(term.Colored(term.Yellow, "\nDo you want to receive advices during the game? (Y/N): "))
		if !stdin.Scan() {
			os.Exit(1)
		}
		answer := strings.ToUpper(strings.TrimSpace(stdin.Text()))
		if answer == "Y" || answer == "N" {
			useAdvice = answer
			break
		}
		fmt.Println(term.Colored(term.Red, "\nError: please insert a valid input!"))
	}

	term.ClearScreen(os.Stdout)
	fmt.Println("\nWaiting the game master to start the game...")
	return name + network.ProfileSeparator + useAdvice
}
