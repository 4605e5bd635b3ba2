package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameStateCmd())
	cmd.AddCommand(newGamePlayCmd())
	cmd.AddCommand(newGameDrawCmd())
	cmd.AddCommand(newGameAutoCmd())
	cmd.AddCommand(newGameMovesCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameCreated

			if err := client.Post("/api/v1/games", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <game-id> <name>",
		Short: "Join a game as a named player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]
			name := args[1]

			req := map[string]string{"name": name}
			var result JoinResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/join", gameID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <game-id>",
		Short: "Start the game once both players have joined",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			var result GameView

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/start", gameID), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Get the public game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			var result GameView

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", gameID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state <game-id> <player-id>",
		Short: "Get your view of the game, including your hand",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]
			playerID := args[1]

			var result GameView

			path := fmt.Sprintf("/api/v1/games/%s/state?player_id=%s", gameID, url.QueryEscape(playerID))
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <game-id> <player-id> <card> [suit]",
		Short: "Play a card from your hand",
		Long: `Play a card from your hand onto the discard pile.

Cards are written as rank then suit, e.g. "8H", "10♦", "QS".
When playing an eight, pass the suit to declare as a fourth argument.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]
			playerID := args[1]
			card := args[2]

			req := map[string]string{"card": card}
			if len(args) == 4 {
				req["declared_suit"] = args[3]
			}

			var result GameView

			path := fmt.Sprintf("/api/v1/games/%s/play?player_id=%s", gameID, url.QueryEscape(playerID))
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameDrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draw <game-id> <player-id>",
		Short: "Draw a card from the draw pile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]
			playerID := args[1]

			var result DrawResult

			path := fmt.Sprintf("/api/v1/games/%s/draw?player_id=%s", gameID, url.QueryEscape(playerID))
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameMovesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moves <game-id>",
		Short: "List the game's move history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			var result MovesResult

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/moves", gameID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAutoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto <game-id> <player-id>",
		Short: "Let the server pick and make your move",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]
			playerID := args[1]

			var result AutoResult

			path := fmt.Sprintf("/api/v1/games/%s/auto?player_id=%s", gameID, url.QueryEscape(playerID))
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <game-id>",
		Short: "Delete a game and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			if err := client.Delete(fmt.Sprintf("/api/v1/games/%s", gameID)); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game deleted")
			return nil
		},
	}
}
