package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game session commands",
	}

	cmd.AddCommand(newGameInitCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameAddCmd())
	cmd.AddCommand(newGameRemoveCmd())
	cmd.AddCommand(newGamePriorityCmd())
	cmd.AddCommand(newGameReorderCmd())
	cmd.AddCommand(newGameSetTeamsCmd())
	cmd.AddCommand(newGameSortCmd())
	cmd.AddCommand(newGameShareCmd())

	return cmd
}

func newGameInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [sid]",
		Short: "Create a game session (generates an id when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sid string
			if len(args) == 1 {
				validated, err := sessionIDArg(args[0])
				if err != nil {
					return err
				}
				sid = validated
			} else {
				sid = mintSessionID()
			}

			var result Session

			if err := client.Put(fmt.Sprintf("/api/v1/games/%s", sid), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <sid>",
		Short: "Show a game session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := sessionIDArg(args[0])
			if err != nil {
				return err
			}

			var result Session

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", sid), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <sid> <name>",
		Short: "Add a player to the roster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := sessionIDArg(args[0])
			if err != nil {
				return err
			}

			req := map[string]string{"name": args[1]}
			var result Player

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/players", sid), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <sid> <player-id>",
		Short: "Remove a player from the roster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := sessionIDArg(args[0])
			if err != nil {
				return err
			}

			if err := client.Delete(fmt.Sprintf("/api/v1/games/%s/players/%s", sid, args[1])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Player removed")
			return nil
		},
	}
}

func newGamePriorityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "priority <sid> <player-id>",
		Short: "Toggle a player's priority flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := sessionIDArg(args[0])
			if err != nil {
				return err
			}

			var result Player

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/players/%s/priority", sid, args[1]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <sid> <from> <to>",
		Short: "Move a player to a new roster position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := sessionIDArg(args[0])
			if err != nil {
				return err
			}

			from, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid from index: %w", err)
			}

			to, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid to index: %w", err)
			}

			req := map[string]int{"from": from, "to": to}
			var result Roster

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/players/reorder", sid), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSetTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-teams <sid> <count>",
		Short: "Set the number of teams (clamped to 2-10)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := sessionIDArg(args[0])
			if err != nil {
				return err
			}

			count, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid count: %w", err)
			}

			req := map[string]int{"count": count}
			var result TeamCount

			if err := client.Patch(fmt.Sprintf("/api/v1/games/%s/team-count", sid), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort <sid>",
		Short: "Sort the roster into teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := sessionIDArg(args[0])
			if err != nil {
				return err
			}

			var result SortResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/sort", sid), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <sid>",
		Short: "Build a shareable summary of the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := sessionIDArg(args[0])
			if err != nil {
				return err
			}

			var result Share

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/share", sid), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
