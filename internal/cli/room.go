package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Waiting room commands",
	}

	cmd.AddCommand(newRoomInitCmd())
	cmd.AddCommand(newRoomShowCmd())
	cmd.AddCommand(newRoomAddCmd())
	cmd.AddCommand(newRoomRemoveCmd())
	cmd.AddCommand(newRoomPriorityCmd())
	cmd.AddCommand(newRoomReorderCmd())
	cmd.AddCommand(newRoomMaterializeCmd())
	cmd.AddCommand(newRoomShareCmd())

	return cmd
}

func newRoomInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [sid]",
		Short: "Create a waiting room (generates an id when omitted)",
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

			var result Room

			if err := client.Put(fmt.Sprintf("/api/v1/rooms/%s", sid), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <sid>",
		Short: "Show a waiting room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := sessionIDArg(args[0])
			if err != nil {
				return err
			}

			var result Room

			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s", sid), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <sid> <name>",
		Short: "Add a player to the room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := sessionIDArg(args[0])
			if err != nil {
				return err
			}

			req := map[string]string{"name": args[1]}
			var result Player

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/players", sid), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <sid> <player-id>",
		Short: "Remove a player from the room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := sessionIDArg(args[0])
			if err != nil {
				return err
			}

			if err := client.Delete(fmt.Sprintf("/api/v1/rooms/%s/players/%s", sid, args[1])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Player removed")
			return nil
		},
	}
}

func newRoomPriorityCmd() *cobra.Command {
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

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/players/%s/priority", sid, args[1]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <sid> <from> <to>",
		Short: "Move a player to a new room position",
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

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/players/reorder", sid), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomMaterializeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "materialize <sid>",
		Short: "Promote the room roster into a game session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := sessionIDArg(args[0])
			if err != nil {
				return err
			}

			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/materialize", sid), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <sid>",
		Short: "Build a shareable summary of the room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := sessionIDArg(args[0])
			if err != nil {
				return err
			}

			var result Share

			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s/share", sid), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
