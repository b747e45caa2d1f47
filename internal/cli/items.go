package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/tael/internal/inbox"
)

func newAddCmd(a *App) *cobra.Command {
	var (
		pane    string
		project string
		branch  string
		status  string
		attrs   []string
	)

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add or update the item for a pane",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePane(pane)
			if err != nil {
				return err
			}
			st, err := inbox.ParseStatus(status)
			if err != nil {
				return err
			}

			text := strings.TrimSpace(args[0])
			if text == "" {
				return fmt.Errorf("item text is required")
			}

			kv := []string{
				inbox.KeyMsg, text,
				inbox.KeyPane, strconv.FormatUint(uint64(id), 10),
				inbox.KeyProj, strings.TrimSpace(project),
				inbox.KeyBranch, strings.TrimSpace(branch),
			}
			extra, err := parseAttrs(attrs)
			if err != nil {
				return err
			}
			item := inbox.NewItem(st, append(kv, extra...)...)
			if err := item.Validate(); err != nil {
				return err
			}

			if _, err := a.store().Update(func(in *inbox.Inbox) bool {
				in.Upsert(item)
				return true
			}); err != nil {
				return err
			}
			a.logger.Info("item added", "pane", id, "status", st)
			fmt.Fprintf(cmd.OutOrStdout(), "Added item for pane %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&pane, "pane", "p", envOr("ZELLIJ_PANE_ID", ""), "Pane ID (unique key; defaults to $ZELLIJ_PANE_ID)")
	cmd.Flags().StringVar(&project, "project", "", "Project name")
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Git branch")
	cmd.Flags().StringVarP(&status, "status", "s", "wait", "Status: wait or work")
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "Extra attribute as key=value (repeatable)")
	return cmd
}

// parseAttrs turns key=value pairs into alternating key/value strings.
// Reserved keys are rejected so they cannot shadow the dedicated flags.
func parseAttrs(pairs []string) ([]string, error) {
	out := make([]string, 0, len(pairs)*2)
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid attribute %q: want key=value", pair)
		}
		switch k {
		case inbox.KeyMsg, inbox.KeyPane, inbox.KeyProj, inbox.KeyBranch:
			return nil, fmt.Errorf("attribute %q is set by its own flag", k)
		}
		if strings.ContainsAny(k, ":]") || strings.Contains(v, "]") {
			return nil, fmt.Errorf("invalid attribute %q: key may not contain ':' or ']', value may not contain ']'", pair)
		}
		out = append(out, k, v)
	}
	return out, nil
}

func newRemoveCmd(a *App) *cobra.Command {
	var pane string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove the item for a pane",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePane(pane)
			if err != nil {
				return err
			}

			removed := false
			if _, err := a.store().Update(func(in *inbox.Inbox) bool {
				removed = in.Remove(id)
				return removed
			}); err != nil {
				return err
			}

			a.logger.Info("item removed", "pane", id, "removed", removed)
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed item for pane %d\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No item found for pane %d\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pane, "pane", "p", envOr("ZELLIJ_PANE_ID", ""), "Pane ID to remove (defaults to $ZELLIJ_PANE_ID)")
	return cmd
}

func newClearCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store().Save(inbox.New()); err != nil {
				return err
			}
			a.logger.Info("inbox cleared")
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared inbox")
			return nil
		},
	}
}
