package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/loom/pkg/element"
	"github.com/vango-dev/loom/pkg/fiber"
	"github.com/vango-dev/loom/pkg/reconcile"
)

func diffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <before.json> <after.json>",
		Short: "Reconcile two tree descriptions and print the effect list",
		Long: `Reconcile commits the first description as the current tree, runs a
second pass with the new description, and prints one line per changed
node in commit order.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := loadTree(args[0])
			if err != nil {
				return err
			}
			after, err := loadTree(args[1])
			if err != nil {
				return err
			}

			root := reconcile.NewRoot(nil)
			rec := reconcile.New(root)

			res, err := rec.RenderRoot(cmd.Context(), before)
			if err != nil {
				return fmt.Errorf("initial pass: %w", err)
			}
			root.Commit(res)

			res, err = rec.RenderRoot(cmd.Context(), after)
			if err != nil {
				return fmt.Errorf("update pass: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(res.Effects) == 0 {
				fmt.Fprintln(out, "no changes")
				return nil
			}
			for _, f := range res.Effects {
				fmt.Fprintf(out, "%-20s %s\n", f.Flags, describeFiber(f))
			}
			root.Commit(res)
			return nil
		},
	}
	return cmd
}

func loadTree(path string) (*element.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	el, err := element.DecodeJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return el, nil
}

func describeFiber(f *fiber.Fiber) string {
	switch f.Kind {
	case fiber.KindHost:
		tag, _ := f.Type.(string)
		if f.Key != "" {
			return fmt.Sprintf("host <%s> key=%s", tag, f.Key)
		}
		return fmt.Sprintf("host <%s>", tag)
	case fiber.KindText:
		text, _ := f.PendingProps.(string)
		return fmt.Sprintf("text %q", text)
	default:
		return f.Kind.String()
	}
}
