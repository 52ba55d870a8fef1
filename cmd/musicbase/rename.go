package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/handiism/musicbase/internal/rename"
	"github.com/spf13/cobra"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var apply, yes, all bool

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Give album directories their canonical names",
		Long: "Propose canonical names (Artist_-_[Year]_Title) for every album directory in the " +
			"collection. With --apply the proposals are carried out; names that could not be " +
			"split into artist and title are only renamed with --all.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.baseDir()
			if err != nil {
				return err
			}
			settings, _ := ctx.ensureSettings()

			renamer := rename.NewDefaultRenamer(settings.MaxConcurrentDirs, ctx.printer(cmd))
			plan, err := renamer.Plan(cmd.Context(), base)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(plan.Candidates) == 0 {
				fmt.Fprintln(out, "Every directory already has its canonical name.")
				return nil
			}
			fmt.Fprintln(out, renderPlan(plan))

			if !apply {
				return nil
			}

			names := selectEntries(plan, all)
			if len(names) == 0 {
				fmt.Fprintln(out, "Nothing to rename without --all.")
				return nil
			}
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Rename %d directories?", len(names)))
				if err != nil || !ok {
					return err
				}
			}

			res, err := renamer.Apply(cmd.Context(), plan, names)
			if err != nil {
				return err
			}
			if len(res.Failed) > 0 {
				return fmt.Errorf("%d directories could not be renamed", len(res.Failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Rename the directories")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&all, "all", false, "Also rename directories marked for a closer look")
	return cmd
}

func renderPlan(plan *rename.Plan) string {
	rows := make([][]string, 0, len(plan.Candidates))
	for _, e := range plan.Candidates {
		mark := ""
		if plan.IsConsider(e.Old) {
			mark = "!"
		}
		rows = append(rows, []string{mark, e.Old, e.New})
	}
	return renderTable([]string{"", "Directory", "Canonical name"}, rows, nil)
}

// selectEntries returns the old names to rename.
func selectEntries(plan *rename.Plan, all bool) []string {
	if all {
		return rename.Names(plan.Candidates)
	}
	var names []string
	for _, e := range plan.Candidates {
		if !plan.IsConsider(e.Old) {
			names = append(names, e.Old)
		}
	}
	return names
}

func confirm(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
