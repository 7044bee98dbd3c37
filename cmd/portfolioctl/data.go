package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
)

func exportCmd(a *app) *cobra.Command {
	var out string
	command := &cobra.Command{
		Use:   "export",
		Short: "Write the stored portfolio as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			raw, err := store.Export(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(append(raw, '\n'))
				return err
			}
			if err := afero.WriteFile(a.fs, out, raw, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d bytes to %s\n", len(raw), out)
			return nil
		},
	}
	command.Flags().StringVarP(&out, "out", "o", "", "file to write instead of stdout")
	return command
}

func importCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the stored portfolio with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = afero.ReadFile(a.fs, args[0])
			}
			if err != nil {
				return err
			}

			// Missing sections fall back to the seed, as on load.
			doc, err := portfolio.Overlay(portfolio.Default(), raw)
			if err != nil {
				return fmt.Errorf("not a portfolio export: %w", err)
			}

			store, release, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if err := store.Save(cmd.Context(), doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d projects, %d skills, %d messages\n",
				len(doc.Projects), len(doc.Skills), len(doc.Messages))
			return nil
		},
	}
}

func resetCmd(a *app) *cobra.Command {
	var yes bool
	command := &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the stored portfolio with the built-in sample content",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset discards all stored content; pass --yes to confirm")
			}
			store, release, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if err := store.Save(cmd.Context(), portfolio.Default()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "portfolio reset to defaults")
			return nil
		},
	}
	command.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return command
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show section counts of the stored portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			s := store.Load(cmd.Context()).Stats()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "projects:   %d (%d visible)\n", s.Projects, s.VisibleProjects)
			fmt.Fprintf(w, "skills:     %d\n", s.Skills)
			fmt.Fprintf(w, "experience: %d\n", s.Experience)
			fmt.Fprintf(w, "education:  %d\n", s.Education)
			fmt.Fprintf(w, "messages:   %d (%d unread)\n", s.Messages, s.UnreadMessages)
			return nil
		},
	}
}
