package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/automoto/kickoff/assets"
	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/server/core"
	"github.com/automoto/kickoff/server/store"
	"github.com/spf13/cobra"
)

func newEpisodesCommand(configPath *string) *cobra.Command {
	var (
		matchID string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "episodes",
		Short: "List stored episode results",
		Long: `Prints the latest episodes from the results database, newest first.

Examples:
  kickoff-server episodes --limit 20
  kickoff-server episodes --match 5f0c...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(*configPath, nil)
			if err != nil {
				return err
			}
			db, err := store.NewConnection(settings.Database)
			if err != nil {
				return err
			}
			defer store.Close(db)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			repo := store.NewGormEpisodeRepository(db)
			episodes, err := repo.Recent(ctx, matchID, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MATCH\tEPISODE\tREASON\tSCORER\tSTEPS\tSCORE\tENDED")
			for _, e := range episodes {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%d-%d\t%s\n",
					e.MatchID, e.Number, e.Reason, e.Scorer, e.Steps,
					e.BlueScore, e.PurpleScore, e.EndedAt.Local().Format(time.DateTime))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if matchID != "" {
				t, err := repo.Totals(ctx, matchID)
				if err != nil {
					return err
				}
				fmt.Printf("\n%d episodes, %d goals, %d timeouts, final score %d-%d\n",
					t.Episodes, t.Goals, t.Timeouts, t.Blue, t.Purple)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&matchID, "match", "", "Only show this match")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum episodes to show")
	return cmd
}

func newPitchesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pitches",
		Short: "List embedded pitches and formation presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := core.LoadPitchSet(assets.Pitches(), "pitches", assets.Formations(), presetsPath)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PITCH\tLENGTH\tWIDTH\tGOALS")
			for _, name := range set.Names {
				p := set.Pitches[name]
				fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%d\n", name, p.HalfLength*2, p.HalfWidth*2, len(p.Goals))
			}
			fmt.Fprintln(w, "\nPRESET\tPITCH\tPLAYERS\tDESCRIPTION")
			names := make([]string, 0, len(set.Presets))
			for name := range set.Presets {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				p := set.Presets[name]
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, p.Pitch, len(p.Roster), p.Description)
			}
			return w.Flush()
		},
	}
}
