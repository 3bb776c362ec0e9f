package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ZamarianPatrick/oasis-backend/di"
	"github.com/ZamarianPatrick/oasis-backend/garden"
	"github.com/ZamarianPatrick/oasis-backend/model"
	"github.com/spf13/cobra"
)

var phaseNames = [...]string{"seed", "sprout", "bloom", "fully grown"}

func withGarden(fn func(cmd *cobra.Command, g *garden.Garden, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		g, cleanup, err := di.InitGarden(&flags)
		if err != nil {
			return err
		}
		defer cleanup()
		return fn(cmd, g, args)
	}
}

func printPlant(w io.Writer, p *model.Plant) {
	name := p.Species
	if p.Nickname != "" {
		name = fmt.Sprintf("%s (%s)", p.Nickname, p.Species)
	}

	fmt.Fprintf(w, "%s #%d, planted %s\n", name, p.ID, p.DatePlanted.Format("2006-01-02"))
	if p.FullyGrown() {
		fmt.Fprintf(w, "  %s, water %d\n", phaseNames[model.PhaseGrown], p.WaterLevel)
		return
	}
	needed, _ := p.WaterNeeded.For(p.Phase)
	fmt.Fprintf(w, "  %s, water %d/%d\n", phaseNames[p.Phase], p.WaterLevel, needed)
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the plants offered by the shop",
		RunE: withGarden(func(cmd *cobra.Command, g *garden.Garden, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tWATER NEEDED")
			for i, def := range g.Catalog().ListOfferings() {
				if def.IsPlaceholder() {
					fmt.Fprintf(tw, "-\t%s\t\n", def.Name)
					continue
				}
				w := def.WaterNeeded
				fmt.Fprintf(tw, "%d\t%s\t%d/%d/%d\n", i, def.Name, w.Phase1, w.Phase2, w.Phase3)
			}
			return tw.Flush()
		}),
	}
}

func newPlantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plant",
		Short: "Show the current plant",
		RunE: withGarden(func(cmd *cobra.Command, g *garden.Garden, args []string) error {
			p, err := g.Current(cmd.Context())
			if err != nil {
				return err
			}
			printPlant(cmd.OutOrStdout(), p)
			return nil
		}),
	}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List every plant grown so far, newest first",
		RunE: withGarden(func(cmd *cobra.Command, g *garden.Garden, args []string) error {
			plants, err := g.History(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range plants {
				printPlant(cmd.OutOrStdout(), p)
			}
			return nil
		}),
	}
}

func newWaterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "water <amount>",
		Short: "Water the current plant",
		Args:  cobra.ExactArgs(1),
		RunE: withGarden(func(cmd *cobra.Command, g *garden.Garden, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			p, err := g.Water(cmd.Context(), amount)
			if err != nil {
				return err
			}
			printPlant(cmd.OutOrStdout(), p)
			return nil
		}),
	}
}

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <nickname>",
		Short: "Give the current plant a nickname",
		Args:  cobra.ExactArgs(1),
		RunE: withGarden(func(cmd *cobra.Command, g *garden.Garden, args []string) error {
			p, err := g.Rename(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printPlant(cmd.OutOrStdout(), p)
			return nil
		}),
	}
}

type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(_ context.Context, def model.PlantDefinition) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N] ", garden.ConfirmationPrompt(def))
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func newReplaceCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "replace <index|name>",
		Short: "Replace the fully grown current plant with one from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: withGarden(func(cmd *cobra.Command, g *garden.Garden, args []string) error {
			var (
				def model.PlantDefinition
				err error
			)
			if i, convErr := strconv.Atoi(args[0]); convErr == nil {
				def, err = g.Catalog().At(i)
			} else {
				def, err = g.Catalog().Lookup(args[0])
			}
			if err != nil {
				return err
			}

			var confirm garden.Confirmer = promptConfirmer{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
			if yes {
				confirm = garden.Answer(true)
			}

			out := cmd.OutOrStdout()
			res, err := g.RequestReplacement(cmd.Context(), def, confirm)
			if errors.Is(err, garden.ErrNotReady) {
				fmt.Fprintf(out, "%s %s\n", garden.NotReadyTitle, garden.NotReadyMessage)
				return err
			}
			if err != nil {
				return err
			}

			switch res.Outcome {
			case garden.Ignored:
				fmt.Fprintf(out, "%s cannot be bought yet.\n", def.Name)
			case garden.Cancelled:
				fmt.Fprintln(out, "Keeping your current plant.")
			case garden.Replaced:
				printPlant(out, res.Current)
			}
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
