package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rxpad/rxpad/internal/app"
	"github.com/rxpad/rxpad/internal/domain/catalog"
)

const catalogKinds = "drugs, investigations or advice"

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse and extend the drug, investigation and advice lists",
	}

	show := func(cmd *cobra.Command, kind, query string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return printCatalog(cmd.OutOrStdout(), a.Catalogs, kind, query)
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <drugs|investigations|advice>",
		Short: "Print a whole catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd, args[0], "")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "filter <drugs|investigations|advice> <query>",
		Short: "Print catalog entries containing query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd, args[0], args[1])
		},
	})

	addDrugCmd := &cobra.Command{
		Use:   "add-drug [name]",
		Short: "Add a drug by free-text name, or fully with --trade and --generic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, _ := cmd.Flags().GetString("form")
			trade, _ := cmd.Flags().GetString("trade")
			generic, _ := cmd.Flags().GetString("generic")
			strength, _ := cmd.Flags().GetString("strength")
			if len(args) == 0 && trade == "" && generic == "" {
				return fmt.Errorf("give a drug name, or --trade and --generic")
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				var (
					drug catalog.Drug
					err  error
				)
				if len(args) == 1 {
					drug, err = a.Catalogs.Drugs.AddCustom(args[0])
				} else {
					drug, err = a.Catalogs.Drugs.AddDrug(form, trade, generic, strength)
				}
				if errors.Is(err, catalog.ErrDuplicate) {
					fmt.Fprintf(cmd.OutOrStdout(), "Already in catalog: %s\n", drug.Formulation)
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", drug.Formulation)
				return nil
			})
		},
	}
	addDrugCmd.Flags().String("form", catalog.FormChoices[0], "Dosage form prefix")
	addDrugCmd.Flags().String("trade", "", "Trade name")
	addDrugCmd.Flags().String("generic", "", "Generic name")
	addDrugCmd.Flags().String("strength", "", "Strength, e.g. 500mg")
	cmd.AddCommand(addDrugCmd)

	for _, kind := range []string{"investigation", "advice"} {
		kind := kind
		cmd.AddCommand(&cobra.Command{
			Use:   "add-" + kind + " <text>",
			Short: "Add an " + kind + " entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app.App) error {
					list := a.Catalogs.Advice
					if kind == "investigation" {
						list = a.Catalogs.Investigations
					}
					err := list.Add(args[0])
					if errors.Is(err, catalog.ErrDuplicate) {
						fmt.Fprintf(cmd.OutOrStdout(), "Already in catalog: %s\n", args[0])
						return nil
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", args[0])
					return nil
				})
			},
		})
	}
	return cmd
}

func printCatalog(w io.Writer, set *catalog.Set, kind, query string) error {
	switch kind {
	case "drugs":
		for _, d := range set.Drugs.Filter(query) {
			fmt.Fprintf(w, "%-35s %s\n", d.Formulation, d.GenericName)
		}
	case "investigations":
		for _, e := range set.Investigations.Filter(query) {
			fmt.Fprintln(w, e)
		}
	case "advice":
		for _, e := range set.Advice.Filter(query) {
			fmt.Fprintln(w, e)
		}
	default:
		return fmt.Errorf("unknown catalog %q: want %s", kind, catalogKinds)
	}
	return nil
}
