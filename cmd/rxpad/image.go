package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rxpad/rxpad/internal/app"
)

func imageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Attach and manage patient images",
	}

	addCmd := &cobra.Command{
		Use:   "add <reg_no> <file>",
		Short: "Copy an image file into the patient's record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			regNo, err := parseID(args[0], "registration number")
			if err != nil {
				return err
			}
			desc, _ := cmd.Flags().GetString("description")
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				img, err := a.Images.Import(ctx, regNo, args[1], desc)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added image %d: %s\n", img.ID, img.Path)
				return nil
			})
		},
	}
	addCmd.Flags().String("description", "", "What the image shows")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list <reg_no>",
		Short: "List a patient's images, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			regNo, err := parseID(args[0], "registration number")
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				list, err := a.Images.List(ctx, regNo)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, img := range list {
					fmt.Fprintf(out, "%-6d %s  %-30s %s\n", img.ID, img.CreatedAt.Local().Format("02/01/2006 03:04 PM"), img.Description, img.Path)
				}
				fmt.Fprintf(out, "%d image(s)\n", len(list))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "describe <id> <description>",
		Short: "Change an image's description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "image id")
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if _, err := a.Images.UpdateDescription(ctx, id, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated image %d\n", id)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an image and its file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "image id")
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Images.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted image %d\n", id)
				return nil
			})
		},
	})
	return cmd
}
