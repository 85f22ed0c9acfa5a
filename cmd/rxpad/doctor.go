package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rxpad/rxpad/internal/app"
	"github.com/rxpad/rxpad/internal/domain/doctor"
)

func doctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Show or change the doctor profile",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the doctor profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				printProfile(cmd.OutOrStdout(), a.Doctor.Profile(), a.Doctor.Stored())
				return nil
			})
		},
	})

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Save the doctor profile; unset flags keep their current value",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				raw := profileValues(a.Doctor.Profile())
				for _, f := range doctor.Fields {
					if cmd.Flags().Changed(f.Name) {
						raw[f.Name], _ = cmd.Flags().GetString(f.Name)
					}
				}
				p, err := doctor.ProfileFromForm(raw)
				if err != nil {
					return err
				}
				saved, err := a.Doctor.Save(ctx, p)
				if err != nil {
					return err
				}
				printProfile(cmd.OutOrStdout(), saved, true)
				return nil
			})
		},
	}
	for _, f := range doctor.Fields {
		setCmd.Flags().String(f.Name, "", f.Label)
	}
	cmd.AddCommand(setCmd)
	return cmd
}

func profileValues(p doctor.Profile) map[string]string {
	return map[string]string{
		"name":            p.Name,
		"degrees":         p.Degrees,
		"designation":     p.Designation,
		"institution":     p.Institution,
		"registration_no": p.RegistrationNo,
		"phone":           p.Phone,
		"email":           p.Email,
		"address":         p.Address,
	}
}

func printProfile(w io.Writer, p doctor.Profile, stored bool) {
	fmt.Fprintf(w, "Name:           %s\n", p.Name)
	fmt.Fprintf(w, "Degrees:        %s\n", p.Degrees)
	fmt.Fprintf(w, "Designation:    %s\n", p.Designation)
	fmt.Fprintf(w, "Institution:    %s\n", p.Institution)
	fmt.Fprintf(w, "Registration:   %s\n", p.RegistrationNo)
	fmt.Fprintf(w, "Phone:          %s\n", p.Phone)
	fmt.Fprintf(w, "Email:          %s\n", p.Email)
	fmt.Fprintf(w, "Address:        %s\n", p.Address)
	if !stored {
		fmt.Fprintln(w, "(defaults; run \"rxpad doctor set\" to save your own)")
	}
}
