package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rxpad/rxpad/internal/app"
	"github.com/rxpad/rxpad/internal/domain/patient"
)

func patientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Register, find and manage patients",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := map[string]string{}
			for _, f := range patient.RegistrationFields {
				raw[f.Name], _ = cmd.Flags().GetString(f.Name)
			}
			p, err := patient.FromForm(raw)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Patients.Register(ctx, p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered patient %d: %s\n", p.RegNo, p.Name)
				return nil
			})
		},
	}
	patientFlags(addCmd)
	cmd.AddCommand(addCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List patients, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				list, total, err := a.Patients.List(ctx, limit, offset)
				if err != nil {
					return err
				}
				printPatients(cmd.OutOrStdout(), list, total)
				return nil
			})
		},
	}
	listCmd.Flags().Int("limit", 50, "Maximum number of patients")
	listCmd.Flags().Int("offset", 0, "Number of patients to skip")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Find patients by name, phone or registration number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				list, total, err := a.Patients.Search(ctx, args[0], 0, 0)
				if err != nil {
					return err
				}
				printPatients(cmd.OutOrStdout(), list, total)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <reg_no>",
		Short: "Print one patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			regNo, err := parseID(args[0], "registration number")
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				p, err := a.Patients.Get(ctx, regNo)
				if err != nil {
					return err
				}
				printPatient(cmd.OutOrStdout(), p)
				return nil
			})
		},
	})

	updateCmd := &cobra.Command{
		Use:   "update <reg_no>",
		Short: "Change a patient; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			regNo, err := parseID(args[0], "registration number")
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				current, err := a.Patients.Get(ctx, regNo)
				if err != nil {
					return err
				}
				raw := patientValues(current)
				for _, f := range patient.RegistrationFields {
					if cmd.Flags().Changed(f.Name) {
						raw[f.Name], _ = cmd.Flags().GetString(f.Name)
					}
				}
				p, err := patient.FromForm(raw)
				if err != nil {
					return err
				}
				p.RegNo = regNo
				if err := a.Patients.Update(ctx, p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated patient %d\n", regNo)
				return nil
			})
		},
	}
	patientFlags(updateCmd)
	cmd.AddCommand(updateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <reg_no>",
		Short: "Delete a patient with their prescriptions and images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			regNo, err := parseID(args[0], "registration number")
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Patients.Delete(ctx, regNo); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted patient %d\n", regNo)
				return nil
			})
		},
	})
	return cmd
}

func patientFlags(cmd *cobra.Command) {
	for _, f := range patient.RegistrationFields {
		cmd.Flags().String(f.Name, "", f.Label)
	}
}

func patientValues(p *patient.Patient) map[string]string {
	return map[string]string{
		"name":    p.Name,
		"age":     strconv.Itoa(p.Age),
		"gender":  p.Gender,
		"weight":  strconv.FormatFloat(p.Weight, 'f', -1, 64),
		"phone":   p.Phone,
		"address": p.Address,
	}
}

func printPatients(w io.Writer, list []*patient.Patient, total int) {
	fmt.Fprintf(w, "%-8s %-30s %-4s %-7s %-15s\n", "REG NO", "NAME", "AGE", "GENDER", "PHONE")
	for _, p := range list {
		fmt.Fprintf(w, "%-8d %-30s %-4d %-7s %-15s\n", p.RegNo, p.Name, p.Age, p.Gender, p.Phone)
	}
	fmt.Fprintf(w, "%d of %d patient(s)\n", len(list), total)
}

func printPatient(w io.Writer, p *patient.Patient) {
	fmt.Fprintf(w, "Reg No:   %d\n", p.RegNo)
	fmt.Fprintf(w, "Name:     %s\n", p.Name)
	fmt.Fprintf(w, "Age:      %d\n", p.Age)
	fmt.Fprintf(w, "Gender:   %s\n", p.Gender)
	fmt.Fprintf(w, "Weight:   %s kg\n", strconv.FormatFloat(p.Weight, 'f', -1, 64))
	fmt.Fprintf(w, "Phone:    %s\n", p.Phone)
	fmt.Fprintf(w, "Address:  %s\n", p.Address)
}
