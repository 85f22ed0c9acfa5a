package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rxpad/rxpad/internal/app"
	"github.com/rxpad/rxpad/internal/document"
	"github.com/rxpad/rxpad/internal/domain/prescription"
)

func prescriptionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prescription",
		Short: "Write, review and print prescriptions",
	}

	var drugs []drugArg
	addCmd := &cobra.Command{
		Use:   "add <reg_no>",
		Short: "Write and save a prescription for a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			regNo, err := parseID(args[0], "registration number")
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				d, err := a.NewDraft(ctx, regNo)
				if err != nil {
					return err
				}
				if err := fillDraft(cmd, a, d, drugs); err != nil {
					return err
				}
				rx, err := a.SavePrescription(ctx, d)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved prescription %d for patient %d\n", rx.ID, regNo)

				if out, _ := cmd.Flags().GetString("out"); out != "" {
					b, err := a.DraftBundle(d)
					if err != nil {
						return err
					}
					if err := a.Documents.WriteFile(b, time.Now(), out); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
				}
				return nil
			})
		},
	}
	f := addCmd.Flags()
	f.String("complaints", "", "Chief complaints")
	f.String("diagnosis", "", "Diagnosis")
	f.String("exam", "", "Systemic examination")
	f.String("follow-up", "", "Follow-up")
	f.String("bp", "", "Blood pressure, e.g. 120/80")
	f.String("pulse", "", "Pulse per minute")
	f.String("temp", "", "Temperature in °F")
	f.String("rr", "", "Respiratory rate per minute")
	f.String("spo2", "", "Oxygen saturation in %")
	f.String("weight", "", "Weight in kg")
	f.StringArray("investigation", nil, "Investigation (repeatable)")
	f.StringArray("advice", nil, "Advice line (repeatable)")
	f.Var(drugFlag{args: &drugs}, "drug", `Drug line "formulation|dosage|duration|instructions" (repeatable)`)
	f.Var(drugFlag{args: &drugs, custom: true}, "custom-drug", `Drug by free-text name "name|dosage|duration|instructions"; added to the catalog (repeatable)`)
	f.String("out", "", "Also write the document to this path")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "history <reg_no>",
		Short: "Print a patient's prescriptions, newest first",
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
				text, err := a.Prescriptions.History(ctx, p)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			})
		},
	})

	renderCmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Write a saved prescription as a PDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "prescription id")
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				b, err := a.StoredBundle(ctx, id)
				if err != nil {
					return err
				}
				at := time.Now()
				out, _ := cmd.Flags().GetString("out")
				if out == "" {
					out = document.DefaultFileName(b.Patient.RegNo, at)
				}
				if err := a.Documents.WriteFile(b, at, out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
				return nil
			})
		},
	}
	renderCmd.Flags().String("out", "", "Output path (default prescription_<reg_no>_<timestamp>.pdf)")
	cmd.AddCommand(renderCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "print <id>",
		Short: "Send a saved prescription to the printer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "prescription id")
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				b, err := a.StoredBundle(ctx, id)
				if err != nil {
					return err
				}
				if _, err := a.Printer.Print(ctx, b, time.Now()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Sent to printer")
				a.Printer.Wait()
				return nil
			})
		},
	})
	return cmd
}

// fillDraft applies the add command's flags to d in the order an operator
// would enter them. Drug lines keep their command-line order across --drug
// and --custom-drug.
func fillDraft(cmd *cobra.Command, a *app.App, d *prescription.Draft, drugs []drugArg) error {
	f := cmd.Flags()
	str := func(name string) string {
		v, _ := f.GetString(name)
		return v
	}
	arr := func(name string) []string {
		v, _ := f.GetStringArray(name)
		return v
	}

	d.ChiefComplaints = str("complaints")
	d.Diagnosis = str("diagnosis")
	d.SystemicExam = str("exam")
	d.FollowUp = str("follow-up")
	d.SetVitals(prescription.Vitals{
		BP:              str("bp"),
		Pulse:           str("pulse"),
		Temperature:     str("temp"),
		RespiratoryRate: str("rr"),
		SpO2:            str("spo2"),
		Weight:          str("weight"),
	})
	for _, inv := range arr("investigation") {
		if err := a.AddCustomInvestigation(d, inv); err != nil {
			return err
		}
	}
	for _, drug := range drugs {
		if !drug.custom {
			if err := d.AddDrug(drug.line); err != nil {
				return err
			}
			continue
		}
		if _, err := a.AddCustomDrug(d, drug.line.Formulation, drug.line); err != nil {
			return err
		}
	}
	for _, adv := range arr("advice") {
		if err := a.AddCustomAdvice(d, adv); err != nil {
			return err
		}
	}
	return nil
}

type drugArg struct {
	line   prescription.DrugLine
	custom bool
}

// drugFlag collects --drug and --custom-drug values into one list so the
// two flags interleave in the order they were given.
type drugFlag struct {
	args   *[]drugArg
	custom bool
}

func (f drugFlag) Set(s string) error {
	*f.args = append(*f.args, drugArg{line: parseDrugLine(s), custom: f.custom})
	return nil
}

func (f drugFlag) String() string { return "" }

func (f drugFlag) Type() string { return "stringArray" }

// parseDrugLine reads "formulation|dosage|duration|instructions". Missing
// parts take the usual defaults.
func parseDrugLine(s string) prescription.DrugLine {
	parts := strings.SplitN(s, "|", 4)
	for len(parts) < 4 {
		parts = append(parts, "")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	line := prescription.DrugLine{
		Formulation:  parts[0],
		Dosage:       parts[1],
		Duration:     parts[2],
		Instructions: parts[3],
	}
	if line.Dosage == "" {
		line.Dosage = prescription.DefaultDosage
	}
	if line.Duration == "" {
		line.Duration = prescription.DefaultDuration
	}
	if line.Instructions == "" {
		line.Instructions = prescription.DefaultInstruction
	}
	return line
}
