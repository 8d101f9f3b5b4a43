package cli

import (
	"fmt"

	"github.com/corray333/swiftserve/internal/service/timing"
	"github.com/spf13/cobra"
)

func newEvaluateCmd() *cobra.Command {
	var prep, eta int

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Check whether an arrival time fits a restaurant's prep time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eval, err := timing.EvaluateBooking(prep, eta)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Meal ready in:  %d min\n", eval.MealReadyTime)
			fmt.Fprintf(out, "Verdict:        %s\n", eval.Verdict)
			fmt.Fprintf(out, "Can book:       %t\n", eval.CanBook)
			fmt.Fprintf(out, "%s\n", eval.Message)

			return nil
		},
	}
	cmd.Flags().IntVar(&prep, "prep", 0, "restaurant prep time in minutes")
	cmd.Flags().IntVar(&eta, "eta", 0, "minutes until you arrive")
	_ = cmd.MarkFlagRequired("prep")
	_ = cmd.MarkFlagRequired("eta")

	return cmd
}

func newClassifyCmd() *cobra.Command {
	var (
		distance float64
		prep     int
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a restaurant distance for just-in-time ordering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			class := timing.ClassifyDistance(distance, prep)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ETA:       %.1f min\n", class.ETA)
			fmt.Fprintf(out, "Suitable:  %t\n", class.Suitable)
			fmt.Fprintf(out, "%s\n", class.Label)

			return nil
		},
	}
	cmd.Flags().Float64Var(&distance, "distance", 0, "distance to the restaurant in km")
	cmd.Flags().IntVar(&prep, "prep", 0, "restaurant prep time in minutes")
	_ = cmd.MarkFlagRequired("distance")
	_ = cmd.MarkFlagRequired("prep")

	return cmd
}
