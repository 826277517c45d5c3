package main

import (
	"os"

	"github.com/spf13/cobra"
)

// options shared by every command.
type options struct {
	projectPath string
	weatherCSV  string
	asJSON      bool
}

func main() {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:          "pvyield",
		Short:        "PV yield aggregation and orientation optimization",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.projectPath, "project", "", "project file (.yaml or .json)")
	rootCmd.PersistentFlags().StringVar(&opts.weatherCSV, "weather-csv", "", "monthly weather profile CSV overriding the project's")
	rootCmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print results as JSON")

	rootCmd.AddCommand(dayCmd(opts))
	rootCmd.AddCommand(yearCmd(opts))
	rootCmd.AddCommand(extremesCmd(opts))
	rootCmd.AddCommand(surfaceCmd(opts))
	rootCmd.AddCommand(optimizeCmd(opts))
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func dayCmd(opts *options) *cobra.Command {
	var date string
	var freq int

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Power and cumulative energy curves of one day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDay(cmd.OutOrStdout(), opts, date, freq)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to simulate (YYYY-MM-DD, default project date or today)")
	cmd.Flags().IntVar(&freq, "freq", 30, "sampling step in minutes")
	return cmd
}

func yearCmd(opts *options) *cobra.Command {
	var year, freq int

	cmd := &cobra.Command{
		Use:   "year",
		Short: "Monthly energy table including weather losses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runYear(cmd.OutOrStdout(), opts, year, freq)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "calendar year (default project date year or current year)")
	cmd.Flags().IntVar(&freq, "freq", 60, "sampling step in minutes")
	return cmd
}

func extremesCmd(opts *options) *cobra.Command {
	var year, freq int

	cmd := &cobra.Command{
		Use:   "extremes",
		Short: "Days with the lowest and highest peak power and energy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExtremes(cmd.OutOrStdout(), opts, year, freq)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "calendar year (default project date year or current year)")
	cmd.Flags().IntVar(&freq, "freq", 30, "sampling step in minutes")
	return cmd
}

func surfaceCmd(opts *options) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "surface",
		Short: "Relative annual yield for every grid orientation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSurface(cmd.OutOrStdout(), opts, save)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "store the orientation grid in the project file")
	return cmd
}

func optimizeCmd(opts *options) *cobra.Command {
	var fixedAzimuth, fixedTilt float64
	var save bool

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Best tilt for a fixed azimuth, or best azimuth for a fixed tilt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var az, tilt *float64
			if cmd.Flags().Changed("fixed-azimuth") {
				az = &fixedAzimuth
			}
			if cmd.Flags().Changed("fixed-tilt") {
				tilt = &fixedTilt
			}
			return runOptimize(cmd.OutOrStdout(), opts, az, tilt, save)
		},
	}
	cmd.Flags().Float64Var(&fixedAzimuth, "fixed-azimuth", 180, "fixed azimuth in degrees; optimizes tilt")
	cmd.Flags().Float64Var(&fixedTilt, "fixed-tilt", 30, "fixed tilt in degrees; optimizes azimuth")
	cmd.MarkFlagsMutuallyExclusive("fixed-azimuth", "fixed-tilt")
	cmd.Flags().BoolVar(&save, "save", false, "store the orientation grid in the project file")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the websocket server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
