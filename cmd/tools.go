package cmd

import (
	"github.com/nathanhack/squareparity/cmd/internal/tools"
	"github.com/nathanhack/squareparity/cmd/internal/tools/awgn"
	"github.com/nathanhack/squareparity/cmd/internal/tools/bsc"
	"github.com/nathanhack/squareparity/cmd/internal/tools/chart"
	"github.com/nathanhack/squareparity/cmd/internal/tools/csv"

	"github.com/spf13/cobra"
)

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:     "tools",
	Aliases: []string{"t"},
	Short:   "Tools for square parity encoders",
	Long:    `Tools for square parity encoders`,
}

// toolsChansimCmd represents the chansim command
var toolsChansimCmd = &cobra.Command{
	Use:     "chansim",
	Aliases: []string{"cs", "c"},
	Short:   "Channel simulators",
	Long:    `Channel simulators measuring how often corrupted blocks are detected`,
}

// toolsBscCmd represents the bsc command
var toolsBscCmd = &cobra.Command{
	Use:   "bsc SQUAREPARITY_JSON RESULT_JSON",
	Short: "A binary symmetric channel simulator",
	Long: `A binary symmetric channel simulator. Each bit is flipped with the crossover probability,
or with --fixed exactly round(probability*length) bits are flipped per block.`,
	Run: bsc.BscRun,
}

// toolsAwgnCmd represents the awgn command
var toolsAwgnCmd = &cobra.Command{
	Use:   "awgn SQUAREPARITY_JSON RESULT_JSON",
	Short: "A BPSK additive white gaussian noise channel simulator",
	Long:  `A BPSK additive white gaussian noise channel simulator using hard decisions`,
	Run:   awgn.AwgnRun,
}

// toolsResultsCmd represents the results command
var toolsResultsCmd = &cobra.Command{
	Use:     "results",
	Aliases: []string{"r"},
	Short:   "A tool to organize results for graphing and comparison",
	Long:    `A tool to organize results for graphing and comparison`,
}

// toolsCSVCmd represents the csv command
var toolsCSVCmd = &cobra.Command{
	Use:     "csv RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"c"},
	Short:   "Export to a CSV file",
	Long:    `Export to a CSV file`,
	Run:     csv.CSVRun,
}

// toolsChartCmd represents the chart command
var toolsChartCmd = &cobra.Command{
	Use:     "chart RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"ch"},
	Short:   "Export to an HTML bar chart",
	Long:    `Export to an HTML bar chart`,
	Run:     chart.ChartRun,
}

const metricUsage = "the metric to output: corrupted, detected, undetected or falsealarm"

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsChansimCmd)
	toolsCmd.AddCommand(toolsResultsCmd)

	toolsChansimCmd.AddCommand(toolsBscCmd)
	toolsBscCmd.Flags().UintVarP(&bsc.Trials, "trials", "t", 1_000_000, "the number of trials per step")
	toolsBscCmd.Flags().Float64SliceVarP(&bsc.ErrorProbability, "probability", "p", []float64{0.001, 0.005, 0.01, 0.05, 0.10, 0.20, 0.30, 0.40, 0.50}, "probability of crossover errors to test [0, 1]")
	toolsBscCmd.Flags().UintVar(&bsc.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	toolsBscCmd.Flags().Int64Var(&bsc.Seed, "seed", 1, "the seed of the random source")
	toolsBscCmd.Flags().BoolVarP(&bsc.Fixed, "fixed", "f", false, "flip a fixed number of bits per block")
	toolsBscCmd.Flags().StringVarP(&bsc.ConfigFile, "config", "c", "", "a YAML file with simulation settings (flags take precedence)")

	toolsChansimCmd.AddCommand(toolsAwgnCmd)
	toolsAwgnCmd.Flags().UintVarP(&awgn.Trials, "trials", "t", 1_000_000, "the number of trials per step")
	toolsAwgnCmd.Flags().Float64SliceVarP(&awgn.EbN0, "ebn0", "e", []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}, "E_b/N_0 values to test")
	toolsAwgnCmd.Flags().BoolVar(&awgn.Decibels, "db", true, "E_b/N_0 values are in dB instead of a linear ratio")
	toolsAwgnCmd.Flags().UintVar(&awgn.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	toolsAwgnCmd.Flags().Int64Var(&awgn.Seed, "seed", 1, "the seed of the random source")
	toolsAwgnCmd.Flags().StringVarP(&awgn.ConfigFile, "config", "c", "", "a YAML file with simulation settings (flags take precedence)")

	toolsResultsCmd.AddCommand(toolsCSVCmd)
	toolsCSVCmd.Flags().StringVarP(&csv.OutputFile, "output", "o", "results.csv", "filename of the combined csv")
	toolsCSVCmd.Flags().StringVarP(&csv.Metric, "metric", "m", tools.MetricUndetected, metricUsage)

	toolsResultsCmd.AddCommand(toolsChartCmd)
	toolsChartCmd.Flags().StringVarP(&chart.OutputFile, "output", "o", "results.html", "filename of the chart")
	toolsChartCmd.Flags().StringVarP(&chart.Metric, "metric", "m", tools.MetricUndetected, metricUsage)
}
