package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathanhack/squareparity/cmd/internal/tools"
	"github.com/spf13/cobra"
)

var OutputFile string
var Metric string

var CSVRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RESULTS_JSON")
		return
	}

	stats, parameters, err := tools.LoadAllResults(args)
	if err != nil {
		fmt.Println(err)
		return
	}

	f, err := os.Create(OutputFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	err = Write(f, args, stats, parameters, Metric)
	if err != nil {
		fmt.Println(err)
	}
}

// Write outputs one row per results file and one column per channel parameter
func Write(f io.Writer, names []string, stats []*tools.SimulationStats, parameters []float64, metric string) error {
	w := csv.NewWriter(f)
	defer w.Flush()

	//first write headers
	header := []string{"Results File"}
	for _, p := range parameters {
		header = append(header, fmt.Sprintf("%v", p))
	}

	err := w.Write(header)
	if err != nil {
		return err
	}

	for i, s := range stats {
		record := make([]string, len(header))
		record[0] = strings.TrimSuffix(names[i], filepath.Ext(names[i]))

		for j, p := range parameters {
			v, has := s.Stats[p]
			if !has {
				continue
			}
			value, err := tools.MetricValue(v, metric)
			if err != nil {
				return err
			}
			record[j+1] = fmt.Sprintf("%v", value)
		}

		err = w.Write(record)
		if err != nil {
			return err
		}
	}
	return nil
}
