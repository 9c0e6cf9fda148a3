package main

import (
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "export a stored trace to stdout",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv [run_id]",
	Short: "export trace as CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  exportCSV,
}

var exportJSONCmd = &cobra.Command{
	Use:   "json [run_id]",
	Short: "export trace as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  exportJSON,
}

func init() {
	exportCmd.AddCommand(exportCSVCmd, exportJSONCmd)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return tr.WriteCSV(os.Stdout)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return tr.EncodeJSON(os.Stdout)
}
