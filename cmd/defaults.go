package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tcsim/tcsim/sim"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeDefaults(os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// writeDefaults emits a document LoadConfig accepts unchanged.
func writeDefaults(out io.Writer) error {
	data, err := sim.DefaultConfig().ToYAML()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, string(data))
	return err
}
