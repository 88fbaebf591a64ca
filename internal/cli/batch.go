package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/widget-remote/internal/client"
)

// script is a batch file: actions run in order against one server.
type script struct {
	Steps []step `yaml:"steps"`
}

type step struct {
	Action string  `yaml:"action"`
	ID     *string `yaml:"id"`
	Label  *string `yaml:"label"`
	Type   *string `yaml:"type"`
	Value  *string `yaml:"value"`
	Column *int    `yaml:"column"`
}

func (s step) toAction() client.Action {
	return client.Action{
		Selector: client.Selector{ID: s.ID, Label: s.Label, Type: s.Type},
		Name:     s.Action,
		Value:    s.Value,
		Column:   s.Column,
	}
}

func parseScript(data []byte) (script, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return script{}, fmt.Errorf("parse batch: %w", err)
	}
	for i, st := range sc.Steps {
		if st.Action == "" {
			return script{}, fmt.Errorf("step %d: action is required", i+1)
		}
	}
	return sc, nil
}

func newBatchCommand(o *options) *cobra.Command {
	var (
		keepGoing bool
		delay     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Run the actions listed in a YAML file",
		Long: `batch reads a YAML file (or - for stdin) of the form

  steps:
    - action: enter_text
      id: name
      value: Ada
    - action: press
      label: OK

and performs each step in order. It stops at the first failure unless
--keep-going is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			sc, err := parseScript(data)
			if err != nil {
				return err
			}
			c, err := o.client()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for i, st := range sc.Steps {
				if i > 0 && delay > 0 {
					select {
					case <-time.After(delay):
					case <-cmd.Context().Done():
						return cmd.Context().Err()
					}
				}
				action := st.toAction()
				label := fmt.Sprintf("%d/%d %s %s", i+1, len(sc.Steps), action.Name, selectorLabel(action.Selector))
				if err := perform(cmd, c, action); err != nil {
					failed++
					fmt.Fprintln(out, o.styles.Error.Render("fail")+" "+label+": "+err.Error())
					var netErr *client.NetworkError
					if !keepGoing || errors.As(err, &netErr) {
						return fmt.Errorf("step %d failed: %w", i+1, err)
					}
					continue
				}
				fmt.Fprintln(out, o.styles.Success.Render("ok")+"   "+label)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d steps failed", failed, len(sc.Steps))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "continue after a failed step")
	cmd.Flags().DurationVar(&delay, "delay", 0, "pause between steps")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	return data, nil
}
