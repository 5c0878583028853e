package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/strcalc/internal/core"
	"github.com/spf13/cobra"
)

var escapeReplacer = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r", `\t`, "\t")

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [flags] [input]",
		Short: "Sum the numbers in input (reads stdin when input is omitted or -)",
		Example: `  strcalc add "1,2,3"
  strcalc add --escapes '//;\n1;2'
  printf '1\n2,3' | strcalc add`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveBoolFlagFromEnv(cmd, "escapes", envEscapes); err != nil {
				return err
			}
			escapes, _ := cmd.Flags().GetBool("escapes")

			input, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if escapes {
				input = escapeReplacer.Replace(input)
			}
			slog.Debug("calculating", "input_bytes", len(input))

			res := core.Calculate(input)
			if !res.OK() {
				slog.Debug("calculation rejected", "kind", res.Kind().String(), "detail", core.FormatUserError(res.Err))
				fmt.Fprintln(cmd.ErrOrStderr(), res.String())
				return errReported
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.String())
			return nil
		},
	}

	cmd.Flags().BoolP("escapes", "e", false, `Interpret \n, \r, \t and \\ in the input`)
	return cmd
}

// readInput returns the argument, or stdin when there is none or it is "-".
// One trailing line break is dropped from stdin so piped input ending in a
// newline does not produce an empty token.
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	s := string(b)
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2], nil
	}
	return strings.TrimSuffix(s, "\n"), nil
}
