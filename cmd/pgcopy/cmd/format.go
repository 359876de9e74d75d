package cmd

import (
	"bytes"

	"github.com/jackc/pgcopy/pgtext"
	"github.com/jackc/pgcopy/pgtype"
	"github.com/spf13/cobra"
)

func newFormatCmd() *cobra.Command {
	var (
		typeName string
		pretty   bool
	)

	formatCmd := &cobra.Command{
		Use:   "format --type <type> <literal>",
		Short: "Print the canonical text of a literal",
		Long: `Parse a literal with the text input rules of its type and print the
canonical text PostgreSQL would output for it.

Example:
  pgcopy format --type interval '1.5 days'
  pgcopy format --type 'int4[]' '{1, NULL ,3}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := pgtype.ParseType(typeName)
			if err != nil {
				return err
			}

			v, err := t.ParseText(args[0])
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if j, ok := v.(pgtext.JSON); ok && pretty {
				pgtext.FormatJSONPretty(&buf, j)
			} else if _, err := t.FormatText(&buf, v); err != nil {
				return err
			}
			buf.WriteByte('\n')

			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}

	formatCmd.Flags().StringVarP(&typeName, "type", "t", "text", "SQL type of the literal")
	formatCmd.Flags().BoolVar(&pretty, "pretty", false, "indent jsonb output")
	return formatCmd
}
