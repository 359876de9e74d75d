package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"

	"github.com/jackc/pgcopy"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newDecodeCmd(root *rootOptions) *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode COPY BINARY into JSON rows",
		Long: `Read a COPY BINARY stream from stdin and write each row to stdout as a
JSON array of canonical text values, with null for NULL.

Example:
  pgcopy decode --schema id:int4,name:text,born:date < people.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := root.load(cmd)
			if err != nil {
				return err
			}
			schema, err := config.schema()
			if err != nil {
				return err
			}

			copyConfig, err := pgcopy.NewCopyFromConfig(config.Copy, schema)
			if err != nil {
				return err
			}
			if err := binaryOnly(copyConfig.Format); err != nil {
				return err
			}

			opts, err := codecOptions(config, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			d, err := pgcopy.NewCopyFromBinary(cmd.InOrStdin(), schema, opts...)
			if err != nil {
				return err
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			enc := json.NewEncoder(out)
			enc.SetEscapeHTML(false)
			texts := make([]*string, len(schema))
			var buf bytes.Buffer
			for d.Next() {
				values, err := d.Values()
				if err != nil {
					return errors.Wrapf(err, "row %d", d.Rows())
				}

				for i, v := range values {
					if v == nil {
						texts[i] = nil
						continue
					}
					buf.Reset()
					if _, err := schema[i].Type.FormatText(&buf, v); err != nil {
						return errors.Wrapf(err, "row %d: column %q", d.Rows(), schema[i].Name)
					}
					s := buf.String()
					texts[i] = &s
				}

				if err := enc.Encode(texts); err != nil {
					return err
				}
			}
			if err := d.Err(); err != nil {
				return err
			}
			return out.Flush()
		},
	}

	return decodeCmd
}
