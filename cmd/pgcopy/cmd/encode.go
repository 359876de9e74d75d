package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/jackc/pgcopy"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newEncodeCmd(root *rootOptions) *cobra.Command {
	var framed bool

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode JSON rows as COPY BINARY",
		Long: `Read one JSON array per line from stdin. Each element is the text of a
column value or null. Write the rows to stdout as a COPY BINARY stream.

Example:
  echo '["1", "alice", null]' | pgcopy encode --schema id:int4,name:text,born:date > people.bin`,
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

			src := newJSONRowSource(cmd.InOrStdin(), schema)
			if !framed {
				_, err = pgcopy.WriteBinary(cmd.OutOrStdout(), schema, src, opts...)
				return err
			}

			w := pgcopy.NewCopyDataWriter(cmd.OutOrStdout())
			if _, err := pgcopy.WriteBinary(w, schema, src, opts...); err != nil {
				return err
			}
			return w.Done()
		},
	}

	encodeCmd.Flags().BoolVar(&framed, "framed", false, "wrap output in CopyData messages followed by CopyDone")
	return encodeCmd
}

// jsonRowSource reads rows of text values, one JSON array per line.
type jsonRowSource struct {
	scanner *bufio.Scanner
	schema  pgcopy.Schema
	line    int
	values  []any
	err     error
}

func newJSONRowSource(r io.Reader, schema pgcopy.Schema) *jsonRowSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return &jsonRowSource{scanner: scanner, schema: schema}
}

func (s *jsonRowSource) Next() bool {
	for s.err == nil && s.scanner.Scan() {
		s.line++
		line := s.scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var texts []*string
		if err := json.Unmarshal(line, &texts); err != nil {
			s.err = errors.Wrapf(err, "line %d", s.line)
			return false
		}
		if s.values, s.err = s.schema.ParseRow(texts); s.err != nil {
			s.err = errors.Wrapf(s.err, "line %d", s.line)
			return false
		}
		return true
	}
	if s.err == nil {
		s.err = s.scanner.Err()
	}
	return false
}

func (s *jsonRowSource) Values() ([]any, error) {
	return s.values, nil
}

func (s *jsonRowSource) Err() error {
	return s.err
}
