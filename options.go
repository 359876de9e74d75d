package pgcopy

import (
	"github.com/pkg/errors"
)

// CopyOptions are the options of a COPY statement as written. Force lists
// name columns of the schema. Pointer fields are nil when the option was not
// given.
type CopyOptions struct {
	Format        string   `yaml:"format"`
	Delimiter     *string  `yaml:"delimiter"`
	Null          *string  `yaml:"null"`
	Header        *bool    `yaml:"header"`
	Quote         *string  `yaml:"quote"`
	Escape        *string  `yaml:"escape"`
	ForceQuote    []string `yaml:"force_quote"`
	ForceQuoteAll bool     `yaml:"force_quote_all"`
	ForceNotNull  []string `yaml:"force_not_null"`
	ForceNull     []string `yaml:"force_null"`
	Encoding      string   `yaml:"encoding"`
}

// NewCopyFromConfig resolves opts for a COPY FROM into schema.
func NewCopyFromConfig(opts CopyOptions, schema Schema) (CopyFromConfig, error) {
	if opts.ForceQuote != nil || opts.ForceQuoteAll {
		return CopyFromConfig{}, errors.New("COPY force quote only available using COPY TO")
	}

	format, text, csv, err := opts.common()
	if err != nil {
		return CopyFromConfig{}, err
	}

	cfg := CopyFromConfig{Format: format, Text: text, Encoding: opts.Encoding}
	cfg.CSV.CSVConfig = csv

	if opts.ForceNotNull != nil {
		if format != FormatCSV {
			return CopyFromConfig{}, errors.New("COPY force not null available only in CSV mode")
		}
		if cfg.CSV.ForceNotNull, err = columnFlags("FORCE_NOT_NULL", opts.ForceNotNull, schema); err != nil {
			return CopyFromConfig{}, err
		}
	}
	if opts.ForceNull != nil {
		if format != FormatCSV {
			return CopyFromConfig{}, errors.New("COPY force null available only in CSV mode")
		}
		if cfg.CSV.ForceNull, err = columnFlags("FORCE_NULL", opts.ForceNull, schema); err != nil {
			return CopyFromConfig{}, err
		}
	}

	if err := cfg.Validate(len(schema)); err != nil {
		return CopyFromConfig{}, err
	}
	return cfg, nil
}

// NewCopyToConfig resolves opts for a COPY TO from schema.
func NewCopyToConfig(opts CopyOptions, schema Schema) (CopyToConfig, error) {
	if opts.ForceNotNull != nil {
		return CopyToConfig{}, errors.New("COPY force not null only available using COPY FROM")
	}
	if opts.ForceNull != nil {
		return CopyToConfig{}, errors.New("COPY force null only available using COPY FROM")
	}

	format, text, csv, err := opts.common()
	if err != nil {
		return CopyToConfig{}, err
	}

	cfg := CopyToConfig{Format: format, Text: text, Encoding: opts.Encoding}
	cfg.CSV.CSVConfig = csv

	if opts.ForceQuote != nil || opts.ForceQuoteAll {
		if format != FormatCSV {
			return CopyToConfig{}, errors.New("COPY force quote available only in CSV mode")
		}
		if opts.ForceQuoteAll {
			cfg.CSV.ForceQuote = make([]bool, len(schema))
			for i := range cfg.CSV.ForceQuote {
				cfg.CSV.ForceQuote[i] = true
			}
		} else if cfg.CSV.ForceQuote, err = columnFlags("FORCE_QUOTE", opts.ForceQuote, schema); err != nil {
			return CopyToConfig{}, err
		}
	}

	if err := cfg.Validate(len(schema)); err != nil {
		return CopyToConfig{}, err
	}
	return cfg, nil
}

// common applies the options shared by both directions.
func (opts CopyOptions) common() (Format, TextConfig, CSVConfig, error) {
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return 0, TextConfig{}, CSVConfig{}, err
	}
	text := DefaultTextConfig()
	csv := DefaultCSVConfig()

	if format == FormatBinary {
		switch {
		case opts.Delimiter != nil:
			return 0, text, csv, errors.New("cannot specify DELIMITER in BINARY mode")
		case opts.Null != nil:
			return 0, text, csv, errors.New("cannot specify NULL in BINARY mode")
		}
	}
	if format != FormatCSV {
		switch {
		case opts.Header != nil && *opts.Header:
			return 0, text, csv, errors.New("COPY HEADER available only in CSV mode")
		case opts.Quote != nil:
			return 0, text, csv, errors.New("COPY quote available only in CSV mode")
		case opts.Escape != nil:
			return 0, text, csv, errors.New("COPY escape available only in CSV mode")
		}
	}

	if opts.Delimiter != nil {
		d, err := singleByte("COPY delimiter", *opts.Delimiter)
		if err != nil {
			return 0, text, csv, err
		}
		text.Delimiter = d
		csv.Delimiter = d
	}
	if opts.Null != nil {
		text.Null = *opts.Null
		csv.Null = *opts.Null
	}
	if opts.Header != nil {
		csv.Header = *opts.Header
	}
	if opts.Quote != nil {
		q, err := singleByte("COPY quote", *opts.Quote)
		if err != nil {
			return 0, text, csv, err
		}
		csv.Quote = q
		csv.Escape = q
	}
	if opts.Escape != nil {
		e, err := singleByte("COPY escape", *opts.Escape)
		if err != nil {
			return 0, text, csv, err
		}
		csv.Escape = e
	}

	return format, text, csv, nil
}

func singleByte(name, s string) (byte, error) {
	if len(s) != 1 {
		return 0, errors.Errorf("%s must be a single one-byte character", name)
	}
	return s[0], nil
}

func columnFlags(option string, names []string, schema Schema) ([]bool, error) {
	flags := make([]bool, len(schema))
	for _, name := range names {
		i := schema.Index(name)
		if i < 0 {
			return nil, errors.Errorf("%s column %q does not exist", option, name)
		}
		flags[i] = true
	}
	return flags, nil
}
