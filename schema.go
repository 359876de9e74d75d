package pgcopy

import (
	"fmt"
	"strings"

	"github.com/jackc/pgcopy/pgtype"
	"github.com/pkg/errors"
)

// Column is one column of a relation.
type Column struct {
	Name string
	Type pgtype.Type
}

// Schema is the ordered list of columns rows are encoded against.
type Schema []Column

// ParseSchema parses a comma separated list of column definitions. Each
// definition is either a type name, in which case the column is named after
// its position, or name:type.
//
//	int4,text[]
//	id:int8,tags:text[],created:timestamp with time zone
func ParseSchema(s string) (Schema, error) {
	if strings.TrimSpace(s) == "" {
		return Schema{}, nil
	}

	defs := strings.Split(s, ",")
	schema := make(Schema, 0, len(defs))
	for i, def := range defs {
		name, typeName, found := strings.Cut(def, ":")
		if !found {
			name, typeName = fmt.Sprintf("column%d", i+1), def
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.Errorf("column %d: empty name", i+1)
		}

		t, err := pgtype.ParseType(typeName)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", i+1)
		}
		schema = append(schema, Column{Name: name, Type: t})
	}
	return schema, nil
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the column with the given name, or -1.
func (s Schema) Index(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (s Schema) String() string {
	defs := make([]string, len(s))
	for i, c := range s {
		defs[i] = c.Name + ":" + c.Type.String()
	}
	return strings.Join(defs, ",")
}

// ParseRow parses the text representation of each value of a row. A nil
// entry in texts is NULL.
func (s Schema) ParseRow(texts []*string) ([]any, error) {
	if len(texts) != len(s) {
		return nil, &ArityError{Expected: len(s), Got: len(texts)}
	}

	row := make([]any, len(s))
	for i, text := range texts {
		if text == nil {
			continue
		}
		v, err := s[i].Type.ParseText(*text)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", s[i].Name)
		}
		row[i] = v
	}
	return row, nil
}
