// Copyright 2026 evpop Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

// Kind is the inferred type of a column.
type Kind uint8

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Column is a named, typed sequence of values. For numeric columns the
// values live in Values, for categorical columns in Labels. Missing is
// row-aligned with the value slice for both kinds.
type Column struct {
	Name    string
	Kind    Kind
	Values  []float64
	Labels  []string
	Missing []bool
}

func (c *Column) Len() int {
	return len(c.Missing)
}

func (c *Column) IsMissing(i int) bool {
	return c.Missing[i]
}

// MissingCount returns the number of missing markers in the column.
func (c *Column) MissingCount() int {
	count := 0
	for _, missing := range c.Missing {
		if missing {
			count++
		}
	}
	return count
}

// NonMissing returns the values of a numeric column without missing entries.
func (c *Column) NonMissing() []float64 {
	values := make([]float64, 0, len(c.Values))
	for i, v := range c.Values {
		if !c.Missing[i] {
			values = append(values, v)
		}
	}
	return values
}

// NonMissingLabels returns the labels of a categorical column without
// missing entries.
func (c *Column) NonMissingLabels() []string {
	labels := make([]string, 0, len(c.Labels))
	for i, label := range c.Labels {
		if !c.Missing[i] {
			labels = append(labels, label)
		}
	}
	return labels
}

func (c *Column) clone() *Column {
	clone := &Column{
		Name:    c.Name,
		Kind:    c.Kind,
		Missing: make([]bool, len(c.Missing)),
	}
	copy(clone.Missing, c.Missing)
	// keep nil slices nil so a clone compares equal to the original
	if c.Values != nil {
		clone.Values = make([]float64, len(c.Values))
		copy(clone.Values, c.Values)
	}
	if c.Labels != nil {
		clone.Labels = make([]string, len(c.Labels))
		copy(clone.Labels, c.Labels)
	}
	return clone
}

// Table is an ordered sequence of named columns of equal length.
type Table struct {
	Columns []*Column
}

// NumRow returns the number of rows in the table.
func (t *Table) NumRow() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// NumCol returns the number of columns in the table.
func (t *Table) NumCol() int {
	return len(t.Columns)
}

// Column finds a column by name. Returns nil if the column doesn't exist.
func (t *Table) Column(name string) *Column {
	for _, column := range t.Columns {
		if column.Name == name {
			return column
		}
	}
	return nil
}

// NumericColumns returns the numeric columns in table order.
func (t *Table) NumericColumns() []*Column {
	columns := make([]*Column, 0, len(t.Columns))
	for _, column := range t.Columns {
		if column.Kind == Numeric {
			columns = append(columns, column)
		}
	}
	return columns
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	clone := &Table{Columns: make([]*Column, len(t.Columns))}
	for i, column := range t.Columns {
		clone.Columns[i] = column.clone()
	}
	return clone
}

// KeepRows rewrites every column keeping only the rows whose indices are
// listed, in the given order.
func (t *Table) KeepRows(indices []int) {
	for _, column := range t.Columns {
		missing := make([]bool, 0, len(indices))
		if column.Kind == Numeric {
			values := make([]float64, 0, len(indices))
			for _, i := range indices {
				values = append(values, column.Values[i])
				missing = append(missing, column.Missing[i])
			}
			column.Values = values
		} else {
			labels := make([]string, 0, len(indices))
			for _, i := range indices {
				labels = append(labels, column.Labels[i])
				missing = append(missing, column.Missing[i])
			}
			column.Labels = labels
		}
		column.Missing = missing
	}
}
