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

import (
	"github.com/samber/lo"
)

// ColumnProfile is a per-column summary recomputed on demand.
type ColumnProfile struct {
	Name         string
	Kind         Kind
	MissingCount int
	UniqueCount  int
}

// Profile summarizes every column of the table in table order.
func Profile(table *Table) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, table.NumCol())
	for _, column := range table.Columns {
		profile := ColumnProfile{
			Name:         column.Name,
			Kind:         column.Kind,
			MissingCount: column.MissingCount(),
		}
		if column.Kind == Numeric {
			profile.UniqueCount = len(lo.Uniq(column.NonMissing()))
		} else {
			profile.UniqueCount = len(lo.Uniq(column.NonMissingLabels()))
		}
		profiles = append(profiles, profile)
	}
	return profiles
}
