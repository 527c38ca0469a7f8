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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams(t *testing.T) {
	params := Params{
		NEpochs:     100,
		Lr:          0.5,
		RandomState: int64(42),
	}
	assert.Equal(t, 100, params.GetInt(NEpochs, 10))
	assert.Equal(t, 10, params.GetInt(Tol, 10))
	assert.Equal(t, float32(0.5), params.GetFloat32(Lr, 0.1))
	assert.Equal(t, int64(42), params.GetInt64(RandomState, 0))
	// type mismatch falls back to the default
	assert.Equal(t, 10, params.GetInt(Lr, 10))
}

func TestParams_Overwrite(t *testing.T) {
	params := Params{NEpochs: 100, Lr: 0.5}
	merged := params.Overwrite(Params{Lr: 0.1, Reg: 0.01})
	assert.Equal(t, float32(0.1), merged.GetFloat32(Lr, 0))
	assert.Equal(t, float32(0.01), merged.GetFloat32(Reg, 0))
	assert.Equal(t, 100, merged.GetInt(NEpochs, 0))
	// the receiver is unchanged
	assert.Equal(t, float32(0.5), params.GetFloat32(Lr, 0))
}

func TestParams_Copy(t *testing.T) {
	params := Params{NEpochs: 100}
	clone := params.Copy()
	clone[NEpochs] = 200
	assert.Equal(t, 100, params.GetInt(NEpochs, 0))
}
