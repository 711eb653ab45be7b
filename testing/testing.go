// SPDX-License-Identifier: ice License 1.0

package testing

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/goccy/go-reflect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func GIVEN(_ string, logic func()) {
	logic()
}

func WHEN(_ string, logic func()) {
	logic()
}

func THEN(logic func()) {
	logic()
}

func IT(_ string, logic func()) {
	logic()
}

func AND(_ string, logic func()) {
	logic()
}

// AssertWireFormat checks that expected marshals to exactly expectedJSON (compacted),
// that an empty OBJ marshals to `{}` and that expectedJSON unmarshals back into expected.
func AssertWireFormat[OBJ any](tb testing.TB, expected *OBJ, expectedJSON string) {
	tb.Helper()
	compacted := new(bytes.Buffer)
	require.NoError(tb, json.Compact(compacted, []byte(expectedJSON)))
	assert.Equal(tb, "{}", MustMarshal(tb, new(OBJ)))
	assert.Equal(tb, compacted.String(), MustMarshal(tb, expected))
	zeroValueIgnoredFields(expected)
	assert.EqualValues(tb, expected, MustUnmarshal[OBJ](tb, expectedJSON))
}

func zeroValueIgnoredFields(val any) {
	vType := reflect.TypeOf(val).Elem()
	vValue := reflect.ValueOf(val).Elem()
	for ix := range vType.NumField() {
		if vType.Field(ix).PkgPath != "" {
			continue
		}
		if jsonTag := vType.Field(ix).Tag.Get("json"); jsonTag == "-" {
			vValue.Field(ix).Set(reflect.Zero(vType.Field(ix).Type))
		}
		if vValue.Field(ix).Kind() == reflect.Struct {
			zeroValueIgnoredFields(vValue.Field(ix).Addr().Interface())
		}
		if vValue.Field(ix).Kind() == reflect.Ptr && !vValue.Field(ix).IsNil() {
			if vValue.Field(ix).Elem().Kind() == reflect.Struct {
				zeroValueIgnoredFields(vValue.Field(ix).Interface())
			}
		}
	}
}

func MustMarshal(tb testing.TB, val any) string {
	tb.Helper()
	valueBytes, err := json.MarshalContext(tb.Context(), val)
	require.NoError(tb, err)

	return string(valueBytes)
}

func MustUnmarshal[T any](tb testing.TB, val string) *T {
	tb.Helper()
	tt := new(T)
	require.NoError(tb, json.UnmarshalContext(tb.Context(), []byte(val), tt))

	return tt
}
