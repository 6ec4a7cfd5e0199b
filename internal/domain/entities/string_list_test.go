package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		list StringList
		want StringList
	}{
		{name: "values survive", list: StringList{"Red", "Black"}, want: StringList{"Red", "Black"}},
		{name: "single value", list: StringList{"CASUAL"}, want: StringList{"CASUAL"}},
		{name: "empty list stays empty", list: StringList{}, want: StringList{}},
		{name: "nil stores as empty", list: nil, want: StringList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := tt.list.Value()
			require.NoError(t, err)

			var got StringList
			require.NoError(t, got.Scan(value))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringListScanSources(t *testing.T) {
	var fromBytes StringList
	require.NoError(t, fromBytes.Scan([]byte(`["Blue","White"]`)))
	assert.Equal(t, StringList{"Blue", "White"}, fromBytes)

	// Some drivers hand jsonb over as a string.
	var fromString StringList
	require.NoError(t, fromString.Scan(`["Blue","White"]`))
	assert.Equal(t, StringList{"Blue", "White"}, fromString)

	var fromNil StringList
	require.NoError(t, fromNil.Scan(nil))
	assert.Equal(t, StringList{}, fromNil)

	var fromInt StringList
	assert.Error(t, fromInt.Scan(42))
}

func TestStringListContains(t *testing.T) {
	list := StringList{"CASUAL", "FORMAL"}
	assert.True(t, list.Contains("FORMAL"))
	assert.False(t, list.Contains("SPORT"))
	assert.False(t, StringList(nil).Contains("CASUAL"))
}
