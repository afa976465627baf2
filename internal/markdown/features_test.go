package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultFeatures_EverythingOn(t *testing.T) {
	f := DefaultFeatures()
	require.True(t, f.Autolink)
	require.True(t, f.FrontMatter)
	require.True(t, f.InlineCall)
	require.True(t, f.Tables)
	require.True(t, f.TaskList)
	require.Equal(t, '{', f.InlineCallOpen)
	require.Equal(t, '}', f.InlineCallClose)
}

func TestValidate_IdenticalDelimitersRejected(t *testing.T) {
	f := DefaultFeatures()
	f.InlineCallOpen = '|'
	f.InlineCallClose = '|'
	err := f.Validate()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrIdenticalDelimiters)
}

func TestValidate_IdenticalDelimitersAllowedWhenFeatureOff(t *testing.T) {
	f := DefaultFeatures()
	f.InlineCall = false
	f.InlineCallOpen = '|'
	f.InlineCallClose = '|'
	require.NoError(t, f.Validate())
}

func TestValidate_ZeroDelimitersUseDefaults(t *testing.T) {
	f := Features{InlineCall: true}
	require.NoError(t, f.Validate())
}

func TestNewParser_RejectsInvalidFeatures(t *testing.T) {
	f := DefaultFeatures()
	f.InlineCallOpen = '%'
	f.InlineCallClose = '%'
	_, err := NewParser(f)
	require.Error(t, err)
}
