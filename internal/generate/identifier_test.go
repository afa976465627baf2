package generate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentifier(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "about", "About"},
		{"hyphenated", "getting-started", "GettingStarted"},
		{"underscored", "api_reference", "ApiReference"},
		{"spaces", "release notes", "ReleaseNotes"},
		{"accents", "résumé", "Resume"},
		{"leading digit", "01-intro", "Page01Intro"},
		{"empty", "", "Page"},
		{"symbols only", "++--", "Page"},
		{"preserves caps", "FAQ", "FAQ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Identifier(tc.in))
		})
	}
}
