package shortcode_test

import (
	"testing"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/icons"
	"github.com/arthur-debert/iconrules/pkg/shortcode"
	"github.com/arthur-debert/iconrules/pkg/testutil"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registry(t *testing.T, names ...string) *icons.Registry {
	t.Helper()
	r := icons.NewRegistry()
	for _, name := range names {
		icon, err := icons.New("", name, testutil.IconSVG)
		require.NoError(t, err)
		require.NoError(t, r.Add(icon))
	}
	return r
}

func TestPattern(t *testing.T) {
	_, err := shortcode.Pattern("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	re, err := shortcode.Pattern("$")
	require.NoError(t, err)
	matches := shortcode.Find(re, "$", "cost $LiStar$ is $5")
	require.Len(t, matches, 1)
	assert.Equal(t, "LiStar", matches[0].Name)
}

func TestFind(t *testing.T) {
	re, err := shortcode.Pattern(":")
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
		want []types.ShortcodeMatch
	}{
		{"none", "plain label", nil},
		{"single", "x :star: y", []types.ShortcodeMatch{{Token: ":star:", Name: "star", Index: 2}}},
		{"two", "a :one: b :two: c", []types.ShortcodeMatch{
			{Token: ":one:", Name: "one", Index: 2},
			{Token: ":two:", Name: "two", Index: 10},
		}},
		{"rune_indices", "é :one:", []types.ShortcodeMatch{{Token: ":one:", Name: "one", Index: 2}}},
		{"rejects_spaces", "a :no way: b", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shortcode.Find(re, ":", tt.text))
		})
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "LiStar", shortcode.Name("::LiStar::", "::"))
	assert.Equal(t, "star", shortcode.Name(":star:", ":"))
}

func TestPlan_TrimOffsets(t *testing.T) {
	re, err := shortcode.Pattern(":")
	require.NoError(t, err)
	text := "a :one: b :two: c"
	matches := shortcode.Find(re, ":", text)

	plan := shortcode.Plan(matches, registry(t, "one", "two"))
	require.Len(t, plan, 2)

	assert.Equal(t, 2, plan[0].Start)
	assert.Equal(t, 7, plan[0].End)
	// :two: sits at 10 in the original text and shifts left by len(":one:")
	assert.Equal(t, 10-len(":one:"), plan[1].Start)
	assert.Equal(t, 10, plan[1].End)

	segments := shortcode.Apply(text, plan)
	require.Len(t, segments, 5)
	assert.Equal(t, "a ", segments[0].Text)
	assert.Equal(t, "one", segments[1].Icon.Name())
	assert.Equal(t, " b ", segments[2].Text)
	assert.Equal(t, "two", segments[3].Icon.Name())
	assert.Equal(t, " c", segments[4].Text)
}

func TestPlan_UnknownIconKeepsToken(t *testing.T) {
	re, err := shortcode.Pattern(":")
	require.NoError(t, err)
	text := ":missing: x :two:"
	plan := shortcode.Plan(shortcode.Find(re, ":", text), registry(t, "two"))

	require.Len(t, plan, 1)
	assert.Equal(t, 12, plan[0].Start, "unknown icons add nothing to the offset")

	segments := shortcode.Apply(text, plan)
	require.Len(t, segments, 2)
	assert.Equal(t, ":missing: x ", segments[0].Text)
	assert.True(t, segments[1].IsIcon())
}

func TestApply_NoPlan(t *testing.T) {
	assert.Equal(t, []shortcode.Segment{{Text: "label"}}, shortcode.Apply("label", nil))
}
