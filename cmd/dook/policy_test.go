package main

import (
	"testing"

	"github.com/kraklabs/dook/internal/downloadpolicy"
	"github.com/kraklabs/dook/internal/outputs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnablement(t *testing.T) {
	for _, c := range []struct {
		raw  string
		want enablement
	}{
		{"", enableAuto},
		{"auto", enableAuto},
		{"never", enableNever},
		{"always", enableAlways},
	} {
		got, err := parseEnablement(c.raw)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}

	_, err := parseEnablement("sometimes")
	assert.Error(t, err)
}

func TestParseWrapMode(t *testing.T) {
	for _, c := range []struct {
		raw           string
		chopLongLines bool
		want          outputs.WrapMode
	}{
		{"", false, outputs.WrapAuto},
		{"auto", false, outputs.WrapAuto},
		{"never", false, outputs.WrapNever},
		{"character", false, outputs.WrapCharacter},
		{"", true, outputs.WrapNever}, // -S implies --wrap=never when --wrap is unset
	} {
		got, err := parseWrapMode(c.raw, c.chopLongLines)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}

	_, err := parseWrapMode("sideways", false)
	assert.Error(t, err)
}

func TestResolveColor(t *testing.T) {
	assert.True(t, resolveColor(enableAlways, false))
	assert.False(t, resolveColor(enableNever, true))
	assert.True(t, resolveColor(enableAuto, true))
	assert.False(t, resolveColor(enableAuto, false))
}

func TestResolveDownloadPolicy(t *testing.T) {
	// offline wins over everything
	assert.Equal(t, downloadpolicy.No, resolveDownloadPolicy(true, "yes", downloadpolicy.Yes, true))

	// explicit --download overrides the persisted policy
	assert.Equal(t, downloadpolicy.Yes, resolveDownloadPolicy(false, "yes", downloadpolicy.No, true))

	// persisted policy used when nothing else is specified
	assert.Equal(t, downloadpolicy.Yes, resolveDownloadPolicy(false, "", downloadpolicy.Yes, true))

	// Ask downgrades to No when stdout isn't a terminal
	assert.Equal(t, downloadpolicy.No, resolveDownloadPolicy(false, "", downloadpolicy.Ask, false))
	assert.Equal(t, downloadpolicy.Ask, resolveDownloadPolicy(false, "", downloadpolicy.Ask, true))
}

func TestResolvePaging(t *testing.T) {
	assert.True(t, resolvePaging(enableAlways, 0, false, downloadpolicy.No))
	assert.False(t, resolvePaging(enableNever, 0, true, downloadpolicy.No))

	// auto pages only on a terminal with plain < 2
	assert.True(t, resolvePaging(enableAuto, 0, true, downloadpolicy.No))
	assert.False(t, resolvePaging(enableAuto, 2, true, downloadpolicy.No))
	assert.False(t, resolvePaging(enableAuto, 0, false, downloadpolicy.No))

	// an Ask download policy always suppresses paging, even when requested
	assert.False(t, resolvePaging(enableAlways, 0, true, downloadpolicy.Ask))
}
