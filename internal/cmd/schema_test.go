package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSchemaCommand(t *testing.T) {
	setupConfigDirs(t)

	out, err := run(t, "schema")
	require.NoError(t, err)
	require.True(t, gjson.Valid(out))

	schema := gjson.Parse(out)
	def := schema.Get(`$defs.ListOptions.properties.item_height`)
	require.True(t, def.Exists(), out)
	assert.Equal(t, "integer", def.Get("type").String())
	assert.Equal(t, int64(1), def.Get("default").Int())
	assert.True(t, schema.Get(`$defs.SourceOptions.properties.highlight`).Exists())
	assert.False(t, schema.Get(`$defs.Config.properties.workingDir`).Exists())
}
