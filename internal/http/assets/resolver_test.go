package assets

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetResolver(t *testing.T) {
	fsys := fstest.MapFS{
		"css/app.css": {Data: []byte("body{margin:0}")},
		"js/app.js":   {Data: []byte("console.log(1)")},
	}
	ar, err := NewAssetResolver(fsys, false, nil)
	require.NoError(t, err)

	css := ar.Resolve("css/app.css")
	assert.Regexp(t, `^/static/css/app\.css\?v=[0-9a-f]{10}$`, css)
	assert.Equal(t, css, ar.Resolve("/css/app.css"))
	assert.NotEqual(t, css[len(css)-10:], ar.Resolve("js/app.js")[len("/static/js/app.js?v="):])
	assert.Equal(t, "/static/img/logo.png", ar.Resolve("img/logo.png"))
	assert.Equal(t, "/static/etc/passwd", ar.Resolve("../../etc/passwd"))
}

func TestAssetResolver_DevModeRehashes(t *testing.T) {
	fsys := fstest.MapFS{"css/app.css": {Data: []byte("a")}}
	ar, err := NewAssetResolver(fsys, true, nil)
	require.NoError(t, err)
	before := ar.Resolve("css/app.css")

	fsys["css/app.css"] = &fstest.MapFile{Data: []byte("b")}
	assert.NotEqual(t, before, ar.Resolve("css/app.css"))
}

func TestAssetResolver_Nil(t *testing.T) {
	var ar *AssetResolver
	assert.Equal(t, "/static/css/app.css", ar.Resolve("css/app.css"))
}
