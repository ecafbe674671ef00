package util

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExists(t *testing.T) {
	filePath := "./.jeinwei8380243unt4u"
	os.Remove(filePath)
	file, err := os.OpenFile(filePath, os.O_RDONLY|os.O_CREATE, 0666)
	assert.Nil(t, err)
	file.Close()
	assert.True(t, Exists(filePath))
	os.Remove(filePath)
	assert.False(t, Exists(filePath))
}

func TestIsDir(t *testing.T) {
	dir, err := ioutil.TempDir("", "flowtag-util")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(dir+"/nope"))

	filePath := dir + "/file"
	assert.Nil(t, ioutil.WriteFile(filePath, []byte("x"), 0644))
	assert.False(t, IsDir(filePath))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 1, Min(2, 1))
	assert.Equal(t, 2, Max(1, 2))
	assert.Equal(t, 2, Max(2, 1))
}
