package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckFormat(t *testing.T) {

	assert := assert.New(t)

	f, err := CheckFormat(" JSON ")
	assert.NoError(err)
	assert.Equal(FORMAT_JSON, f)

	f, err = CheckFormat("cpp")
	assert.NoError(err)
	assert.Equal(FORMAT_CPP, f)

	_, err = CheckFormat("xml")
	assert.Error(err)
}

func TestCheckPath(t *testing.T) {

	assert := assert.New(t)

	p, err := CheckPath("")
	assert.NoError(err)
	assert.Equal("-", p)

	p, err = CheckPath(" sen6x.yaml ")
	assert.NoError(err)
	assert.Equal("sen6x.yaml", p)

	_, err = CheckPath("bad\x00path")
	assert.Error(err)
}
