package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCSVTrimsAndDeduplicates(t *testing.T) {
	assert.Equal(t, []string{"go", "sql"}, splitCSV("go, go , sql"))
	assert.Equal(t, []string{"a"}, splitCSV("a,,  ,a"))
	assert.Nil(t, splitCSV(""))
}
