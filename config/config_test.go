package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetStringDefaults(t *testing.T) {
	c := map[string]string{"PORT": "9090", "EMPTY": ""}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(c, "MISSING", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
}

func TestGetIntDefaults(t *testing.T) {
	c := map[string]string{"N": "42", "BAD": "forty-two"}

	assert.Equal(t, 42, GetInt(c, "N", 1))
	assert.Equal(t, 1, GetInt(c, "BAD", 1))
	assert.Equal(t, 1, GetInt(c, "MISSING", 1))
}

func TestGetBoolDefaults(t *testing.T) {
	c := map[string]string{"ON": "true", "OFF": "0", "BAD": "yep"}

	assert.True(t, GetBool(c, "ON", false))
	assert.False(t, GetBool(c, "OFF", true))
	assert.True(t, GetBool(c, "BAD", true))
}

func TestGetSeconds(t *testing.T) {
	c := map[string]string{"TIMEOUT": "90", "BAD": "soon"}

	assert.Equal(t, 90*time.Second, GetSeconds(c, "TIMEOUT", time.Minute))
	assert.Equal(t, time.Minute, GetSeconds(c, "BAD", time.Minute))
	assert.Equal(t, time.Minute, GetSeconds(c, "MISSING", time.Minute))
}

func TestSplitEnvEntry(t *testing.T) {
	k, v := split("KEY=value=with=equals")
	assert.Equal(t, "KEY", k)
	assert.Equal(t, "value=with=equals", v)

	k, v = split("BARE")
	assert.Equal(t, "BARE", k)
	assert.Equal(t, "", v)
}
