package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderRole(t *testing.T) {
	assert.Equal(t, "user", RoleUser.ProviderRole())
	assert.Equal(t, "model", RoleAssistant.ProviderRole())
	assert.Equal(t, "system", RoleSystem.ProviderRole())
}

func TestDisplayRole(t *testing.T) {
	assert.Equal(t, RoleUser, DisplayRole("user"))
	assert.Equal(t, RoleAssistant, DisplayRole("assistant"))
	assert.Equal(t, RoleAssistant, DisplayRole("model"))
	assert.Equal(t, RoleSystem, DisplayRole("system"))
	assert.Equal(t, RoleSystem, DisplayRole("banana"))
}
