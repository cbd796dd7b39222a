package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ankush43545-hub/LumoBackendTest/internal/model"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, model.RoleUser.Valid())
	assert.True(t, model.RoleAssistant.Valid())
	assert.True(t, model.RoleSystem.Valid())
	assert.False(t, model.Role("wizard").Valid())
	assert.False(t, model.Role("").Valid())
}
