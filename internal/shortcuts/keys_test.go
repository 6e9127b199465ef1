package shortcuts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPrintableCharacter(t *testing.T) {
	assert.True(t, IsPrintableCharacter("a"))
	assert.True(t, IsPrintableCharacter("?"))
	assert.False(t, IsPrintableCharacter("ab"))
	assert.False(t, IsPrintableCharacter(""))
	assert.False(t, IsPrintableCharacter("\t"))
}

func TestIsKnownKey(t *testing.T) {
	assert.True(t, IsKnownKey("enter"))
	assert.True(t, IsKnownKey("Escape"))
	assert.True(t, IsKnownKey("arrowup"))
	assert.True(t, IsKnownKey("f11"))
	assert.False(t, IsKnownKey("hyper"))
}

func TestValidCombo(t *testing.T) {
	assert.True(t, ValidCombo("ctrl+s"))
	assert.True(t, ValidCombo("ctrl+shift+enter"))
	assert.True(t, ValidCombo("?"))
	assert.False(t, ValidCombo("ctrl+shift"))
	assert.False(t, ValidCombo(""))
	assert.False(t, ValidCombo("ctrl+bogus"))
}
