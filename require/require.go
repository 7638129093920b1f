package require

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/assert"
)

// this is a subset of github.com/stretchr/testify/require
// built on github.com/alecthomas/assert, only the functions memo tests use

// TestingT is an interface wrapper around *testing.T
type TestingT interface {
	Errorf(format string, args ...interface{})
	FailNow()
}

// Len asserts that the specified object has specific length.
//
//	require.Len(t, mySlice, 3)
func Len(t TestingT, object interface{}, length int, msgAndArgs ...interface{}) {
	assert.Len(t, object, length, msgAndArgs...)
}

// Nil asserts that the specified object is nil.
func Nil(t TestingT, object interface{}, msgAndArgs ...interface{}) {
	assert.Nil(t, object, msgAndArgs...)
}

// NotNil asserts that the specified object is not nil.
func NotNil(t TestingT, object interface{}, msgAndArgs ...interface{}) {
	assert.NotNil(t, object, msgAndArgs...)
}

// NoError asserts that a function returned no error (i.e. `nil`).
//
//	v, err := SomeFunction()
//	require.NoError(t, err)
func NoError(t TestingT, err error, msgAndArgs ...interface{}) {
	assert.NoError(t, err, msgAndArgs...)
}

// Error asserts that a function returned an error (i.e. not `nil`).
func Error(t TestingT, err error, msgAndArgs ...interface{}) {
	assert.Error(t, err, msgAndArgs...)
}

// ErrorIs asserts that errors.Is(err, target) is true.
//
//	require.ErrorIs(t, err, os.ErrNotExist)
func ErrorIs(t TestingT, err error, target error, msgAndArgs ...interface{}) {
	if errors.Is(err, target) {
		return
	}
	t.Errorf("expected error matching '%v', got '%v'%s", target, err, fmtMsg(msgAndArgs))
	t.FailNow()
}

// Equal asserts that two objects are equal.
//
//	require.Equal(t, 123, 123)
func Equal(t TestingT, expected interface{}, actual interface{}, msgAndArgs ...interface{}) {
	assert.Equal(t, expected, actual, msgAndArgs...)
}

// NotEqual asserts that the specified values are NOT equal.
func NotEqual(t TestingT, expected interface{}, actual interface{}, msgAndArgs ...interface{}) {
	assert.NotEqual(t, expected, actual, msgAndArgs...)
}

// True asserts that the specified value is true.
func True(t TestingT, value bool, msgAndArgs ...interface{}) {
	assert.True(t, value, msgAndArgs...)
}

// False asserts that the specified value is false.
func False(t TestingT, value bool, msgAndArgs ...interface{}) {
	assert.False(t, value, msgAndArgs...)
}

// Contains asserts that s contains substr
func Contains(t TestingT, s string, substr string, msgAndArgs ...interface{}) {
	if strings.Contains(s, substr) {
		return
	}
	t.Errorf("'%s' does not contain '%s'%s", s, substr, fmtMsg(msgAndArgs))
	t.FailNow()
}

func fmtMsg(msgAndArgs []interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	format, ok := msgAndArgs[0].(string)
	if !ok {
		return fmt.Sprintf(", %v", msgAndArgs[0])
	}
	return ", " + fmt.Sprintf(format, msgAndArgs[1:]...)
}
