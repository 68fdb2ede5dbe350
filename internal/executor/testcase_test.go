package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTestCase_KeyOrderPreserved(t *testing.T) {
	tc, err := parseTestCase(`{"input": {"b": 3, "a": 2}, "expected": 5}`)
	require.NoError(t, err)

	require.Len(t, tc.Args, 2)
	assert.Equal(t, "b", tc.Args[0].Name)
	assert.Equal(t, "3", string(tc.Args[0].Value))
	assert.Equal(t, "a", tc.Args[1].Name)
	assert.Equal(t, "2", string(tc.Args[1].Value))
	assert.JSONEq(t, "5", string(tc.Expected))
}

func TestParseTestCase_CompositeValues(t *testing.T) {
	tc, err := parseTestCase(`{"input": {"xs": [1, 2, 3], "opts": {"k": "v"}}, "expected": [3, 2, 1]}`)
	require.NoError(t, err)

	require.Len(t, tc.Args, 2)
	assert.JSONEq(t, "[1,2,3]", string(tc.Args[0].Value))
	assert.JSONEq(t, `{"k":"v"}`, string(tc.Args[1].Value))
}

func TestParseTestCase_MissingInput(t *testing.T) {
	tc, err := parseTestCase(`{"expected": 1}`)
	require.NoError(t, err)
	assert.Empty(t, tc.Args)
	assert.JSONEq(t, "1", string(tc.Expected))
}

func TestParseTestCase_MissingExpected(t *testing.T) {
	tc, err := parseTestCase(`{"input": {"a": 1}}`)
	require.NoError(t, err)
	assert.JSONEq(t, "null", string(tc.Expected))
}

func TestParseTestCase_InvalidJSON(t *testing.T) {
	_, err := parseTestCase(`{"input": `)
	require.Error(t, err)
}

func TestParseTestCase_InputNotAnObject(t *testing.T) {
	_, err := parseTestCase(`{"input": [1, 2], "expected": 3}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input must be an object")
}
