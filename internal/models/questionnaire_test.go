package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionFieldName(t *testing.T) {
	q := Question{ID: 42}
	assert.Equal(t, "q42", q.FieldName())
}

func TestEncodeDecodeAnswers(t *testing.T) {
	r := &Response{}
	require.NoError(t, r.EncodeAnswers(map[string]string{"1": "Bob", "2": ""}))

	answers, corrupt := r.DecodeAnswers()
	assert.False(t, corrupt)
	assert.Equal(t, map[string]string{"1": "Bob", "2": ""}, answers)
}

func TestDecodeAnswersEmpty(t *testing.T) {
	r := &Response{}
	answers, corrupt := r.DecodeAnswers()
	assert.False(t, corrupt)
	assert.Empty(t, answers)
}

func TestDecodeAnswersCorrupt(t *testing.T) {
	r := &Response{AnswersJSON: "{not json"}
	answers, corrupt := r.DecodeAnswers()
	assert.True(t, corrupt)
	assert.Empty(t, answers)
}

func TestUserPasswordHashing(t *testing.T) {
	u := &User{Username: "alice"}
	require.NoError(t, u.SetPassword("correct horse battery staple"))

	assert.NotEqual(t, "correct horse battery staple", u.PasswordHash)
	assert.True(t, u.CheckPassword("correct horse battery staple"))
	assert.False(t, u.CheckPassword("wrong"))
}
