package session

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/werewolf-agent/pkg/chat"
	"github.com/jwebster45206/werewolf-agent/pkg/state"
)

func TestNew(t *testing.T) {
	s, err := New("Fred", "a test game", []string{"Alice", "Bob", "Fred"}, 1)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, "Fred", s.AgentName)
	assert.Empty(t, s.History)
	require.NotNil(t, s.GameState)
	assert.Equal(t, 1, s.GameState.WolfCount)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("", "", []string{"Alice"}, 1)
	assert.Error(t, err)

	_, err = New("Fred", "", nil, 1)
	assert.ErrorIs(t, err, state.ErrInvalidRoster)
}

func TestSession_JSONRoundTrip(t *testing.T) {
	s, err := New("Fred", "", []string{"Alice", "Bob"}, 1)
	require.NoError(t, err)
	s.Append(chat.ChatRoleUser, "[From - Alice| play-arena]: hello")
	require.NoError(t, s.GameState.RecordVote("Alice", "Bob"))

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var loaded Session
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, s.History, loaded.History)
	assert.Equal(t, [][]string{{"Bob"}, {}}, loaded.GameState.Votes)

	idx, err := loaded.GameState.PlayerIndex("bob")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}
