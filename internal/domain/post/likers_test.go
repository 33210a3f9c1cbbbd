package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikerTwiceRestoresState(t *testing.T) {
	start := "3,9"
	count := 2

	likedBy, liked := ToggleLiker(start, 5)
	require.True(t, liked)
	assert.Equal(t, "3,9,5", likedBy)
	count = AdjustLikes(count, liked)
	assert.Equal(t, 3, count)

	likedBy, liked = ToggleLiker(likedBy, 5)
	require.False(t, liked)
	assert.Equal(t, "3,9", likedBy)
	count = AdjustLikes(count, liked)
	assert.Equal(t, 2, count)
}

func TestAdjustLikesClampsAtZero(t *testing.T) {
	assert.Equal(t, 0, AdjustLikes(0, false))
	assert.Equal(t, 0, AdjustLikes(-3, false))
	assert.Equal(t, 1, AdjustLikes(0, true))
}

func TestParseLikersDropsBlanksAndDuplicates(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, ParseLikers(" 1,,2,1 , "))
	assert.Nil(t, ParseLikers(""))
}

func TestHasLiker(t *testing.T) {
	assert.True(t, HasLiker("1,12", 12))
	assert.False(t, HasLiker("1,12", 2))
}

func TestAppendMemberAndMembers(t *testing.T) {
	set, added := AppendMember("", 4)
	require.True(t, added)
	set, added = AppendMember(set, 4)
	assert.False(t, added)
	set, _ = AppendMember(set, 8)
	assert.Equal(t, "4,8", set)
	assert.Equal(t, []int64{4, 8}, Members(set+",x"))
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), k.LocalID)
	assert.False(t, k.IsRemote())

	k, err = ParseKey("65a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err)
	assert.True(t, k.IsRemote())

	_, err = ParseKey(" ")
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = ParseKey("-1")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestPostKeyPrefersRemote(t *testing.T) {
	assert.Equal(t, "abc", Post{LocalID: 3, RemoteID: "abc"}.Key())
	assert.Equal(t, "3", Post{LocalID: 3}.Key())
}
