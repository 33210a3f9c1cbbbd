package post

import (
	"strconv"
	"strings"
)

// ParseLikers splits a comma-joined liker set, dropping blanks and
// duplicates while keeping first-seen order.
func ParseLikers(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func JoinLikers(ids []string) string {
	return strings.Join(ids, ",")
}

func HasLiker(likedBy string, userID int64) bool {
	id := strconv.FormatInt(userID, 10)
	for _, l := range ParseLikers(likedBy) {
		if l == id {
			return true
		}
	}
	return false
}

// ToggleLiker flips userID's membership and reports whether the user
// likes the post afterwards.
func ToggleLiker(likedBy string, userID int64) (string, bool) {
	id := strconv.FormatInt(userID, 10)
	likers := ParseLikers(likedBy)
	out := make([]string, 0, len(likers)+1)
	found := false
	for _, l := range likers {
		if l == id {
			found = true
			continue
		}
		out = append(out, l)
	}
	if !found {
		out = append(out, id)
	}
	return JoinLikers(out), !found
}

// AdjustLikes applies one like or unlike to count, never going below zero.
func AdjustLikes(count int, liked bool) int {
	if liked {
		return count + 1
	}
	if count <= 0 {
		return 0
	}
	return count - 1
}

// AppendMember adds id to a comma-joined set if absent.
func AppendMember(set string, id int64) (string, bool) {
	s := strconv.FormatInt(id, 10)
	members := ParseLikers(set)
	for _, m := range members {
		if m == s {
			return JoinLikers(members), false
		}
	}
	return JoinLikers(append(members, s)), true
}

// Members parses a comma-joined set of numeric IDs, skipping anything that
// is not a number.
func Members(set string) []int64 {
	raw := ParseLikers(set)
	out := make([]int64, 0, len(raw))
	for _, r := range raw {
		v, err := strconv.ParseInt(r, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
