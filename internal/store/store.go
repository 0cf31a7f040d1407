// Package store holds the whole application state in memory: the
// registered users, their posts, and the reactions and comments left
// on each post. Nothing is persisted; a restart starts empty.
//
// The store does no locking of its own. Callers that share a Store
// across goroutines must serialize access themselves (the HTTP layer
// uses a single RWMutex: shared for reads, exclusive for any
// mutation, including mutations made through a *Post obtained from
// GetPost).
package store

import (
	"errors"
	"fmt"
	"iter"
)

// PostID names a post within a single Store instance.
type PostID uint64

var (
	ErrAlreadyRegistered = errors.New("already registered")
	ErrUnknownUser       = errors.New("unknown user")
	ErrPostNotFound      = errors.New("post not found")
)

// Store is the aggregate of all users and posts.
type Store struct {
	// users maps a username to the set of ids of the posts it made.
	users map[string]map[PostID]struct{}
	// posts maps a post id to the post. Every id referenced by users
	// has an entry here, and every post belongs to exactly one user.
	posts map[PostID]*Post
	// lastID is the most recently issued post id. Ids are issued from
	// a counter so they are unique for the lifetime of the store.
	lastID PostID
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users: make(map[string]map[PostID]struct{}),
		posts: make(map[PostID]*Post),
	}
}

// RegisterUser adds a new user. It fails with ErrAlreadyRegistered if
// the username is taken; the store is unchanged on failure.
func (s *Store) RegisterUser(username string) error {
	if _, ok := s.users[username]; ok {
		return fmt.Errorf("user %q: %w", username, ErrAlreadyRegistered)
	}
	s.users[username] = make(map[PostID]struct{})
	return nil
}

// CreatePost makes username create a post with the given text content
// and returns the new post's id. It fails with ErrUnknownUser if the
// username was never registered; no post is created on failure.
func (s *Store) CreatePost(username, content string) (PostID, error) {
	userPosts, ok := s.users[username]
	if !ok {
		return 0, fmt.Errorf("user %q: %w", username, ErrUnknownUser)
	}
	s.lastID++
	id := s.lastID
	s.posts[id] = newPost(content)
	userPosts[id] = struct{}{}
	return id, nil
}

// CreateComment appends a comment by author to the post with the
// given id. It fails with ErrPostNotFound if no such post exists.
//
// The author is deliberately not checked against the user registry:
// anyone may comment under any name, matching the reaction surface.
func (s *Store) CreateComment(id PostID, author, content string) error {
	post, ok := s.posts[id]
	if !ok {
		return fmt.Errorf("post %d: %w", id, ErrPostNotFound)
	}
	post.AddComment(author, content)
	return nil
}

// GetPost returns the post with the given id, if it exists. Callers
// holding only shared access must treat the post as read-only;
// mutating methods on Post require the same exclusive access as the
// Store's own mutations.
func (s *Store) GetPost(id PostID) (*Post, bool) {
	post, ok := s.posts[id]
	return post, ok
}

// Posts yields one (username, post id) pair per post in the store, in
// no particular order. The sequence reads live state and may be
// ranged over more than once.
func (s *Store) Posts() iter.Seq2[string, PostID] {
	return func(yield func(string, PostID) bool) {
		for username, ids := range s.users {
			for id := range ids {
				if !yield(username, id) {
					return
				}
			}
		}
	}
}

// Users yields every registered username, in no particular order.
func (s *Store) Users() iter.Seq[string] {
	return func(yield func(string) bool) {
		for username := range s.users {
			if !yield(username) {
				return
			}
		}
	}
}

// Len reports the number of posts in the store.
func (s *Store) Len() int { return len(s.posts) }
