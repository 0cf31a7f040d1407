package store

import "iter"

// Post is a single post made by a user. Other users (or the author)
// may react to it with a like or dislike and leave comments.
type Post struct {
	content string
	// reactions maps a username to its reaction: true for a like,
	// false for a dislike. A user with no entry is neutral.
	reactions map[string]bool
	// comments maps a username to the comments it left on this post,
	// in the order they were made.
	comments map[string][]string
}

func newPost(content string) *Post {
	return &Post{
		content:   content,
		reactions: make(map[string]bool),
		comments:  make(map[string][]string),
	}
}

// Content returns the text of the post. Content never changes after
// the post is created.
func (p *Post) Content() string { return p.content }

// Like records a like by username, replacing a prior dislike.
func (p *Post) Like(username string) { p.reactions[username] = true }

// Dislike records a dislike by username, replacing a prior like.
func (p *Post) Dislike(username string) { p.reactions[username] = false }

// Unlike removes username's reaction entirely. It is a no-op if the
// user never reacted.
func (p *Post) Unlike(username string) { delete(p.reactions, username) }

// AddComment appends a comment by username. A user may comment any
// number of times; earlier comments are never overwritten.
func (p *Post) AddComment(username, content string) {
	p.comments[username] = append(p.comments[username], content)
}

// Likers yields the usernames that currently like this post, in no
// particular order. The sequence reads live state and may be ranged
// over more than once.
func (p *Post) Likers() iter.Seq[string] {
	return func(yield func(string) bool) {
		for username, liked := range p.reactions {
			if liked && !yield(username) {
				return
			}
		}
	}
}

// Dislikers yields the usernames that currently dislike this post.
func (p *Post) Dislikers() iter.Seq[string] {
	return func(yield func(string) bool) {
		for username, liked := range p.reactions {
			if !liked && !yield(username) {
				return
			}
		}
	}
}

// Comments yields (username, comment) pairs for every comment on this
// post. Each user's comments appear in the order they were added;
// users themselves appear in no particular order.
func (p *Post) Comments() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for username, list := range p.comments {
			for _, c := range list {
				if !yield(username, c) {
					return
				}
			}
		}
	}
}
