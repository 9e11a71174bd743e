package state

import (
	"github.com/deepakSingh023/blogclient/models"
)

// Entity-level operations. Like state for one blog lives in the detail
// cache and in every feed window that lists it; deltas are applied to
// all copies so the UI reads one consistent value.

func (s *Store) SetBlog(blog models.Blog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := blog
	s.blogs[blog.Id] = &b
}

func (s *Store) Blog(blogId string) (models.Blog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blogs[blogId]
	if !ok {
		return models.Blog{}, false
	}
	return *b, true
}

// LikedByViewer reports the displayed liked-by-me flag for a blog, from
// the detail cache or any feed window listing it.
func (s *Store) LikedByViewer(blogId string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.blogs[blogId]; ok {
		return b.LikedByMe, true
	}
	for _, w := range s.feeds {
		for i := range w.items {
			if w.items[i].Id == blogId {
				return w.items[i].LikedByMe, true
			}
		}
	}
	return false, false
}

func (s *Store) ApplyLikeDelta(blogId string, delta int, liked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.blogs[blogId]; ok {
		b.Likes += delta
		b.LikedByMe = liked
	}
	for _, w := range s.feeds {
		for i := range w.items {
			if w.items[i].Id == blogId {
				w.items[i].Likes += delta
				w.items[i].LikedByMe = liked
			}
		}
	}
}

func (s *Store) ApplyCommentCountDelta(blogId string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.blogs[blogId]; ok {
		b.Comments += delta
	}
	for _, w := range s.feeds {
		for i := range w.items {
			if w.items[i].Id == blogId {
				w.items[i].Comments += delta
			}
		}
	}
}

// PrependComment splices an optimistic entry at the head of a blog's
// comment window.
func (s *Store) PrependComment(blogId string, c models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.commentWindowLocked(blogId)
	w.seen[c.Id] = true
	w.items = append([]models.Comment{c}, w.items...)
}

// RemoveCommentById splices a comment out and returns it with its index
// so a failed delete can reinsert the exact entry where it was.
func (s *Store) RemoveCommentById(blogId string, commentId string) (models.Comment, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.commentWindowLocked(blogId)
	for i, c := range w.items {
		if c.Id == commentId {
			w.items = append(w.items[:i], w.items[i+1:]...)
			delete(w.seen, commentId)
			return c, i, true
		}
	}
	return models.Comment{}, 0, false
}

func (s *Store) InsertCommentAt(blogId string, c models.Comment, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.commentWindowLocked(blogId)
	if index < 0 {
		index = 0
	}
	if index > len(w.items) {
		index = len(w.items)
	}
	w.items = append(w.items[:index], append([]models.Comment{c}, w.items[index:]...)...)
	w.seen[c.Id] = true
}

// ReplaceCommentId swaps an optimistic temp id for the server-issued one
// so a later delete addresses the right record.
func (s *Store) ReplaceCommentId(blogId string, oldId string, newId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.commentWindowLocked(blogId)
	for i := range w.items {
		if w.items[i].Id == oldId {
			w.items[i].Id = newId
			delete(w.seen, oldId)
			w.seen[newId] = true
			return
		}
	}
}

// BlogRemoval captures everything a blog delete takes out of the state
// so the inverse delta can put it all back.
type BlogRemoval struct {
	BlogId        string
	detail        *models.Blog
	feedPositions map[Scope]feedPosition
	comments      *commentWindow
}

type feedPosition struct {
	index int
	item  models.BlogSummary
}

func (s *Store) RemoveBlog(blogId string) BlogRemoval {
	s.mu.Lock()
	defer s.mu.Unlock()

	removal := BlogRemoval{BlogId: blogId, feedPositions: make(map[Scope]feedPosition)}

	if b, ok := s.blogs[blogId]; ok {
		removal.detail = b
		delete(s.blogs, blogId)
	}

	for scope, w := range s.feeds {
		for i, item := range w.items {
			if item.Id == blogId {
				removal.feedPositions[scope] = feedPosition{index: i, item: item}
				w.items = append(w.items[:i], w.items[i+1:]...)
				delete(w.seen, blogId)
				break
			}
		}
	}

	if w, ok := s.comments[blogId]; ok {
		removal.comments = w
		delete(s.comments, blogId)
	}
	return removal
}

func (s *Store) RestoreBlog(removal BlogRemoval) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if removal.detail != nil {
		s.blogs[removal.BlogId] = removal.detail
	}

	for scope, pos := range removal.feedPositions {
		w := s.feedWindowLocked(scope)
		i := pos.index
		if i > len(w.items) {
			i = len(w.items)
		}
		w.items = append(w.items[:i], append([]models.BlogSummary{pos.item}, w.items[i:]...)...)
		w.seen[removal.BlogId] = true
	}

	if removal.comments != nil {
		s.comments[removal.BlogId] = removal.comments
	}
}

func (s *Store) SetProfile(p models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &p
}

func (s *Store) Profile() (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return models.Profile{}, false
	}
	return *s.profile, true
}
