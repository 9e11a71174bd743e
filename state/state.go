// Package state is the in-memory client state: append-only pagination
// windows over server collections, the blog entity cache, and the
// profile cache. All mutation goes through the owning loader or the
// optimistic mutator; the lock covers state transitions only, never
// network calls.
package state

import (
	"sync"

	"github.com/deepakSingh023/blogclient/models"
	"github.com/deepakSingh023/blogclient/remote"
)

type ScopeKind int

const (
	ScopeFeed ScopeKind = iota
	ScopeUserBlogs
	ScopeComments
)

// Scope identifies one paginated collection: the global feed (empty
// key), one user's blogs (user id), or one blog's comments (blog id).
type Scope struct {
	Kind ScopeKind
	Key  string
}

func FeedScope() Scope { return Scope{Kind: ScopeFeed} }

func UserBlogsScope(userId string) Scope { return Scope{Kind: ScopeUserBlogs, Key: userId} }

func CommentsScope(blogId string) Scope { return Scope{Kind: ScopeComments, Key: blogId} }

type pageMeta struct {
	next    remote.PageToken
	hasMore bool
	loading bool
	epoch   uint64
}

type feedWindow struct {
	pageMeta
	items []models.BlogSummary
	seen  map[string]bool
}

type commentWindow struct {
	pageMeta
	items []models.Comment
	seen  map[string]bool
}

func newFeedWindow(epoch uint64) *feedWindow {
	return &feedWindow{pageMeta: pageMeta{hasMore: true, epoch: epoch}, seen: make(map[string]bool)}
}

func newCommentWindow(epoch uint64) *commentWindow {
	return &commentWindow{pageMeta: pageMeta{hasMore: true, epoch: epoch}, seen: make(map[string]bool)}
}

// LoadTicket is handed out by BeginLoad and must accompany the matching
// Complete or Abort call. The epoch inside it is how stale responses are
// recognized and discarded after a scope reset.
type LoadTicket struct {
	Scope Scope
	Token remote.PageToken
	epoch uint64
}

type Store struct {
	mu       sync.Mutex
	feeds    map[Scope]*feedWindow
	comments map[string]*commentWindow
	blogs    map[string]*models.Blog
	profile  *models.Profile
}

func NewStore() *Store {
	return &Store{
		feeds:    make(map[Scope]*feedWindow),
		comments: make(map[string]*commentWindow),
		blogs:    make(map[string]*models.Blog),
	}
}

func (s *Store) feedWindowLocked(scope Scope) *feedWindow {
	w, ok := s.feeds[scope]
	if !ok {
		w = newFeedWindow(0)
		s.feeds[scope] = w
	}
	return w
}

func (s *Store) commentWindowLocked(blogId string) *commentWindow {
	w, ok := s.comments[blogId]
	if !ok {
		w = newCommentWindow(0)
		s.comments[blogId] = w
	}
	return w
}

func (s *Store) metaLocked(scope Scope) *pageMeta {
	if scope.Kind == ScopeComments {
		return &s.commentWindowLocked(scope.Key).pageMeta
	}
	return &s.feedWindowLocked(scope).pageMeta
}

// BeginLoad claims the single in-flight slot for a scope. It returns
// false when a request is already outstanding or the collection is
// exhausted; such triggers are dropped, not queued.
func (s *Store) BeginLoad(scope Scope) (LoadTicket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta := s.metaLocked(scope)
	if meta.loading || !meta.hasMore {
		return LoadTicket{}, false
	}
	meta.loading = true
	return LoadTicket{Scope: scope, Token: meta.next, epoch: meta.epoch}, true
}

// AbortLoad releases the in-flight slot after a failed request, leaving
// the window otherwise untouched.
func (s *Store) AbortLoad(ticket LoadTicket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta := s.metaLocked(ticket.Scope)
	if meta.epoch == ticket.epoch {
		meta.loading = false
	}
}

// CompleteFeedLoad appends a page to a feed window. A response whose
// ticket epoch no longer matches (the scope was reset mid-flight) is
// discarded; the return value reports whether the page was applied.
func (s *Store) CompleteFeedLoad(ticket LoadTicket, page remote.FeedPage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.feedWindowLocked(ticket.Scope)
	if w.epoch != ticket.epoch {
		return false
	}
	w.loading = false

	for _, item := range page.Blogs {
		if w.seen[item.Id] {
			continue
		}
		w.seen[item.Id] = true
		w.items = append(w.items, item)
	}
	w.next = page.Next
	w.hasMore = page.HasMore && page.Next != ""
	return true
}

func (s *Store) CompleteCommentLoad(ticket LoadTicket, page remote.CommentPage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.commentWindowLocked(ticket.Scope.Key)
	if w.epoch != ticket.epoch {
		return false
	}
	w.loading = false

	for _, item := range page.Comments {
		if w.seen[item.Id] {
			continue
		}
		w.seen[item.Id] = true
		w.items = append(w.items, item)
	}
	w.next = page.Next
	w.hasMore = page.HasMore && page.Next != ""
	return true
}

// Reset rebuilds a window from empty and bumps its epoch so any
// in-flight response for the old window is ignored on arrival.
func (s *Store) Reset(scope Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(scope)
}

func (s *Store) resetLocked(scope Scope) {
	if scope.Kind == ScopeComments {
		old := s.commentWindowLocked(scope.Key)
		s.comments[scope.Key] = newCommentWindow(old.epoch + 1)
		return
	}
	old := s.feedWindowLocked(scope)
	s.feeds[scope] = newFeedWindow(old.epoch + 1)
}

// ResetAll drops every cached window, entity, and the profile. Wired as
// the session store's clear hook.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for scope := range s.feeds {
		s.resetLocked(scope)
	}
	for blogId := range s.comments {
		s.resetLocked(CommentsScope(blogId))
	}
	s.blogs = make(map[string]*models.Blog)
	s.profile = nil
}

func (s *Store) FeedItems(scope Scope) []models.BlogSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.feedWindowLocked(scope)
	out := make([]models.BlogSummary, len(w.items))
	copy(out, w.items)
	return out
}

func (s *Store) CommentItems(blogId string) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.commentWindowLocked(blogId)
	out := make([]models.Comment, len(w.items))
	copy(out, w.items)
	return out
}

func (s *Store) HasMore(scope Scope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metaLocked(scope).hasMore
}

func (s *Store) Loading(scope Scope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metaLocked(scope).loading
}
