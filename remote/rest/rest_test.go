package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/deepakSingh023/blogclient/models"
	"github.com/deepakSingh023/blogclient/remote"
)

func newTestAPI(t *testing.T, handler http.Handler, pageSize int) (*RESTBlogAPI, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	api, err := NewRESTBlogAPI(srv.URL, tokens, pageSize, zap.NewNop().Sugar())
	assert.NoError(t, err)
	return api, srv
}

func TestNewRESTBlogAPI_EmptyBaseURL(t *testing.T) {
	_, err := NewRESTBlogAPI("", nil, 0, zap.NewNop().Sugar())
	assert.Error(t, err)
}

func TestLogin_PostsCredentialsAndMapsSession(t *testing.T) {
	var gotPath, gotContentType string
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		fmt.Fprint(w, `{"token":"jwt-abc","id":"u1","username":"dev","email":"dev@example.com","role":"USER"}`)
	}), 0)

	sess, err := api.Login(context.Background(), models.Credentials{Email: "dev@example.com", Password: "secret123"})

	assert.NoError(t, err)
	assert.Equal(t, "/auth/login", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "jwt-abc", sess.Token)
	assert.Equal(t, "u1", sess.User.Id)
	assert.Equal(t, "dev", sess.User.Username)
}

func TestFeed_ForwardsCursorAndViewer(t *testing.T) {
	var gotQuery map[string][]string
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{
			"blogs": [
				{"id":"b1","userId":"u2","title":"First","likeCount":3,"Comments":2,"likedByMe":true},
				{"id":"b2","userId":"u3","title":"Second","likeCount":0,"Comments":0}
			],
			"nextCursor": "c2",
			"hasMore": true
		}`)
	}), 0)

	page, err := api.Feed(context.Background(), "c1", "u1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"c1"}, gotQuery["cursor"])
	assert.Equal(t, []string{"u1"}, gotQuery["userId"])
	assert.Len(t, page.Blogs, 2)
	assert.Equal(t, "b1", page.Blogs[0].Id)
	assert.Equal(t, 3, page.Blogs[0].Likes)
	assert.Equal(t, 2, page.Blogs[0].Comments)
	assert.True(t, page.Blogs[0].LikedByMe)
	assert.Equal(t, remote.PageToken("c2"), page.Next)
	assert.True(t, page.HasMore)
}

func TestFeed_FirstPageOmitsCursor(t *testing.T) {
	var gotQuery map[string][]string
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"blogs":[],"nextCursor":"","hasMore":false}`)
	}), 0)

	_, err := api.Feed(context.Background(), "", "")

	assert.NoError(t, err)
	assert.NotContains(t, gotQuery, "cursor")
	assert.NotContains(t, gotQuery, "userId")
}

func TestComments_TokenMapsToPageAndSize(t *testing.T) {
	var gotQuery map[string][]string
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `[
			{"id":101,"authorId":"u2","author":"amy","content":"first","date":"2025-01-01","deletable":false},
			{"id":102,"authorId":"u1","author":"dev","content":"second","date":"2025-01-02","deletable":true}
		]`)
	}), 2)

	page, err := api.Comments(context.Background(), "b1", "3", "u1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"b1"}, gotQuery["blogId"])
	assert.Equal(t, []string{"3"}, gotQuery["page"])
	assert.Equal(t, []string{"2"}, gotQuery["size"])

	// A full page means another one may follow it.
	assert.True(t, page.HasMore)
	assert.Equal(t, remote.PageToken("4"), page.Next)
	assert.Len(t, page.Comments, 2)
	assert.Equal(t, "101", page.Comments[0].Id)
	assert.Equal(t, "b1", page.Comments[0].BlogId)
	assert.True(t, page.Comments[1].DeletableByMe)
}

func TestComments_ShortPageEndsCollection(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":101,"author":"amy","content":"only one","date":"2025-01-01"}]`)
	}), 2)

	page, err := api.Comments(context.Background(), "b1", "", "")

	assert.NoError(t, err)
	assert.False(t, page.HasMore)
	assert.Empty(t, page.Next)
}

func TestComments_BadTokenRejected(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}), 2)

	_, err := api.Comments(context.Background(), "b1", "not-a-page", "")
	assert.Error(t, err)
}

func TestLike_SendsBearerToken(t *testing.T) {
	var gotAuth string
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}), 0)

	err := api.Like(context.Background(), "b1")

	assert.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"bad token"}`, remote.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, `{"message":"not yours"}`, remote.ErrUnauthorized},
		{"not found", http.StatusNotFound, `{"message":"no such blog"}`, remote.ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}), 0)

			_, err := api.Blog(context.Background(), "b1", "")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestStatusMapping_UsesServerMessage(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"blog is gone"}`)
	}), 0)

	_, err := api.Blog(context.Background(), "b1", "")
	assert.ErrorContains(t, err, "blog is gone")
}

func TestCreateBlog_MultipartPayloadAndImage(t *testing.T) {
	var gotJSON string
	var gotImage []byte
	var gotImageName string
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		gotJSON = r.FormValue("createBlog")

		file, header, err := r.FormFile("image")
		assert.NoError(t, err)
		defer file.Close()
		gotImageName = header.Filename
		gotImage, err = io.ReadAll(file)
		assert.NoError(t, err)

		fmt.Fprint(w, `{"id":"b9","title":"New Post","editable":true}`)
	}), 0)

	draft := models.BlogDraft{
		Title:     "New Post",
		Content:   "body",
		Tags:      []string{"go"},
		Image:     []byte{0xff, 0xd8},
		ImageName: "cover.jpg",
	}
	blog, err := api.CreateBlog(context.Background(), draft)

	assert.NoError(t, err)
	assert.Equal(t, "b9", blog.Id)
	assert.JSONEq(t, `{"title":"New Post","content":"body","tags":["go"]}`, gotJSON)
	assert.Equal(t, "cover.jpg", gotImageName)
	assert.Equal(t, []byte{0xff, 0xd8}, gotImage)
}

func TestCreateBlog_ImageOptional(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("image")
		assert.Error(t, err)
		fmt.Fprint(w, `{"id":"b9"}`)
	}), 0)

	_, err := api.CreateBlog(context.Background(), models.BlogDraft{Title: "No Image", Content: "body"})
	assert.NoError(t, err)
}

func TestUpdateBlog_UsesPut(t *testing.T) {
	var gotMethod, gotJSON string
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		gotJSON = r.FormValue("updateBlog")
		fmt.Fprint(w, `{"id":"b1","title":"Edited"}`)
	}), 0)

	update := models.BlogUpdate{BlogId: "b1", Title: "Edited", Content: "body"}
	blog, err := api.UpdateBlog(context.Background(), update)

	assert.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "Edited", blog.Title)
	assert.JSONEq(t, `{"blogId":"b1","title":"Edited","content":"body","tags":null}`, gotJSON)
}

func TestDeleteBlog_IdInPath(t *testing.T) {
	var gotMethod, gotPath string
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}), 0)

	err := api.DeleteBlog(context.Background(), "b7")

	assert.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/blog/delete/b7", gotPath)
}

func TestUpdateProfile_BioAsPlainField(t *testing.T) {
	var gotBio string
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		gotBio = r.FormValue("bio")
		fmt.Fprint(w, `{"username":"dev","bio":"hello","profilePic":"pic.png"}`)
	}), 0)

	p, err := api.UpdateProfile(context.Background(), models.ProfileUpdate{Bio: "hello"})

	assert.NoError(t, err)
	assert.Equal(t, "hello", gotBio)
	assert.Equal(t, "hello", p.Bio)
	assert.Equal(t, "pic.png", p.ProfilePic)
}

func TestSearch_ReturnsSummaries(t *testing.T) {
	var gotQuery map[string][]string
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"blogs":[{"id":"b1","title":"Go tips"}],"nextCursor":"","hasMore":false}`)
	}), 0)

	results, err := api.Search(context.Background(), "go")

	assert.NoError(t, err)
	assert.Equal(t, []string{"go"}, gotQuery["query"])
	assert.Len(t, results, 1)
	assert.Equal(t, "Go tips", results[0].Title)
}
