package view

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/service"
)

func TestNewNav(t *testing.T) {
	cases := map[string]string{
		"/":                  "/",
		"/about":             "/about",
		"/blog":              "/blog",
		"/blog/3":            "/blog",
		"/blog/":             "/blog",
		"/posts/add":         "/posts/add",
		"/posts/delete/4":    "/posts/delete/4",
		"/categories/add":    "/categories/add",
		"/post/12":           "/post",
		"/blog/not-a-number": "/blog/not-a-number",
	}
	for path, want := range cases {
		assert.Equal(t, want, NewNav(path, "").ActiveRoute, path)
	}
	assert.Equal(t, "2", NewNav("/blog", "2").ViewingCategory)
}

func TestNavLink(t *testing.T) {
	nav := NewNav("/blog/3", "")
	assert.Equal(t, `<li class="active"><a href="/blog">Blog</a></li>`, string(navLink(nav, "/blog", "Blog")))
	assert.Equal(t, `<li><a href="/posts">Posts</a></li>`, string(navLink(nav, "/posts", "Posts")))
	assert.Equal(t, `<li><a href="/x">&lt;b&gt;</a></li>`, string(navLink(nav, "/x", "<b>")))
}

func TestHelpers(t *testing.T) {
	assert.True(t, equal("3", int64(3)))
	assert.False(t, equal("", int64(3)))

	assert.Equal(t, "2024-03-07", formatDate(time.Date(2024, 3, 7, 23, 0, 0, 0, time.UTC)))
	assert.Empty(t, formatDate(time.Time{}))

	out := string(safeHTML(`<p>hi <b>there</b></p><script>alert(1)</script><a href="javascript:alert(1)">x</a>`))
	assert.Contains(t, out, "<p>hi <b>there</b></p>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "javascript:")
}

func render(t *testing.T, name string, data interface{}) string {
	t.Helper()
	tmpl, err := Templates()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func TestTemplates_AllPagesRender(t *testing.T) {
	nav := NewNav("/about", "")
	for name, data := range map[string]interface{}{
		PageAbout:       AboutPage{nav},
		PageBlog:        BlogPage{Nav: nav},
		PagePosts:       PostsPage{Nav: nav, Message: "no results"},
		PageAddPost:     AddPostPage{Nav: nav},
		PageCategories:  CategoriesPage{Nav: nav},
		PageAddCategory: AddCategoryPage{nav},
		PageNotFound:    NotFoundPage{nav},
	} {
		out := render(t, name, data)
		assert.Contains(t, out, "</html>", name)
		assert.Contains(t, out, `<li class="active"><a href="/about">About</a></li>`, name)
	}
}

func TestTemplates_BlogPage(t *testing.T) {
	img := "https://cdn.example.com/cover.png"
	featured := model.Post{ID: 2, Title: "Newest", Body: "<p>body</p><script>x()</script>", PostDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), FeatureImage: &img}
	page := NewBlogPage(NewNav("/blog/2", "1"), service.BlogView{
		Posts:      []model.Post{featured, {ID: 1, Title: "Older", PostDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}},
		Post:       &featured,
		Categories: []model.Category{{ID: 1, Name: "tech"}},
	})
	out := render(t, PageBlog, page)

	assert.Contains(t, out, "<h1>Newest</h1>")
	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, `src="https://cdn.example.com/cover.png"`)
	assert.Contains(t, out, "<p>body</p>")
	assert.NotContains(t, out, "<script>x()")
	assert.Contains(t, out, `href="/blog/1?category=1"`)
	assert.Contains(t, out, `<li class="active"><a href="/blog?category=1">tech</a></li>`)
	assert.NotContains(t, out, "no results")
}

func TestTemplates_BlogPageSectionMessages(t *testing.T) {
	page := NewBlogPage(NewNav("/blog", ""), service.BlogView{
		PostsErr:      io.ErrUnexpectedEOF,
		CategoriesErr: io.ErrUnexpectedEOF,
	})
	out := render(t, PageBlog, page)
	assert.Equal(t, "no results", page.Message)
	assert.Equal(t, "no results", page.CategoriesMessage)
	assert.Contains(t, out, `<p class="message">no results</p>`)
	assert.NotContains(t, out, "<h1>")
}

func TestTemplates_PostsTable(t *testing.T) {
	out := render(t, PagePosts, PostsPage{
		Nav:   NewNav("/posts", ""),
		Posts: []model.Post{{ID: 7, Title: "Draft", CategoryID: 3, PostDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}},
	})
	assert.Contains(t, out, `href="/posts/delete/7"`)
	assert.Contains(t, out, "2024-01-02")
	assert.Contains(t, out, "<td>no</td>")
}

func TestStatic(t *testing.T) {
	f, err := Static().Open("site.css")
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(b), ".navbar")
}
