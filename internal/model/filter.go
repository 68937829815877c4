package model

import "time"

// PostFilter 文章查询条件；零值表示不过滤。
// 仓储层把它翻译成 WHERE 子句，Matches 给出同一语义的纯函数版本。
type PostFilter struct {
	PublishedOnly bool
	CategoryID    *int64
	MinDate       *time.Time
}

// Matches reports whether p satisfies every condition set on f.
func (f PostFilter) Matches(p Post) bool {
	if f.PublishedOnly && !p.Published {
		return false
	}
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.MinDate != nil && p.PostDate.Before(*f.MinDate) {
		return false
	}
	return true
}

// Apply returns the posts in ps that match f, preserving order.
func (f PostFilter) Apply(ps []Post) []Post {
	out := make([]Post, 0, len(ps))
	for _, p := range ps {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
