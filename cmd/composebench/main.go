package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func avg(vs []time.Duration) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range vs {
		sum += d
	}
	return sum / time.Duration(len(vs))
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			return v
		}
	}
	return def
}

// composebench 对比 /blog 页面的串行与并发组装耗时
func main() {
	cfg := must(config.Load())
	db := must(database.Open(cfg))
	defer database.Close(db)

	POSTS := envInt("POSTS", 2000)
	REPEAT := envInt("REPEAT", 200)
	ctx := context.Background()

	posts := repository.NewPostRepository(db)
	categories := repository.NewCategoryRepository(db)

	cat := &model.Category{Name: fmt.Sprintf("bench-%d", time.Now().UnixNano())}
	if err := categories.Create(ctx, cat); err != nil {
		panic(err)
	}
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	batch := make([]model.Post, 0, POSTS)
	for i := 0; i < POSTS; i++ {
		batch = append(batch, model.Post{
			Title:      fmt.Sprintf("bench post %d", i),
			Body:       "<p>bench</p>",
			PostDate:   base.Add(time.Duration(i) * time.Hour),
			Published:  i%3 != 0,
			CategoryID: cat.ID,
		})
	}
	if err := db.CreateInBatches(&batch, 500).Error; err != nil {
		panic(err)
	}

	filter := service.NewPublicationFilter(posts)
	composer := service.NewPageComposer(filter, categories)
	category := strconv.FormatInt(cat.ID, 10)

	sequential := func() time.Duration {
		st := time.Now()
		list := must(filter.ListPublishedByCategory(ctx, cat.ID))
		sort.Stable(model.ByPostDateDesc(list))
		_ = must(categories.List(ctx))
		return time.Since(st)
	}
	concurrent := func() time.Duration {
		st := time.Now()
		v := composer.ComposeBlog(ctx, category)
		if v.PostsErr != nil {
			panic(v.PostsErr)
		}
		return time.Since(st)
	}

	seq := make([]time.Duration, 0, REPEAT)
	con := make([]time.Duration, 0, REPEAT)
	for i := 0; i < REPEAT; i++ {
		seq = append(seq, sequential())
	}
	for i := 0; i < REPEAT; i++ {
		con = append(con, concurrent())
	}

	fmt.Printf("DRIVER=%s POSTS=%d REPEAT=%d\n", cfg.Database.Driver, POSTS, REPEAT)
	fmt.Printf("Sequential compose: avg=%v p95=%v p99=%v\n", avg(seq), pct(seq, 0.95), pct(seq, 0.99))
	fmt.Printf("Concurrent compose: avg=%v p95=%v p99=%v\n", avg(con), pct(con, 0.95), pct(con, 0.99))
}
