package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/pkg/database"
	"github.com/d60-Lab/gin-blog/pkg/logger"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo categories and posts into an empty database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			n, err := seed(cmd.Context(), repository.NewCategoryRepository(db), repository.NewPostRepository(db))
			if err != nil {
				return err
			}
			logger.Info("seed done", zap.Int("posts", n))
			return nil
		},
	}
}

type demoPost struct {
	title, body string
	category    int
	published   bool
	date        string
}

var (
	demoCategories = []string{"Programming", "Travel", "Notes"}
	demoPosts      = []demoPost{
		{"Hello, world", "<p>First post on the new blog.</p>", 2, true, "2023-01-02"},
		{"Context everywhere", "<p>Passing <code>context.Context</code> through every layer.</p>", 0, true, "2023-03-14"},
		{"Table-driven tests", "<p>One loop, many cases.</p>", 0, true, "2023-06-01"},
		{"A week in Lisbon", "<p>Trams, tiles and pastel de nata.</p>", 1, true, "2023-09-20"},
		{"Half-written thoughts on generics", "<p>Draft.</p>", 0, false, "2024-01-05"},
		{"Packing list", "<p>Still deciding.</p>", 1, false, "2024-02-11"},
	}
)

// seed 只在没有分类时写入演示数据，返回写入的文章数
func seed(ctx context.Context, categories repository.CategoryRepository, posts repository.PostRepository) (int, error) {
	existing, err := categories.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		logger.Info("database already has categories, skipping seed", zap.Int("categories", len(existing)))
		return 0, nil
	}

	ids := make([]int64, len(demoCategories))
	for i, name := range demoCategories {
		c := &model.Category{Name: name}
		if err := categories.Create(ctx, c); err != nil {
			return 0, fmt.Errorf("seed category %q: %w", name, err)
		}
		ids[i] = c.ID
	}

	for _, d := range demoPosts {
		date, err := time.Parse("2006-01-02", d.date)
		if err != nil {
			return 0, err
		}
		p := &model.Post{Title: d.title, Body: d.body, CategoryID: ids[d.category], Published: d.published, PostDate: date}
		if err := posts.Create(ctx, p); err != nil {
			return 0, fmt.Errorf("seed post %q: %w", d.title, err)
		}
	}
	return len(demoPosts), nil
}
