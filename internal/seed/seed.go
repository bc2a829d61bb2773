// Package seed fills an empty feed with demo posts. Intended for development only.
package seed

import (
	"context"
	"fmt"
	"strings"

	postEntity "iyouconnect/internal/core/post"
	postPort "iyouconnect/internal/ports/post"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
)

var demoTags = []string{"product", "roadmap", "ops", "design", "community", "random"}

// Creator is the part of the post service the seeder needs.
type Creator interface {
	CreatePost(ctx context.Context, in postPort.CreateInput) (*postEntity.Post, error)
}

// Factory builds demo submissions from a seeded faker.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory returns a factory; the same seed yields the same posts. A zero seed is random.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// Input builds one demo submission.
func (f *Factory) Input() postPort.CreateInput {
	first, last := f.faker.FirstName(), f.faker.LastName()
	tags := make([]string, 0, 2)
	for i, n := 0, f.faker.Number(1, 2); i < n; i++ {
		tags = append(tags, demoTags[f.faker.Number(0, len(demoTags)-1)])
	}
	return postPort.CreateInput{
		Username:    strings.ToLower(first + "." + last),
		DisplayName: first + " " + last,
		Content:     f.faker.Sentence(f.faker.Number(6, 24)),
		Tags:        tags,
	}
}

// Posts creates n demo posts through svc and returns how many were stored.
func Posts(ctx context.Context, svc Creator, f *Factory, n int, logger *zap.Logger) (int, error) {
	created := 0
	for i := 0; i < n; i++ {
		in := f.Input()
		if _, err := svc.CreatePost(ctx, in); err != nil {
			return created, fmt.Errorf("failed to seed post %d: %w", i+1, err)
		}
		created++
	}
	if logger != nil && created > 0 {
		logger.Info("🌱 Seeded demo posts", zap.Int("count", created))
	}
	return created, nil
}
