package seed

import (
	"context"
	"fmt"

	"parlor/internal/models"
	"parlor/internal/observability"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	Users           int
	PostsPerProfile int
	CommentsPerPost int
	RepliesPerPost  int
	Password        string
	Seed            int64
}

// DefaultOptions returns a small but connected data set: every profile posts,
// comments land on random posts and replies thread off random comments.
func DefaultOptions() Options {
	return Options{
		Users:           10,
		PostsPerProfile: 3,
		CommentsPerPost: 2,
		RepliesPerPost:  1,
		Password:        "password1",
		Seed:            0,
	}
}

// Run fills the database. All accounts share the same password so seeded
// environments are easy to log into.
func Run(ctx context.Context, db *gorm.DB, opts Options) (err error) {
	span, ctx := observability.NewSpan(ctx, "seed.Run")
	defer func() {
		span.SetError(err)
		span.End()
	}()

	faker := gofakeit.New(opts.Seed)

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	profiles := make([]*models.Profile, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := fakeUser(faker, i, string(hash))
		if err := db.WithContext(ctx).Create(user).Error; err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
		profiles = append(profiles, user.Profile)
	}

	var posts []*models.Post
	for _, profile := range profiles {
		for i := 0; i < opts.PostsPerProfile; i++ {
			post := fakePost(faker, profile.ID)
			if err := db.WithContext(ctx).Create(post).Error; err != nil {
				return fmt.Errorf("seeding post: %w", err)
			}
			posts = append(posts, post)
		}
	}

	var comments []*models.Comment
	for _, post := range posts {
		for i := 0; i < opts.CommentsPerPost; i++ {
			author := profiles[faker.IntRange(0, len(profiles)-1)]
			comment := fakeComment(faker, author.ID, post.ID)
			if err := db.WithContext(ctx).Create(comment).Error; err != nil {
				return fmt.Errorf("seeding comment: %w", err)
			}
			comments = append(comments, comment)
		}
	}

	replyCount := opts.RepliesPerPost * len(posts)
	for i := 0; i < replyCount && len(comments) > 0; i++ {
		parent := comments[faker.IntRange(0, len(comments)-1)]
		author := profiles[faker.IntRange(0, len(profiles)-1)]
		if err := db.WithContext(ctx).Create(fakeReply(faker, author.ID, parent.ID)).Error; err != nil {
			return fmt.Errorf("seeding reply: %w", err)
		}
	}

	// Every profile likes a handful of random posts; the unique index makes
	// repeats a no-op.
	for _, profile := range profiles {
		for i := 0; i < 3 && len(posts) > 0; i++ {
			post := posts[faker.IntRange(0, len(posts)-1)]
			like := models.Like{PostID: post.ID, ProfileID: profile.ID}
			err := db.WithContext(ctx).
				Where("post_id = ? AND profile_id = ?", post.ID, profile.ID).
				FirstOrCreate(&like).Error
			if err != nil {
				return fmt.Errorf("seeding like: %w", err)
			}
		}
	}

	return nil
}
