// Command seed populates the database with fixture data for development.
package main

import (
	"context"
	"flag"
	"log"

	"parlor/internal/config"
	"parlor/internal/database"
	"parlor/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "Number of users to create")
	flag.IntVar(&opts.PostsPerProfile, "posts", opts.PostsPerProfile, "Posts per profile")
	flag.IntVar(&opts.CommentsPerPost, "comments", opts.CommentsPerPost, "Comments per post")
	flag.IntVar(&opts.RepliesPerPost, "replies", opts.RepliesPerPost, "Replies per post")
	flag.StringVar(&opts.Password, "password", opts.Password, "Password shared by all seeded accounts")
	flag.Int64Var(&opts.Seed, "seed", opts.Seed, "Random seed (0 picks one)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(context.Background(), db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users; every account logs in with the password %q", opts.Users, opts.Password)
}
