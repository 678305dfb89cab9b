// Package seed populates a database with plausible fixture data for
// development and demos.
package seed

import (
	"fmt"
	"strings"

	"parlor/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// fakeUser builds a user and its profile. The email carries a sequence number
// and a random suffix so generated accounts do not collide, within a run or
// across repeated runs against the same database.
func fakeUser(faker *gofakeit.Faker, seq int, hash string) *models.User {
	name := faker.Name()
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	email := fmt.Sprintf("%s.%d.%s@%s", local, seq, strings.ToLower(faker.LetterN(5)), faker.DomainName())

	return &models.User{
		Email: email,
		Hash:  hash,
		Profile: &models.Profile{
			Name:    name,
			About:   faker.Sentence(12),
			Website: faker.URL(),
		},
	}
}

func fakePost(faker *gofakeit.Faker, profileID uint) *models.Post {
	return &models.Post{
		ProfileID: profileID,
		Text:      faker.Paragraph(1, 3, 12, " "),
	}
}

func fakeComment(faker *gofakeit.Faker, profileID, postID uint) *models.Comment {
	return &models.Comment{
		ProfileID: profileID,
		PostID:    &postID,
		Text:      faker.Sentence(10),
	}
}

func fakeReply(faker *gofakeit.Faker, profileID, parentID uint) *models.Comment {
	return &models.Comment{
		ProfileID: profileID,
		CommentID: &parentID,
		Text:      faker.Sentence(8),
	}
}
