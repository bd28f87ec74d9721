// Package seed provides database seeding utilities for development.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/lluisEvan/ProjetoAppFiscal/internal/auth"
	"github.com/lluisEvan/ProjetoAppFiscal/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// DefaultPassword is set on every seeded account so developers can log in.
const DefaultPassword = "password123"

var categories = []string{
	"Iluminação", "Buraco na via", "Lixo", "Sinalização",
	"Calçada", "Vazamento", models.DefaultCategory,
}

var captions = []string{
	"Poste apagado há mais de uma semana",
	"Buraco enorme no meio da pista",
	"Lixo acumulado na esquina",
	"Placa de trânsito caída",
	"Calçada intransitável para cadeirantes",
	"Vazamento de água na rua",
	"Semáforo piscando sem parar",
	"Entulho abandonado na praça",
}

var commentTexts = []string{
	"Também passei por aí, está bem ruim.",
	"Já reportei para a prefeitura.",
	"Isso está assim há meses!",
	"Obrigado por divulgar.",
	"Cuidado quem passa de bicicleta por ali.",
	"Alguém sabe se já tem previsão de reparo?",
}

// Run populates the database with fake users, reports, comments and likes.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		log.Println("Cleaning existing data...")
		for _, table := range []string{"likes", "comments", "posts", "users"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clean %s: %w", table, err)
			}
		}
	}

	digest, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := &models.User{
			Username:          fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(10, 99)),
			Email:             gofakeit.Email(),
			Password:          digest,
			ProfilePictureURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users (password %q)", len(users), DefaultPassword)

	if opts.NumPosts > 0 && len(users) == 0 {
		return fmt.Errorf("cannot seed %d posts without users", opts.NumPosts)
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[rand.Intn(len(users))]
		post := &models.Post{
			UserID:   author.ID,
			Caption:  captions[rand.Intn(len(captions))],
			ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
			Location: fmt.Sprintf("%s, %s", gofakeit.Street(), gofakeit.City()),
			Category: categories[rand.Intn(len(categories))],
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))

	var comments, likes int
	for _, post := range posts {
		for _, user := range users {
			if rand.Float64() < 0.3 {
				if err := db.Exec(
					`INSERT INTO likes (user_id, post_id, created_at)
					 VALUES (?, ?, CURRENT_TIMESTAMP)
					 ON CONFLICT (user_id, post_id) DO NOTHING`,
					user.ID, post.ID,
				).Error; err != nil {
					return fmt.Errorf("seed like: %w", err)
				}
				likes++
			}
			if rand.Float64() < 0.15 {
				comment := &models.Comment{
					PostID: post.ID,
					UserID: user.ID,
					Text:   commentTexts[rand.Intn(len(commentTexts))],
				}
				if err := db.Create(comment).Error; err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
				comments++
			}
		}
	}
	log.Printf("Seeded %d likes and %d comments", likes, comments)

	return nil
}
