package main

import (
	"context"
	"log"

	"librario/internal/config"
	"librario/internal/db"
	"librario/internal/model"
	"librario/internal/repository"
)

var sampleBooks = []model.Book{
	{Title: "Cien años de soledad", Author: "Gabriel García Márquez", Genre: "Novela", Availability: true},
	{Title: "El amor en los tiempos del cólera", Author: "Gabriel García Márquez", Genre: "Novela", Availability: true},
	{Title: "Don Quijote de la Mancha", Author: "Miguel de Cervantes", Genre: "Novela", Availability: true},
	{Title: "La ciudad y los perros", Author: "Mario Vargas Llosa", Genre: "Novela", Availability: true},
	{Title: "Ficciones", Author: "Jorge Luis Borges", Genre: "Cuento", Availability: true},
	{Title: "Rayuela", Author: "Julio Cortázar", Genre: "Novela", Availability: true},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Book{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	repo := repository.NewBookRepository(gormDB)

	created := 0
	skipped := 0
	for i := range sampleBooks {
		book := sampleBooks[i]
		exists, err := repo.ExistsByTitleAndAuthor(ctx, book.Title, book.Author)
		if err != nil {
			log.Fatalf("Failed to check for existing book: %v", err)
		}
		if exists {
			log.Printf("Skipping existing book: %s - %s", book.Title, book.Author)
			skipped++
			continue
		}
		if err := repo.Create(ctx, &book); err != nil {
			log.Fatalf("Failed to insert book %q: %v", book.Title, err)
		}
		created++
	}

	log.Printf("Seed complete: %d books created, %d skipped", created, skipped)
}
