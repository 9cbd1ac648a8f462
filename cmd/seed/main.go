package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ikkim/meesho-backend/config"
	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/app/repository"
	"github.com/ikkim/meesho-backend/internal/app/service"
	"github.com/ikkim/meesho-backend/internal/bootstrap"
)

const categoryImageBase = "https://images.meesho.com/images/marketing/"

var seedCategories = []model.Category{
	{Name: "Women Ethnic", Image: categoryImageBase + "1649760442043.webp", Order: 1},
	{Name: "Women Western", Image: categoryImageBase + "1649760423313.webp", Order: 2},
	{Name: "Men", Image: categoryImageBase + "1649760808952.webp", Order: 3},
	{Name: "Kids", Image: categoryImageBase + "1649760786763.webp", Order: 4},
	{Name: "Home & Kitchen", Image: categoryImageBase + "1649760599511.webp", Order: 5},
	{Name: "Beauty & Health", Image: categoryImageBase + "1649760557045.webp", Order: 6},
}

type seedUser struct {
	name     string
	phone    string
	email    string
	password string
	isAdmin  bool
}

var seedUsers = []seedUser{
	{name: "Test User", phone: "9876543210", password: "password123"},
	{name: "Admin User", phone: "9876543211", email: "admin@example.com", password: "admin123", isAdmin: true},
}

func main() {
	// Usage: seed [products.xlsx]
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	repos, err := bootstrap.OpenRepositories(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer repos.Close()

	ctx := context.Background()

	categoryService := service.NewCategoryService(repos.Categories, nil)
	created := 0
	for _, c := range seedCategories {
		category := c
		err := categoryService.Create(ctx, &category)
		if errors.Is(err, service.ErrCategoryExists) {
			continue
		}
		if err != nil {
			log.Fatal("Failed to seed category:", err)
		}
		created++
	}
	fmt.Printf("Categories created: %d\n", created)

	authService := service.NewAuthService(repos.Users, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	for _, u := range seedUsers {
		if err := seedAccount(ctx, authService, repos.Users, u); err != nil {
			log.Fatal("Failed to seed user:", err)
		}
	}

	if len(os.Args) < 2 {
		fmt.Println("No product spreadsheet given, skipping product import.")
		return
	}

	filePath := os.Args[1]
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := os.Open(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX:", err)
	}
	defer f.Close()

	productService := service.NewProductService(repos.Products, nil)
	result, err := productService.ImportProducts(ctx, f)
	if err != nil {
		log.Fatal("Failed to import products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Rows: %d, imported: %d, skipped: %d, duplicates: %d\n",
		result.Total, result.Imported, result.Skipped, result.Duplicates)
}

func seedAccount(ctx context.Context, authService service.AuthService, userRepo repository.UserRepository, u seedUser) error {
	user, _, err := authService.Register(ctx, u.name, u.phone, u.email, u.password)
	if errors.Is(err, service.ErrPhoneAlreadyExists) {
		fmt.Printf("User %s already exists\n", u.phone)
		return nil
	}
	if err != nil {
		return err
	}

	if u.isAdmin {
		user.IsAdmin = true
		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}
	}
	fmt.Printf("User created: %s (%s)\n", u.name, u.phone)
	return nil
}
