package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"vacationstay/internal/database"
	"vacationstay/internal/domain"
	"vacationstay/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	db, err := database.Connect(envOr("DATABASE_URL", "vacationstay.db"))
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM user_roles")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	bookings := repository.NewBookingRepository(db)
	reviews := repository.NewReviewRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Name:         "Admin",
		Email:        "admin@vacationstay.io",
		PasswordHash: string(adminHash),
		Provider:     domain.ProviderLocal,
		Roles:        []string{domain.RoleUser, domain.RoleAdmin},
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal("seed admin:", err)
	}
	log.Println("Admin created: admin@vacationstay.io / admin123")

	guests := make([]*domain.User, 0, 3)
	for i, email := range []string{"alice@example.com", "bob@example.com", "carol@example.com"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("guest123"), bcrypt.DefaultCost)
		u := &domain.User{
			Name:         fmt.Sprintf("Guest %d", i+1),
			Email:        email,
			PasswordHash: string(hash),
			Provider:     domain.ProviderLocal,
			Roles:        []string{domain.RoleUser},
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("seed guest:", err)
		}
		guests = append(guests, u)
	}

	hostHash, _ := bcrypt.GenerateFromPassword([]byte("host123"), bcrypt.DefaultCost)
	host := &domain.User{
		Name:         "Host Hanna",
		Email:        "hanna@example.com",
		PasswordHash: string(hostHash),
		Provider:     domain.ProviderLocal,
		Roles:        []string{domain.RoleUser},
	}
	if err := users.Create(ctx, host); err != nil {
		log.Fatal("seed host:", err)
	}

	// ================== PROPERTIES ==================
	log.Println("Creating properties...")

	seedProperties := []*domain.Property{
		{
			Title:       "Seaside Apartment",
			Description: "Two-bedroom apartment a short walk from the beach.",
			Location:    "Lisbon",
			Price:       120,
			Bedrooms:    2,
			Bathrooms:   1,
			MaxGuests:   4,
			Amenities:   []string{"wifi", "kitchen", "washer"},
			Images:      []string{"https://img.vacationstay.io/p/seaside-1.jpg"},
			OwnerID:     host.ID,
		},
		{
			Title:       "Mountain Cabin",
			Description: "Quiet cabin with a fireplace and a view of the valley.",
			Location:    "Innsbruck",
			Price:       95,
			Bedrooms:    1,
			Bathrooms:   1,
			MaxGuests:   2,
			Amenities:   []string{"wifi", "fireplace", "parking"},
			Images:      []string{"https://img.vacationstay.io/p/cabin-1.jpg"},
			OwnerID:     host.ID,
		},
		{
			Title:       "City Loft",
			Description: "Bright loft in the old town, close to everything.",
			Location:    "Lisbon",
			Price:       180,
			Bedrooms:    3,
			Bathrooms:   2,
			MaxGuests:   6,
			Amenities:   []string{"wifi", "kitchen", "air conditioning", "elevator"},
			Images:      []string{"https://img.vacationstay.io/p/loft-1.jpg"},
			OwnerID:     host.ID,
		},
	}
	for _, p := range seedProperties {
		if err := properties.Create(ctx, p); err != nil {
			log.Fatal("seed property:", err)
		}
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	base := time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	seedBookings := []*domain.Booking{
		{
			PropertyID: seedProperties[0].ID,
			UserID:     guests[0].ID,
			StartDate:  base,
			EndDate:    base.AddDate(0, 0, 4),
			TotalPrice: 480,
			Status:     domain.BookingConfirmed,
		},
		{
			// back-to-back with the previous stay, same-day turnover
			PropertyID: seedProperties[0].ID,
			UserID:     guests[1].ID,
			StartDate:  base.AddDate(0, 0, 4),
			EndDate:    base.AddDate(0, 0, 7),
			TotalPrice: 360,
			Status:     domain.BookingConfirmed,
		},
		{
			PropertyID: seedProperties[1].ID,
			UserID:     guests[2].ID,
			StartDate:  base.AddDate(0, 0, 10),
			EndDate:    base.AddDate(0, 0, 12),
			TotalPrice: 190,
			Status:     domain.BookingCancelled,
		},
	}
	for _, b := range seedBookings {
		if err := bookings.CreateIfAvailable(ctx, b); err != nil {
			log.Fatal("seed booking:", err)
		}
	}

	// ================== REVIEWS ==================
	log.Println("Creating reviews...")

	seedReviews := []*domain.Review{
		{PropertyID: seedProperties[0].ID, UserID: guests[0].ID, Rating: 5, Comment: "Perfect location, spotless flat."},
		{PropertyID: seedProperties[0].ID, UserID: guests[1].ID, Rating: 3, Comment: "Nice place, noisy street."},
		{PropertyID: seedProperties[0].ID, UserID: guests[2].ID, Rating: 4, Comment: "Would come back."},
		{PropertyID: seedProperties[1].ID, UserID: guests[2].ID, Rating: 5, Comment: "The view alone is worth it."},
	}
	for _, rv := range seedReviews {
		if err := reviews.Create(ctx, rv); err != nil {
			log.Fatal("seed review:", err)
		}
	}

	log.Println("Seed complete.")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
