package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"stadly/internal/customers"
	"stadly/internal/events"
	"stadly/internal/ledger"
	"stadly/internal/shared/config"
	"stadly/internal/shared/database"
	"stadly/internal/stadiums"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

// sectionSpec mirrors the seating blocks of a real mid-size stadium.
type sectionSpec struct {
	name        string
	seatType    string
	rows        int
	seatsPerRow int
	basePrice   float64
	hasShade    bool
}

var stadiumSections = []sectionSpec{
	{"North Lower", stadiums.SeatTypeStandard, 20, 25, 85, false},
	{"South Lower", stadiums.SeatTypeStandard, 20, 25, 95, true},
	{"East Lower", stadiums.SeatTypeStandard, 18, 22, 75, false},
	{"West Lower", stadiums.SeatTypeStandard, 18, 22, 75, true},
	{"North Club", stadiums.SeatTypePremium, 12, 20, 120, true},
	{"South Club", stadiums.SeatTypePremium, 12, 20, 140, true},
	{"North Upper", stadiums.SeatTypeEconomy, 25, 28, 45, false},
	{"South Upper", stadiums.SeatTypeEconomy, 25, 28, 55, true},
	{"East General", stadiums.SeatTypeEconomy, 40, 38, 20, false},
	{"West General", stadiums.SeatTypeEconomy, 40, 38, 20, true},
	{"VIP Box A", stadiums.SeatTypeVIP, 3, 8, 250, true},
	{"VIP Box B", stadiums.SeatTypeVIP, 3, 8, 250, true},
	{"Corporate Box", stadiums.SeatTypeCorporate, 4, 15, 200, true},
}

func main() {
	fmt.Println("🌱 Starting Stadly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"payments",
		"tickets",
		"booking_seats",
		"bookings",
		"seat_availabilities",
		"events",
		"seats",
		"stadiums",
		"customers",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds customers, one stadium with its full seat inventory,
// and an on-sale event with materialized availability.
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedCustomers(); err != nil {
		return fmt.Errorf("failed to seed customers: %w", err)
	}

	stadiumID, err := s.SeedStadium()
	if err != nil {
		return fmt.Errorf("failed to seed stadium: %w", err)
	}

	seatIDs, err := s.SeedSeats(stadiumID)
	if err != nil {
		return fmt.Errorf("failed to seed seats: %w", err)
	}

	if err := s.SeedEvent(ctx, stadiumID, seatIDs); err != nil {
		return fmt.Errorf("failed to seed event: %w", err)
	}

	// Clear Redis so availability reads start fresh.
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedCustomers creates 1 admin and 2 regular customers.
func (s *Seeder) SeedCustomers() error {
	fmt.Println("  👤 Seeding customers...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	customersData := []struct {
		firstName string
		lastName  string
		email     string
		role      customers.Role
	}{
		{"Admin", "User", "admin@stadly.dev", customers.RoleAdmin},
		{"Sarah", "Chen", "sarah.chen@example.com", customers.RoleCustomer},
		{"Liam", "Patel", "liam.patel@example.com", customers.RoleCustomer},
	}

	for _, data := range customersData {
		customer := customers.Customer{
			ID:        uuid.New(),
			FirstName: data.firstName,
			LastName:  data.lastName,
			Email:     data.email,
			Password:  string(hashedPassword),
			Role:      data.role,
		}
		if err := s.db.PostgreSQL.Create(&customer).Error; err != nil {
			return fmt.Errorf("failed to create customer %s: %w", data.email, err)
		}
		fmt.Printf("    ✅ Created customer: %s (%s)\n", customer.Email, customer.Role)
	}

	return nil
}

// SeedStadium creates the demo venue.
func (s *Seeder) SeedStadium() (uuid.UUID, error) {
	fmt.Println("  🏟️  Seeding stadium...")

	capacity := 0
	for _, spec := range stadiumSections {
		capacity += spec.rows * spec.seatsPerRow
	}

	stadium := stadiums.Stadium{
		ID:          uuid.New(),
		Name:        "Harbourside Stadium",
		Location:    "Sydney, NSW",
		Capacity:    capacity,
		OpeningYear: 1999,
		Description: "Multi-purpose stadium on the harbour foreshore.",
	}
	if err := s.db.PostgreSQL.Create(&stadium).Error; err != nil {
		return uuid.Nil, err
	}

	fmt.Printf("    ✅ Created stadium: %s (capacity %d)\n", stadium.Name, capacity)
	return stadium.ID, nil
}

// SeedSeats materializes every section's seat grid.
func (s *Seeder) SeedSeats(stadiumID uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  💺 Seeding seats...")

	var seatIDs []uuid.UUID
	for _, spec := range stadiumSections {
		seats := make([]stadiums.Seat, 0, spec.rows*spec.seatsPerRow)
		for row := 1; row <= spec.rows; row++ {
			for num := 1; num <= spec.seatsPerRow; num++ {
				seat := stadiums.Seat{
					ID:         uuid.New(),
					StadiumID:  stadiumID,
					Section:    spec.name,
					Row:        fmt.Sprintf("%d", row),
					SeatNumber: fmt.Sprintf("%d", num),
					SeatType:   spec.seatType,
					BasePrice:  spec.basePrice,
					HasShade:   spec.hasShade,
				}
				seats = append(seats, seat)
				seatIDs = append(seatIDs, seat.ID)
			}
		}
		if err := s.db.PostgreSQL.CreateInBatches(&seats, 500).Error; err != nil {
			return nil, fmt.Errorf("failed to create section %s: %w", spec.name, err)
		}
		fmt.Printf("    ✅ Created section: %s (%d seats, $%.0f)\n", spec.name, len(seats), spec.basePrice)
	}

	return seatIDs, nil
}

// SeedEvent creates one on-sale event next weekend with availability
// rows for every seat.
func (s *Seeder) SeedEvent(ctx context.Context, stadiumID uuid.UUID, seatIDs []uuid.UUID) error {
	fmt.Println("  🎫 Seeding event...")

	startsAt := time.Now().UTC().AddDate(0, 0, 7).Truncate(time.Hour)
	event := events.Event{
		ID:        uuid.New(),
		StadiumID: stadiumID,
		Name:      "Sydney Strikers vs Melbourne Mavericks",
		HomeTeam:  "Sydney Strikers",
		AwayTeam:  "Melbourne Mavericks",
		Status:    events.EventStatusOnSale,
		StartsAt:  startsAt,
		EndsAt:    startsAt.Add(4 * time.Hour),
	}
	if err := s.db.PostgreSQL.Create(&event).Error; err != nil {
		return err
	}

	ledgerRepo := ledger.NewRepository(s.db.PostgreSQL)
	if err := ledgerRepo.MaterializeForEvent(ctx, event.ID, seatIDs); err != nil {
		return fmt.Errorf("failed to materialize availability: %w", err)
	}

	fmt.Printf("    ✅ Created event: %s (%d seats on sale)\n", event.Name, len(seatIDs))
	return nil
}
