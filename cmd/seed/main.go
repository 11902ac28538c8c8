package main

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotelbook/internal/config"
	"hotelbook/internal/database"
	"hotelbook/internal/domain"
	"hotelbook/internal/pkg/logger"
)

const demoPassword = "password123"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Info("cleaning old data")
	for _, table := range []string{"notifications", "negotiation_events", "bookings", "negotiations", "rooms", "hotels", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("cleanup %s: %v", table, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// ================== USERS ==================
	users := []*domain.User{
		{Email: "admin@hotelbook.local", Name: "Admin", Role: domain.RoleAdmin},
		{Email: "host@hotelbook.local", Name: "Hannah Host", Role: domain.RoleHost},
		{Email: "host2@hotelbook.local", Name: "Henri Host", Role: domain.RoleHost},
		{Email: "guest@hotelbook.local", Name: "Gina Guest", Role: domain.RoleGuest},
		{Email: "guest2@hotelbook.local", Name: "Gus Guest", Role: domain.RoleGuest},
	}
	for _, u := range users {
		u.PasswordHash = string(hash)
		mustCreate(log, db, u)
	}
	hosts := []*domain.User{users[1], users[2]}

	// ================== HOTELS & ROOMS ==================
	hotels := []struct {
		name, city, address string
	}{
		{"Seaside Inn", "Nice", "12 Promenade des Anglais"},
		{"Old Town Lodge", "Prague", "Karlova 5"},
		{"Harbour View", "Lisbon", "Rua do Alecrim 40"},
		{"Mountain Rest", "Innsbruck", "Maria-Theresien-Strasse 9"},
	}
	roomNames := []string{"Single", "Double", "Twin", "Suite"}

	rooms := 0
	for i, h := range hotels {
		hotel := &domain.Hotel{
			OwnerID:     hosts[i%len(hosts)].ID,
			Name:        h.name,
			City:        h.city,
			Address:     h.address,
			Description: h.name + " in " + h.city,
		}
		mustCreate(log, db, hotel)

		for j, name := range roomNames {
			room := &domain.Room{
				HotelID:  hotel.ID,
				Name:     name,
				Capacity: j + 1,
				Price:    float64(80 + j*40 + rand.Intn(5)*10),
			}
			mustCreate(log, db, room)
			rooms++
		}
	}

	log.WithFields(logrus.Fields{
		"users":  len(users),
		"hotels": len(hotels),
		"rooms":  rooms,
	}).Infof("seed complete, every demo account uses password %q", demoPassword)
}

func mustCreate(log *logrus.Logger, db *gorm.DB, v interface{}) {
	if err := db.Create(v).Error; err != nil {
		log.Fatalf("create %T: %v", v, err)
	}
}
