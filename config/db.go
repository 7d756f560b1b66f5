package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rental-backend/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "rental_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Address{},
		&models.Account{},
		&models.Profile{},
		&models.Destination{},
		&models.Property{},
		&models.PropertyManager{},
		&models.Room{},
		&models.RoomPrice{},
		&models.Feature{},
		&models.RoomFeature{},
		&models.RoomPhoto{},
		&models.Proposal{},
		&models.Rental{},
	); err != nil {
		return err
	}

	if strings.EqualFold(envOrDefault("SEED_DATABASE", "true"), "true") {
		SeedDatabase()
	}
	return nil
}

// SeedDatabase gives a fresh install something searchable: one
// neighborhood destination, a boarding house and ten rooms with
// biweekly prices.
func SeedDatabase() {
	var destCount int64
	DB.Model(&models.Destination{}).Count(&destCount)
	if destCount > 0 {
		log.Println("Destinations already seeded")
		return
	}

	lat := -23.4854987
	lon := -46.5005576
	destination := models.Destination{
		Name:            "USP Leste",
		CountryID:       "BR",
		DestinationType: models.DestinationNeighborhood,
		Latitude:        &lat,
		Longitude:       &lon,
	}
	if err := DB.Create(&destination).Error; err != nil {
		log.Printf("warning: failed to seed destination: %v", err)
		return
	}

	address := models.Address{
		Street:       "Rua Apaura",
		Number:       "90",
		Neighborhood: "Vila Silvia",
		City:         "São Paulo",
		State:        "SP",
		ZipCode:      "08010-000",
	}
	if err := DB.Create(&address).Error; err != nil {
		log.Printf("warning: failed to seed address: %v", err)
		return
	}

	property := models.Property{
		Name:          "Pensão USP Leste",
		Type:          models.PropertyBoardingHouse,
		Rules:         "No smoking; visitors until 10pm.",
		AddressID:     &address.ID,
		DestinationID: destination.ID,
	}
	if err := DB.Create(&property).Error; err != nil {
		log.Printf("warning: failed to seed property: %v", err)
		return
	}

	featureNames := []string{"WiFi", "Air conditioning", "Fridge", "Desk", "Private bathroom"}
	features := make([]models.Feature, 0, len(featureNames))
	for _, name := range featureNames {
		f := models.Feature{Name: name}
		if err := DB.Create(&f).Error; err != nil {
			log.Printf("warning: failed to seed feature %s: %v", name, err)
			continue
		}
		features = append(features, f)
	}

	for i := 1; i <= 10; i++ {
		room := models.Room{
			RoomNumber:  fmt.Sprintf("%d", 100+i),
			Capacity:    1 + i%2,
			Shared:      i%2 == 0,
			PropertyID:  property.ID,
			AcceptMen:   true,
			AcceptWomen: false,
		}
		if err := DB.Create(&room).Error; err != nil {
			log.Printf("warning: failed to seed room %d: %v", 100+i, err)
			continue
		}

		price := models.RoomPrice{
			RoomID: room.ID,
			Period: models.PeriodBiweek,
			Price:  float64(400 + 40*i),
		}
		if err := DB.Create(&price).Error; err != nil {
			log.Printf("warning: failed to seed price for room %d: %v", room.ID, err)
		}

		photo := models.RoomPhoto{
			RoomID: room.ID,
			URL:    "https://photos.example.com/rooms/placeholder.jpg",
		}
		if err := DB.Create(&photo).Error; err != nil {
			log.Printf("warning: failed to seed photo for room %d: %v", room.ID, err)
		}

		for j, f := range features {
			if (i+j)%2 == 0 {
				link := models.RoomFeature{RoomID: room.ID, FeatureID: f.ID}
				if err := DB.Create(&link).Error; err != nil {
					log.Printf("warning: failed to seed feature link: %v", err)
				}
			}
		}
	}

	log.Println("Seed data created")
}
