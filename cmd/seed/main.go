// Command seed initializes the MongoDB database: it drops the POS
// collections, recreates the indexes, and inserts the default developer
// account and the starting vehicle price catalog.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/cetadcco/carwash-pos/internal/auth"
	"github.com/cetadcco/carwash-pos/internal/config"
	"github.com/cetadcco/carwash-pos/internal/db"
	"github.com/cetadcco/carwash-pos/internal/models"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	devPassword := flag.String("dev-password", "dev123", "password for the default developer account")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	database := client.Database(cfg.MongoDBName)

	// WARNING: this deletes existing data in these collections.
	for _, name := range []string{
		db.ColUsers, db.ColVehicles, db.ColOrders, db.ColOrdersReplica,
		db.ColSummaries, db.ColCounters, db.ColCustomers,
	} {
		if err := database.Collection(name).Drop(ctx); err != nil {
			log.WithError(err).WithField("collection", name).Fatal("failed to drop collection")
		}
	}

	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	passwordHash, err := authService.HashPassword(*devPassword)
	if err != nil {
		log.WithError(err).Fatal("failed to hash developer password")
	}

	now := time.Now()
	developer := models.User{
		Username:     "developer",
		FullName:     "Administrator",
		PasswordHash: passwordHash,
		Role:         models.RoleDeveloper,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	users := &db.MongoUserCollection{Collection: database.Collection(db.ColUsers)}
	if err := users.InsertUser(ctx, developer); err != nil {
		log.WithError(err).Fatal("failed to insert developer user")
	}

	addons := map[string]float64{
		"Wax":           80,
		"Buffing":       100,
		"Deep Cleaning": 150,
		"Engine Wash":   120,
	}

	catalog := []models.Vehicle{
		{
			VehicleName: "Car",
			Bases: map[string]models.BaseService{
				"Bodywash":             {Price: 200, Vac: false},
				"Bodywash with Vacuum": {Price: 250, Vac: true},
				"Vacuum Only":          {Price: 50, Vac: true},
				"Spray Only":           {Price: 100, Vac: false},
			},
			Addons:    addons,
			CreatedAt: now,
		},
		{
			VehicleName: "SUV",
			Bases: map[string]models.BaseService{
				"Bodywash":             {Price: 250, Vac: false},
				"Bodywash with Vacuum": {Price: 300, Vac: true},
				"Vacuum Only":          {Price: 70, Vac: true},
				"Spray Only":           {Price: 120, Vac: false},
			},
			Addons:    addons,
			CreatedAt: now,
		},
	}

	vehicles := &db.MongoVehicleCollection{Collection: database.Collection(db.ColVehicles)}
	for _, vehicle := range catalog {
		if err := vehicles.InsertVehicle(ctx, vehicle); err != nil {
			log.WithError(err).WithField("vehicle", vehicle.VehicleName).Fatal("failed to insert vehicle")
		}
	}

	// Start order numbering from 1.
	_, err = database.Collection(db.ColCounters).InsertOne(ctx, bson.M{"_id": "orders", "seq": int64(0)})
	if err != nil {
		log.WithError(err).Fatal("failed to initialize counters")
	}

	log.WithFields(log.Fields{
		"database": cfg.MongoDBName,
		"users":    1,
		"vehicles": len(catalog),
	}).Info("database setup completed")
}
