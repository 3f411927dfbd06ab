// cmd/tools/seed-catalog/main.go

// seed-catalog inserts a set of demo businesses around central Bengaluru so a
// fresh environment has something to discover.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"discovery-service/internal/common/config"
	"discovery-service/internal/common/database"
	"discovery-service/internal/common/logger"
	"discovery-service/internal/models"
)

type seedBusiness struct {
	name        string
	description string
	lat, lng    float64
	category    string
	interaction models.InteractionType
	specialized []string
	delivery    bool
	featured    bool
	rating      float64
}

var seeds = []seedBusiness{
	{
		name: "Udupi Tiffin Room", description: "South Indian breakfast and meals",
		lat: 12.9752, lng: 77.6010, category: "restaurants", interaction: models.InteractionOrder,
		specialized: []string{"dosa", "filter coffee"}, delivery: true, featured: true, rating: 4.6,
	},
	{
		name: "Shear Genius Salon", description: "Unisex salon, walk-ins welcome",
		lat: 12.9691, lng: 77.5880, category: "salons", interaction: models.InteractionBook,
		specialized: []string{"haircut", "styling"}, featured: true, rating: 4.3,
	},
	{
		name: "City Family Clinic", description: "General physician and pediatrics",
		lat: 12.9665, lng: 77.6021, category: "clinics", interaction: models.InteractionConsult,
		specialized: []string{"pediatrics"}, rating: 4.8,
	},
	{
		name: "Fresh Basket Grocers", description: "Daily produce and household staples",
		lat: 12.9801, lng: 77.5903, category: "restaurants", interaction: models.InteractionOrder,
		specialized: []string{"grocery", "vegetables"}, delivery: true, rating: 4.1,
	},
}

var weeklyHours = models.OperatingHours{
	"monday":    {IsOpen: true, OpenTime: "09:00", CloseTime: "21:00"},
	"tuesday":   {IsOpen: true, OpenTime: "09:00", CloseTime: "21:00"},
	"wednesday": {IsOpen: true, OpenTime: "09:00", CloseTime: "21:00"},
	"thursday":  {IsOpen: true, OpenTime: "09:00", CloseTime: "21:00"},
	"friday":    {IsOpen: true, OpenTime: "09:00", CloseTime: "21:00"},
	"saturday":  {IsOpen: true, OpenTime: "10:00", CloseTime: "22:00"},
	"sunday":    {IsOpen: false},
}

func main() {
	dryRun := flag.Bool("dry-run", false, "print the records instead of inserting them")
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	if *dryRun {
		for _, s := range seeds {
			fmt.Printf("%s (%s) at %.4f,%.4f\n", s.name, s.category, s.lat, s.lng)
		}
		return
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pg.Ping(ctx); err != nil {
		zapLog.Fatal("postgres ping failed", zap.Error(err))
	}

	hoursJSON, err := json.Marshal(weeklyHours)
	if err != nil {
		zapLog.Fatal("marshal operating hours failed", zap.Error(err))
	}

	inserted := 0
	for _, s := range seeds {
		specializedJSON, err := json.Marshal(s.specialized)
		if err != nil {
			zapLog.Fatal("marshal specialized categories failed", zap.Error(err))
		}

		_, err = pg.Exec(ctx, `
			INSERT INTO businesses (
				id, owner_id, name, description,
				latitude, longitude, timezone, address,
				operating_hours, category_id, interaction_type,
				specialized_categories, supports_delivery,
				is_approved, status, is_featured,
				avg_rating, total_reviews, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
				$11, $12, $13, TRUE, 'active', $14, $15, 0, NOW(), NOW()
			)
			ON CONFLICT (name) DO NOTHING`,
			uuid.NewString(), uuid.NewString(), s.name, s.description,
			s.lat, s.lng, "Asia/Kolkata", "Bengaluru",
			hoursJSON, s.category, string(s.interaction),
			specializedJSON, s.delivery, s.featured, s.rating,
		)
		if err != nil {
			zapLog.Error("insert failed", zap.String("name", s.name), zap.Error(err))
			os.Exit(1)
		}
		inserted++
	}

	zapLog.Info("seed complete", zap.Int("businesses", inserted))
}
