package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sahilchouksey/unifriend-api/model"
	"github.com/sirupsen/logrus"
)

// SeedGrantor is recorded as GrantedBy on grants the seeder creates.
const SeedGrantor = "system:seed"

// Seeder handles database seeding operations
type Seeder struct {
	store Storage
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewSeeder creates a new seeder instance
func NewSeeder(store Storage, log logrus.FieldLogger) *Seeder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Seeder{store: store, log: log, now: time.Now}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll(ctx context.Context, bootstrapAdminUID string) error {
	s.log.Info("Starting database seeding...")

	if err := s.SeedBootstrapAdmin(ctx, bootstrapAdminUID); err != nil {
		return fmt.Errorf("failed to seed bootstrap admin: %w", err)
	}

	if err := s.SeedUniversities(ctx); err != nil {
		return fmt.Errorf("failed to seed universities: %w", err)
	}

	s.log.Info("Database seeding completed successfully!")
	return nil
}

// SeedBootstrapAdmin makes uid a global admin, creating an empty profile
// for it when none exists. Without one global admin no grant can ever be
// issued through the API.
func (s *Seeder) SeedBootstrapAdmin(ctx context.Context, uid string) error {
	if uid == "" {
		s.log.Warn("BOOTSTRAP_ADMIN_UID not set, skipping bootstrap admin")
		return nil
	}

	now := s.now().UTC()

	if _, err := s.store.GetProfile(ctx, uid); err != nil {
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		profile := &model.Profile{ID: uid, CreatedAt: now, UpdatedAt: now}
		if err := s.store.CreateProfile(ctx, profile); err != nil {
			return err
		}
		s.log.WithField("user_id", uid).Info("Created bootstrap admin profile")
	}

	if _, err := s.store.GetGlobalAdminGrant(ctx, uid); err == nil {
		s.log.WithField("user_id", uid).Info("Bootstrap admin grant already exists, skipping...")
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	grant := &model.GlobalAdminGrant{UserID: uid, GrantedAt: now, GrantedBy: SeedGrantor}
	if err := s.store.PutGlobalAdminGrant(ctx, grant); err != nil {
		return err
	}

	s.log.WithField("user_id", uid).Info("Granted global admin to bootstrap identity")
	return nil
}

// SeedUniversities creates sample universities when the table is empty
func (s *Seeder) SeedUniversities(ctx context.Context) error {
	existing, err := s.store.ListUniversities(ctx, UniversityFilter{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.log.Info("Universities already exist, skipping...")
		return nil
	}

	now := s.now().UTC()
	for i := range sampleUniversities {
		university := sampleUniversities[i]
		university.Courses = append(university.Courses[:0:0], university.Courses...)
		university.CreatedAt = now
		university.UpdatedAt = now
		if err := s.store.CreateUniversity(ctx, &university); err != nil {
			return err
		}
	}

	s.log.WithField("count", len(sampleUniversities)).Info("Created sample universities")
	return nil
}

func rating(v float64) *float64 { return &v }

var sampleUniversities = []model.University{
	{
		Name:     "Amity University Online",
		Address:  "Sector 125, Noida, Uttar Pradesh",
		Location: "Noida",
		Type:     "Private",
		About:    "UGC-entitled online and distance programs.",
		Rating:   rating(4.3),
		Courses: []model.Course{
			{Name: "MBA", Trades: []model.Trade{
				{Name: "Finance", Fees: "1,79,000"},
				{Name: "Marketing", Fees: "1,79,000"},
			}},
			{Name: "BCA"},
		},
	},
	{
		Name:     "Manipal University Jaipur",
		Address:  "Dehmi Kalan, Jaipur, Rajasthan",
		Location: "Jaipur",
		Type:     "Private",
		About:    "NAAC A+ accredited university with online degrees.",
		Rating:   rating(4.1),
		Courses: []model.Course{
			{Name: "MCA", Trades: []model.Trade{
				{Name: "Data Science", Fees: "1,58,000"},
				{Name: "Cyber Security"},
			}},
		},
	},
	{
		Name:     "Indira Gandhi National Open University",
		Address:  "Maidan Garhi, New Delhi",
		Location: "Delhi",
		Type:     "Government",
		About:    "Central open university offering distance education.",
		Rating:   rating(4.0),
		Courses: []model.Course{
			{Name: "BA", Trades: []model.Trade{{Name: "History", Fees: "9,600"}}},
		},
	},
}

// RunSeeds is the entry point used by cmd/seed and application startup
func RunSeeds(ctx context.Context, store Storage, bootstrapAdminUID string, log logrus.FieldLogger) error {
	seeder := NewSeeder(store, log)
	return seeder.SeedAll(ctx, bootstrapAdminUID)
}
