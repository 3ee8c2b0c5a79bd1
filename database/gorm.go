package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahilchouksey/unifriend-api/config"
	"github.com/sahilchouksey/unifriend-api/model"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM(env *config.EnvironmentVariable, log logrus.FieldLogger) (*GORMStore, error) {
	// Build DSN (Data Source Name)
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		env.DB_HOST,
		env.DB_USER_NAME,
		env.DB_PASSWORD,
		env.DB_NAME,
		env.DB_PORT,
		env.DB_SSL_MODE,
	)

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Warn)
	if env.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		log.WithError(err).Error("Unable to connect to PostgreSQL with GORM")
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("Successfully connected to PostgreSQL Database with GORM.")

	return NewGORMStore(db, log), nil
}

// NewGORMStore wraps an already opened connection.
func NewGORMStore(db *gorm.DB, log logrus.FieldLogger) *GORMStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &GORMStore{db: db, log: log}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	s.log.Info("Running GORM AutoMigrate for all models...")

	err := s.db.AutoMigrate(
		&model.Profile{},
		&model.University{},
		&model.Application{},
		&model.GlobalAdminGrant{},
		&model.UniversityAdminGrant{},
		&model.Registration{},
		&model.NewsletterSubscription{},
	)
	if err != nil {
		s.log.WithError(err).Error("Error running AutoMigrate")
		return err
	}

	s.log.Info("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	s.log.Info("Closing GORM PostgreSQL connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the GORM handle, used by the seeder.
func (s *GORMStore) DB() *gorm.DB {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func affected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func paginate(q *gorm.DB, page Page) *gorm.DB {
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}
	if page.Offset > 0 {
		q = q.Offset(page.Offset)
	}
	return q
}

// Profiles

func (s *GORMStore) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	var profile model.Profile
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

func (s *GORMStore) CreateProfile(ctx context.Context, profile *model.Profile) error {
	return s.db.WithContext(ctx).Create(profile).Error
}

func (s *GORMStore) UpdateProfile(ctx context.Context, profile *model.Profile) error {
	result := s.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", profile.ID).
		Select("email", "full_name", "attributes", "updated_at").
		Updates(profile)
	return affected(result)
}

// Universities

func (s *GORMStore) GetUniversity(ctx context.Context, id string) (*model.University, error) {
	var university model.University
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&university).Error; err != nil {
		return nil, notFound(err)
	}
	return &university, nil
}

func (s *GORMStore) ListUniversities(ctx context.Context, filter UniversityFilter) ([]model.University, error) {
	q := s.db.WithContext(ctx).Model(&model.University{})

	if filter.Location != "" {
		q = q.Where("location = ?", filter.Location)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.MinRating != nil {
		q = q.Where("rating >= ?", *filter.MinRating)
	}
	if filter.MaxRating != nil {
		q = q.Where("rating <= ?", *filter.MaxRating)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(address) LIKE ? OR LOWER(about) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var universities []model.University
	err := paginate(q.Order("name ASC").Order("id ASC"), Page{Limit: filter.Limit, Offset: filter.Offset}).
		Find(&universities).Error
	return universities, err
}

func (s *GORMStore) CreateUniversity(ctx context.Context, university *model.University) error {
	if university.ID == "" {
		university.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(university).Error
}

func (s *GORMStore) UpdateUniversity(ctx context.Context, university *model.University) error {
	result := s.db.WithContext(ctx).
		Model(&model.University{}).
		Where("id = ?", university.ID).
		Select("name", "address", "location", "type", "about", "rating", "courses", "attributes", "updated_at").
		Updates(university)
	return affected(result)
}

func (s *GORMStore) DeleteUniversity(ctx context.Context, id string) error {
	return affected(s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.University{}))
}

// Applications

func (s *GORMStore) CreateApplication(ctx context.Context, application *model.Application) error {
	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(application).Error
}

func (s *GORMStore) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	var application model.Application
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&application).Error; err != nil {
		return nil, notFound(err)
	}
	return &application, nil
}

func (s *GORMStore) GetStudentApplication(ctx context.Context, studentID, id string) (*model.Application, error) {
	var application model.Application
	err := s.db.WithContext(ctx).
		Where("id = ? AND student_id = ?", id, studentID).
		First(&application).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &application, nil
}

func (s *GORMStore) ListStudentApplications(ctx context.Context, studentID string, page Page) ([]model.Application, error) {
	var applications []model.Application
	q := s.db.WithContext(ctx).Where("student_id = ?", studentID).Order("submitted_at DESC")
	err := paginate(q, page).Find(&applications).Error
	return applications, err
}

func (s *GORMStore) ListUniversityApplications(ctx context.Context, universityID string, page Page) ([]model.Application, error) {
	var applications []model.Application
	q := s.db.WithContext(ctx).Where("university_id = ?", universityID).Order("submitted_at DESC")
	err := paginate(q, page).Find(&applications).Error
	return applications, err
}

func (s *GORMStore) UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus, at time.Time) (*model.Application, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": at})
	if err := affected(result); err != nil {
		return nil, err
	}
	return s.GetApplication(ctx, id)
}

func (s *GORMStore) CountDanglingApplications(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Application{}).
		Joins("LEFT JOIN universities ON universities.id = applications.university_id").
		Where("universities.id IS NULL").
		Count(&count).Error
	return count, err
}

// Role grants

func (s *GORMStore) GetGlobalAdminGrant(ctx context.Context, userID string) (*model.GlobalAdminGrant, error) {
	var grant model.GlobalAdminGrant
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&grant).Error; err != nil {
		return nil, notFound(err)
	}
	return &grant, nil
}

func (s *GORMStore) PutGlobalAdminGrant(ctx context.Context, grant *model.GlobalAdminGrant) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(grant).Error
}

func (s *GORMStore) DeleteGlobalAdminGrant(ctx context.Context, userID string) error {
	return affected(s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.GlobalAdminGrant{}))
}

func (s *GORMStore) ListGlobalAdminGrants(ctx context.Context) ([]model.GlobalAdminGrant, error) {
	var grants []model.GlobalAdminGrant
	err := s.db.WithContext(ctx).Order("granted_at ASC").Find(&grants).Error
	return grants, err
}

func (s *GORMStore) GetUniversityAdminGrant(ctx context.Context, userID string) (*model.UniversityAdminGrant, error) {
	var grant model.UniversityAdminGrant
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&grant).Error; err != nil {
		return nil, notFound(err)
	}
	return &grant, nil
}

func (s *GORMStore) PutUniversityAdminGrant(ctx context.Context, grant *model.UniversityAdminGrant) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(grant).Error
}

func (s *GORMStore) DeleteUniversityAdminGrant(ctx context.Context, userID string) error {
	return affected(s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UniversityAdminGrant{}))
}

func (s *GORMStore) ListUniversityAdminGrants(ctx context.Context) ([]model.UniversityAdminGrant, error) {
	var grants []model.UniversityAdminGrant
	err := s.db.WithContext(ctx).Order("granted_at ASC").Find(&grants).Error
	return grants, err
}

// Leads

func (s *GORMStore) CreateRegistration(ctx context.Context, registration *model.Registration) error {
	if registration.ID == "" {
		registration.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(registration).Error
}

func (s *GORMStore) ListRegistrations(ctx context.Context, page Page) ([]model.Registration, error) {
	var registrations []model.Registration
	err := paginate(s.db.WithContext(ctx).Order("created_at DESC"), page).Find(&registrations).Error
	return registrations, err
}

func (s *GORMStore) CreateSubscription(ctx context.Context, subscription *model.NewsletterSubscription) error {
	if subscription.ID == "" {
		subscription.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(subscription).Error
}

func (s *GORMStore) ListSubscriptions(ctx context.Context, page Page) ([]model.NewsletterSubscription, error) {
	var subscriptions []model.NewsletterSubscription
	err := paginate(s.db.WithContext(ctx).Order("created_at DESC"), page).Find(&subscriptions).Error
	return subscriptions, err
}
