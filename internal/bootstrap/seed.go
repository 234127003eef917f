package bootstrap

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Alxpy/backSistDent/internal/models"
	"github.com/Alxpy/backSistDent/internal/repository"
	"github.com/Alxpy/backSistDent/internal/utils"
)

// Seeder runs the startup seed sequence. Every step is gated on an existence
// check so restarting the process never duplicates documents. Roles must be
// seeded before the admin user, which references the admin role by id.
type Seeder struct {
	db         *mongo.Database
	roles      *repository.RoleRepository
	users      *repository.UserRepository
	patients   *repository.PatientRepository
	treatments *repository.TreatmentRepository
	log        *zap.Logger

	adminEmail    string
	adminPassword string
}

func NewSeeder(db *mongo.Database, log *zap.Logger, adminEmail, adminPassword string) *Seeder {
	return &Seeder{
		db:            db,
		roles:         repository.NewRoleRepository(db),
		users:         repository.NewUserRepository(db),
		patients:      repository.NewPatientRepository(db),
		treatments:    repository.NewTreatmentRepository(db),
		log:           log,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

// Run executes the full sequence: unique indexes, roles, admin user, sample
// patients, sample treatments.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.ensureIndexes(ctx); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}
	if err := s.seedRoles(ctx); err != nil {
		return fmt.Errorf("seeding roles: %w", err)
	}
	if err := s.seedAdminUser(ctx); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	if err := s.seedPatients(ctx); err != nil {
		return fmt.Errorf("seeding patients: %w", err)
	}
	if err := s.seedTreatments(ctx); err != nil {
		return fmt.Errorf("seeding treatments: %w", err)
	}
	return nil
}

// uniqueIndexes declares the unique constraints the handlers depend on for
// duplicate-key rejection: one account per email, one patient per CI.
func uniqueIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		"users": {{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		"patients": {{
			Keys:    bson.D{{Key: "ci", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}
}

// CreateMany is a no-op for indexes that already exist, so this stays
// idempotent across restarts.
func (s *Seeder) ensureIndexes(ctx context.Context) error {
	for coll, indexes := range uniqueIndexes() {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("collection %s: %w", coll, err)
		}
	}
	return nil
}

func (s *Seeder) seedRoles(ctx context.Context) error {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Clinic administrator"},
		{Name: models.RoleDentist, Description: "Practicing dentist"},
		{Name: models.RoleAssistant, Description: "Front-desk assistant"},
		{Name: models.RolePatient, Description: "Registered patient"},
	}
	for i := range roles {
		if _, err := s.roles.FindByName(ctx, roles[i].Name); err == nil {
			continue
		} else if err != mongo.ErrNoDocuments {
			return err
		}
		if err := s.roles.Insert(ctx, &roles[i]); err != nil {
			return err
		}
		s.log.Info("seeded role", zap.String("role", roles[i].Name))
	}
	return nil
}

func (s *Seeder) seedAdminUser(ctx context.Context) error {
	if s.adminPassword == "" {
		s.log.Warn("ADMIN_PASSWORD not set, skipping admin user seed")
		return nil
	}
	if _, err := s.users.FindByEmail(ctx, s.adminEmail); err == nil {
		return nil
	} else if err != mongo.ErrNoDocuments {
		return err
	}

	adminRole, err := s.roles.FindByName(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	hashed, err := utils.HashPassword(s.adminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		FirstName: "Admin",
		LastName:  "User",
		Email:     s.adminEmail,
		Password:  hashed,
		RoleID:    adminRole.ID,
		IsActive:  true,
	}
	if err := s.users.Insert(ctx, &admin); err != nil {
		return err
	}
	s.log.Info("seeded admin user", zap.String("email", s.adminEmail))
	return nil
}

func (s *Seeder) seedPatients(ctx context.Context) error {
	count, err := s.patients.Count(ctx)
	if err != nil || count > 0 {
		return err
	}

	samples := []models.Patient{
		{
			Name: "María Fernández", CI: "7894561", Gender: "female",
			Phone: "+59170123456", Email: "maria.fernandez@example.com",
			Address:  &models.Address{City: "La Paz", Zone: "Sopocachi"},
			IsActive: true,
			MedicalRecords: []models.MedicalRecord{
				{Type: "allergy", Name: "Penicillin", Severity: "high"},
			},
		},
		{
			Name: "Jorge Quispe", CI: "6543219", Gender: "male",
			Phone: "+59171987654",
			Address:  &models.Address{City: "El Alto"},
			IsActive: true,
		},
	}
	for i := range samples {
		if err := s.patients.Insert(ctx, &samples[i]); err != nil {
			return err
		}
	}
	s.log.Info("seeded sample patients", zap.Int("count", len(samples)))
	return nil
}

func (s *Seeder) seedTreatments(ctx context.Context) error {
	count, err := s.treatments.Count(ctx)
	if err != nil || count > 0 {
		return err
	}

	samples := []models.Treatment{
		{Name: "Dental cleaning", Description: "Routine prophylaxis", Price: 150, Duration: 30, IsActive: true},
		{Name: "Composite filling", Description: "Single-surface restoration", Price: 250, Duration: 45, IsActive: true},
		{Name: "Root canal", Description: "Endodontic treatment", Price: 900, Duration: 90, IsActive: true},
		{Name: "Extraction", Description: "Simple tooth extraction", Price: 300, Duration: 30, IsActive: true},
	}
	for i := range samples {
		if err := s.treatments.Insert(ctx, &samples[i]); err != nil {
			return err
		}
	}
	s.log.Info("seeded sample treatments", zap.Int("count", len(samples)))
	return nil
}
