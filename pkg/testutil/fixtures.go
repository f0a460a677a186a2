package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
)

// FixtureFactory creates test fixtures with sensible defaults
type FixtureFactory struct {
	sequence int
}

// NewFixtureFactory creates a new fixture factory
func NewFixtureFactory() *FixtureFactory {
	return &FixtureFactory{sequence: 0}
}

func (f *FixtureFactory) next() int {
	f.sequence++
	return f.sequence
}

// Process returns a populated process record with distinct values per
// call.
func (f *FixtureFactory) Process() *domain.Process {
	n := f.next()
	now := time.Now().UTC().Truncate(time.Second)

	p := &domain.Process{
		ProcessName:     fmt.Sprintf("Testprozess %d", n),
		Status:          "In Bearbeitung",
		Erfasser:        fmt.Sprintf("Berater %d", n),
		Erfassungsdatum: &now,
		IstAnswers: domain.IstAnswers{
			ProcessSteps:      "Eingang, Prüfung, Freigabe",
			ResponsiblePerson: "Frau Beispiel",
			CurrentSystems:    "SAP, Outlook",
			Bottlenecks:       "Manuelle Übertragung",
		},
		SollDescription: "Automatisierte Freigabe mit Workflow",
		IstCosts: domain.IstCosts{
			PersonnelHours: 10,
			HourlyRate:     50,
			SystemCosts:    100,
			OtherCosts:     20,
		},
		EffortDetails: domain.EffortDetails{
			ConceptionHours:        10,
			DevelopmentHours:       40,
			TestingHours:           10,
			DeploymentHours:        5,
			HourlyRateAtEstimation: 100,
		},
		ROIData: domain.ROIData{
			EfficiencySavings: 1200,
			InvestmentCost:    6500,
		},
	}
	p.NormalizeLists()

	return p
}

// UserFixture represents test user data
type UserFixture struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
}

// User returns a user fixture with a bcrypt hash of the given password.
func (f *FixtureFactory) User(password string) *UserFixture {
	n := f.next()
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	return &UserFixture{
		ID:           uuid.New().String(),
		Email:        fmt.Sprintf("berater%d@example.com", n),
		PasswordHash: string(hash),
		Name:         fmt.Sprintf("Berater %d", n),
		Role:         "consultant",
	}
}
