package factory

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gildedernacht/olymp/internal/catalog"
	"github.com/gildedernacht/olymp/internal/dependencies/mocks"
	"github.com/gildedernacht/olymp/internal/services/auth"
	"github.com/gildedernacht/olymp/internal/storage/memory"
	"github.com/gildedernacht/olymp/internal/testutil"
)

// Credentials of the admin account of a TestApp
const (
	TestAdminUser     = "admin"
	TestAdminPassword = "hunter2"
)

// TestRegistrationResource is the guarded resource of a TestApp
var TestRegistrationResource = strings.Repeat("e", 64)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestAdminPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	authService := auth.New(auth.Config{Username: TestAdminUser, PasswordHash: string(hash)})

	app := newWithDependencies(store, mockClock, mockRandom, catalog.Default(), authService,
		TestRegistrationResource, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
