package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/gildedernacht/olymp/internal/api"
	"github.com/gildedernacht/olymp/internal/factory"
	"github.com/gildedernacht/olymp/internal/identity"
	"github.com/gildedernacht/olymp/internal/model"
	"github.com/gildedernacht/olymp/internal/registration"
	"github.com/gildedernacht/olymp/internal/testutil"
)

type CLISuite struct {
	suite.Suite
	app     *factory.TestApp
	server  *httptest.Server
	cfgFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:       testutil.NopLogger(),
		Version:      "test",
		Clock:        s.app.Clock,
		AuthService:  s.app.AuthService,
		EntryService: s.app.EntryService,
		MaxBodyBytes: 100_000,
	}))

	s.cfgFile = filepath.Join(s.T().TempDir(), "config.yaml")
	config := "server: " + s.server.URL + "\nregistration-resource: " + factory.TestRegistrationResource + "\n"
	s.Require().NoError(os.WriteFile(s.cfgFile, []byte(config), 0o600))
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
}

// run executes the CLI and returns stdout
func (s *CLISuite) run(args ...string) (string, error) {
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", s.cfgFile}, args...))
	err := cmd.ExecuteContext(s.T().Context())
	return stdout.String(), err
}

func (s *CLISuite) TestStatus() {
	out, err := s.run("status")
	s.Require().NoError(err)
	s.Contains(out, "Version: test")
	s.Contains(out, "2026-05-01T12:00:00Z")
}

func (s *CLISuite) TestStatusJSON() {
	out, err := s.run("status", "-o", "json")
	s.Require().NoError(err)

	var status map[string]any
	s.Require().NoError(json.Unmarshal([]byte(out), &status))
	s.Equal("test", status["version"])
}

func (s *CLISuite) TestUnknownOutputFormat() {
	_, err := s.run("status", "-o", "xml")
	s.Error(err)
}

func (s *CLISuite) TestHash() {
	out, err := s.run("hash", "a@unknown.tld")
	s.Require().NoError(err)
	s.Equal(identity.Hash("a@unknown.tld")+"\n", out)
}

func (s *CLISuite) TestHashPassword() {
	out, err := s.run("hash-password", "secret", "-o", "json")
	s.Require().NoError(err)

	var result HashResult
	s.Require().NoError(json.Unmarshal([]byte(out), &result))
	s.NoError(bcrypt.CompareHashAndPassword([]byte(result.Hash), []byte("secret")))
}

func (s *CLISuite) TestEntriesAddAndList() {
	resource := strings.Repeat("1", 64)

	out, err := s.run("entries", "add", resource, "--public", `{"topic":"hello"}`, "--private", `{"email":"a@unknown.tld"}`)
	s.Require().NoError(err)
	s.Contains(out, "Entry added")

	out, err = s.run("entries", "list", resource, "-o", "json")
	s.Require().NoError(err)

	var entries []model.Entry
	s.Require().NoError(json.Unmarshal([]byte(out), &entries))
	s.Require().Len(entries, 1)
	s.JSONEq(`{"topic":"hello"}`, string(entries[0].PublicBody))
	s.JSONEq(`{}`, string(entries[0].PrivateBody))
}

func (s *CLISuite) TestEntriesListAsAdmin() {
	resource := strings.Repeat("1", 64)
	_, err := s.run("entries", "add", resource, "--private", `{"email":"a@unknown.tld"}`)
	s.Require().NoError(err)

	out, err := s.run("entries", "list", resource,
		"--admin-user", factory.TestAdminUser, "--admin-password", factory.TestAdminPassword)
	s.Require().NoError(err)
	s.Contains(out, "a@unknown.tld")
}

func (s *CLISuite) TestEntriesListEmpty() {
	out, err := s.run("entries", "list", strings.Repeat("2", 64))
	s.Require().NoError(err)
	s.Contains(out, "No entries")
}

func (s *CLISuite) TestEntriesRejectsBadInput() {
	_, err := s.run("entries", "list", "nope")
	s.ErrorIs(err, model.ErrInvalidParameter)

	_, err = s.run("entries", "add", strings.Repeat("1", 64), "--public", `{`)
	s.Error(err)

	_, err = s.run("entries", "add", strings.Repeat("1", 64), "--public", `[1]`)
	s.ErrorIs(err, model.ErrInvalidParameter)
}

func (s *CLISuite) TestRegisterAndRounds() {
	out, err := s.run("register", "--round", "EnglishMan-0", "--name", "Ann", "--email", "ann@unknown.tld")
	s.Require().NoError(err)
	s.Contains(out, "Registered for EnglishMan-0")

	out, err = s.run("register", "--round", "EnglishMan-0", "--name", "Ann", "--email", "ann@unknown.tld", "-o", "json")
	s.Require().NoError(err)
	var receipt registration.Receipt
	s.Require().NoError(json.Unmarshal([]byte(out), &receipt))
	s.True(receipt.Repeat)
	s.Equal(identity.Hash("ann@unknown.tld"), receipt.UserID)

	out, err = s.run("rounds", "-o", "json")
	s.Require().NoError(err)
	var reports []model.CapacityReport
	s.Require().NoError(json.Unmarshal([]byte(out), &reports))
	for _, r := range reports {
		if r.RoundID == "EnglishMan-0" {
			s.Equal(1, r.PlayersCurrent)
			s.Equal(1, r.PlayersRemaining)
		}
	}

	out, err = s.run("rounds")
	s.Require().NoError(err)
	s.Contains(out, "EnglishMan-0")
	s.Contains(out, "1/2")
}

func (s *CLISuite) TestRegisterFullRound() {
	for _, email := range []string{"a@unknown.tld", "b@unknown.tld"} {
		_, err := s.run("register", "--round", "EnglishMan-0", "--name", "x", "--email", email)
		s.Require().NoError(err)
	}

	_, err := s.run("register", "--round", "EnglishMan-0", "--name", "x", "--email", "c@unknown.tld")
	s.ErrorIs(err, model.ErrCapacityExceeded)

	out, err := s.run("rounds")
	s.Require().NoError(err)
	s.Contains(out, "2/2 full")
}

func (s *CLISuite) TestWithdraw() {
	_, err := s.run("register", "--round", "EnglishMan-0", "--name", "x", "--email", "a@unknown.tld")
	s.Require().NoError(err)

	out, err := s.run("withdraw", "--round", "EnglishMan-0", "--email", "a@unknown.tld")
	s.Require().NoError(err)
	s.Contains(out, "Withdrawn from EnglishMan-0")

	log, err := s.app.EntryService.List(s.T().Context(), factory.TestRegistrationResource)
	s.Require().NoError(err)
	s.Len(log, 2)
}

func (s *CLISuite) TestRegisterRequiresFlags() {
	_, err := s.run("register", "--round", "EnglishMan-0")
	s.Error(err)
}

func (s *CLISuite) TestRegistrationNeedsResource() {
	s.Require().NoError(os.WriteFile(s.cfgFile, []byte("server: "+s.server.URL+"\n"), 0o600))

	_, err := s.run("rounds")
	s.ErrorIs(err, errNoRegistrationResource)
}

func (s *CLISuite) TestCatalogFile() {
	doc := `games:
  - id: Solo-0
    name: Solo
    playersMax: 1
rounds:
  - id: Solo-0
    gameId: Solo-0
    day: sunday
    from: 10
    to: 12
`
	path := filepath.Join(s.T().TempDir(), "catalog.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(doc), 0o600))

	out, err := s.run("rounds", "--catalog", path, "-o", "json")
	s.Require().NoError(err)

	var reports []model.CapacityReport
	s.Require().NoError(json.Unmarshal([]byte(out), &reports))
	s.Require().Len(reports, 1)
	s.Equal(model.RoundID("Solo-0"), reports[0].RoundID)
	s.Equal(1, reports[0].PlayersRemaining)
}
