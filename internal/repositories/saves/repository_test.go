package saves_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-director/internal/errors"
	"github.com/KirkDiggler/rpg-director/internal/repositories/saves"
	"github.com/KirkDiggler/rpg-director/internal/testutils"
)

// RepositoryTestSuite runs the same behaviour checks against every backend
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func(t *testing.T) saves.Repository
	repo    saves.Repository
	ctx     context.Context
	base    time.Time
}

func (s *RepositoryTestSuite) SetupTest() {
	s.repo = s.newRepo(s.T())
	s.ctx = context.Background()
	s.base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *RepositoryTestSuite) slot(id string, offset time.Duration) *saves.Slot {
	return &saves.Slot{
		Summary: saves.Summary{
			ID:            id,
			CharacterName: "Mara",
			Turns:         3,
			SavedAt:       s.base.Add(offset),
		},
		Document: []byte(`{"version":2,"character":{"name":"Mara"}}`),
	}
}

func (s *RepositoryTestSuite) TestPutAndGet() {
	_, err := s.repo.Put(s.ctx, saves.PutInput{Slot: s.slot("slot_1", 0)})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, saves.GetInput{ID: "slot_1"})
	s.Require().NoError(err)

	s.Equal("slot_1", out.Slot.ID)
	s.Equal("Mara", out.Slot.CharacterName)
	s.Equal(3, out.Slot.Turns)
	s.True(s.base.Equal(out.Slot.SavedAt))
	s.JSONEq(`{"version":2,"character":{"name":"Mara"}}`, string(out.Slot.Document))
}

func (s *RepositoryTestSuite) TestPutOverwrites() {
	_, err := s.repo.Put(s.ctx, saves.PutInput{Slot: s.slot("slot_1", 0)})
	s.Require().NoError(err)

	updated := s.slot("slot_1", time.Minute)
	updated.Turns = 9
	_, err = s.repo.Put(s.ctx, saves.PutInput{Slot: updated})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, saves.GetInput{ID: "slot_1"})
	s.Require().NoError(err)
	s.Equal(9, out.Slot.Turns)

	list, err := s.repo.List(s.ctx, saves.ListInput{})
	s.Require().NoError(err)
	s.Len(list.Summaries, 1)
}

func (s *RepositoryTestSuite) TestListNewestFirst() {
	for i, id := range []string{"a", "b", "c"} {
		_, err := s.repo.Put(s.ctx, saves.PutInput{Slot: s.slot(id, time.Duration(i)*time.Minute)})
		s.Require().NoError(err)
	}

	out, err := s.repo.List(s.ctx, saves.ListInput{})
	s.Require().NoError(err)

	s.Require().Len(out.Summaries, 3)
	s.Equal("c", out.Summaries[0].ID)
	s.Equal("b", out.Summaries[1].ID)
	s.Equal("a", out.Summaries[2].ID)
}

func (s *RepositoryTestSuite) TestListEmpty() {
	out, err := s.repo.List(s.ctx, saves.ListInput{})
	s.Require().NoError(err)
	s.Empty(out.Summaries)
}

func (s *RepositoryTestSuite) TestDelete() {
	_, err := s.repo.Put(s.ctx, saves.PutInput{Slot: s.slot("slot_1", 0)})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, saves.DeleteInput{ID: "slot_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, saves.GetInput{ID: "slot_1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, saves.DeleteInput{ID: "slot_1"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestValidation() {
	testCases := []struct {
		name string
		call func() error
	}{
		{"nil slot", func() error { _, err := s.repo.Put(s.ctx, saves.PutInput{}); return err }},
		{"empty id", func() error {
			sl := s.slot("", 0)
			_, err := s.repo.Put(s.ctx, saves.PutInput{Slot: sl})
			return err
		}},
		{"empty document", func() error {
			sl := s.slot("x", 0)
			sl.Document = nil
			_, err := s.repo.Put(s.ctx, saves.PutInput{Slot: sl})
			return err
		}},
		{"get without id", func() error { _, err := s.repo.Get(s.ctx, saves.GetInput{}); return err }},
		{"delete without id", func() error { _, err := s.repo.Delete(s.ctx, saves.DeleteInput{}); return err }},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.True(errors.IsInvalidArgument(tc.call()))
		})
	}
}

func (s *RepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, saves.GetInput{ID: "nope"})
	s.True(errors.IsNotFound(err))
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(*testing.T) saves.Repository { return saves.NewInMemory() },
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(t *testing.T) saves.Repository {
			client, _ := testutils.CreateTestRedisClient(t)
			repo, err := saves.NewRedis(&saves.RedisConfig{Client: client})
			if err != nil {
				t.Fatal(err)
			}
			return repo
		},
	})
}

func TestRedisRepositoryFailures(t *testing.T) {
	client, mr := testutils.CreateTestRedisClient(t)
	repo, err := saves.NewRedis(&saves.RedisConfig{Client: client})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, mr.Set("save:broken", "{"))
	_, err = repo.Get(ctx, saves.GetInput{ID: "broken"})
	assert.True(t, errors.IsDataLoss(err), "corrupt record: %v", err)

	mr.Close()
	_, err = repo.Get(ctx, saves.GetInput{ID: "broken"})
	assert.True(t, errors.IsRetryable(err), "closed server: %v", err)
}

func TestSQLiteRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(t *testing.T) saves.Repository {
			repo, err := saves.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "saves.db"))
			if err != nil {
				t.Fatal(err)
			}
			t.Cleanup(func() { _ = repo.Close() })
			return repo
		},
	})
}

func TestNewRedisRequiresClient(t *testing.T) {
	_, err := saves.NewRedis(&saves.RedisConfig{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
