package repository_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prozessdok/prozessdok-backend/internal/process/domain"
	"github.com/prozessdok/prozessdok-backend/internal/process/repository"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
	"github.com/prozessdok/prozessdok-backend/pkg/testutil"
)

var suite *testutil.IntegrationSuite

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	suite, err = testutil.NewIntegrationSuite(ctx)
	if err != nil {
		log.Fatalf("failed to create integration suite: %v", err)
	}
	defer suite.Cleanup(ctx)
	defer testutil.TerminateContainer(ctx)

	os.Exit(m.Run())
}

func TestProcessRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	suite.TruncateAll(t, ctx)

	repo := repository.NewProcessRepository(suite.DB)

	p := suite.Fixtures.Process()
	err := repo.Create(ctx, p)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	retrieved, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, p.ProcessName, retrieved.ProcessName)
	assert.Equal(t, "Eingang, Prüfung, Freigabe", retrieved.IstAnswers.ProcessSteps)
	assert.Equal(t, 50.0, retrieved.IstCosts.HourlyRate.Float())
	assert.Equal(t, 40.0, retrieved.EffortDetails.DevelopmentHours.Float())
	assert.Equal(t, 1200.0, retrieved.ROIData.EfficiencySavings.Float())
	assert.NotNil(t, retrieved.SpecificationFiles)
	assert.NotNil(t, retrieved.BPMNFiles)
}

func TestProcessRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	suite.TruncateAll(t, ctx)

	repo := repository.NewProcessRepository(suite.DB)

	_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestProcessRepository_Update(t *testing.T) {
	ctx := context.Background()
	suite.TruncateAll(t, ctx)

	repo := repository.NewProcessRepository(suite.DB)

	p := suite.Fixtures.Process()
	require.NoError(t, repo.Create(ctx, p))

	p.ProcessName = "Geänderter Prozess"
	p.SollAnswers.Goals = "Durchlaufzeit halbieren"
	p.SpecificationFiles = append(p.SpecificationFiles, domain.SpecificationFile{
		Name:    "Lastenheft_Test",
		Type:    domain.SpecTypeLastenheft,
		Content: "# Lastenheft",
	})
	require.NoError(t, repo.Update(ctx, p))

	updated, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, "Geänderter Prozess", updated.ProcessName)
	assert.Equal(t, "Durchlaufzeit halbieren", updated.SollAnswers.Goals)
	require.Len(t, updated.SpecificationFiles, 1)
	assert.Equal(t, domain.SpecTypeLastenheft, updated.SpecificationFiles[0].Type)
}

func TestProcessRepository_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	suite.TruncateAll(t, ctx)

	repo := repository.NewProcessRepository(suite.DB)

	p := suite.Fixtures.Process()
	p.ID = "00000000-0000-0000-0000-000000000000"

	err := repo.Update(ctx, p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestProcessRepository_List(t *testing.T) {
	ctx := context.Background()
	suite.TruncateAll(t, ctx)

	repo := repository.NewProcessRepository(suite.DB)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, suite.Fixtures.Process()))
	}

	results, total, err := repo.List(ctx, repository.ProcessListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, results, 3)
}

func TestProcessRepository_List_SortAndFilter(t *testing.T) {
	ctx := context.Background()
	suite.TruncateAll(t, ctx)

	repo := repository.NewProcessRepository(suite.DB)

	a := suite.Fixtures.Process()
	a.ProcessName = "Angebotserstellung"
	require.NoError(t, repo.Create(ctx, a))

	b := suite.Fixtures.Process()
	b.ProcessName = "Rechnungsfreigabe"
	b.Status = "Abgeschlossen"
	require.NoError(t, repo.Create(ctx, b))

	results, total, err := repo.List(ctx, repository.ProcessListOptions{Sort: "process_name"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, results, 2)
	assert.Equal(t, "Angebotserstellung", results[0].ProcessName)

	results, total, err = repo.List(ctx, repository.ProcessListOptions{Status: "Abgeschlossen"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, "Rechnungsfreigabe", results[0].ProcessName)

	results, _, err = repo.List(ctx, repository.ProcessListOptions{Search: "rechnungs"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Rechnungsfreigabe", results[0].ProcessName)
}

func TestProcessRepository_List_RejectsUnknownSort(t *testing.T) {
	ctx := context.Background()
	suite.TruncateAll(t, ctx)

	repo := repository.NewProcessRepository(suite.DB)

	_, _, err := repo.List(ctx, repository.ProcessListOptions{Sort: "drop_table"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestProcessRepository_Delete(t *testing.T) {
	ctx := context.Background()
	suite.TruncateAll(t, ctx)

	repo := repository.NewProcessRepository(suite.DB)

	p := suite.Fixtures.Process()
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.GetByID(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	err = repo.Delete(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestProcessRepository_Create_EmptyNameRejected(t *testing.T) {
	ctx := context.Background()
	suite.TruncateAll(t, ctx)

	repo := repository.NewProcessRepository(suite.DB)

	p := suite.Fixtures.Process()
	p.ProcessName = ""

	err := repo.Create(ctx, p)
	require.Error(t, err)
}
