package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, endpoint, content string) {
	t.Helper()
	path := filepath.Join(dir, FixtureFile(endpoint))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFixtureFile(t *testing.T) {
	assert.Equal(t, "estado.json", FixtureFile(EndpointEstado))
	assert.Equal(t, "tiempo-anio.json", FixtureFile(EndpointTiempoAnio))
	assert.Equal(t, "por-semestre-departamento-municipio.json", FixtureFile(EndpointSemestreDeptoMunicipio))
}

func TestMock_GetAggregate_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	writeFixture(t, dir, EndpointEstado, `{"RECUPERADO": 95.1, "FALLECIDO": 2.4}`)
	client := NewDashboardApiClientMock(dir)

	// Act
	raw, err := client.GetAggregate(context.Background(), EndpointEstado)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"RECUPERADO", "FALLECIDO"}, raw.Keys())
}

func TestMock_GetAggregate_MissingFixture(t *testing.T) {
	client := NewDashboardApiClientMock(t.TempDir())

	_, err := client.GetAggregate(context.Background(), EndpointSexo)

	assert.Error(t, err)
}

func TestMock_GetSemesterMatrix(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, EndpointSemestreDeptoMunicipio, `{"2021-S1": {"ANTIOQUIA": {"MEDELLIN": 10}}}`)
	client := NewDashboardApiClientMock(dir)

	matrix, err := client.GetSemesterMatrix(context.Background())

	require.NoError(t, err)
	assert.Contains(t, matrix, "2021-S1")
}

func TestMock_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := NewDashboardApiClientMock(t.TempDir())

	_, err := client.GetAggregate(ctx, EndpointEstado)

	assert.ErrorIs(t, err, context.Canceled)
}
