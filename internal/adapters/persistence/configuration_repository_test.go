package persistence_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/caveplan-go/internal/adapters/persistence"
	"github.com/andrescamacho/caveplan-go/internal/domain/dive"
	"github.com/andrescamacho/caveplan-go/test/helpers"
)

func testConfiguration() *dive.StandingConfiguration {
	return &dive.StandingConfiguration{
		ConsumptionRate:    20,
		SwimSpeed:          10,
		TankVolume:         22,
		FillPressure:       220,
		ConservatismMargin: 10,
		StageTime:          5,
		Stages: []*dive.StageDefinition{
			{ID: "s1", Name: "alu 80", TankVolume: 11, FillPressure: 220, ReserveInPrimary: true},
			{ID: "s2", TankVolume: 8, FillPressure: 200},
		},
	}
}

func TestConfigurationRepository_SaveAndLoad(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormConfigurationRepository(db, zerolog.Nop())
	cfg := testConfiguration()

	// Act
	require.NoError(t, repo.Save(context.Background(), cfg))
	loaded, err := repo.Load(context.Background())

	// Assert
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 20.0, loaded.ConsumptionRate)
	assert.Equal(t, 10.0, loaded.ConservatismMargin)
	require.Len(t, loaded.Stages, 2)
	assert.Equal(t, "s1", loaded.Stages[0].ID)
	assert.Equal(t, "alu 80", loaded.Stages[0].Name)
	assert.True(t, loaded.Stages[0].ReserveInPrimary)
	assert.Equal(t, 8.0, loaded.Stages[1].TankVolume)
	assert.False(t, loaded.Stages[1].ReserveInPrimary)
}

func TestConfigurationRepository_SaveOverwrites(t *testing.T) {
	// Arrange - only one standing configuration ever exists
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormConfigurationRepository(db, zerolog.Nop())
	require.NoError(t, repo.Save(context.Background(), testConfiguration()))

	updated := testConfiguration()
	updated.ConsumptionRate = 25
	updated.Stages = nil

	// Act
	require.NoError(t, repo.Save(context.Background(), updated))
	loaded, err := repo.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 25.0, loaded.ConsumptionRate)
	assert.Empty(t, loaded.Stages)
}

func TestConfigurationRepository_AbsentIsNilNotError(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormConfigurationRepository(db, zerolog.Nop())

	// Act
	loaded, err := repo.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestConfigurationRepository_CorruptStagesTreatedAsAbsent(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormConfigurationRepository(db, zerolog.Nop())
	require.NoError(t, repo.Save(context.Background(), testConfiguration()))

	err := db.Model(&persistence.ConfigurationModel{}).
		Where("id = ?", 1).
		Update("stages", "{not json").Error
	require.NoError(t, err)

	// Act
	loaded, err := repo.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
