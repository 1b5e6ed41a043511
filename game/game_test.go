package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	game  *Game
	scene *fakeScene
	input *fakeInput
	audio *fakeAudio
	ui    *recordingUI
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		scene: newFakeScene(),
		input: &fakeInput{},
		audio: &fakeAudio{},
		ui:    &recordingUI{},
	}
	g, err := New(cfg, Collaborators{Scene: h.scene, Input: h.input, Audio: h.audio, UI: h.ui})
	require.NoError(t, err)
	h.game = g
	return h
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(testConfig(), Collaborators{Input: &fakeInput{}})
	assert.ErrorIs(t, err, ErrMissingScene)

	_, err = New(testConfig(), Collaborators{Scene: newFakeScene()})
	assert.ErrorIs(t, err, ErrMissingInput)

	cfg := testConfig()
	cfg.Enemy.AttackRange = 50
	_, err = New(cfg, Collaborators{Scene: newFakeScene(), Input: &fakeInput{}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = testConfig()
	cfg.Enemy.Patrol.Points = -1
	_, err = New(cfg, Collaborators{Scene: newFakeScene(), Input: &fakeInput{}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestOptionalCollaboratorsDefaultToNoop(t *testing.T) {
	g, err := New(testConfig(), Collaborators{Scene: newFakeScene(), Input: &fakeInput{fire: true}})
	require.NoError(t, err)
	require.NoError(t, g.StartGame(ModeSolo))

	g.Step(0.016)
	assert.Equal(t, 11, g.Player().Weapon.Ammo)
}

func TestStartGameSpawnsRound(t *testing.T) {
	h := newHarness(t, testConfig())
	require.NoError(t, h.game.StartGame(ModeSolo))

	session := h.game.Session()
	assert.Equal(t, StatePlaying, session.State)
	assert.Equal(t, 1, session.Round)
	assert.NotEmpty(t, session.MatchID.String())

	assert.Len(t, h.game.Enemies(), 5)
	assert.Equal(t, 5, h.scene.count(EntityKindEnemy))
	assert.Equal(t, 1, h.scene.count(EntityKindPlayer))

	assert.Equal(t, []float64{100}, h.ui.health)
	assert.Equal(t, []int{12}, h.ui.ammo)
	assert.Equal(t, 12, h.ui.maxAmmo)
	assert.Equal(t, []int{0}, h.ui.score)

	for _, e := range h.game.Enemies() {
		assert.Greater(t, e.Pos.Sub(h.game.Player().Pos).Len(), 0.0)
		assert.Len(t, e.Waypoints, 4)
	}
}

func TestDuelModeSpawnsSingleEnemy(t *testing.T) {
	h := newHarness(t, testConfig())
	require.NoError(t, h.game.StartGame(ModeDuel))
	assert.Len(t, h.game.Enemies(), 1)
	assert.Equal(t, ModeDuel, h.game.Session().Mode)
}

func TestStartGameRejectsUnknownMode(t *testing.T) {
	h := newHarness(t, testConfig())
	assert.Error(t, h.game.StartGame(Mode("coop")))
}

func TestEnemyVisualFailureSkipsEnemy(t *testing.T) {
	h := newHarness(t, testConfig())
	h.scene.failKinds[EntityKindEnemy] = true

	require.NoError(t, h.game.StartGame(ModeSolo))
	assert.Empty(t, h.game.Enemies())
}

func TestPlayerVisualFailurePropagates(t *testing.T) {
	h := newHarness(t, testConfig())
	h.scene.failKinds[EntityKindPlayer] = true

	err := h.game.StartGame(ModeSolo)
	assert.ErrorIs(t, err, errNoVisual)
	assert.Equal(t, StateMenu, h.game.Session().State)
}

func TestStepIsNoopOutsidePlaying(t *testing.T) {
	h := newHarness(t, testConfig())
	h.game.Step(0.1)
	assert.Equal(t, 0.0, h.game.Now())
	assert.Nil(t, h.game.Player())
}

func TestStepClampsDelta(t *testing.T) {
	h := newHarness(t, testConfig())
	require.NoError(t, h.game.StartGame(ModeSolo))

	h.game.Step(5)
	assert.InDelta(t, 0.1, h.game.Now(), 1e-12)
}

func TestProjectileKillsEnemyAndScores(t *testing.T) {
	cfg := testConfig()
	cfg.Rounds.Enemies = 1
	h := newHarness(t, cfg)
	require.NoError(t, h.game.StartGame(ModeSolo))

	enemy := h.game.Enemies()[0]
	enemy.Pos = mgl64.Vec3{0, 1, -4}
	enemy.Health = 10
	h.input.fire = true

	for i := 0; i < 5; i++ {
		h.game.Step(0.02)
	}

	assert.Empty(t, h.game.Enemies())
	assert.Equal(t, 0, h.scene.count(EntityKindEnemy))
	assert.Equal(t, 100, h.game.Session().Score)
	assert.Equal(t, []int{0, 100}, h.ui.score)
	assert.Equal(t, 11, h.game.Player().Weapon.Ammo)
	assert.Contains(t, h.audio.played, SoundShoot)
}

func TestClearedRoundRespawnsAfterCooldown(t *testing.T) {
	h := newHarness(t, testConfig())
	require.NoError(t, h.game.StartGame(ModeSolo))

	for _, e := range h.game.Enemies() {
		e.TakeDamage(1000)
	}
	h.game.Step(0.1)
	require.Empty(t, h.game.Enemies())
	assert.Equal(t, 500, h.game.Session().Score)

	for i := 0; i < 45; i++ {
		h.game.Step(0.1)
	}
	assert.Empty(t, h.game.Enemies(), "still cooling down")

	for i := 0; i < 10; i++ {
		h.game.Step(0.1)
	}
	assert.Len(t, h.game.Enemies(), 5)
	assert.Equal(t, 2, h.game.Session().Round)
}

func TestEnemyAttackEndsGameOnce(t *testing.T) {
	cfg := testConfig()
	cfg.Rounds.Enemies = 1
	h := newHarness(t, cfg)
	require.NoError(t, h.game.StartGame(ModeSolo))

	h.game.Player().Health = 10
	h.game.Enemies()[0].Pos = mgl64.Vec3{2, 1, 0}

	h.game.Step(0.1)
	assert.Equal(t, StateGameOver, h.game.Session().State)
	assert.Equal(t, []int{0}, h.ui.gameOver)
	assert.Equal(t, 0.0, h.ui.health[len(h.ui.health)-1])

	now := h.game.Now()
	h.game.Step(0.1)
	h.game.Step(0.1)
	assert.Equal(t, []int{0}, h.ui.gameOver)
	assert.Equal(t, now, h.game.Now())
	assert.Equal(t, "gameOver", h.game.Snapshot().State)
}

func TestInvincibilityBlocksEnemyDamage(t *testing.T) {
	cfg := testConfig()
	cfg.Rounds.Enemies = 1
	h := newHarness(t, cfg)
	require.NoError(t, h.game.StartGame(ModeSolo))

	require.NoError(t, h.game.Player().ApplyPowerup(PowerupInvincibility))
	h.game.Enemies()[0].Pos = mgl64.Vec3{2, 1, 0}

	for i := 0; i < 30; i++ {
		h.game.Step(0.1)
	}
	assert.Equal(t, 100.0, h.game.Player().Health)
}

func TestPowerupPickup(t *testing.T) {
	cfg := testConfig()
	cfg.Rounds.Enemies = 0
	h := newHarness(t, cfg)
	require.NoError(t, h.game.StartGame(ModeSolo))

	h.game.spawnPowerup(PowerupSpeed)
	require.Len(t, h.game.Powerups(), 1)
	h.game.Powerups()[0].Pos = h.game.Player().Pos
	h.game.Powerups()[0].baseY = h.game.Player().Pos.Y()

	h.game.Step(0.1)

	assert.Empty(t, h.game.Powerups())
	assert.Equal(t, 0, h.scene.count(EntityKindPowerup))
	assert.Equal(t, 10.0, h.game.Player().Powerups[PowerupSpeed])
	assert.Contains(t, h.audio.played, SoundPowerup)
	assert.Contains(t, h.game.Snapshot().Player.Powerups, "speed")
}

func TestPowerupsSpawnUpToCap(t *testing.T) {
	cfg := testConfig()
	cfg.Rounds.Enemies = 0
	cfg.Powerups.SpawnInterval = 1
	cfg.Powerups.MaxActive = 2
	h := newHarness(t, cfg)
	require.NoError(t, h.game.StartGame(ModeSolo))

	for i := 0; i < 50; i++ {
		h.game.Step(0.1)
		require.LessOrEqual(t, len(h.game.Powerups()), 2)
	}
	assert.Len(t, h.game.Powerups(), 2)
}

func TestReloadFromInput(t *testing.T) {
	h := newHarness(t, testConfig())
	require.NoError(t, h.game.StartGame(ModeSolo))

	h.input.fire = true
	h.game.Step(0.016)
	h.input.fire = false
	h.input.reload = true
	h.game.Step(0.016)

	assert.True(t, h.game.Player().Weapon.Reloading)
	assert.Equal(t, []string{SoundShoot, SoundReload}, h.audio.played)
	assert.True(t, h.game.Snapshot().Player.Reloading)
	assert.False(t, h.game.Reload(), "already reloading")
}

func TestUIOnlyReportsChanges(t *testing.T) {
	h := newHarness(t, testConfig())
	require.NoError(t, h.game.StartGame(ModeSolo))

	for i := 0; i < 3; i++ {
		h.game.Step(0.016)
	}
	assert.Len(t, h.ui.health, 1)
	assert.Len(t, h.ui.ammo, 1)
	assert.Len(t, h.ui.score, 1)

	h.input.fire = true
	h.game.Step(0.016)
	assert.Equal(t, []int{12, 11}, h.ui.ammo)
}

func TestFPSReported(t *testing.T) {
	h := newHarness(t, testConfig())
	for i := 0; i < 4; i++ {
		h.game.Step(0.125)
	}
	require.Len(t, h.ui.fps, 1)
	assert.InDelta(t, 8, h.ui.fps[0], 1e-9)
}

func TestRestartRemovesOldVisuals(t *testing.T) {
	h := newHarness(t, testConfig())
	require.NoError(t, h.game.StartGame(ModeSolo))
	h.input.fire = true
	h.game.Step(0.016)
	require.Equal(t, 1, h.scene.count(EntityKindProjectile))

	require.NoError(t, h.game.StartGame(ModeDuel))
	assert.Equal(t, 0, h.scene.count(EntityKindProjectile))
	assert.Equal(t, 1, h.scene.count(EntityKindEnemy))
	assert.Equal(t, 1, h.scene.count(EntityKindPlayer))

	h.game.Stop()
	assert.Empty(t, h.scene.live)
	assert.Equal(t, StateMenu, h.game.Session().State)
}

func TestSnapshotReflectsCommittedState(t *testing.T) {
	h := newHarness(t, testConfig())
	require.NoError(t, h.game.StartGame(ModeSolo))

	h.input.intent = Intent{Forward: true}
	h.game.Step(0.016)

	s := h.game.Snapshot()
	assert.Equal(t, uint64(1), s.Frame)
	assert.Equal(t, "playing", s.State)
	assert.Equal(t, "solo", s.Mode)
	assert.Len(t, s.Enemies, 5)
	assert.Equal(t, h.game.Player().Pos, s.Player.Position)
	assert.Equal(t, "pistol", s.Player.Weapon)

	nearest, ok := s.NearestEnemy()
	require.True(t, ok)
	for _, e := range s.Enemies {
		assert.LessOrEqual(t,
			nearest.Position.Sub(s.Player.Position).Len(),
			e.Position.Sub(s.Player.Position).Len())
	}
}
