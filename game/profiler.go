package game

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// FPSMonitor counts frames over a fixed window of simulated time
type FPSMonitor struct {
	window  float64
	frames  int
	elapsed float64
	fps     float64
}

// NewFPSMonitor creates a monitor reporting once per window seconds
func NewFPSMonitor(window float64) *FPSMonitor {
	if window <= 0 {
		window = 0.5
	}
	return &FPSMonitor{window: window}
}

// Tick records a frame. It returns the new reading and true once per window.
func (m *FPSMonitor) Tick(deltaTime float64) (float64, bool) {
	m.frames++
	m.elapsed += deltaTime
	if m.elapsed < m.window {
		return m.fps, false
	}

	m.fps = float64(m.frames) / m.elapsed
	m.frames = 0
	m.elapsed = 0
	return m.fps, true
}

// FPS returns the last reading
func (m *FPSMonitor) FPS() float64 {
	return m.fps
}

// Profiler captures a CPU profile and execution trace when frame rate drops
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	profilesDir     string
	captureDuration time.Duration
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile dir: %w", err)
	}

	return &Profiler{
		captureCooldown: 10 * time.Second,
		profilesDir:     dir,
		captureDuration: 5 * time.Second,
	}, nil
}

// CaptureProfile starts a background capture. It is rate limited.
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", time.Since(p.lastCaptureTime))
	}

	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()

	baseName := fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				log.Error().Err(err).Msg("error capturing CPU profile")
			}
		}()

		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				log.Error().Err(err).Msg("error capturing trace")
			}
		}()

		wg.Wait()
		p.logSummary(baseName)
	}()

	return nil
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	log.Info().Str("path", profilePath).Msg("CPU profile saved")
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	log.Info().Str("path", tracePath).Msg("trace saved")
	return nil
}

func (p *Profiler) logSummary(baseName string) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	log.Info().
		Str("profile", filepath.Join(p.profilesDir, baseName+".cpu.prof")).
		Uint64("allocKB", m.Alloc/1024).
		Uint64("sysKB", m.Sys/1024).
		Uint32("numGC", m.NumGC).
		Uint64("heapObjects", m.HeapObjects).
		Msg("performance capture finished, inspect with go tool pprof -http=:8080")
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}
