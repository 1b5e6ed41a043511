package headless

import (
	"sort"

	"arenashooter/game"

	"github.com/go-gl/mathgl/mgl64"
)

// Proxy is the logical stand-in for a visual
type Proxy struct {
	Kind     game.EntityKind
	Position mgl64.Vec3
	Yaw      float64
	Size     game.Size
	Variant  string
}

func (p *Proxy) Bounds() game.AABB {
	return game.BoxAt(p.Position, p.Size)
}

// Scene keeps logical boxes in place of visuals. Windowed frontends embed
// it and draw what it holds.
type Scene struct {
	proxies map[game.ProxyHandle]*Proxy
	next    game.ProxyHandle
}

var _ game.Scene = (*Scene)(nil)

func NewScene() *Scene {
	return &Scene{
		proxies: make(map[game.ProxyHandle]*Proxy),
	}
}

func (s *Scene) CreateProxy(kind game.EntityKind, params game.ProxyParams) (game.ProxyHandle, error) {
	s.next++
	s.proxies[s.next] = &Proxy{
		Kind:     kind,
		Position: params.Position,
		Size:     params.Size,
		Variant:  params.Variant,
	}
	return s.next, nil
}

func (s *Scene) SetTransform(handle game.ProxyHandle, position mgl64.Vec3, yaw float64) {
	if p, ok := s.proxies[handle]; ok {
		p.Position = position
		p.Yaw = yaw
	}
}

func (s *Scene) RemoveProxy(handle game.ProxyHandle) {
	delete(s.proxies, handle)
}

func (s *Scene) Intersects(a, b game.ProxyHandle) bool {
	pa, ok := s.proxies[a]
	if !ok {
		return false
	}
	pb, ok := s.proxies[b]
	if !ok {
		return false
	}
	return pa.Bounds().Intersects(pb.Bounds())
}

// Count returns how many live proxies there are of a kind
func (s *Scene) Count(kind game.EntityKind) int {
	n := 0
	for _, p := range s.proxies {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// Get returns the proxy behind a handle
func (s *Scene) Get(handle game.ProxyHandle) (Proxy, bool) {
	p, ok := s.proxies[handle]
	if !ok {
		return Proxy{}, false
	}
	return *p, true
}

// Each visits live proxies in creation order
func (s *Scene) Each(fn func(handle game.ProxyHandle, p Proxy)) {
	handles := make([]game.ProxyHandle, 0, len(s.proxies))
	for h := range s.proxies {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	for _, h := range handles {
		fn(h, *s.proxies[h])
	}
}
