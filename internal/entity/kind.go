// Package entity defines the avatar and hazard records owned by the
// simulation. Records are plain data; behaviour lives in the hazard and
// engine packages.
package entity

// Kind tags a hazard type. The set is closed.
type Kind uint8

const (
	KindNone Kind = iota
	KindAsteroid
	KindComet
	KindSatellite
	KindLog
	KindFrog
	KindCar
	KindTruck
	KindDrone
	KindLaser
	KindExplosion
	KindJet
	KindBall
	KindCueBall
	KindFireball
	KindBoulder
	KindShark
	KindJellyfish
	KindArrow
	KindSaw
	KindPocket // environment only, used as a death cause
)

var kindNames = [...]string{
	KindNone:      "none",
	KindAsteroid:  "asteroid",
	KindComet:     "comet",
	KindSatellite: "satellite",
	KindLog:       "log",
	KindFrog:      "frog",
	KindCar:       "car",
	KindTruck:     "truck",
	KindDrone:     "drone",
	KindLaser:     "laser",
	KindExplosion: "explosion",
	KindJet:       "jet",
	KindBall:      "ball",
	KindCueBall:   "cue_ball",
	KindFireball:  "fireball",
	KindBoulder:   "boulder",
	KindShark:     "shark",
	KindJellyfish: "jellyfish",
	KindArrow:     "arrow",
	KindSaw:       "saw",
	KindPocket:    "pocket",
}

// String returns the stable name used in events, storage and logs.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind resolves a kind name.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return KindNone, false
}

// Lethal reports whether touching the kind kills the avatar.
// Jets and explosions push instead of killing; pockets are handled by the
// environment check.
func (k Kind) Lethal() bool {
	switch k {
	case KindNone, KindJet, KindExplosion, KindPocket:
		return false
	}
	return true
}

// Pushes reports whether the kind shoves the avatar on contact.
func (k Kind) Pushes() bool {
	return k == KindJet || k == KindExplosion
}

// Pocketable reports whether the kind can fall into a billiards pocket.
func (k Kind) Pocketable() bool {
	return k == KindBall || k == KindCueBall
}

// Shape is the collision shape of a hazard.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeRect
)

// String returns the shape name.
func (s Shape) String() string {
	if s == ShapeRect {
		return "rectangle"
	}
	return "circle"
}
