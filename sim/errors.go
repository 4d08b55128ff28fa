package sim

import "errors"

var (
	ErrUnknownPrefab   = errors.New("sim: unknown prefab")
	ErrUnknownMesh     = errors.New("sim: unknown mesh")
	ErrUnknownMaterial = errors.New("sim: unknown material")
)
