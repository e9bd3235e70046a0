package ecs

// System represents a behavior that operates on the entities of a scene.
// Systems are told about every entity added to or removed from the scene and
// may keep whatever per-entity state they need between frames.
type System interface {
	OnAddEntity(e *Entity)
	OnRemoveEntity(e *Entity)
	OnUpdate(frame *UpdateFrame) error
}
