package component

// WorldObject names a level object for logs and debug output.
type WorldObject struct {
	Name string
}

var WorldObjectComponent = NewComponent[WorldObject]()
