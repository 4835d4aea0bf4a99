package component

// Anchor marks a platform that carries a player standing on it.
type Anchor struct{}

var AnchorComponent = NewComponent[Anchor]()
