package component

// Input stores this tick's input for an entity. Jump is the held value.
type Input struct {
	MoveX float64
	Jump  bool
}

var InputComponent = NewComponent[Input]()
