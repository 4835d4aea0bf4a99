package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// SolidTag marks level geometry registered with the probe world and the physics space.
type SolidTag struct{}

var SolidTagComponent = NewComponent[SolidTag]()
