package component

// TransitionUniform is the data the transition shader reads. Color1 is the
// baseline, Color2 the target and Driver the eased blend factor between them.
type TransitionUniform struct {
	Color1        LinearRGBA
	Color2        LinearRGBA
	Resolution    [2]float32
	Driver        float32
	MovementAngle float32
}

var TransitionUniformComponent = NewComponent[TransitionUniform]()
