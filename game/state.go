package game

// Scene is the authoritative state of one ball: the chain, the actor that
// plays with it and the camera pointers are projected through.
type Scene struct {
	Tick   int
	Chain  *Chain
	Hero   Interactor
	Camera Camera
}

func NewScene(cfg Config, hero Interactor) (*Scene, error) {
	chain, err := NewChain(cfg)
	if err != nil {
		return nil, err
	}
	return &Scene{
		Chain:  chain,
		Hero:   hero,
		Camera: DefaultCamera(),
	}, nil
}
