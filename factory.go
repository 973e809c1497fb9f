package universe

type factory struct{}

var Factory factory

func (f factory) NewUniverse(cfg Config) *Universe {
	return newUniverse(cfg)
}

func (f factory) NewDefaultUniverse() *Universe {
	return newUniverse(DefaultConfig())
}

// NewUniverseFromFile loads tuning from a TOML file and wires a logger built
// from its logging section.
func (f factory) NewUniverseFromFile(path string) (*Universe, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	cfg.Logger = logger
	return newUniverse(cfg), nil
}
