package core

// ProcessorConfig defines the stream settings an echo processor starts with.
type ProcessorConfig struct {
	SampleRate float64
	Tempo      float64 // beats per minute
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 44.1 kHz, 120 BPM and 512-sample blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 44100,
		Tempo:      120,
		BlockSize:  512,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if IsPositive(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithTempo sets the initial tempo in BPM.
func WithTempo(bpm float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if IsPositive(bpm) {
			cfg.Tempo = bpm
		}
	}
}

// WithBlockSize sets the block size scratch buffers are provisioned for.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
