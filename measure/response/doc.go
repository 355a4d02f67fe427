// Package response measures processors through their impulse responses.
//
// It renders an impulse response from any per-sample processor, computes
// its magnitude spectrum and extracts the echo train of a feedback delay:
//
//	ir := response.Impulse(response.ProcessorFunc(f), 1<<16)
//	mag, err := response.Spectrum(ir, 1<<16)
//	echoes := response.Echoes(ir, 1e-3)
//	rt60, err := response.DecayTime(echoes, 48000)
package response
