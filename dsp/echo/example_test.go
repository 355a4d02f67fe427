package echo_test

import (
	"fmt"

	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/echo"
	"github.com/cwbudde/algo-echo/dsp/tempo"
)

func ExampleEngine_ProcessSample() {
	e, err := echo.New(core.WithSampleRate(8000), core.WithTempo(240))
	if err != nil {
		panic(err)
	}
	p := echo.DefaultParams()
	p.Division = tempo.ThirtySecond
	p.Feedback = 0.5
	p.Cutoff = 8000 // at or above Nyquist the feedback filter is bypassed
	p.Dry = 0

	for i := range 800 {
		x := 0.0
		if i == 0 {
			x = 1
		}
		if y, _ := e.ProcessSample(p, x, 0); y != 0 {
			fmt.Printf("%d: %.2f\n", i, y)
		}
	}
	// Output:
	// 250: 1.00
	// 501: 0.50
	// 752: 0.25
}
