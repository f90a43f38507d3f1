package window_test

import (
	"fmt"

	"github.com/cwbudde/algo-osc/dsp/window"
)

func ExampleGenerate() {
	w := window.Generate(window.TypeHann, 5)
	fmt.Printf("%.2f\n", w)

	// Output:
	// [0.00 0.50 1.00 0.50 0.00]
}
