package machine_test

import (
	"fmt"

	"github.com/katalvlaran/presslab/machine"
)

// ExampleParse decodes a machine line and inspects its shape.
func ExampleParse() {
	m, err := machine.Parse("[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(m.Lights(), m.NumButtons(), m.Joltage())
	// Output:
	// 4 6 [3 5 4 7]
}
