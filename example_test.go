package intcode_test

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/intcode"
)

func ExampleEval() {
	// Outputs 1 if the input is less than 8, 0 otherwise.
	out, err := intcode.Eval(context.Background(), "3,3,1107,-1,8,3,4,3,99", intcode.WithInput(5))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)
	// Output: [1]
}

func ExamplePatch() {
	fmt.Println(intcode.Patch([]int64{1, 0, 0, 3, 99}, 12, 2))
	// Output: [1 12 2 3 99]
}

func ExampleSearchNounVerb() {
	image := []int64{1101, 0, 0, 0, 99}
	noun, verb, err := intcode.SearchNounVerb(context.Background(), image, 150)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(100*noun + verb)
	// Output: 5199
}
