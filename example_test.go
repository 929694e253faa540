package iontrap

import (
	"fmt"
)

func ExampleEvaluate() {
	grid, _ := BuildGrid(
		AxisSpec{Lo: -1, Hi: 1, Count: 3},
		AxisSpec{Lo: -1, Hi: 1, Count: 3},
		AxisSpec{Lo: -1, Hi: 1, Count: 3},
	)
	field, _ := Evaluate(Quadrupole3D, grid, nil)
	v, _ := field.At(2, 1, 0)
	fmt.Println(field.Shape(), v)
	// Output:
	// [3 3 3] -0.5
}

func ExampleScalarField_CrossSection() {
	preset, _ := LookupPreset("paul_trap")
	grid, _ := BuildGrid(
		AxisSpec{Lo: -1, Hi: 1, Count: 3},
		AxisSpec{Lo: -1, Hi: 1, Count: 3},
		AxisSpec{Lo: -1, Hi: 1, Count: 3},
	)
	field, _ := Evaluate(preset.Variant, grid, preset.Params)
	section, _ := field.CrossSection(Z, 1)
	fmt.Println(section.Label())
	fmt.Printf("%v\n", section.Matrix().RawMatrix().Data)
	// Output:
	// z=0
	// [2 1 2 1 0 1 2 1 2]
}

func ExampleEvaluate_qccd() {
	grid, _ := BuildGrid(
		AxisSpec{Lo: -1, Hi: 1, Count: 3},
		AxisSpec{Lo: -1, Hi: 1, Count: 3},
		AxisSpec{Lo: -1, Hi: 1, Count: 3},
	)
	field, _ := Evaluate(QCCDSingleTrap, grid, Parameters{1})
	v, _ := field.At(2, 0, 1)
	fmt.Println(v, field.NonFinite())
	// Output:
	// -Inf 6
}
