package warehouse

import (
	"fmt"

	"github.com/gogpu/naga"
)

// ValidateWGSL compiles a complete WGSL program — typically the warehouse's
// own GenerateCode() output spliced into a shader that calls sdf_select —
// through naga as a build-time/test-time sanity check that the generator
// never emits syntactically invalid WGSL. Grounded on the same
// naga.Compile entry point the gogpu rasterizer backend uses to turn WGSL
// into SPIR-V; this package only cares about the error return, not the
// compiled bytes.
func ValidateWGSL(source string) error {
	if _, err := naga.Compile(source); err != nil {
		return fmt.Errorf("warehouse: generated WGSL failed validation: %w", err)
	}
	return nil
}
