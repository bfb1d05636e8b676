// Package schemas embeds the domain schema declarations and wires them
// to the migration operators for the callers that consume them: quality
// scoring, the complexity gate, and prompt assembly.
//
// Each declaration is compiled and law-checked once, on first use.
package schemas

import (
	_ "embed"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/triptych/internal/compiler"
)

//go:embed quality.cue
var qualityCUE string

//go:embed complexity.cue
var complexityCUE string

//go:embed prompt.cue
var promptCUE string

var (
	quality    = sync.OnceValues(func() (*compiler.Built, error) { return load("quality.cue", qualityCUE) })
	complexity = sync.OnceValues(func() (*compiler.Built, error) { return load("complexity.cue", complexityCUE) })
	prompt     = sync.OnceValues(func() (*compiler.Built, error) { return load("prompt.cue", promptCUE) })
)

// Quality returns the verified quality schema: the Quality and
// QualityScore categories and the Collapse functor between them.
func Quality() (*compiler.Built, error) { return quality() }

// Complexity returns the verified complexity schema: the ten-indicator
// Complexity category, the ComplexityGate category, and the Gate
// functor between them.
func Complexity() (*compiler.Built, error) { return complexity() }

// Prompt returns the verified prompt schema: the Prompt section
// category, the PromptDocument category, and the Assemble functor
// between them.
func Prompt() (*compiler.Built, error) { return prompt() }

func load(filename, src string) (*compiler.Built, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src, cue.Filename(filename))
	decls, err := compiler.Compile(v)
	if err != nil {
		return nil, err
	}
	return compiler.Build(decls)
}
